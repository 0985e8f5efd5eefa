// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/pdiddy/scholar-resolve/pkg/types"
)

func testCfg() types.ResolveConfig {
	return types.ResolveConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "scholar-resolve-test/0.0",
		},
		CandidateLimit: 5,
		PaperLimit:     50,
	}
}

func jsonTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}
