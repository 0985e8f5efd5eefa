// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider implements the per-source HTTP adapters for author
// resolution. Each backend translates one provider's native JSON shapes
// into the canonical PartialAuthor record, isolating shape drift from the
// merge engine. Profile backends search author endpoints and pick the
// best name match; fallback backends aggregate paper search results into
// counts and fields of study; detail lookups deepen an already-merged
// profile from an identifier.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/scholar-resolve/internal/httputil"
	"github.com/pdiddy/scholar-resolve/pkg/types"
)

// Provider tags as they appear in PartialAuthor.Sources.
const (
	SourceSemanticScholar = "semantic_scholar"
	SourceOpenAlex        = "openalex"
	SourceDBLP            = "dblp"
	SourceEuropePMC       = "europepmc"
	SourcePubMed          = "pubmed"
	SourceORCID           = "orcid"
)

// ProfileBackend searches a provider's author-profile endpoint. A miss
// (no candidates) is an empty partial, not an error; errors mean the
// transport or payload failed.
type ProfileBackend interface {
	Name() string
	SearchProfile(ctx context.Context, name string, cfg types.ResolveConfig) (types.PartialAuthor, error)
}

// FallbackBackend aggregates a provider's paper search into a partial
// record (paper count, citation max, fields of study). Used for sources
// without a profile endpoint and to enrich those with one.
type FallbackBackend interface {
	Name() string
	SearchPapers(ctx context.Context, name string, cfg types.ResolveConfig) (types.PartialAuthor, error)
}

// fetchJSON performs a GET against reqURL and decodes the JSON body into
// v. withRetry routes through the 429-backoff helper for rate-limited
// providers. Extra headers apply after the User-Agent.
func fetchJSON(ctx context.Context, client *http.Client, reqURL string, cfg types.HTTPConfig, header http.Header, withRetry bool, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	for k, vals := range header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}

	var resp *http.Response
	if withRetry {
		resp, err = httputil.DoWithRetry(ctx, client, req, 0)
	} else {
		resp, err = client.Do(req)
	}
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// candidateLimit returns the configured profile-candidate limit or the
// default of 5.
func candidateLimit(cfg types.ResolveConfig) int {
	if cfg.CandidateLimit > 0 {
		return cfg.CandidateLimit
	}
	return 5
}

// paperLimit returns the configured paper-fallback limit or the default
// of 50.
func paperLimit(cfg types.ResolveConfig) int {
	if cfg.PaperLimit > 0 {
		return cfg.PaperLimit
	}
	return 50
}
