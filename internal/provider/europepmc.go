// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/scholar-resolve/pkg/types"
)

// europePMCSearchBase is the Europe PMC REST search endpoint. Declared as
// a var so tests can substitute an httptest server.
var europePMCSearchBase = "https://www.ebi.ac.uk/europepmc/webservice/rest/search"

// EuropePMCBackend queries Europe PMC. It is a paper-fallback source
// only: no author profiles, just publication counts under the AUTH field.
type EuropePMCBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *EuropePMCBackend) Name() string { return SourceEuropePMC }

// SearchPapers counts publications whose author field matches the name.
func (b *EuropePMCBackend) SearchPapers(ctx context.Context, name string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	params := url.Values{
		"query":    {fmt.Sprintf("AUTH:%q", name)},
		"format":   {"json"},
		"pageSize": {fmt.Sprintf("%d", paperLimit(cfg))},
	}

	var er europePMCResponse
	if err := fetchJSON(ctx, b.Client, europePMCSearchBase+"?"+params.Encode(), cfg.HTTPConfig, nil, false, &er); err != nil {
		return types.PartialAuthor{}, fmt.Errorf("europe pmc search: %w", err)
	}
	count := len(er.ResultList.Result)
	if count == 0 {
		return types.PartialAuthor{}, nil
	}

	return types.PartialAuthor{
		Name:       name,
		PaperCount: &count,
		Sources:    []string{SourceEuropePMC},
	}, nil
}

// Europe PMC API JSON structures.
type europePMCResponse struct {
	ResultList struct {
		Result []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"result"`
	} `json:"resultList"`
}
