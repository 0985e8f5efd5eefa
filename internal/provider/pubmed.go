// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/scholar-resolve/pkg/types"
)

// pubmedESearchBase is the NCBI E-utilities esearch endpoint. Declared as
// a var so tests can substitute an httptest server.
var pubmedESearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"

// PubMedBackend queries PubMed via E-utilities. Paper-fallback source
// only: esearch returns matching PMIDs, which contribute a paper count.
type PubMedBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *PubMedBackend) Name() string { return SourcePubMed }

// SearchPapers counts publications with the name in the author field.
func (b *PubMedBackend) SearchPapers(ctx context.Context, name string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {fmt.Sprintf("%s[Author]", name)},
		"retmode": {"json"},
		"retmax":  {fmt.Sprintf("%d", paperLimit(cfg))},
	}

	var pr pubmedESearchResponse
	if err := fetchJSON(ctx, b.Client, pubmedESearchBase+"?"+params.Encode(), cfg.HTTPConfig, nil, false, &pr); err != nil {
		return types.PartialAuthor{}, fmt.Errorf("pubmed esearch: %w", err)
	}
	count := len(pr.ESearchResult.IDList)
	if count == 0 {
		return types.PartialAuthor{}, nil
	}

	return types.PartialAuthor{
		Name:       name,
		PaperCount: &count,
		Sources:    []string{SourcePubMed},
	}, nil
}

// PubMed E-utilities JSON structures.
type pubmedESearchResponse struct {
	ESearchResult struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}
