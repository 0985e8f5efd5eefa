// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/scholar-resolve/internal/match"
	"github.com/pdiddy/scholar-resolve/pkg/types"
)

// Semantic Scholar endpoints. Declared as vars so tests can substitute
// httptest servers.
var (
	semanticAuthorSearchBase = "https://api.semanticscholar.org/graph/v1/author/search"
	semanticAuthorDetailBase = "https://api.semanticscholar.org/graph/v1/author"
	semanticPaperSearchBase  = "https://api.semanticscholar.org/graph/v1/paper/search"
)

const (
	semanticProfileFields = "authorId,name,aliases,citationCount,hIndex,paperCount,homepage,externalIds,affiliations"
	semanticDetailFields  = "authorId,name,homepage,externalIds,hIndex,paperCount,citationCount,affiliations"
	semanticPaperFields   = "title,fieldsOfStudy,citationCount"
)

// SemanticScholarBackend queries the Semantic Scholar Graph API. All its
// calls route through the 429-retry helper; the public pool rate-limits
// aggressively without an API key.
type SemanticScholarBackend struct {
	Client *http.Client
	APIKey string
}

// Name returns the backend identifier.
func (b *SemanticScholarBackend) Name() string { return SourceSemanticScholar }

func (b *SemanticScholarBackend) header() http.Header {
	h := http.Header{}
	if b.APIKey != "" {
		h.Set("x-api-key", b.APIKey)
	}
	return h
}

// SearchProfile queries the author search endpoint and returns the
// best-matching candidate as a partial record. No candidates means an
// empty partial.
func (b *SemanticScholarBackend) SearchProfile(ctx context.Context, name string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	params := url.Values{
		"query":  {name},
		"limit":  {fmt.Sprintf("%d", candidateLimit(cfg))},
		"fields": {semanticProfileFields},
	}

	var sr s2AuthorSearchResponse
	if err := fetchJSON(ctx, b.Client, semanticAuthorSearchBase+"?"+params.Encode(), cfg.HTTPConfig, b.header(), true, &sr); err != nil {
		return types.PartialAuthor{}, fmt.Errorf("semantic scholar author search: %w", err)
	}
	if len(sr.Data) == 0 {
		return types.PartialAuthor{}, nil
	}

	nameSets := make([][]string, len(sr.Data))
	for i, c := range sr.Data {
		nameSets[i] = append([]string{c.Name}, c.Aliases...)
	}
	best := sr.Data[match.PickBest(name, nameSets)]

	return best.partial(), nil
}

// AuthorDetails fetches the full author record for a numeric Semantic
// Scholar ID. Used by the enrichment stage once a primary merge surfaces
// such an ID.
func (b *SemanticScholarBackend) AuthorDetails(ctx context.Context, authorID string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	params := url.Values{"fields": {semanticDetailFields}}
	reqURL := fmt.Sprintf("%s/%s?%s", semanticAuthorDetailBase, url.PathEscape(authorID), params.Encode())

	var a s2Author
	if err := fetchJSON(ctx, b.Client, reqURL, cfg.HTTPConfig, b.header(), true, &a); err != nil {
		return types.PartialAuthor{}, fmt.Errorf("semantic scholar author details: %w", err)
	}
	return a.partial(), nil
}

// SearchPapers aggregates a paper search into paper count and fields of
// study. An empty result set contributes nothing.
func (b *SemanticScholarBackend) SearchPapers(ctx context.Context, name string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	params := url.Values{
		"query":  {fmt.Sprintf("author:%q", name)},
		"limit":  {fmt.Sprintf("%d", paperLimit(cfg))},
		"fields": {semanticPaperFields},
	}

	var pr s2PaperSearchResponse
	if err := fetchJSON(ctx, b.Client, semanticPaperSearchBase+"?"+params.Encode(), cfg.HTTPConfig, b.header(), true, &pr); err != nil {
		return types.PartialAuthor{}, fmt.Errorf("semantic scholar paper search: %w", err)
	}
	if len(pr.Data) == 0 {
		return types.PartialAuthor{}, nil
	}

	var fields []string
	seen := make(map[string]bool)
	for _, p := range pr.Data {
		for _, f := range p.FieldsOfStudy {
			if f != "" && !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}

	count := len(pr.Data)
	return types.PartialAuthor{
		Name:          name,
		PaperCount:    &count,
		FieldsOfStudy: fields,
		Sources:       []string{SourceSemanticScholar},
	}, nil
}

// Semantic Scholar API JSON structures.
type s2AuthorSearchResponse struct {
	Total int        `json:"total"`
	Data  []s2Author `json:"data"`
}

type s2Author struct {
	AuthorID      string          `json:"authorId"`
	Name          string          `json:"name"`
	Aliases       []string        `json:"aliases"`
	PaperCount    *int            `json:"paperCount"`
	CitationCount *int            `json:"citationCount"`
	HIndex        *int            `json:"hIndex"`
	Homepage      string          `json:"homepage"`
	ExternalIDs   s2ExternalIDs   `json:"externalIds"`
	Affiliations  []s2Affiliation `json:"affiliations"`
}

type s2ExternalIDs struct {
	ORCID string `json:"ORCID"`
}

// s2Affiliation tolerates the two shapes Semantic Scholar uses for
// affiliations: a bare institution-name string or an object.
type s2Affiliation struct {
	ID   string
	Name string
}

func (a *s2Affiliation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Name = s
		return nil
	}
	var obj struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.ID = obj.ID
	a.Name = obj.Name
	if a.Name == "" {
		a.Name = obj.DisplayName
	}
	return nil
}

// partial converts a decoded author into the canonical record.
func (a s2Author) partial() types.PartialAuthor {
	if a.AuthorID == "" && a.Name == "" {
		return types.PartialAuthor{}
	}

	var affs []types.Affiliation
	for _, aff := range a.Affiliations {
		if aff.Name == "" {
			continue
		}
		affs = append(affs, types.Affiliation{
			InstitutionID:   aff.ID,
			InstitutionName: aff.Name,
		})
	}

	return types.PartialAuthor{
		Name:          a.Name,
		AuthorID:      a.AuthorID,
		ORCID:         a.ExternalIDs.ORCID,
		Affiliations:  affs,
		HomepageURL:   a.Homepage,
		HIndex:        a.HIndex,
		PaperCount:    a.PaperCount,
		CitationCount: a.CitationCount,
		Sources:       []string{SourceSemanticScholar},
	}
}

type s2PaperSearchResponse struct {
	Total int       `json:"total"`
	Data  []s2Paper `json:"data"`
}

type s2Paper struct {
	Title         string   `json:"title"`
	FieldsOfStudy []string `json:"fieldsOfStudy"`
	CitationCount int      `json:"citationCount"`
}
