// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/scholar-resolve/internal/match"
	"github.com/pdiddy/scholar-resolve/pkg/types"
)

// OpenAlex endpoints. Declared as vars so tests can substitute httptest
// servers.
var (
	openAlexAuthorsBase = "https://api.openalex.org/authors"
	openAlexWorksBase   = "https://api.openalex.org/works"
)

// OpenAlexBackend queries the OpenAlex API.
type OpenAlexBackend struct {
	Client *http.Client
	// Email is sent as mailto parameter for polite pool access.
	Email string
}

// Name returns the backend identifier.
func (b *OpenAlexBackend) Name() string { return SourceOpenAlex }

func (b *OpenAlexBackend) withMailto(params url.Values) url.Values {
	if b.Email != "" {
		params.Set("mailto", b.Email)
	}
	return params
}

// SearchProfile queries the author search endpoint and returns the
// best-matching candidate as a partial record.
func (b *OpenAlexBackend) SearchProfile(ctx context.Context, name string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	params := b.withMailto(url.Values{
		"search":   {name},
		"per_page": {fmt.Sprintf("%d", candidateLimit(cfg))},
	})

	var ar openAlexAuthorsResponse
	if err := fetchJSON(ctx, b.Client, openAlexAuthorsBase+"?"+params.Encode(), cfg.HTTPConfig, nil, false, &ar); err != nil {
		return types.PartialAuthor{}, fmt.Errorf("openalex author search: %w", err)
	}
	if len(ar.Results) == 0 {
		return types.PartialAuthor{}, nil
	}

	nameSets := make([][]string, len(ar.Results))
	for i, c := range ar.Results {
		nameSets[i] = append([]string{c.DisplayName}, c.DisplayNameAlternatives...)
	}
	best := ar.Results[match.PickBest(name, nameSets)]

	return best.partial(), nil
}

// AuthorDetails fetches the full author record for an OpenAlex author ID
// (bare "A..." form). The detail endpoint additionally exposes concepts,
// which map onto fields of study.
func (b *OpenAlexBackend) AuthorDetails(ctx context.Context, authorID string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	params := b.withMailto(url.Values{})
	reqURL := openAlexAuthorsBase + "/" + url.PathEscape(authorID)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var a openAlexAuthor
	if err := fetchJSON(ctx, b.Client, reqURL, cfg.HTTPConfig, nil, false, &a); err != nil {
		return types.PartialAuthor{}, fmt.Errorf("openalex author details: %w", err)
	}

	p := a.partial()
	for _, c := range a.XConcepts {
		if c.DisplayName != "" {
			p.FieldsOfStudy = append(p.FieldsOfStudy, c.DisplayName)
		}
	}
	return p, nil
}

// SearchPapers aggregates a works search into paper count and the highest
// citation count seen on a single work.
func (b *OpenAlexBackend) SearchPapers(ctx context.Context, name string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	params := b.withMailto(url.Values{
		"search":   {name},
		"per_page": {fmt.Sprintf("%d", paperLimit(cfg))},
	})

	var wr openAlexWorksResponse
	if err := fetchJSON(ctx, b.Client, openAlexWorksBase+"?"+params.Encode(), cfg.HTTPConfig, nil, false, &wr); err != nil {
		return types.PartialAuthor{}, fmt.Errorf("openalex works search: %w", err)
	}
	if len(wr.Results) == 0 {
		return types.PartialAuthor{}, nil
	}

	maxCitations := 0
	for _, w := range wr.Results {
		if w.CitedByCount > maxCitations {
			maxCitations = w.CitedByCount
		}
	}

	count := len(wr.Results)
	return types.PartialAuthor{
		Name:          name,
		PaperCount:    &count,
		CitationCount: &maxCitations,
		Sources:       []string{SourceOpenAlex},
	}, nil
}

// OpenAlex API JSON structures.
type openAlexAuthorsResponse struct {
	Results []openAlexAuthor `json:"results"`
}

type openAlexAuthor struct {
	ID                      string            `json:"id"`
	DisplayName             string            `json:"display_name"`
	DisplayNameAlternatives []string          `json:"display_name_alternatives"`
	WorksCount              *int              `json:"works_count"`
	CitedByCount            *int              `json:"cited_by_count"`
	ORCID                   string            `json:"orcid"`
	IDs                     openAlexIDs       `json:"ids"`
	HomepageURL             string            `json:"homepage_url"`
	ImageURL                string            `json:"image_url"`
	LastKnownInstitution    *openAlexInst     `json:"last_known_institution"`
	XConcepts               []openAlexConcept `json:"x_concepts"`
}

type openAlexIDs struct {
	ORCID string `json:"orcid"`
}

type openAlexInst struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code"`
}

type openAlexConcept struct {
	DisplayName string `json:"display_name"`
}

// partial converts a decoded author into the canonical record.
func (a openAlexAuthor) partial() types.PartialAuthor {
	if a.ID == "" && a.DisplayName == "" {
		return types.PartialAuthor{}
	}

	orcid := a.ORCID
	if orcid == "" {
		orcid = a.IDs.ORCID
	}

	var affs []types.Affiliation
	if a.LastKnownInstitution != nil && a.LastKnownInstitution.DisplayName != "" {
		affs = append(affs, types.Affiliation{
			InstitutionID:   a.LastKnownInstitution.ID,
			InstitutionName: a.LastKnownInstitution.DisplayName,
			Country:         a.LastKnownInstitution.CountryCode,
		})
	}

	return types.PartialAuthor{
		Name:            a.DisplayName,
		AuthorID:        a.ID,
		ORCID:           orcid,
		Affiliations:    affs,
		HomepageURL:     a.HomepageURL,
		ProfileImageURL: a.ImageURL,
		PaperCount:      a.WorksCount,
		CitationCount:   a.CitedByCount,
		Sources:         []string{SourceOpenAlex},
	}
}

type openAlexWorksResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CitedByCount int    `json:"cited_by_count"`
}
