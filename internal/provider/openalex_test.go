// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleOpenAlexAuthorsJSON = `{
  "results": [
    {
      "id": "https://openalex.org/A5023888391",
      "display_name": "Ada Example",
      "display_name_alternatives": ["A. Example"],
      "works_count": 48,
      "cited_by_count": 1520,
      "orcid": "https://orcid.org/0000-0001-2345-6789",
      "homepage_url": "https://ada.example.org",
      "image_url": "https://example.org/ada.jpg",
      "last_known_institution": {
        "id": "https://openalex.org/I121332964",
        "display_name": "Example University",
        "country_code": "US"
      }
    },
    {
      "id": "https://openalex.org/A999",
      "display_name": "Adam Sample",
      "display_name_alternatives": [],
      "works_count": 2,
      "cited_by_count": 4
    }
  ]
}`

func TestOpenAlexSearchProfile(t *testing.T) {
	ts := jsonTestServer(http.StatusOK, sampleOpenAlexAuthorsJSON)
	defer ts.Close()

	old := openAlexAuthorsBase
	openAlexAuthorsBase = ts.URL
	defer func() { openAlexAuthorsBase = old }()

	b := &OpenAlexBackend{Client: ts.Client()}
	p, err := b.SearchProfile(context.Background(), "Ada Example", testCfg())
	if err != nil {
		t.Fatalf("SearchProfile: %v", err)
	}

	if p.AuthorID != "https://openalex.org/A5023888391" {
		t.Errorf("AuthorID = %q", p.AuthorID)
	}
	if p.ORCID != "https://orcid.org/0000-0001-2345-6789" {
		t.Errorf("ORCID = %q", p.ORCID)
	}
	if p.PaperCount == nil || *p.PaperCount != 48 {
		t.Errorf("PaperCount = %v, want 48", p.PaperCount)
	}
	if p.CitationCount == nil || *p.CitationCount != 1520 {
		t.Errorf("CitationCount = %v, want 1520", p.CitationCount)
	}
	if p.ProfileImageURL != "https://example.org/ada.jpg" {
		t.Errorf("ProfileImageURL = %q", p.ProfileImageURL)
	}
	if len(p.Affiliations) != 1 || p.Affiliations[0].InstitutionName != "Example University" || p.Affiliations[0].Country != "US" {
		t.Errorf("Affiliations = %+v", p.Affiliations)
	}
	if len(p.Sources) != 1 || p.Sources[0] != "openalex" {
		t.Errorf("Sources = %v", p.Sources)
	}
}

func TestOpenAlexSearchProfileNoCandidates(t *testing.T) {
	ts := jsonTestServer(http.StatusOK, `{"results": []}`)
	defer ts.Close()

	old := openAlexAuthorsBase
	openAlexAuthorsBase = ts.URL
	defer func() { openAlexAuthorsBase = old }()

	b := &OpenAlexBackend{Client: ts.Client()}
	p, err := b.SearchProfile(context.Background(), "Nobody", testCfg())
	if err != nil {
		t.Fatalf("SearchProfile: %v", err)
	}
	if !p.IsEmpty() {
		t.Errorf("expected empty partial, got %+v", p)
	}
}

func TestOpenAlexMailtoParameter(t *testing.T) {
	var gotMailto string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMailto = r.URL.Query().Get("mailto")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": []}`))
	}))
	defer ts.Close()

	old := openAlexAuthorsBase
	openAlexAuthorsBase = ts.URL
	defer func() { openAlexAuthorsBase = old }()

	b := &OpenAlexBackend{Client: ts.Client(), Email: "resolver@example.com"}
	if _, err := b.SearchProfile(context.Background(), "Ada", testCfg()); err != nil {
		t.Fatalf("SearchProfile: %v", err)
	}
	if gotMailto != "resolver@example.com" {
		t.Errorf("mailto = %q, want %q", gotMailto, "resolver@example.com")
	}

	b = &OpenAlexBackend{Client: ts.Client()}
	if _, err := b.SearchProfile(context.Background(), "Ada", testCfg()); err != nil {
		t.Fatalf("SearchProfile: %v", err)
	}
	if gotMailto != "" {
		t.Errorf("mailto = %q, should be empty when no email configured", gotMailto)
	}
}

func TestOpenAlexAuthorDetails(t *testing.T) {
	detailJSON := `{
		"id": "https://openalex.org/A5023888391",
		"display_name": "Ada Example",
		"works_count": 50,
		"cited_by_count": 1600,
		"ids": {"orcid": "https://orcid.org/0000-0001-2345-6789"},
		"x_concepts": [
			{"display_name": "Computer Science"},
			{"display_name": "Mathematics"},
			{"display_name": ""}
		]
	}`
	ts := jsonTestServer(http.StatusOK, detailJSON)
	defer ts.Close()

	old := openAlexAuthorsBase
	openAlexAuthorsBase = ts.URL
	defer func() { openAlexAuthorsBase = old }()

	b := &OpenAlexBackend{Client: ts.Client()}
	p, err := b.AuthorDetails(context.Background(), "A5023888391", testCfg())
	if err != nil {
		t.Fatalf("AuthorDetails: %v", err)
	}
	if p.ORCID != "https://orcid.org/0000-0001-2345-6789" {
		t.Errorf("ORCID = %q (ids.orcid fallback)", p.ORCID)
	}
	// Concepts map onto fields of study, skipping empty names.
	if len(p.FieldsOfStudy) != 2 {
		t.Errorf("FieldsOfStudy = %v, want 2 concepts", p.FieldsOfStudy)
	}
	if p.PaperCount == nil || *p.PaperCount != 50 {
		t.Errorf("PaperCount = %v, want 50", p.PaperCount)
	}
}

func TestOpenAlexSearchPapers(t *testing.T) {
	worksJSON := `{
		"results": [
			{"id": "https://openalex.org/W1", "title": "Paper A", "cited_by_count": 12},
			{"id": "https://openalex.org/W2", "title": "Paper B", "cited_by_count": 31},
			{"id": "https://openalex.org/W3", "title": "Paper C", "cited_by_count": 7}
		]
	}`
	ts := jsonTestServer(http.StatusOK, worksJSON)
	defer ts.Close()

	old := openAlexWorksBase
	openAlexWorksBase = ts.URL
	defer func() { openAlexWorksBase = old }()

	b := &OpenAlexBackend{Client: ts.Client()}
	p, err := b.SearchPapers(context.Background(), "Ada Example", testCfg())
	if err != nil {
		t.Fatalf("SearchPapers: %v", err)
	}
	if p.PaperCount == nil || *p.PaperCount != 3 {
		t.Errorf("PaperCount = %v, want 3", p.PaperCount)
	}
	// Citation contribution is the max over works, not the sum: the
	// merge layer later maxes across sources too.
	if p.CitationCount == nil || *p.CitationCount != 31 {
		t.Errorf("CitationCount = %v, want 31", p.CitationCount)
	}
}

func TestOpenAlexSearchPapersEmpty(t *testing.T) {
	ts := jsonTestServer(http.StatusOK, `{"results": []}`)
	defer ts.Close()

	old := openAlexWorksBase
	openAlexWorksBase = ts.URL
	defer func() { openAlexWorksBase = old }()

	b := &OpenAlexBackend{Client: ts.Client()}
	p, err := b.SearchPapers(context.Background(), "Nobody", testCfg())
	if err != nil {
		t.Fatalf("SearchPapers: %v", err)
	}
	if !p.IsEmpty() {
		t.Errorf("expected empty partial, got %+v", p)
	}
}

func TestOpenAlexName(t *testing.T) {
	b := &OpenAlexBackend{}
	if b.Name() != "openalex" {
		t.Errorf("Name() = %q", b.Name())
	}
}
