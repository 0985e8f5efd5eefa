// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/pdiddy/scholar-resolve/internal/provider"
	"github.com/pdiddy/scholar-resolve/pkg/types"
)

type fakeProfile struct {
	name string
	p    types.PartialAuthor
	err  error
}

func (f *fakeProfile) Name() string { return f.name }

func (f *fakeProfile) SearchProfile(ctx context.Context, name string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	return f.p, f.err
}

type fakeFallback struct {
	name string
	p    types.PartialAuthor
	err  error
}

func (f *fakeFallback) Name() string { return f.name }

func (f *fakeFallback) SearchPapers(ctx context.Context, name string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	return f.p, f.err
}

type fakeDetails struct {
	gotID string
	p     types.PartialAuthor
	err   error
}

func (f *fakeDetails) AuthorDetails(ctx context.Context, authorID string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	f.gotID = authorID
	return f.p, f.err
}

type fakeRecords struct {
	gotID string
	p     types.PartialAuthor
	err   error
}

func (f *fakeRecords) Record(ctx context.Context, orcidID string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	f.gotID = orcidID
	return f.p, f.err
}

func intp(n int) *int { return &n }

// testResolver wires fakes into every slot so no test touches the
// network. Pass nil for lookups a test does not care about; the zero
// fakes return empty partials, which the pipeline ignores.
func testResolver(profiles []provider.ProfileBackend, fallbacks []provider.FallbackBackend) *Resolver {
	return &Resolver{
		profileOrder:    profiles,
		fallbackOrder:   fallbacks,
		semanticDetails: &fakeDetails{},
		openalexDetails: &fakeDetails{},
		orcidRecords:    &fakeRecords{},
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestResolveEmptyName(t *testing.T) {
	r := New(types.ResolveConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := r.Resolve(context.Background(), types.AuthorQuery{Name: name}); !errors.Is(err, ErrEmptyName) {
			t.Errorf("Resolve(%q) error = %v, want ErrEmptyName", name, err)
		}
	}
}

func TestResolveNoResults(t *testing.T) {
	r := testResolver(
		[]provider.ProfileBackend{&fakeProfile{name: "semantic_scholar"}},
		[]provider.FallbackBackend{&fakeFallback{name: "pubmed"}},
	)

	p, err := r.Resolve(context.Background(), types.AuthorQuery{Name: "Nobody At All"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.Name != "Nobody At All" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Sources) != 0 {
		t.Errorf("Sources = %v, want none", p.Sources)
	}
	if p.PaperCount != 0 || p.CitationCount != 0 || p.HIndex != nil {
		t.Errorf("counts = %d/%d/%v, want zero", p.PaperCount, p.CitationCount, p.HIndex)
	}
	if p.ConfidenceScore != 0.0 {
		t.Errorf("ConfidenceScore = %v, want 0.0", p.ConfidenceScore)
	}
}

func TestResolveMergesAcrossSources(t *testing.T) {
	details := &fakeDetails{
		p: types.PartialAuthor{
			AuthorID: "123",
			HIndex:   intp(12),
			Sources:  []string{"semantic_scholar"},
		},
	}
	records := &fakeRecords{
		p: types.PartialAuthor{
			ORCID: "0000-0001-2345-6789",
			Affiliations: []types.Affiliation{
				{InstitutionName: "Example University", Country: "US", StartDate: "2015-01-01"},
			},
			Sources: []string{"orcid"},
		},
	}
	r := testResolver(
		[]provider.ProfileBackend{&fakeProfile{
			name: "semantic_scholar",
			p: types.PartialAuthor{
				AuthorID:   "123",
				ORCID:      "https://orcid.org/0000-0001-2345-6789",
				PaperCount: intp(10),
				Sources:    []string{"semantic_scholar"},
			},
		}},
		[]provider.FallbackBackend{&fakeFallback{
			name: "europepmc",
			p: types.PartialAuthor{
				PaperCount:    intp(15),
				FieldsOfStudy: []string{"Artificial Intelligence"},
				Sources:       []string{"europepmc"},
			},
		}},
	)
	r.semanticDetails = details
	r.orcidRecords = records

	p, err := r.Resolve(context.Background(), types.AuthorQuery{Name: "Ada Example"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if p.AuthorID != "123" {
		t.Errorf("AuthorID = %q, want 123", p.AuthorID)
	}
	if details.gotID != "123" {
		t.Errorf("detail lookup got %q, want 123", details.gotID)
	}
	if records.gotID != "0000-0001-2345-6789" {
		t.Errorf("record lookup got %q, want bare iD", records.gotID)
	}
	if p.ORCID != "0000-0001-2345-6789" {
		t.Errorf("ORCID = %q, want bare form", p.ORCID)
	}
	// Conflicting counts take the max, not the sum.
	if p.PaperCount != 15 {
		t.Errorf("PaperCount = %d, want 15", p.PaperCount)
	}
	if p.HIndex == nil || *p.HIndex != 12 {
		t.Errorf("HIndex = %v, want 12 from detail lookup", p.HIndex)
	}
	if len(p.FieldsOfStudy) != 1 || p.FieldsOfStudy[0] != "Artificial Intelligence" {
		t.Errorf("FieldsOfStudy = %v", p.FieldsOfStudy)
	}
	if len(p.Affiliations) != 1 || p.Affiliations[0].InstitutionName != "Example University" {
		t.Errorf("Affiliations = %+v", p.Affiliations)
	}

	wantSources := []string{"semantic_scholar", "europepmc", "orcid"}
	if len(p.Sources) != len(wantSources) {
		t.Fatalf("Sources = %v, want %v", p.Sources, wantSources)
	}
	for i, s := range wantSources {
		if p.Sources[i] != s {
			t.Errorf("Sources[%d] = %q, want %q", i, p.Sources[i], s)
		}
	}

	// One authoritative source, papers, ORCID and h-index present:
	// 0.3 + 0.2 + 0.1 + 0.1.
	if p.ConfidenceScore != 0.7 {
		t.Errorf("ConfidenceScore = %v, want 0.7", p.ConfidenceScore)
	}
}

func TestResolveProfilePriorityOrder(t *testing.T) {
	r := testResolver(
		[]provider.ProfileBackend{
			&fakeProfile{name: "semantic_scholar", p: types.PartialAuthor{
				AuthorID: "123", Sources: []string{"semantic_scholar"},
			}},
			&fakeProfile{name: "openalex", p: types.PartialAuthor{
				AuthorID: "https://openalex.org/A5023888391", Sources: []string{"openalex"},
			}},
		},
		nil,
	)

	p, err := r.Resolve(context.Background(), types.AuthorQuery{Name: "Ada Example"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.AuthorID != "123" {
		t.Errorf("AuthorID = %q, want first-priority source to win", p.AuthorID)
	}
}

func TestResolveOpenAlexEnrichment(t *testing.T) {
	details := &fakeDetails{
		p: types.PartialAuthor{
			AuthorID:      "A5023888391",
			CitationCount: intp(900),
			Sources:       []string{"openalex"},
		},
	}
	r := testResolver(
		[]provider.ProfileBackend{&fakeProfile{name: "openalex", p: types.PartialAuthor{
			AuthorID: "https://openalex.org/A5023888391",
			Sources:  []string{"openalex"},
		}}},
		nil,
	)
	r.openalexDetails = details

	p, err := r.Resolve(context.Background(), types.AuthorQuery{Name: "Ada Example"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if details.gotID != "A5023888391" {
		t.Errorf("detail lookup got %q, want bare OpenAlex ID", details.gotID)
	}
	if p.AuthorID != "A5023888391" {
		t.Errorf("AuthorID = %q, want normalized bare form", p.AuthorID)
	}
	if p.CitationCount != 900 {
		t.Errorf("CitationCount = %d, want 900 from detail lookup", p.CitationCount)
	}
}

func TestResolveProviderFailureDegrades(t *testing.T) {
	boom := errors.New("upstream down")
	r := testResolver(
		[]provider.ProfileBackend{
			&fakeProfile{name: "semantic_scholar", err: boom},
			&fakeProfile{name: "openalex", p: types.PartialAuthor{
				AuthorID: "A5023888391",
				Sources:  []string{"openalex"},
			}},
		},
		[]provider.FallbackBackend{
			&fakeFallback{name: "pubmed", err: boom},
		},
	)

	p, err := r.Resolve(context.Background(), types.AuthorQuery{Name: "Ada Example"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.AuthorID != "A5023888391" {
		t.Errorf("AuthorID = %q, want surviving source's ID", p.AuthorID)
	}
	if len(p.Sources) != 1 || p.Sources[0] != "openalex" {
		t.Errorf("Sources = %v, want only the surviving source", p.Sources)
	}
}

func TestResolveEnrichmentFailureDegrades(t *testing.T) {
	r := testResolver(
		[]provider.ProfileBackend{&fakeProfile{name: "semantic_scholar", p: types.PartialAuthor{
			AuthorID:   "123",
			PaperCount: intp(10),
			Sources:    []string{"semantic_scholar"},
		}}},
		nil,
	)
	r.semanticDetails = &fakeDetails{err: errors.New("rate limited")}

	p, err := r.Resolve(context.Background(), types.AuthorQuery{Name: "Ada Example"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.AuthorID != "123" || p.PaperCount != 10 {
		t.Errorf("profile = %+v, want first-pass data intact", p)
	}
}
