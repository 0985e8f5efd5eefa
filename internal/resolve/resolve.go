// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve orchestrates author identity resolution: concurrent
// fan-out to every provider, a priority-ordered merge of the partial
// records, identifier-triggered enrichment lookups, and a final
// normalize-and-score pass. Every provider failure degrades to an empty
// contribution; only caller input errors surface from Resolve.
package resolve

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/scholar-resolve/internal/identifier"
	"github.com/pdiddy/scholar-resolve/internal/merge"
	"github.com/pdiddy/scholar-resolve/internal/provider"
	"github.com/pdiddy/scholar-resolve/internal/score"
	"github.com/pdiddy/scholar-resolve/pkg/types"
)

// ErrEmptyName rejects a resolution query without a name before any
// provider call is issued.
var ErrEmptyName = errors.New("author name must not be empty")

const (
	defaultTimeout   = 20 * time.Second
	defaultUserAgent = "scholar-resolve/0.1"
)

// detailLookup fetches a full author record by provider-native ID.
type detailLookup interface {
	AuthorDetails(ctx context.Context, authorID string, cfg types.ResolveConfig) (types.PartialAuthor, error)
}

// recordLookup fetches an identity-registry record by bare ORCID iD.
type recordLookup interface {
	Record(ctx context.Context, orcidID string, cfg types.ResolveConfig) (types.PartialAuthor, error)
}

// Resolver drives the resolution pipeline. Construct one with New and
// share it across requests; it holds no per-call state.
type Resolver struct {
	// profileOrder and fallbackOrder fix the merge priority: the
	// concatenated fan-out results are merged profile batch first, then
	// fallback batch, in exactly this order regardless of which call
	// finishes first. Profile sources come first because their
	// identifiers are the most trustworthy.
	profileOrder  []provider.ProfileBackend
	fallbackOrder []provider.FallbackBackend

	semanticDetails detailLookup
	openalexDetails detailLookup
	orcidRecords    recordLookup

	cfg    types.ResolveConfig
	logger *slog.Logger
}

// New constructs a Resolver wired to the real provider endpoints.
// Zero-valued config fields get defaults (20 s per-call timeout). A nil
// logger falls back to slog.Default.
func New(cfg types.ResolveConfig, logger *slog.Logger) *Resolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}

	// One client for all providers; its Timeout bounds each call
	// independently.
	client := &http.Client{Timeout: cfg.Timeout}

	semantic := &provider.SemanticScholarBackend{Client: client, APIKey: cfg.SemanticScholarAPIKey}
	openalex := &provider.OpenAlexBackend{Client: client, Email: cfg.OpenAlexEmail}
	dblp := &provider.DBLPBackend{Client: client}

	return &Resolver{
		profileOrder: []provider.ProfileBackend{
			semantic, openalex, dblp,
		},
		fallbackOrder: []provider.FallbackBackend{
			semantic, openalex, dblp,
			&provider.EuropePMCBackend{Client: client},
			&provider.PubMedBackend{Client: client},
		},
		semanticDetails: semantic,
		openalexDetails: openalex,
		orcidRecords:    &provider.ORCIDBackend{Client: client},
		cfg:             cfg,
		logger:          logger,
	}
}

// Resolve consolidates everything the providers know about the queried
// name into one profile. The pipeline runs fan-out, primary merge,
// enrichment, then normalize and score. A profile with no sources and
// zero counts means nothing was found; acting on that is the caller's
// policy, not the engine's.
func (r *Resolver) Resolve(ctx context.Context, q types.AuthorQuery) (types.AuthorProfile, error) {
	name := strings.TrimSpace(q.Name)
	if name == "" {
		return types.AuthorProfile{}, ErrEmptyName
	}

	merged := merge.Merge(name, r.fanOut(ctx, name))
	merged = r.enrich(ctx, name, merged)

	merged = identifier.Normalize(merged)
	merged.ConfidenceScore = score.Confidence(merged)
	return merged, nil
}

// fanOut issues the profile batch and the fallback batch concurrently
// and collects results into fixed slots, so the returned slice is always
// in canonical source-priority order no matter which call completes
// first. A failed call leaves its slot empty.
func (r *Resolver) fanOut(ctx context.Context, name string) []types.PartialAuthor {
	profiles := make([]types.PartialAuthor, len(r.profileOrder))
	fallbacks := make([]types.PartialAuthor, len(r.fallbackOrder))

	var g errgroup.Group
	for i, b := range r.profileOrder {
		i, b := i, b
		g.Go(func() error {
			p, err := b.SearchProfile(ctx, name, r.cfg)
			if err != nil {
				r.logger.Warn("author profile search failed",
					"source", b.Name(), "error", err)
				return nil
			}
			profiles[i] = p
			return nil
		})
	}
	for i, b := range r.fallbackOrder {
		i, b := i, b
		g.Go(func() error {
			p, err := b.SearchPapers(ctx, name, r.cfg)
			if err != nil {
				r.logger.Warn("paper fallback search failed",
					"source", b.Name(), "error", err)
				return nil
			}
			fallbacks[i] = p
			return nil
		})
	}
	// Closures never return an error; failures degrade to empty slots.
	_ = g.Wait()

	return append(profiles, fallbacks...)
}

// enrich runs the identifier-triggered secondary lookups in sequence.
// Each stage folds its result back with the existing profile listed
// first, so established identifiers survive and only empty fields fill
// in. Any stage failure degrades to no additional data.
func (r *Resolver) enrich(ctx context.Context, name string, merged types.AuthorProfile) types.AuthorProfile {
	// Numeric author ID: Semantic Scholar detail lookup fills h-index
	// and counts the search endpoint may have omitted.
	if kind, id := identifier.Classify(merged.AuthorID); kind == identifier.KindNumeric {
		if detail, err := r.semanticDetails.AuthorDetails(ctx, id, r.cfg); err != nil {
			r.logger.Warn("semantic scholar detail lookup failed", "author_id", id, "error", err)
		} else if !detail.IsEmpty() {
			merged = merge.Merge(name, []types.PartialAuthor{merged.Partial(), detail})
		}
	}

	// OpenAlex-shaped author ID: detail lookup adds concepts and any
	// profile fields the first pass left empty.
	if kind, id := identifier.Classify(merged.AuthorID); kind == identifier.KindOpenAlex {
		if detail, err := r.openalexDetails.AuthorDetails(ctx, id, r.cfg); err != nil {
			r.logger.Warn("openalex detail lookup failed", "author_id", id, "error", err)
		} else if !detail.IsEmpty() {
			merged = merge.Merge(name, []types.PartialAuthor{merged.Partial(), detail})
		}
	}

	// ORCID present: the public registry record contributes employment
	// history as affiliations.
	if merged.ORCID != "" {
		id := identifier.Bare(merged.ORCID)
		if record, err := r.orcidRecords.Record(ctx, id, r.cfg); err != nil {
			r.logger.Warn("orcid record lookup failed", "orcid", id, "error", err)
		} else if !record.IsEmpty() {
			merged = merge.Merge(name, []types.PartialAuthor{merged.Partial(), record})
		}
	}

	return merged
}
