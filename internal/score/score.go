// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score derives a confidence estimate for a merged author profile.
// The score is a bounded heuristic over which sources contributed and
// which key fields are populated. It is not a calibrated probability.
package score

import (
	"math"

	"github.com/pdiddy/scholar-resolve/pkg/types"
)

// authoritativeSources are the providers whose profile-style endpoints
// count as strong identity signals. Paper-fallback contributions from the
// same tag still count, since the tag means the provider knew the author.
var authoritativeSources = map[string]bool{
	"semantic_scholar": true,
	"openalex":         true,
	"dblp":             true,
}

// Weights for each score term. Authoritative sources contribute 0.3 each,
// capped at two, so a single-source match can never reach high confidence
// on source count alone.
const (
	perSourceWeight   = 0.3
	maxCountedSources = 2
	paperCountWeight  = 0.2
	citationWeight    = 0.2
	orcidWeight       = 0.1
	hIndexWeight      = 0.1
)

// Confidence returns a score in [0, 1] for the profile, rounded to two
// decimal places. Counts and h-index contribute only when non-zero.
func Confidence(p types.AuthorProfile) float64 {
	counted := 0
	for _, src := range p.Sources {
		if authoritativeSources[src] {
			counted++
		}
	}
	if counted > maxCountedSources {
		counted = maxCountedSources
	}

	s := perSourceWeight * float64(counted)
	if p.PaperCount > 0 {
		s += paperCountWeight
	}
	if p.CitationCount > 0 {
		s += citationWeight
	}
	if p.ORCID != "" {
		s += orcidWeight
	}
	if p.HIndex != nil && *p.HIndex > 0 {
		s += hIndexWeight
	}

	return math.Round(math.Min(s, 1.0)*100) / 100
}
