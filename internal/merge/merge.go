// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge folds partial author records from multiple providers into
// one consolidated profile. The rules are field-specific: identifiers and
// URLs keep the first non-empty value in input order, counts take the
// maximum across all suppliers, and set-like fields union with
// deduplication. Input order is therefore load-bearing for identifiers:
// callers list sources in priority order.
package merge

import (
	"time"

	"github.com/pdiddy/scholar-resolve/pkg/types"
)

// Merge combines partial records left to right into a fresh profile.
// Empty partials are skipped entirely and can never blank out a field an
// earlier record filled. The profile name is always the query target;
// provider-returned names are matching input only and are not surfaced.
// Counts are computed as the max of collected values, so reordering the
// input cannot change the numeric outcome. The returned profile carries
// a fresh LastUpdated timestamp and a zero confidence score; scoring
// happens at finalization.
func Merge(targetName string, partials []types.PartialAuthor) types.AuthorProfile {
	merged := types.AuthorProfile{
		Name:          targetName,
		Affiliations:  []types.Affiliation{},
		FieldsOfStudy: []string{},
		Sources:       []string{},
		LastUpdated:   time.Now().UTC(),
	}

	var paperCounts, citationCounts, hIndices []int
	var affiliations []types.Affiliation
	seenField := make(map[string]bool)
	seenSource := make(map[string]bool)

	for _, p := range partials {
		if p.IsEmpty() {
			continue
		}

		for _, src := range p.Sources {
			if !seenSource[src] {
				seenSource[src] = true
				merged.Sources = append(merged.Sources, src)
			}
		}

		if p.PaperCount != nil {
			paperCounts = append(paperCounts, *p.PaperCount)
		}
		if p.CitationCount != nil {
			citationCounts = append(citationCounts, *p.CitationCount)
		}
		if p.HIndex != nil {
			hIndices = append(hIndices, *p.HIndex)
		}

		if merged.AuthorID == "" {
			merged.AuthorID = p.AuthorID
		}
		if merged.ORCID == "" {
			merged.ORCID = p.ORCID
		}
		if merged.HomepageURL == "" {
			merged.HomepageURL = p.HomepageURL
		}
		if merged.ProfileImageURL == "" {
			merged.ProfileImageURL = p.ProfileImageURL
		}
		if merged.Email == "" {
			merged.Email = p.Email
		}

		affiliations = append(affiliations, p.Affiliations...)

		for _, f := range p.FieldsOfStudy {
			if f != "" && !seenField[f] {
				seenField[f] = true
				merged.FieldsOfStudy = append(merged.FieldsOfStudy, f)
			}
		}
	}

	merged.PaperCount = maxOf(paperCounts)
	merged.CitationCount = maxOf(citationCounts)
	if len(hIndices) > 0 {
		h := maxOf(hIndices)
		merged.HIndex = &h
	}

	merged.Affiliations = dedupAffiliations(affiliations)

	return merged
}

// dedupAffiliations removes entries that repeat the
// (institution_id, institution_name, country) triple, keeping the first
// occurrence. Missing components compare as empty strings.
func dedupAffiliations(affs []types.Affiliation) []types.Affiliation {
	deduped := []types.Affiliation{}
	seen := make(map[[3]string]bool)
	for _, a := range affs {
		key := a.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, a)
	}
	return deduped
}

func maxOf(values []int) int {
	m := 0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
