// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-resolve
// pipeline: the resolution query, the per-provider partial record, and the
// consolidated author profile.
package types

import "time"

// AuthorQuery holds the input to a resolution call. Name is required;
// the remaining fields are optional hints passed through to providers.
type AuthorQuery struct {
	Name         string `json:"name" yaml:"name"`
	Institution  string `json:"institution,omitempty" yaml:"institution,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty" yaml:"field_of_study,omitempty"`
	Email        string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Affiliation represents one institutional affiliation of an author.
// InstitutionName anchors deduplication; dates are year-precision ISO
// strings ("2019-01-01") when a source supplies only a year.
type Affiliation struct {
	InstitutionID   string `json:"institution_id,omitempty" yaml:"institution_id,omitempty"`
	InstitutionName string `json:"institution_name,omitempty" yaml:"institution_name,omitempty"`
	Country         string `json:"country,omitempty" yaml:"country,omitempty"`
	StartDate       string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate         string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

// Key returns the dedup key for the affiliation. Missing components are
// treated as empty strings, so two records that agree on the triple are
// duplicates regardless of dates.
func (a Affiliation) Key() [3]string {
	return [3]string{a.InstitutionID, a.InstitutionName, a.Country}
}

// PartialAuthor is the subset of an author's profile one provider call can
// supply. Integer fields use pointers so the merge layer can distinguish
// "not supplied" from a genuine zero. A non-empty partial always carries
// the tag of the provider that produced it in Sources.
type PartialAuthor struct {
	// Name is the candidate name as returned by the provider. Used only
	// for matching; the merged profile keeps the query name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// AuthorID is the provider-native identifier (numeric Semantic
	// Scholar ID, OpenAlex URL or A-prefixed ID, DBLP pid).
	AuthorID string `json:"author_id,omitempty" yaml:"author_id,omitempty"`

	ORCID           string        `json:"orcid,omitempty" yaml:"orcid,omitempty"`
	Affiliations    []Affiliation `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
	HomepageURL     string        `json:"homepage_url,omitempty" yaml:"homepage_url,omitempty"`
	Email           string        `json:"email,omitempty" yaml:"email,omitempty"`
	HIndex          *int          `json:"h_index,omitempty" yaml:"h_index,omitempty"`
	PaperCount      *int          `json:"paper_count,omitempty" yaml:"paper_count,omitempty"`
	CitationCount   *int          `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`
	FieldsOfStudy   []string      `json:"fields_of_study,omitempty" yaml:"fields_of_study,omitempty"`
	ProfileImageURL string        `json:"profile_image_url,omitempty" yaml:"profile_image_url,omitempty"`

	// Sources holds the tag of the provider that produced this record.
	Sources []string `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// IsEmpty reports whether the partial carries no contribution. Failed or
// empty provider calls produce empty partials, which the merge skips.
func (p PartialAuthor) IsEmpty() bool {
	return len(p.Sources) == 0
}

// AuthorProfile is the consolidated record returned by a resolution call.
// PaperCount and CitationCount are the maximum across contributing
// sources, never a sum, so folding in more partials never decreases them.
type AuthorProfile struct {
	Name            string        `json:"name" yaml:"name"`
	AuthorID        string        `json:"author_id,omitempty" yaml:"author_id,omitempty"`
	ORCID           string        `json:"orcid,omitempty" yaml:"orcid,omitempty"`
	Affiliations    []Affiliation `json:"affiliations" yaml:"affiliations"`
	HomepageURL     string        `json:"homepage_url,omitempty" yaml:"homepage_url,omitempty"`
	Email           string        `json:"email,omitempty" yaml:"email,omitempty"`
	HIndex          *int          `json:"h_index,omitempty" yaml:"h_index,omitempty"`
	PaperCount      int           `json:"paper_count" yaml:"paper_count"`
	CitationCount   int           `json:"citation_count" yaml:"citation_count"`
	FieldsOfStudy   []string      `json:"fields_of_study" yaml:"fields_of_study"`
	ProfileImageURL string        `json:"profile_image_url,omitempty" yaml:"profile_image_url,omitempty"`

	// LastUpdated is the completion time of the merge that produced
	// this profile.
	LastUpdated time.Time `json:"last_updated" yaml:"last_updated"`

	// Sources lists every provider tag that contributed, each at most once.
	Sources []string `json:"sources" yaml:"sources"`

	// ConfidenceScore is a heuristic in [0, 1] derived from contributing
	// sources and populated key fields. Not a calibrated probability.
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`
}

// Partial converts the profile back into a partial record so enrichment
// rounds can fold it through the merge ahead of newly fetched data.
// Counts transfer as supplied values; a zero count cannot lower the merge
// result since counts are combined by maximum.
func (p AuthorProfile) Partial() PartialAuthor {
	paperCount := p.PaperCount
	citationCount := p.CitationCount
	return PartialAuthor{
		Name:            p.Name,
		AuthorID:        p.AuthorID,
		ORCID:           p.ORCID,
		Affiliations:    p.Affiliations,
		HomepageURL:     p.HomepageURL,
		Email:           p.Email,
		HIndex:          p.HIndex,
		PaperCount:      &paperCount,
		CitationCount:   &citationCount,
		FieldsOfStudy:   p.FieldsOfStudy,
		ProfileImageURL: p.ProfileImageURL,
		Sources:         p.Sources,
	}
}
