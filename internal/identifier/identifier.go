// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identifier classifies author identifier shapes and normalizes
// the identifiers on a merged profile. Classification decides which
// secondary enrichment lookup owns an identifier; normalization strips
// registry URL prefixes so the final profile carries bare identifiers.
package identifier

import (
	"regexp"
	"strings"

	"github.com/pdiddy/scholar-resolve/pkg/types"
)

// Kind classifies an author identifier shape.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNumeric is an all-digits ID (Semantic Scholar author IDs).
	KindNumeric
	// KindOpenAlex is an openalex.org URL or a bare "A"+digits ID.
	KindOpenAlex
	// KindORCID is a bare ORCID or an orcid.org URL.
	KindORCID
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindOpenAlex:
		return "openalex"
	case KindORCID:
		return "orcid"
	default:
		return "unknown"
	}
}

// numericPattern matches Semantic Scholar author IDs: "2262347".
var numericPattern = regexp.MustCompile(`^\d+$`)

// openAlexPattern matches bare OpenAlex author IDs: "A5023888391".
var openAlexPattern = regexp.MustCompile(`^A\d+$`)

// orcidPattern matches bare ORCID iDs: "0000-0001-2345-6789".
var orcidPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)

// Classify determines the identifier shape and returns the normalized
// form. URL-shaped identifiers are reduced to their trailing path segment.
func Classify(id string) (Kind, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return KindUnknown, id
	}

	if numericPattern.MatchString(id) {
		return KindNumeric, id
	}

	if strings.Contains(id, "openalex.org") {
		return KindOpenAlex, trailingSegment(id)
	}
	if openAlexPattern.MatchString(id) {
		return KindOpenAlex, id
	}

	if strings.Contains(id, "orcid.org") {
		return KindORCID, trailingSegment(id)
	}
	if orcidPattern.MatchString(id) {
		return KindORCID, id
	}

	return KindUnknown, id
}

// Normalize returns a copy of the profile with identifiers reduced to
// their canonical bare form. Only AuthorID and ORCID are touched.
// Idempotent: a second pass finds nothing left to strip.
func Normalize(p types.AuthorProfile) types.AuthorProfile {
	if strings.Contains(p.AuthorID, "openalex.org/") {
		p.AuthorID = trailingSegment(p.AuthorID)
	}
	if strings.Contains(p.ORCID, "/") {
		p.ORCID = trailingSegment(p.ORCID)
	}
	return p
}

// Bare returns the substring after the last "/", or the input unchanged
// when it contains none. Registry identifiers often arrive as URLs; the
// bare form is what detail endpoints accept.
func Bare(s string) string {
	return trailingSegment(s)
}

func trailingSegment(s string) string {
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		return s[idx+1:]
	}
	return s
}
