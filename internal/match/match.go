// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match picks the best-matching author candidate from a provider's
// search results. Matching is deterministic and heuristic: exact
// normalized-name match first, substring overlap second, first candidate
// as a weak last resort. Callers must treat a match as evidence, not
// proof; the scoring layer never trusts a single source alone.
package match

import "strings"

// Normalize lowercases a name, strips periods, and trims surrounding
// whitespace so "Jane Q. Public" and "jane q public" compare equal.
func Normalize(name string) string {
	return strings.TrimSpace(strings.ToLower(strings.ReplaceAll(name, ".", "")))
}

// PickBest returns the index of the best-matching candidate, or -1 when
// nameSets is empty. Each element of nameSets holds every name string the
// provider exposes for that candidate (primary name plus aliases).
//
// The first candidate with an exact normalized match wins immediately,
// in list order. Failing that, the first candidate with a substring
// overlap (either direction) wins; an exact match later in the list still
// beats an earlier substring match because the scan continues until one
// is found. When nothing overlaps, index 0 is returned as a weak default.
func PickBest(target string, nameSets [][]string) int {
	if len(nameSets) == 0 {
		return -1
	}

	t := Normalize(target)
	substringIdx := -1

	for i, names := range nameSets {
		for _, name := range names {
			if name == "" {
				continue
			}
			n := Normalize(name)
			if n == t {
				return i
			}
			if substringIdx < 0 && (strings.Contains(n, t) || strings.Contains(t, n)) {
				substringIdx = i
			}
		}
	}

	if substringIdx >= 0 {
		return substringIdx
	}
	return 0
}
