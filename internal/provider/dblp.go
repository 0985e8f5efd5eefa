// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/scholar-resolve/internal/match"
	"github.com/pdiddy/scholar-resolve/pkg/types"
)

// DBLP endpoints. Declared as vars so tests can substitute httptest
// servers.
var (
	dblpAuthorSearchBase = "https://dblp.org/search/author/api"
	dblpPublSearchBase   = "https://dblp.org/search/publ/api"
)

// DBLPBackend queries the DBLP search API. DBLP has no metrics; its
// profile contribution is the author pid and homepage URL, its fallback
// contribution a bare publication count.
type DBLPBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *DBLPBackend) Name() string { return SourceDBLP }

// SearchProfile queries the author search endpoint and returns the
// best-matching candidate as a partial record.
func (b *DBLPBackend) SearchProfile(ctx context.Context, name string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	params := url.Values{
		"q":      {name},
		"format": {"json"},
		"h":      {fmt.Sprintf("%d", candidateLimit(cfg))},
	}

	var dr dblpAuthorResponse
	if err := fetchJSON(ctx, b.Client, dblpAuthorSearchBase+"?"+params.Encode(), cfg.HTTPConfig, nil, false, &dr); err != nil {
		return types.PartialAuthor{}, fmt.Errorf("dblp author search: %w", err)
	}
	hits := dr.Result.Hits.Hit
	if len(hits) == 0 {
		return types.PartialAuthor{}, nil
	}

	nameSets := make([][]string, len(hits))
	for i, h := range hits {
		nameSets[i] = append([]string{string(h.Info.Author)}, h.Info.Aliases...)
	}
	best := hits[match.PickBest(name, nameSets)].Info

	return types.PartialAuthor{
		Name:        string(best.Author),
		AuthorID:    best.pid(),
		HomepageURL: best.URL,
		Sources:     []string{SourceDBLP},
	}, nil
}

// SearchPapers counts publications matching the author name. DBLP's
// publication search carries no per-paper citation data.
func (b *DBLPBackend) SearchPapers(ctx context.Context, name string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	params := url.Values{
		"q":      {name},
		"format": {"json"},
		"h":      {fmt.Sprintf("%d", paperLimit(cfg))},
	}

	var dr dblpPublResponse
	if err := fetchJSON(ctx, b.Client, dblpPublSearchBase+"?"+params.Encode(), cfg.HTTPConfig, nil, false, &dr); err != nil {
		return types.PartialAuthor{}, fmt.Errorf("dblp publication search: %w", err)
	}
	count := len(dr.Result.Hits.Hit)
	if count == 0 {
		return types.PartialAuthor{}, nil
	}

	return types.PartialAuthor{
		Name:       name,
		PaperCount: &count,
		Sources:    []string{SourceDBLP},
	}, nil
}

// DBLP API JSON structures. The hits container is shared between the
// author and publication search responses.
type dblpAuthorResponse struct {
	Result struct {
		Hits struct {
			Hit []dblpAuthorHit `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

type dblpAuthorHit struct {
	Info dblpAuthorInfo `json:"info"`
}

type dblpAuthorInfo struct {
	Author  dblpName    `json:"author"`
	Aliases dblpAliases `json:"aliases"`
	URL     string      `json:"url"`
	PID     string      `json:"@pid"`
}

// pid returns the author identifier, falling back to the trailing
// segments of the profile URL ("https://dblp.org/pid/h/GraceHopper").
func (i dblpAuthorInfo) pid() string {
	if i.PID != "" {
		return i.PID
	}
	const marker = "/pid/"
	if idx := strings.Index(i.URL, marker); idx >= 0 {
		return i.URL[idx+len(marker):]
	}
	return ""
}

// dblpName tolerates DBLP returning an author as either a bare string or
// an object with a "text" member (used when names carry disambiguation).
type dblpName string

func (n *dblpName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = dblpName(s)
		return nil
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*n = dblpName(obj.Text)
	return nil
}

// dblpAliases tolerates every shape DBLP's XML-derived JSON uses for
// alias lists: a bare array, a bare string, or an object whose "alias"
// member is a string, an object, or an array of either.
type dblpAliases []string

func (a *dblpAliases) UnmarshalJSON(data []byte) error {
	// Unwrap the {"alias": ...} container first; a plain dblpName decode
	// on the container would otherwise swallow it as an empty name.
	var obj struct {
		Alias json.RawMessage `json:"alias"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && len(obj.Alias) > 0 {
		data = obj.Alias
	}

	var one dblpName
	if err := json.Unmarshal(data, &one); err == nil {
		*a = appendName(nil, one)
		return nil
	}
	var many []dblpName
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	var names []string
	for _, n := range many {
		names = appendName(names, n)
	}
	*a = names
	return nil
}

func appendName(names []string, n dblpName) []string {
	if n == "" {
		return names
	}
	return append(names, string(n))
}

type dblpPublResponse struct {
	Result struct {
		Hits struct {
			Hit []struct {
				Info struct {
					Title string `json:"title"`
				} `json:"info"`
			} `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}
