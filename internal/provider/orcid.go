// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/scholar-resolve/pkg/types"
)

// orcidRecordBase is the ORCID public API record endpoint. Declared as a
// var so tests can substitute an httptest server.
var orcidRecordBase = "https://pub.orcid.org/v3.0"

// ORCIDBackend fetches public identity records from the ORCID registry.
// It participates only in enrichment: once a merge surfaces an ORCID, the
// record's employment history becomes affiliations.
type ORCIDBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *ORCIDBackend) Name() string { return SourceORCID }

// Record fetches the public record for a bare ORCID iD and extracts the
// employment history. Only entries that resolved an institution name are
// kept; dates are year precision.
func (b *ORCIDBackend) Record(ctx context.Context, orcidID string, cfg types.ResolveConfig) (types.PartialAuthor, error) {
	reqURL := fmt.Sprintf("%s/%s/record", orcidRecordBase, url.PathEscape(orcidID))
	header := http.Header{}
	header.Set("Accept", "application/json")

	var rec orcidRecord
	if err := fetchJSON(ctx, b.Client, reqURL, cfg.HTTPConfig, header, false, &rec); err != nil {
		return types.PartialAuthor{}, fmt.Errorf("orcid record: %w", err)
	}

	var affs []types.Affiliation
	for _, group := range rec.ActivitiesSummary.Employments.AffiliationGroup {
		for _, s := range group.Summaries {
			emp := s.EmploymentSummary
			if emp.Organization.Name == "" {
				continue
			}
			affs = append(affs, types.Affiliation{
				InstitutionName: emp.Organization.Name,
				Country:         emp.Organization.Address.Country,
				StartDate:       yearDate(emp.StartDate),
				EndDate:         yearDate(emp.EndDate),
			})
		}
	}

	return types.PartialAuthor{
		ORCID:        orcidID,
		Affiliations: affs,
		Sources:      []string{SourceORCID},
	}, nil
}

// yearDate renders an ORCID fuzzy date at year precision ("2019-01-01"),
// or "" when no year is present.
func yearDate(d *orcidDate) string {
	if d == nil || d.Year.Value == "" {
		return ""
	}
	return d.Year.Value + "-01-01"
}

// ORCID public API JSON structures. The record nests employment summaries
// several levels deep under activities-summary.
type orcidRecord struct {
	ActivitiesSummary struct {
		Employments struct {
			AffiliationGroup []struct {
				Summaries []struct {
					EmploymentSummary orcidEmployment `json:"employment-summary"`
				} `json:"summaries"`
			} `json:"affiliation-group"`
		} `json:"employments"`
	} `json:"activities-summary"`
}

type orcidEmployment struct {
	Organization struct {
		Name    string `json:"name"`
		Address struct {
			Country string `json:"country"`
		} `json:"address"`
	} `json:"organization"`
	StartDate *orcidDate `json:"start-date"`
	EndDate   *orcidDate `json:"end-date"`
}

type orcidDate struct {
	Year struct {
		Value string `json:"value"`
	} `json:"year"`
}
