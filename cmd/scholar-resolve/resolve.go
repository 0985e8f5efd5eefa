// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-resolve/internal/resolve"
	"github.com/pdiddy/scholar-resolve/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [author name]",
	Short: "Resolve one author identity across bibliographic sources",
	Long: `Resolve queries every configured source for the given author name,
merges the matching candidates into a single profile, runs identifier-based
enrichment lookups, and prints the consolidated record with its confidence
score.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("institution", "", "institution hint for disambiguation")
	resolveCmd.Flags().String("field", "", "field-of-study hint for disambiguation")
	resolveCmd.Flags().Duration("timeout", 0, "per-request HTTP timeout (default 20s)")
	resolveCmd.Flags().Int("candidate-limit", 0, "candidates requested per author search (default 5)")
	resolveCmd.Flags().Int("paper-limit", 0, "papers requested per fallback search (default 50)")
	resolveCmd.Flags().String("format", "table", "output format: table, json, or yaml")
	resolveCmd.Flags().Bool("verbose", false, "log per-provider progress to stderr")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	institution, _ := cmd.Flags().GetString("institution")
	field, _ := cmd.Flags().GetString("field")
	format, _ := cmd.Flags().GetString("format")
	verbose, _ := cmd.Flags().GetBool("verbose")

	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want table, json, or yaml)", format)
	}

	cfg := resolveConfigFromFlags(cmd)

	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	r := resolve.New(cfg, logger)
	profile, err := r.Resolve(cmd.Context(), types.AuthorQuery{
		Name:         name,
		Institution:  institution,
		FieldOfStudy: field,
	})
	if err != nil {
		return err
	}

	return writeProfile(os.Stdout, profile, format)
}

// resolveConfigFromFlags builds the engine config with flags winning over
// viper config, which wins over the secrets directory.
func resolveConfigFromFlags(cmd *cobra.Command) types.ResolveConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	candidateLimit, _ := cmd.Flags().GetInt("candidate-limit")
	paperLimit, _ := cmd.Flags().GetInt("paper-limit")

	return types.ResolveConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout: timeout,
		},
		CandidateLimit:        candidateLimit,
		PaperLimit:            paperLimit,
		SemanticScholarAPIKey: loadedSecrets.Get("semantic-scholar-api-key", viper.GetString("semantic_scholar_api_key")),
		OpenAlexEmail:         loadedSecrets.Get("openalex-email", viper.GetString("openalex_email")),
	}
}

func writeProfile(w *os.File, profile types.AuthorProfile, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(profile); err != nil {
			return err
		}
		return enc.Close()
	default:
		printProfileTable(w, profile)
		return nil
	}
}

func printProfileTable(w *os.File, p types.AuthorProfile) {
	fmt.Fprintf(w, "Name:             %s\n", p.Name)
	if p.AuthorID != "" {
		fmt.Fprintf(w, "Author ID:        %s\n", p.AuthorID)
	}
	if p.ORCID != "" {
		fmt.Fprintf(w, "ORCID:            %s\n", p.ORCID)
	}
	if p.HomepageURL != "" {
		fmt.Fprintf(w, "Homepage:         %s\n", p.HomepageURL)
	}
	fmt.Fprintf(w, "Papers:           %d\n", p.PaperCount)
	fmt.Fprintf(w, "Citations:        %d\n", p.CitationCount)
	if p.HIndex != nil {
		fmt.Fprintf(w, "h-index:          %d\n", *p.HIndex)
	}
	if len(p.FieldsOfStudy) > 0 {
		fmt.Fprintf(w, "Fields:           %s\n", strings.Join(p.FieldsOfStudy, ", "))
	}
	for i, a := range p.Affiliations {
		label := "Affiliations:    "
		if i > 0 {
			label = strings.Repeat(" ", len(label))
		}
		line := a.InstitutionName
		if a.Country != "" {
			line += " (" + a.Country + ")"
		}
		if a.StartDate != "" {
			line += " " + yearOf(a.StartDate) + "-" + yearOf(a.EndDate)
		}
		fmt.Fprintf(w, "%s %s\n", label, line)
	}
	fmt.Fprintf(w, "Sources:          %s\n", strings.Join(p.Sources, ", "))
	fmt.Fprintf(w, "Confidence:       %.2f\n", p.ConfidenceScore)
	fmt.Fprintf(w, "Last updated:     %s\n", p.LastUpdated.Format(time.RFC3339))
}

// yearOf trims a year-precision ISO date down to the year, leaving
// "present" for an open end date.
func yearOf(date string) string {
	if date == "" {
		return "present"
	}
	if idx := strings.Index(date, "-"); idx > 0 {
		return date[:idx]
	}
	return date
}
