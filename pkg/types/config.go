// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout. Each outbound provider
	// call is bounded independently.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-resolve/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ResolveConfig holds settings for the resolution engine.
type ResolveConfig struct {
	HTTPConfig `yaml:",inline"`

	// CandidateLimit is the number of candidates requested from
	// profile-style author search endpoints (default 5).
	CandidateLimit int `json:"candidate_limit" yaml:"candidate_limit"`

	// PaperLimit is the number of papers requested from paper-fallback
	// search endpoints (default 50).
	PaperLimit int `json:"paper_limit" yaml:"paper_limit"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty"`
}

// ServerConfig holds settings for the HTTP request layer.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// ReadTimeout and WriteTimeout bound request handling. WriteTimeout
	// must cover the slowest resolve chain: two fan-out batches plus
	// three sequential enrichment calls.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// Config groups all stage configurations.
type Config struct {
	Resolve ResolveConfig `json:"resolve" yaml:"resolve"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}
