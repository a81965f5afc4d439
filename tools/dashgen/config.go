package main

import "errors"

// KnownMetrics is the set of metric names exported by devlog plus recording
// rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"devlog_http_request_duration_seconds": true,
	"devlog_http_requests_total":           true,

	// Health metrics.
	"devlog_healthz_up": true,
	"devlog_readyz_up":  true,

	// Listing metrics.
	"devlog_listing_requests_total":     true,
	"devlog_listing_store_errors_total": true,
	"devlog_listing_results":            true,

	// Authoring metrics.
	"devlog_posts_published_total": true,
	"devlog_logins_total":          true,
	"devlog_drafts_purged_total":   true,

	// Recording rules.
	"devlog:http_requests:rate5m":        true,
	"devlog:http_errors:rate5m":          true,
	"devlog:listing_requests:rate5m":     true,
	"devlog:listing_store_errors:rate5m": true,
	"devlog:login_failures:rate5m":       true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
	// PlainRules writes standalone rule files instead of PrometheusRule CRs.
	PlainRules bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
