package main

import "errors"

// KnownMetrics is the set of metric names exported by offer-tracker plus the
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"ot_http_request_duration_seconds": true,
	"ot_http_requests_total":           true,

	// Health metrics.
	"ot_healthz_up": true,
	"ot_readyz_up":  true,

	// Tick metrics.
	"ot_tick_duration_seconds":                 true,
	"ot_ticks_total":                           true,
	"ot_offer_active":                          true,
	"ot_last_tick_timestamp_seconds":           true,
	"ot_scheduler_next_tick_timestamp_seconds": true,

	// Catalog metrics.
	"ot_catalog_pages_total":              true,
	"ot_catalog_errors_total":             true,
	"ot_catalog_request_duration_seconds": true,

	// Notification metrics.
	"ot_notifications_sent_total":      true,
	"ot_notification_failures_total":   true,
	"ot_notification_duration_seconds": true,

	// State metrics.
	"ot_state_resets_total": true,
	"ot_state_errors_total": true,

	// Recording rules.
	"ot:http_requests:rate5m":         true,
	"ot:http_errors:rate5m":           true,
	"ot:ticks:rate5m":                 true,
	"ot:catalog_errors:rate5m":        true,
	"ot:notification_failures:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into
// ../../deploy (relative to tools/dashgen/).
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
