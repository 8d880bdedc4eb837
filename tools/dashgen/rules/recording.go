package rules

// RecordingRules returns the pre-computed rates used by the dashboard and
// the alert rules.
func RecordingRules() PrometheusRule {
	return newRule("ot-recording-rules", RuleGroup{
		Name:     "ot-recording",
		Interval: "1m",
		Rules: []Rule{
			{
				Record: "ot:http_requests:rate5m",
				Expr:   `sum(rate(ot_http_requests_total[5m]))`,
			},
			{
				Record: "ot:http_errors:rate5m",
				Expr:   `sum(rate(ot_http_requests_total{status=~"5.."}[5m]))`,
			},
			{
				Record: "ot:ticks:rate5m",
				Expr:   `sum by (outcome) (rate(ot_ticks_total[5m]))`,
			},
			{
				Record: "ot:catalog_errors:rate5m",
				Expr:   `sum by (kind) (rate(ot_catalog_errors_total[5m]))`,
			},
			{
				Record: "ot:notification_failures:rate5m",
				Expr:   `rate(ot_notification_failures_total[5m])`,
			},
		},
	})
}
