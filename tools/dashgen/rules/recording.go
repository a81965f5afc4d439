package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "devlog-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "devlog-recording",
					Rules: []Rule{
						{
							Record: "devlog:http_requests:rate5m",
							Expr:   `sum(rate(devlog_http_requests_total[5m]))`,
						},
						{
							Record: "devlog:http_errors:rate5m",
							Expr:   `sum(rate(devlog_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "devlog:listing_requests:rate5m",
							Expr:   `sum(rate(devlog_listing_requests_total[5m]))`,
						},
						{
							Record: "devlog:listing_store_errors:rate5m",
							Expr:   `sum(rate(devlog_listing_store_errors_total[5m]))`,
						},
						{
							Record: "devlog:login_failures:rate5m",
							Expr:   `sum(rate(devlog_logins_total{result=~"failure|rate_limited"}[5m]))`,
						},
					},
				},
			},
		},
	}
}
