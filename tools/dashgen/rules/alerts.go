package rules

// AlertRules returns a PrometheusRule CR containing alert rules for devlog
// operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "devlog-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "devlog-alerts",
					Rules: []Rule{
						{
							Alert: "DevlogDown",
							Expr:  `absent(up{job="devlog"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "DevLog is down",
								"description": "The devlog job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "DevlogReadinessDown",
							Expr:  `devlog_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "DevLog cannot reach its database",
								"description": "The readiness probe has been failing for more than 2 minutes.",
							},
						},
						{
							Alert: "DevlogHighErrorRate",
							Expr:  `devlog:http_errors:rate5m / devlog:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on DevLog",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "DevlogListingStoreErrors",
							Expr:  `devlog:listing_store_errors:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Post listing queries are failing",
								"description": "Readers are seeing empty listings because listing queries have been failing for 5 minutes.",
							},
						},
						{
							Alert: "DevlogLoginFailureSpike",
							Expr:  `devlog:login_failures:rate5m > 1`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Sustained failed or throttled logins",
								"description": "More than one failed or rate-limited login per second for 10 minutes; possible credential stuffing.",
							},
						},
					},
				},
			},
		},
	}
}
