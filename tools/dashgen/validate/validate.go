// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/devlog/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings
// are printed.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// Expr parses a PromQL expression and checks every metric it selects.
// Histogram series suffixes resolve to their base metric.
func Expr(expr string, known map[string]bool) Result {
	var r Result

	e, err := parser.ParseExpr(expr)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("parsing %q: %v", expr, err))
		return r
	}

	parser.Inspect(e, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		name := metricName(vs)
		switch {
		case name == "":
			r.Warnings = append(r.Warnings, fmt.Sprintf("selector without metric name in %q", expr))
		case !isKnown(name, known):
			r.Errors = append(r.Errors, fmt.Sprintf("unknown metric %q in %q", name, expr))
		}
		return nil
	})

	return r
}

// Dashboard validates the queries of every panel, including panels nested
// in rows.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result
	for _, p := range dash.Panels {
		if p.Panel != nil {
			r.merge(panel(*p.Panel, known))
		}
		if p.RowPanel != nil {
			for _, inner := range p.RowPanel.Panels {
				r.merge(panel(inner, known))
			}
		}
	}
	return r
}

// Rules validates every rule expression. Recording rule names must also be
// known so dashboards can reference them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var r Result
	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			r.merge(Expr(rule.Expr, known))
			if rule.Record != "" && !known[rule.Record] {
				r.Errors = append(r.Errors, fmt.Sprintf("recording rule %q is not a known metric", rule.Record))
			}
			if rule.Record == "" && rule.Alert == "" {
				r.Errors = append(r.Errors, fmt.Sprintf("rule in group %q has neither record nor alert", g.Name))
			}
		}
	}
	return r
}

func panel(p dashboard.Panel, known map[string]bool) Result {
	var r Result

	title := "untitled"
	if p.Title != nil {
		title = *p.Title
	}
	if len(p.Targets) == 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("panel %q has no queries", title))
	}

	for _, t := range p.Targets {
		var expr string
		switch q := t.(type) {
		case *prometheus.Dataquery:
			expr = q.Expr
		case prometheus.Dataquery:
			expr = q.Expr
		default:
			r.Warnings = append(r.Warnings, fmt.Sprintf("panel %q has a non-Prometheus query", title))
			continue
		}
		res := Expr(expr, known)
		for i := range res.Errors {
			res.Errors[i] = "panel " + title + ": " + res.Errors[i]
		}
		r.merge(res)
	}

	return r
}

func metricName(vs *parser.VectorSelector) string {
	if vs.Name != "" {
		return vs.Name
	}
	for _, m := range vs.LabelMatchers {
		if m.Name == "__name__" {
			return m.Value
		}
	}
	return ""
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
