// Package validate checks generated dashboards and rule files for PromQL
// syntax errors and references to metrics the service does not export.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/offer-tracker/tools/dashgen/rules"
)

// histogramSuffixes are stripped before looking a series up in the known
// metric set, since histograms are registered under their base name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings. Errors make the artifact unusable,
// warnings flag queries that parse but may return nothing.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Dashboard validates every PromQL expression found in the dashboard.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	exprs := collectExprs(doc, nil)
	if len(exprs) == 0 {
		res.Warnings = append(res.Warnings, "dashboard contains no queries")
	}
	for _, expr := range exprs {
		res.merge(Expr(expr, known))
	}
	return res
}

// Rules validates the expressions of every rule in the custom resource.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Name()
			if name == "" {
				res.Errors = append(res.Errors, fmt.Sprintf("group %s: rule has neither record nor alert", g.Name))
				continue
			}
			sub := Expr(r.Expr, known)
			for _, e := range sub.Errors {
				res.Errors = append(res.Errors, name+": "+e)
			}
			for _, w := range sub.Warnings {
				res.Warnings = append(res.Warnings, name+": "+w)
			}
		}
	}
	return res
}

// Expr parses a single PromQL expression and checks its metric references.
func Expr(expr string, known map[string]bool) Result {
	var res Result

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("parsing %q: %v", expr, err))
		return res
	}

	for _, name := range metricNames(node) {
		if !known[baseName(name)] {
			res.Errors = append(res.Errors, fmt.Sprintf("unknown metric %q in %q", name, expr))
		}
	}
	return res
}

func metricNames(node parser.Node) []string {
	seen := make(map[string]struct{})
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			seen[vs.Name] = struct{}{}
		}
		return nil
	})

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func baseName(name string) string {
	for _, s := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, s); ok {
			return base
		}
	}
	return name
}

// collectExprs walks decoded JSON and returns every string stored under an
// "expr" key, in document order.
func collectExprs(v any, out []string) []string {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := t[k].(string); ok && k == "expr" {
				out = append(out, s)
				continue
			}
			out = collectExprs(t[k], out)
		}
	case []any:
		for _, e := range t {
			out = collectExprs(e, out)
		}
	}
	return out
}
