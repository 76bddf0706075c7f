// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/vehicle-valuator/tools/dashgen/rules"
)

// Result collects validation findings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Expr parses expr and returns the metric names it selects.
func Expr(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, err
	}

	var names []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			names = append(names, vs.Name)
		}
		return nil
	})
	return names, nil
}

func (r *Result) check(where, expr string, known map[string]bool) {
	names, err := Expr(expr)
	if err != nil {
		r.errorf("%s: invalid PromQL %q: %v", where, expr, err)
		return
	}
	for _, n := range names {
		if !known[n] {
			r.errorf("%s: unknown metric %q", where, n)
		}
	}
}

// Dashboard validates every Prometheus target in d.
func Dashboard(d dashboard.Dashboard, known map[string]bool) *Result {
	r := &Result{}

	var check func(p *dashboard.Panel)
	check = func(p *dashboard.Panel) {
		title := "panel"
		if p.Title != nil {
			title = *p.Title
		}
		if len(p.Targets) == 0 {
			r.Warnings = append(r.Warnings, title+": no targets")
		}
		for _, t := range p.Targets {
			q, ok := t.(*prometheus.Dataquery)
			if !ok {
				r.errorf("%s: unexpected target type %T", title, t)
				continue
			}
			r.check(title, q.Expr, known)
		}
	}

	for _, p := range d.Panels {
		if p.Panel != nil {
			check(p.Panel)
		}
		if p.RowPanel != nil {
			for i := range p.RowPanel.Panels {
				check(&p.RowPanel.Panels[i])
			}
		}
	}
	return r
}

// Rules validates every expression in cr. Recorded series become known
// for the rules that follow them.
func Rules(cr rules.PrometheusRule, known map[string]bool) *Result {
	r := &Result{}
	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			name := rule.Record
			if name == "" {
				name = rule.Alert
			}
			r.check(g.Name+"/"+name, rule.Expr, known)
		}
	}
	return r
}
