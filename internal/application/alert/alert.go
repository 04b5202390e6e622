// Package alert evaluates operator-defined boolean expressions over
// per-category complaint statistics. A rule that evaluates to true after a
// stats change is a hit; the caller decides what to do with hits (the
// server logs them).
package alert

import (
	"fmt"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
)

// Rule is one named, compiled alert expression.
type Rule struct {
	Name string
	expr *govaluate.EvaluableExpression
}

// Evaluator holds the compiled rule set. A nil or empty evaluator never
// fires.
type Evaluator struct {
	rules []Rule
}

// Parse compiles a rule spec of the form "name=expr;name=expr". Expressions
// see the parameters category, count, resolved and averageResolutionTime.
// An empty spec yields an evaluator with no rules.
func Parse(spec string) (*Evaluator, error) {
	e := &Evaluator{}
	for _, part := range strings.Split(spec, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, raw, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		raw = strings.TrimSpace(raw)
		if !ok || name == "" || raw == "" {
			return nil, fmt.Errorf("malformed alert rule %q", part)
		}
		expr, err := govaluate.NewEvaluableExpression(raw)
		if err != nil {
			return nil, fmt.Errorf("compile alert rule %q: %w", name, err)
		}
		e.rules = append(e.rules, Rule{Name: name, expr: expr})
	}
	return e, nil
}

// Evaluate returns the names of rules that hold for the given category
// stats. Rules that fail to evaluate or yield a non-boolean are skipped.
func (e *Evaluator) Evaluate(category string, st complaint.CategoryStats) []string {
	if e == nil || len(e.rules) == 0 {
		return nil
	}
	params := map[string]interface{}{
		"category":              category,
		"count":                 float64(st.Count),
		"resolved":              float64(st.Resolved),
		"averageResolutionTime": st.AverageResolutionTime,
	}
	var hits []string
	for _, rule := range e.rules {
		result, err := rule.expr.Evaluate(params)
		if err != nil {
			continue
		}
		if hit, ok := result.(bool); ok && hit {
			hits = append(hits, rule.Name)
		}
	}
	return hits
}
