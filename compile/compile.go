// Package compile lowers parsed domain and problem s-expression trees into
// a compiled, indexed task.Task suitable for search, per spec §4.3.
package compile

import (
	"sort"

	"github.com/corox/temporalplan/ast"
	"github.com/corox/temporalplan/parser"
	"github.com/corox/temporalplan/task"
	"github.com/corox/temporalplan/tplerr"
)

// Options configures compilation.
type Options struct {
	// DefaultDuration is used for non-durative actions and for durative
	// actions whose :duration is not a constant numeric literal.
	DefaultDuration float64
}

// DefaultOptions returns the spec's default: non-durative actions and
// unsupported duration expressions get duration 1.0.
func DefaultOptions() Options {
	return Options{DefaultDuration: 1.0}
}

// FromStrings compiles a domain+problem pair of planning-description text
// into a task.Task.
func FromStrings(domainText, problemText string, opts Options) (*task.Task, error) {
	domainRoot, err := parser.ParseSExpr(domainText, "domain")
	if err != nil {
		return nil, err
	}
	problemRoot, err := parser.ParseSExpr(problemText, "problem")
	if err != nil {
		return nil, err
	}

	dom, err := extractDomain(domainRoot, "domain", opts)
	if err != nil {
		return nil, err
	}
	prob, err := extractProblem(problemRoot)
	if err != nil {
		return nil, err
	}

	t := task.NewTask()
	t.DomainName = dom.Name
	t.ProblemName = prob.Name
	t.Requirements = dom.Requirements
	t.Types = dom.Types
	t.Predicates = dom.Predicates
	t.Objects = prob.Objects
	t.Actions = dom.Actions
	t.DefaultDuration = opts.DefaultDuration
	t.Warnings = append(t.Warnings, dom.Warnings...)

	if err := validatePredicateReferences(t); err != nil {
		return nil, err
	}

	// Stable numbering pass (§4.3): intern initial-state facts first, then
	// extend the index with any new ground facts seen in the goal and in
	// fully-ground action effects, in that fixed order — so the bit-vector
	// layout depends only on the task text, never on search order.
	var initIdx []int
	for _, e := range prob.InitFacts {
		initIdx = append(initIdx, t.Facts.Intern(e.Predicate, e.Args))
	}
	for k, v := range prob.InitNumeric {
		t.InitialNumeric[k] = v
	}

	if prob.Goal != nil {
		goalConds, err := flattenConditions(prob.Goal, false)
		if err != nil {
			return nil, err
		}
		t.GoalConditions = goalConds
		for _, c := range goalConds {
			if c.IsGround() {
				t.Facts.Intern(c.Predicate, groundArgs(c.Args))
			}
		}
	}

	for _, a := range t.Actions {
		for _, e := range a.EffStart {
			if e.IsGround() {
				t.Facts.Intern(e.Predicate, groundArgs(e.Args))
			}
		}
		for _, e := range a.EffEnd {
			if e.IsGround() {
				t.Facts.Intern(e.Predicate, groundArgs(e.Args))
			}
		}
	}

	t.InitialFacts = make([]bool, t.Facts.Len())
	for _, idx := range initIdx {
		t.InitialFacts[idx] = true
	}

	return t, nil
}

func groundArgs(args []ast.Term) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Name
	}
	return out
}

// validatePredicateReferences ensures every predicate named in an action's
// conditions/effects is declared in the domain's :predicates section.
// §7: an undeclared reference is an UnknownSymbol error.
func validatePredicateReferences(t *task.Task) error {
	declared := make(map[string]bool, len(t.Predicates))
	for _, p := range t.Predicates {
		declared[p.Name] = true
	}
	if len(declared) == 0 {
		// No :predicates section parsed — nothing to validate against.
		return nil
	}

	var missing []string
	seen := make(map[string]bool)
	check := func(name string) {
		if !declared[name] && !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
	}

	for _, a := range t.Actions {
		for _, c := range a.CondStart {
			check(c.Predicate)
		}
		for _, c := range a.CondOver {
			check(c.Predicate)
		}
		for _, c := range a.CondEnd {
			check(c.Predicate)
		}
		for _, e := range a.EffStart {
			check(e.Predicate)
		}
		for _, e := range a.EffEnd {
			check(e.Predicate)
		}
	}

	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return tplerr.New(tplerr.UnknownSymbol, "undeclared predicate(s) referenced: %v", missing)
}
