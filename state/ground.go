package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corox/temporalplan/ast"
	"github.com/corox/temporalplan/task"
)

// GroundAction is one fully-instantiated application of an ActionTemplate:
// every parameter reference in its conditions/effects has been substituted
// with a bound object name.
type GroundAction struct {
	ID            int
	TemplateIndex int
	Name          string
	Binding       map[string]string
	Duration      float64
	CondStart     []task.Condition
	CondOver      []task.Condition
	CondEnd       []task.Condition
	EffStart      []task.Effect
	EffEnd        []task.Effect
}

// groundAllActions enumerates every parameter binding for every action
// template against the task's declared objects (by matching declared
// types), producing a stable-ordered ground action list. Any newly
// discovered fully-ground fact is interned into t.Facts, extending the
// bit-vector layout — this happens once, before the first state is built,
// so the task is still effectively immutable once search begins.
func groundAllActions(t *task.Task) []GroundAction {
	var out []GroundAction
	for ti, tmpl := range t.Actions {
		for _, binding := range enumerateBindings(t, tmpl.Params) {
			ga := GroundAction{
				ID:            len(out),
				TemplateIndex: ti,
				Name:          renderGroundName(tmpl.Name, tmpl.Params, binding),
				Binding:       binding,
				Duration:      tmpl.Duration,
				CondStart:     substituteConditions(tmpl.CondStart, binding),
				CondOver:      substituteConditions(tmpl.CondOver, binding),
				CondEnd:       substituteConditions(tmpl.CondEnd, binding),
				EffStart:      substituteEffects(tmpl.EffStart, binding),
				EffEnd:        substituteEffects(tmpl.EffEnd, binding),
			}
			for _, e := range ga.EffStart {
				t.Facts.Intern(e.Predicate, groundArgNames(e.Args))
			}
			for _, e := range ga.EffEnd {
				t.Facts.Intern(e.Predicate, groundArgNames(e.Args))
			}
			out = append(out, ga)
		}
	}
	// Grounding may have discovered facts absent from the task's initial
	// scan; pad InitialFacts so the bit-vector stays the right length.
	for len(t.InitialFacts) < t.Facts.Len() {
		t.InitialFacts = append(t.InitialFacts, false)
	}
	return out
}

// enumerateBindings returns every parameter binding for params, as the
// cartesian product of objects matching each parameter's declared type, in
// a deterministic (sorted-name) order.
func enumerateBindings(t *task.Task, params []task.ParamType) []map[string]string {
	if len(params) == 0 {
		return []map[string]string{{}}
	}
	domains := make([][]string, len(params))
	for i, p := range params {
		objs := t.ObjectsOfType(p.Type)
		sort.Strings(objs)
		domains[i] = objs
	}
	var results []map[string]string
	var recurse func(i int, acc map[string]string)
	recurse = func(i int, acc map[string]string) {
		if i == len(params) {
			copied := make(map[string]string, len(acc))
			for k, v := range acc {
				copied[k] = v
			}
			results = append(results, copied)
			return
		}
		for _, obj := range domains[i] {
			acc[params[i].Name] = obj
			recurse(i+1, acc)
		}
	}
	recurse(0, map[string]string{})
	return results
}

func substituteConditions(conds []task.Condition, binding map[string]string) []task.Condition {
	out := make([]task.Condition, len(conds))
	for i, c := range conds {
		out[i] = task.Condition{Predicate: c.Predicate, Args: substituteArgs(c.Args, binding), Negated: c.Negated}
	}
	return out
}

func substituteEffects(effs []task.Effect, binding map[string]string) []task.Effect {
	out := make([]task.Effect, len(effs))
	for i, e := range effs {
		out[i] = task.Effect{Predicate: e.Predicate, Args: substituteArgs(e.Args, binding), IsDelete: e.IsDelete}
	}
	return out
}

func substituteArgs(args []ast.Term, binding map[string]string) []ast.Term {
	out := make([]ast.Term, len(args))
	for i, a := range args {
		if a.IsParam {
			if v, ok := binding[a.Name]; ok {
				out[i] = ast.Term{Name: v, IsParam: false}
				continue
			}
		}
		out[i] = a
	}
	return out
}

func groundArgNames(args []ast.Term) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Name
	}
	return out
}

func renderGroundName(name string, params []task.ParamType, binding map[string]string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = binding[p.Name]
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ","))
}
