// Package task holds the compiled, indexed task structure (§3, §4.3): the
// in-memory data types a search engine consumes, built once by the compile
// package and treated as immutable afterward.
package task

import (
	"fmt"
	"strings"

	"github.com/corox/temporalplan/ast"
)

// ParamType is a single typed parameter of an action or predicate.
type ParamType struct {
	Name string
	Type string // "" means untyped/any
}

// PredicateSig is a predicate's name plus its ordered typed parameter list.
// Predicates are numbered 0..P-1 in first-seen order of declaration.
type PredicateSig struct {
	Name   string
	Params []ParamType
}

// Object is a problem-declared object with an optional type.
type Object struct {
	Name string
	Type string
}

// Condition is `{ predicate, arguments, negated }`. Args may be ground
// terms or parameter references; a template condition is symbolic until a
// ground action instance substitutes its parameters.
type Condition struct {
	Predicate string
	Args      []ast.Term
	Negated   bool
}

// IsGround reports whether every argument is a ground term.
func (c Condition) IsGround() bool {
	for _, a := range c.Args {
		if a.IsParam {
			return false
		}
	}
	return true
}

func (c Condition) String() string {
	return renderAtom(c.Predicate, c.Args, c.Negated)
}

// Effect is `{ predicate, arguments, is-delete }`.
type Effect struct {
	Predicate string
	Args      []ast.Term
	IsDelete  bool
}

// IsGround reports whether every argument is a ground term.
func (e Effect) IsGround() bool {
	for _, a := range e.Args {
		if a.IsParam {
			return false
		}
	}
	return true
}

func (e Effect) String() string {
	return renderAtom(e.Predicate, e.Args, e.IsDelete)
}

func renderAtom(pred string, args []ast.Term, negated bool) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	body := pred
	if len(parts) > 0 {
		body += " " + strings.Join(parts, " ")
	}
	if negated {
		return fmt.Sprintf("(not (%s))", body)
	}
	return "(" + body + ")"
}

// ActionTemplate is a temporal action record per §3: a unique name, typed
// parameters, a non-negative duration, three disjoint condition groups, and
// two disjoint effect groups. A non-durative action is represented
// uniformly with Duration = the task's default (1.0 unless configured),
// empty CondOver/CondEnd, empty EffStart, and every effect in EffEnd.
type ActionTemplate struct {
	Name       string
	Params     []ParamType
	Duration   float64
	Durative   bool
	CondStart  []Condition
	CondOver   []Condition
	CondEnd    []Condition
	EffStart   []Effect
	EffEnd     []Effect
}

// MutexGroup enumerates fact indices of which at most one may hold.
type MutexGroup struct {
	Facts []int
}

// Task is `{ predicates, actions, initial-state, goal-conditions,
// mutex-groups }` plus the supporting fact index and object table needed
// to ground action templates during search.
type Task struct {
	DomainName      string
	ProblemName     string
	Requirements    []string
	Types           []string
	Predicates      []PredicateSig
	Objects         []Object
	Actions         []ActionTemplate
	Facts           *FactIndex
	InitialFacts    []bool
	InitialNumeric  map[string]float64
	GoalConditions  []Condition
	MutexGroups     []MutexGroup
	DefaultDuration float64
	Warnings        []string
}

// NewTask returns an empty task with sane defaults.
func NewTask() *Task {
	return &Task{
		Facts:          NewFactIndex(),
		InitialNumeric: make(map[string]float64),
	}
}

// ObjectsOfType returns the names of every declared object whose type
// matches typeName, or every object if typeName is "".
func (t *Task) ObjectsOfType(typeName string) []string {
	if typeName == "" {
		names := make([]string, len(t.Objects))
		for i, o := range t.Objects {
			names[i] = o.Name
		}
		return names
	}
	var names []string
	for _, o := range t.Objects {
		if strings.EqualFold(o.Type, typeName) {
			names = append(names, o.Name)
		}
	}
	return names
}
