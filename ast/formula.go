package ast

import (
	"fmt"
	"strings"
)

// Term is a ground term or a parameter reference (e.g. "?x") within a
// condition or effect's argument list.
type Term struct {
	Name    string
	IsParam bool
}

func (t Term) String() string { return t.Name }

// NewTerm builds a Term, classifying it as a parameter reference if it
// starts with '?'.
func NewTerm(name string) Term {
	return Term{Name: name, IsParam: strings.HasPrefix(name, "?")}
}

// Formula is a node in the temporal formula tree (§4.2).
type Formula interface {
	formula()
	String() string
}

// Predicate is an atomic (possibly negated) predicate application.
type Predicate struct {
	Name    string
	Args    []Term
	Negated bool
}

func (Predicate) formula() {}
func (p Predicate) String() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	body := p.Name
	if len(parts) > 0 {
		body += " " + strings.Join(parts, " ")
	}
	if p.Negated {
		return fmt.Sprintf("(not (%s))", body)
	}
	return "(" + body + ")"
}

// And is a conjunction of formulas.
type And struct{ Operands []Formula }

func (And) formula() {}
func (a And) String() string { return joinOp("and", a.Operands) }

// Or is a disjunction of formulas.
type Or struct{ Operands []Formula }

func (Or) formula() {}
func (o Or) String() string { return joinOp("or", o.Operands) }

// Not negates a single formula.
type Not struct{ Operand Formula }

func (Not) formula() {}
func (n Not) String() string { return fmt.Sprintf("(not %s)", n.Operand.String()) }

// AtStart tags a formula as holding at an action's start instant.
type AtStart struct{ Operand Formula }

func (AtStart) formula() {}
func (a AtStart) String() string { return fmt.Sprintf("(at start %s)", a.Operand.String()) }

// AtEnd tags a formula as holding at an action's end instant.
type AtEnd struct{ Operand Formula }

func (AtEnd) formula() {}
func (a AtEnd) String() string { return fmt.Sprintf("(at end %s)", a.Operand.String()) }

// OverAll tags a formula as holding throughout an action's open interval.
type OverAll struct{ Operand Formula }

func (OverAll) formula() {}
func (o OverAll) String() string { return fmt.Sprintf("(over all %s)", o.Operand.String()) }

// CompOp is the comparator of a DurationConstraint.
type CompOp int

const (
	OpEq CompOp = iota
	OpLE
	OpGE
)

func (c CompOp) String() string {
	switch c {
	case OpEq:
		return "="
	case OpLE:
		return "<="
	case OpGE:
		return ">="
	default:
		return "?"
	}
}

// DurationConstraint represents a (= ?duration c) / (<= ?duration c) /
// (>= ?duration c) clause. IsConstant is false when the right-hand side is
// not a bare numeric literal (§4.3: UnsupportedDurationExpression).
type DurationConstraint struct {
	Op         CompOp
	Constant   float64
	IsConstant bool
	Raw        string
}

func (DurationConstraint) formula() {}
func (d DurationConstraint) String() string {
	if d.IsConstant {
		return fmt.Sprintf("(%s ?duration %g)", d.Op, d.Constant)
	}
	return fmt.Sprintf("(%s ?duration %s)", d.Op, d.Raw)
}

func joinOp(op string, operands []Formula) string {
	parts := make([]string, len(operands))
	for i, f := range operands {
		parts[i] = f.String()
	}
	return fmt.Sprintf("(%s %s)", op, strings.Join(parts, " "))
}
