package parser

import (
	"strconv"
	"strings"

	"github.com/corox/temporalplan/ast"
	"github.com/corox/temporalplan/tplerr"
)

// ParseFormula builds a typed formula tree from an s-expression, dispatching
// on the head symbol per §4.2: and, or, not, at (start|end), over (all),
// comparator ops, or else a predicate application.
func ParseFormula(n ast.Node) (ast.Formula, error) {
	if n.IsAtom() {
		return nil, tplerr.New(tplerr.MalformedSyntax, "expected a parenthesised formula, got atom %q", n.Atom)
	}
	if len(n.Children) == 0 {
		return nil, tplerr.New(tplerr.MalformedSyntax, "empty formula")
	}

	head := n.Head()
	switch head {
	case "and":
		return parseJunction(n, func(ops []ast.Formula) ast.Formula { return ast.And{Operands: ops} })
	case "or":
		return parseJunction(n, func(ops []ast.Formula) ast.Formula { return ast.Or{Operands: ops} })
	case "not":
		if len(n.Children) != 2 {
			return nil, tplerr.New(tplerr.MalformedSyntax, "not expects exactly one operand, got %d", len(n.Children)-1)
		}
		inner, err := ParseFormula(n.Children[1])
		if err != nil {
			return nil, err
		}
		return ast.Not{Operand: inner}, nil
	case "at":
		if len(n.Children) < 2 || !n.Children[1].IsAtom() {
			return nil, tplerr.New(tplerr.UnsupportedFeature, "malformed 'at' temporal operator")
		}
		phase := strings.ToLower(n.Children[1].Atom)
		if phase != "start" && phase != "end" {
			// A predicate that happens to be named "at", e.g. (at ?e ?l).
			return parsePredicate(n, head)
		}
		body, err := wrapRest(n, 2)
		if err != nil {
			return nil, err
		}
		inner, err := ParseFormula(body)
		if err != nil {
			return nil, err
		}
		switch phase {
		case "start":
			return ast.AtStart{Operand: inner}, nil
		case "end":
			return ast.AtEnd{Operand: inner}, nil
		default:
			return nil, tplerr.New(tplerr.UnsupportedFeature, "unknown temporal operator 'at %s'", phase)
		}
	case "over":
		if len(n.Children) < 2 || !n.Children[1].IsAtom() || strings.ToLower(n.Children[1].Atom) != "all" {
			return nil, tplerr.New(tplerr.UnsupportedFeature, "unknown temporal operator 'over'")
		}
		body, err := wrapRest(n, 2)
		if err != nil {
			return nil, err
		}
		inner, err := ParseFormula(body)
		if err != nil {
			return nil, err
		}
		return ast.OverAll{Operand: inner}, nil
	case "=", "<=", ">=":
		if isDurationForm(n) {
			return parseDurationConstraint(n, head)
		}
		return parsePredicate(n, head)
	default:
		return parsePredicate(n, head)
	}
}

// wrapRest re-wraps n.Children[from:] as a single list node, so nested
// temporal operators like (at start (and ...)) can recurse uniformly.
func wrapRest(n ast.Node, from int) (ast.Node, error) {
	rest := n.Children[from:]
	if len(rest) == 0 {
		return ast.Node{}, tplerr.New(tplerr.MalformedSyntax, "temporal operator has no operand")
	}
	if len(rest) == 1 {
		return rest[0], nil
	}
	return ast.Node{Children: rest, Line: n.Line, Col: n.Col}, nil
}

func parseJunction(n ast.Node, build func([]ast.Formula) ast.Formula) (ast.Formula, error) {
	operands := make([]ast.Formula, 0, len(n.Children)-1)
	for _, child := range n.Children[1:] {
		f, err := ParseFormula(child)
		if err != nil {
			return nil, err
		}
		operands = append(operands, f)
	}
	return build(operands), nil
}

func isDurationForm(n ast.Node) bool {
	return len(n.Children) >= 2 && n.Children[1].IsAtom() && n.Children[1].Atom == "?duration"
}

func parseDurationConstraint(n ast.Node, head string) (ast.Formula, error) {
	var op ast.CompOp
	switch head {
	case "=":
		op = ast.OpEq
	case "<=":
		op = ast.OpLE
	case ">=":
		op = ast.OpGE
	}
	if len(n.Children) != 3 || !n.Children[2].IsAtom() {
		return ast.DurationConstraint{Op: op, IsConstant: false, Raw: n.String()}, nil
	}
	raw := n.Children[2].Atom
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ast.DurationConstraint{Op: op, IsConstant: false, Raw: raw}, nil
	}
	return ast.DurationConstraint{Op: op, Constant: val, IsConstant: true, Raw: raw}, nil
}

func parsePredicate(n ast.Node, head string) (ast.Formula, error) {
	if head == "" {
		if len(n.Children) == 0 || !n.Children[0].IsAtom() {
			return nil, tplerr.New(tplerr.MalformedSyntax, "predicate application must start with a name")
		}
		head = n.Children[0].Atom
	} else {
		head = n.Children[0].Atom
	}
	args := make([]ast.Term, 0, len(n.Children)-1)
	for _, child := range n.Children[1:] {
		if !child.IsAtom() {
			return nil, tplerr.New(tplerr.MalformedSyntax, "predicate argument must be an atom, got %s", child.String())
		}
		args = append(args, ast.NewTerm(child.Atom))
	}
	return ast.Predicate{Name: head, Args: args, Negated: false}, nil
}
