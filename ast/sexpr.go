// Package ast holds the untyped s-expression tree the lexer/parser produce
// before task compilation, plus the typed temporal formula tree (§4.2).
package ast

import "strings"

// Node is a generic s-expression: either an atom or a list of child nodes.
// This is the tree the compiler walks to find domain/problem sections
// (":predicates", ":action", ":init", ...) before handing condition/effect
// bodies to the formula parser.
type Node struct {
	Atom     string
	Children []Node
	Line     int
	Col      int
}

// IsAtom reports whether this node is a leaf atom.
func (n Node) IsAtom() bool { return n.Children == nil }

// IsList reports whether this node is a list (possibly empty).
func (n Node) IsList() bool { return n.Children != nil }

// Head returns the lower-cased first atom of a list node, or "" if the
// node is not a non-empty list headed by an atom.
func (n Node) Head() string {
	if !n.IsList() || len(n.Children) == 0 || !n.Children[0].IsAtom() {
		return ""
	}
	return strings.ToLower(n.Children[0].Atom)
}

// String renders the node back to bracketed text, mostly for diagnostics.
func (n Node) String() string {
	if n.IsAtom() {
		return n.Atom
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}
