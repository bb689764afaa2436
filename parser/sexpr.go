// Package parser builds the generic s-expression tree (ast.Node) from the
// lexer's token stream, and the typed temporal formula tree (ast.Formula)
// from an s-expression, per spec §4.2.
package parser

import (
	"strings"

	"github.com/corox/temporalplan/ast"
	"github.com/corox/temporalplan/lexer"
	"github.com/corox/temporalplan/tplerr"
)

// ParseSExpr tokenizes text and builds its s-expression tree. file is used
// only to annotate errors.
func ParseSExpr(text string, file string) (ast.Node, error) {
	tokens, err := lexer.Tokenize(text, file)
	if err != nil {
		return ast.Node{}, err
	}
	if len(tokens) == 0 {
		return ast.Node{}, tplerr.New(tplerr.MalformedSyntax, "empty input")
	}
	if len(tokens) == 1 {
		return nodeFromToken(tokens[0], file)
	}
	children := make([]ast.Node, len(tokens))
	for i, tok := range tokens {
		n, err := nodeFromToken(tok, file)
		if err != nil {
			return ast.Node{}, err
		}
		children[i] = n
	}
	return ast.Node{Children: children, Line: tokens[0].Line, Col: tokens[0].Col}, nil
}

func nodeFromToken(tok lexer.Token, file string) (ast.Node, error) {
	if tok.Type == lexer.TokenAtom {
		return ast.Node{Atom: tok.Text, Line: tok.Line, Col: tok.Col}, nil
	}

	inner := tok.Text
	inner = strings.TrimPrefix(inner, "(")
	inner = strings.TrimSuffix(inner, ")")

	innerTokens, err := lexer.Tokenize(inner, file)
	if err != nil {
		return ast.Node{}, err
	}
	children := make([]ast.Node, len(innerTokens))
	for i, it := range innerTokens {
		n, err := nodeFromToken(it, file)
		if err != nil {
			return ast.Node{}, err
		}
		children[i] = n
	}
	return ast.Node{Children: children, Line: tok.Line, Col: tok.Col}, nil
}

// FindSection locates the first child list of root whose head atom equals
// keyword (case-insensitively), e.g. FindSection(domainRoot, ":predicates").
func FindSection(root ast.Node, keyword string) (ast.Node, bool) {
	keyword = strings.ToLower(keyword)
	if !root.IsList() {
		return ast.Node{}, false
	}
	for _, child := range root.Children {
		if child.IsList() && len(child.Children) > 0 && child.Children[0].IsAtom() &&
			strings.ToLower(child.Children[0].Atom) == keyword {
			return child, true
		}
	}
	return ast.Node{}, false
}

// FindSections locates all child lists of root whose head atom equals
// keyword (case-insensitively), e.g. every (:action ...) block.
func FindSections(root ast.Node, keyword string) []ast.Node {
	keyword = strings.ToLower(keyword)
	var out []ast.Node
	if !root.IsList() {
		return out
	}
	for _, child := range root.Children {
		if child.IsList() && len(child.Children) > 0 && child.Children[0].IsAtom() &&
			strings.ToLower(child.Children[0].Atom) == keyword {
			out = append(out, child)
		}
	}
	return out
}
