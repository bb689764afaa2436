package compile

import (
	"strconv"

	"github.com/corox/temporalplan/ast"
	"github.com/corox/temporalplan/parser"
	"github.com/corox/temporalplan/task"
	"github.com/corox/temporalplan/tplerr"
)

// groundEntry is a ground (predicate, args) fact discovered while parsing
// the problem's :init section.
type groundEntry struct {
	Predicate string
	Args      []string
}

type problemInfo struct {
	Name        string
	DomainRef   string
	Objects     []task.Object
	InitFacts   []groundEntry
	InitNumeric map[string]float64
	Goal        ast.Formula
}

func extractProblem(root ast.Node) (*problemInfo, error) {
	name, _ := findHeader(root, "problem")
	info := &problemInfo{Name: name, InitNumeric: make(map[string]float64)}

	if sec, ok := parser.FindSection(root, ":domain"); ok && len(sec.Children) > 1 && sec.Children[1].IsAtom() {
		info.DomainRef = sec.Children[1].Atom
	}

	if sec, ok := parser.FindSection(root, ":objects"); ok {
		info.Objects = toObjects(parseTypedNames(sec.Children[1:]))
	}

	if sec, ok := parser.FindSection(root, ":init"); ok {
		for _, item := range sec.Children[1:] {
			if !item.IsList() || len(item.Children) == 0 || !item.Children[0].IsAtom() {
				continue
			}
			head := item.Children[0].Atom
			if head == "=" {
				if len(item.Children) != 3 {
					continue
				}
				key := item.Children[1].String()
				if item.Children[2].IsAtom() {
					if v, err := strconv.ParseFloat(item.Children[2].Atom, 64); err == nil {
						info.InitNumeric[key] = v
						continue
					}
				}
				continue
			}
			args := make([]string, 0, len(item.Children)-1)
			for _, a := range item.Children[1:] {
				if a.IsAtom() {
					args = append(args, a.Atom)
				}
			}
			info.InitFacts = append(info.InitFacts, groundEntry{Predicate: head, Args: args})
		}
	}

	if sec, ok := parser.FindSection(root, ":goal"); ok {
		if len(sec.Children) != 2 {
			return nil, tplerr.New(tplerr.MalformedSyntax, ":goal must contain exactly one formula")
		}
		f, err := parser.ParseFormula(sec.Children[1])
		if err != nil {
			return nil, err
		}
		info.Goal = f
	}

	return info, nil
}
