package compile

import (
	"strings"

	"github.com/corox/temporalplan/ast"
	"github.com/corox/temporalplan/parser"
	"github.com/corox/temporalplan/task"
	"github.com/corox/temporalplan/tplerr"
)

// domainInfo is the intermediate result of walking a domain's s-expression
// tree, before predicate-reference validation and fact indexing.
type domainInfo struct {
	Name         string
	Requirements []string
	Types        []string
	Predicates   []task.PredicateSig
	Actions      []task.ActionTemplate
	Warnings     []string
}

func extractDomain(root ast.Node, file string, opts Options) (*domainInfo, error) {
	defineHeader, _ := findDomainHeader(root)

	info := &domainInfo{Name: defineHeader}

	if sec, ok := parser.FindSection(root, ":requirements"); ok {
		for _, c := range sec.Children[1:] {
			if c.IsAtom() {
				info.Requirements = append(info.Requirements, c.Atom)
			}
		}
	}

	if sec, ok := parser.FindSection(root, ":types"); ok {
		for _, n := range parseTypedNames(sec.Children[1:]) {
			info.Types = append(info.Types, n.Name)
		}
	}

	if sec, ok := parser.FindSection(root, ":predicates"); ok {
		for _, predNode := range sec.Children[1:] {
			if !predNode.IsList() || len(predNode.Children) == 0 || !predNode.Children[0].IsAtom() {
				continue
			}
			name := predNode.Children[0].Atom
			params := toParamTypes(parseTypedNames(predNode.Children[1:]))
			info.Predicates = append(info.Predicates, task.PredicateSig{Name: name, Params: params})
		}
	}

	for _, actionNode := range parser.FindSections(root, ":action") {
		tmpl, warn, err := extractActionTemplate(actionNode, false, opts, file)
		if err != nil {
			return nil, err
		}
		info.Actions = append(info.Actions, tmpl)
		info.Warnings = append(info.Warnings, warn...)
	}

	for _, actionNode := range parser.FindSections(root, ":durative-action") {
		tmpl, warn, err := extractActionTemplate(actionNode, true, opts, file)
		if err != nil {
			return nil, err
		}
		info.Actions = append(info.Actions, tmpl)
		info.Warnings = append(info.Warnings, warn...)
	}

	return info, nil
}

// findDomainHeader locates the "(domain NAME)" header inside a
// "(define (domain NAME) ...)" root and returns NAME.
func findDomainHeader(root ast.Node) (string, bool) {
	return findHeader(root, "domain")
}

func findHeader(root ast.Node, kind string) (string, bool) {
	if !root.IsList() {
		return "", false
	}
	for _, child := range root.Children {
		if child.IsList() && len(child.Children) >= 2 && child.Children[0].IsAtom() &&
			strings.EqualFold(child.Children[0].Atom, kind) && child.Children[1].IsAtom() {
			return child.Children[1].Atom, true
		}
	}
	return "", false
}

func extractActionTemplate(actionNode ast.Node, durative bool, opts Options, file string) (task.ActionTemplate, []string, error) {
	if len(actionNode.Children) < 2 || !actionNode.Children[1].IsAtom() {
		return task.ActionTemplate{}, nil, tplerr.New(tplerr.MalformedSyntax, "action block missing a name")
	}
	name := actionNode.Children[1].Atom
	body := actionNode.Children[2:]

	tmpl := task.ActionTemplate{Name: name, Durative: durative, Duration: opts.DefaultDuration}
	var warnings []string

	if paramsNode, ok := findKeyValue(body, ":parameters"); ok {
		tmpl.Params = toParamTypes(parseTypedNames(paramsNode.Children))
	}

	if durative {
		if durNode, ok := findKeyValue(body, ":duration"); ok {
			f, err := parser.ParseFormula(durNode)
			if err != nil {
				return task.ActionTemplate{}, nil, err
			}
			dc, ok := f.(ast.DurationConstraint)
			if ok && dc.Op == ast.OpEq && dc.IsConstant {
				tmpl.Duration = dc.Constant
			} else {
				warnings = append(warnings, "action "+name+": unsupported duration expression, defaulting to "+floatStr(opts.DefaultDuration))
			}
		}

		if condNode, ok := findKeyValue(body, ":condition"); ok {
			f, err := parser.ParseFormula(condNode)
			if err != nil {
				return task.ActionTemplate{}, nil, err
			}
			start, over, end, err := collectTemporalConditions(f)
			if err != nil {
				return task.ActionTemplate{}, nil, err
			}
			tmpl.CondStart, tmpl.CondOver, tmpl.CondEnd = start, over, end
		}

		if effNode, ok := findKeyValue(body, ":effect"); ok {
			f, err := parser.ParseFormula(effNode)
			if err != nil {
				return task.ActionTemplate{}, nil, err
			}
			effStart, effEnd, err := collectTemporalEffects(f)
			if err != nil {
				return task.ActionTemplate{}, nil, err
			}
			tmpl.EffStart, tmpl.EffEnd = effStart, effEnd
		}
	} else {
		if precondNode, ok := findKeyValue(body, ":precondition"); ok {
			f, err := parser.ParseFormula(precondNode)
			if err != nil {
				return task.ActionTemplate{}, nil, err
			}
			conds, err := flattenConditions(f, false)
			if err != nil {
				return task.ActionTemplate{}, nil, err
			}
			tmpl.CondStart = conds
		}
		if effNode, ok := findKeyValue(body, ":effect"); ok {
			f, err := parser.ParseFormula(effNode)
			if err != nil {
				return task.ActionTemplate{}, nil, err
			}
			effs, err := flattenEffects(f, false)
			if err != nil {
				return task.ActionTemplate{}, nil, err
			}
			tmpl.EffEnd = effs
		}
	}

	return tmpl, warnings, nil
}
