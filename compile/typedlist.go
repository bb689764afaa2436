package compile

import (
	"strings"

	"github.com/corox/temporalplan/ast"
	"github.com/corox/temporalplan/task"
)

// namedType is one name awaiting (or already given) a PDDL typed-list type.
type namedType struct {
	Name string
	Type string
}

// parseTypedNames parses a PDDL typed-list body such as
// "?e - entity ?p - position" or "pos1 pos2 - position north south -
// orientation obj1 - object" into (name, type) pairs. A run of names
// followed by "- Type" assigns Type to every name in the run; trailing
// names with no following dash get type "".
func parseTypedNames(tokens []ast.Node) []namedType {
	var out []namedType
	var pending []string

	flush := func(typeName string) {
		for _, n := range pending {
			out = append(out, namedType{Name: n, Type: typeName})
		}
		pending = pending[:0]
	}

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		if !tok.IsAtom() {
			i++
			continue
		}
		if tok.Atom == "-" {
			if i+1 < len(tokens) && tokens[i+1].IsAtom() {
				flush(tokens[i+1].Atom)
				i += 2
				continue
			}
			flush("")
			i++
			continue
		}
		pending = append(pending, tok.Atom)
		i++
	}
	flush("")
	return out
}

func toParamTypes(names []namedType) []task.ParamType {
	out := make([]task.ParamType, len(names))
	for i, n := range names {
		out[i] = task.ParamType{Name: n.Name, Type: n.Type}
	}
	return out
}

func toObjects(names []namedType) []task.Object {
	out := make([]task.Object, len(names))
	for i, n := range names {
		out[i] = task.Object{Name: n.Name, Type: n.Type}
	}
	return out
}

// findKeyValue scans a flat key/value-style s-expression body (as found
// inside :action / :durative-action blocks, where ":parameters" is an atom
// immediately followed by its value node) for the first value following an
// atom equal to key (case-insensitively).
func findKeyValue(body []ast.Node, key string) (ast.Node, bool) {
	key = strings.ToLower(key)
	for i := 0; i < len(body); i++ {
		if body[i].IsAtom() && strings.ToLower(body[i].Atom) == key && i+1 < len(body) {
			return body[i+1], true
		}
	}
	return ast.Node{}, false
}
