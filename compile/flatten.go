package compile

import (
	"strconv"

	"github.com/corox/temporalplan/ast"
	"github.com/corox/temporalplan/task"
	"github.com/corox/temporalplan/tplerr"
)

// flattenConditions lowers a formula tree into a flat Condition list per
// §4.2/§4.3. Or is rejected rather than silently collapsed into And — see
// the Open Question resolution in DESIGN.md.
func flattenConditions(f ast.Formula, negate bool) ([]task.Condition, error) {
	switch v := f.(type) {
	case ast.Predicate:
		return []task.Condition{{
			Predicate: v.Name,
			Args:      v.Args,
			Negated:   v.Negated != negate,
		}}, nil
	case ast.And:
		var out []task.Condition
		for _, op := range v.Operands {
			sub, err := flattenConditions(op, negate)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	case ast.Not:
		return flattenConditions(v.Operand, !negate)
	case ast.Or:
		return nil, tplerr.New(tplerr.UnsupportedFeature, "disjunction in a condition is not supported: %s", v.String())
	case ast.AtStart:
		return flattenConditions(v.Operand, negate)
	case ast.AtEnd:
		return flattenConditions(v.Operand, negate)
	case ast.OverAll:
		return flattenConditions(v.Operand, negate)
	default:
		return nil, tplerr.New(tplerr.MalformedSyntax, "unexpected formula in condition position: %s", f.String())
	}
}

// flattenEffects lowers a formula tree into a flat Effect list.
func flattenEffects(f ast.Formula, del bool) ([]task.Effect, error) {
	switch v := f.(type) {
	case ast.Predicate:
		return []task.Effect{{
			Predicate: v.Name,
			Args:      v.Args,
			IsDelete:  v.Negated != del,
		}}, nil
	case ast.And:
		var out []task.Effect
		for _, op := range v.Operands {
			sub, err := flattenEffects(op, del)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	case ast.Not:
		return flattenEffects(v.Operand, !del)
	default:
		return nil, tplerr.New(tplerr.MalformedSyntax, "unexpected formula in effect position: %s", f.String())
	}
}

// collectTemporalConditions partitions a durative action's :condition
// formula into its three temporal groups, descending through And and
// routing each AtStart/OverAll/AtEnd-tagged conjunct to its group. An
// untagged conjunct defaults to at-start, per §4.3.
func collectTemporalConditions(f ast.Formula) (start, over, end []task.Condition, err error) {
	switch v := f.(type) {
	case ast.AtStart:
		conds, e := flattenConditions(v.Operand, false)
		return conds, nil, nil, e
	case ast.OverAll:
		conds, e := flattenConditions(v.Operand, false)
		return nil, conds, nil, e
	case ast.AtEnd:
		conds, e := flattenConditions(v.Operand, false)
		return nil, nil, conds, e
	case ast.And:
		for _, op := range v.Operands {
			s, o, e2, err := collectTemporalConditions(op)
			if err != nil {
				return nil, nil, nil, err
			}
			start = append(start, s...)
			over = append(over, o...)
			end = append(end, e2...)
		}
		return start, over, end, nil
	default:
		conds, e := flattenConditions(f, false)
		return conds, nil, nil, e
	}
}

// collectTemporalEffects partitions a durative action's :effect formula
// into at-start / at-end groups, defaulting an untagged conjunct to at-end.
func collectTemporalEffects(f ast.Formula) (start, end []task.Effect, err error) {
	switch v := f.(type) {
	case ast.AtStart:
		effs, e := flattenEffects(v.Operand, false)
		return effs, nil, e
	case ast.AtEnd:
		effs, e := flattenEffects(v.Operand, false)
		return nil, effs, e
	case ast.And:
		for _, op := range v.Operands {
			s, e2, err := collectTemporalEffects(op)
			if err != nil {
				return nil, nil, err
			}
			start = append(start, s...)
			end = append(end, e2...)
		}
		return start, end, nil
	default:
		effs, e := flattenEffects(f, false)
		return nil, effs, e
	}
}

func floatStr(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
