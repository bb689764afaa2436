// Package state holds the hybrid state representation (§3, §4.6): logical
// facts plus a future-effect agenda plus a clock, and the state-space
// operations (applicable-actions, apply) that drive successor generation.
package state

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// quantum is the grid numeric fluents are snapped to before hashing or
// comparing for closed-set identity (§9 design note: avoid hashing raw
// floats; quantise to a fixed decimal grid and use the same grid for
// epsilon-equality so the identity relation stays reflexive).
const quantum = 1e-6

// ClassicalState is a bit-vector of known ground facts plus a mapping from
// numeric-fluent names to real values.
type ClassicalState struct {
	Facts   []bool
	Numeric map[string]float64
}

// NewClassicalState returns a state with n fact bits, all clear.
func NewClassicalState(n int) ClassicalState {
	return ClassicalState{Facts: make([]bool, n), Numeric: make(map[string]float64)}
}

// Clone returns a deep copy, so predecessors are never mutated by apply.
func (s ClassicalState) Clone() ClassicalState {
	facts := make([]bool, len(s.Facts))
	copy(facts, s.Facts)
	numeric := make(map[string]float64, len(s.Numeric))
	for k, v := range s.Numeric {
		numeric[k] = v
	}
	return ClassicalState{Facts: facts, Numeric: numeric}
}

// Equal reports whether two states have identical bit-vectors and
// pointwise-equal (differing by less than quantum) numeric mappings.
func (s ClassicalState) Equal(other ClassicalState) bool {
	if len(s.Facts) != len(other.Facts) {
		return false
	}
	for i := range s.Facts {
		if s.Facts[i] != other.Facts[i] {
			return false
		}
	}
	if len(s.Numeric) != len(other.Numeric) {
		return false
	}
	for k, v := range s.Numeric {
		ov, ok := other.Numeric[k]
		if !ok || math.Abs(v-ov) >= quantum {
			return false
		}
	}
	return true
}

// IdentityKey renders a stable string key for closed-set membership,
// quantising numeric fluents onto the fixed decimal grid first.
func (s ClassicalState) IdentityKey() string {
	var b strings.Builder
	b.Grow(len(s.Facts) + 16*len(s.Numeric))
	for _, f := range s.Facts {
		if f {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	if len(s.Numeric) > 0 {
		keys := make([]string, 0, len(s.Numeric))
		for k := range s.Numeric {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			q := math.Round(s.Numeric[k]/quantum) * quantum
			fmt.Fprintf(&b, "|%s=%d", k, int64(math.Round(q/quantum)))
		}
	}
	return b.String()
}
