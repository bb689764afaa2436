package task

import "strings"

// FactKey identifies a ground (predicate, argument-tuple) pair.
type FactKey struct {
	Predicate string
	Args      string // arguments joined by a NUL separator
}

// NewFactKey builds a FactKey from a predicate name and ground arguments.
func NewFactKey(predicate string, args []string) FactKey {
	return FactKey{Predicate: predicate, Args: strings.Join(args, "\x00")}
}

// Arguments splits the key's joined argument string back into a slice.
func (k FactKey) Arguments() []string {
	if k.Args == "" {
		return nil
	}
	return strings.Split(k.Args, "\x00")
}

func (k FactKey) String() string {
	args := k.Arguments()
	if len(args) == 0 {
		return "(" + k.Predicate + ")"
	}
	return "(" + k.Predicate + " " + strings.Join(args, " ") + ")"
}

// FactIndex assigns a stable integer identity, used as a bit-vector index,
// to every distinct ground (predicate, argument-tuple) encountered while
// compiling a task's initial state, goal, and action effects. Index
// stability across a task's lifetime is a hard invariant (§4.3): once
// assigned, a fact's index never changes.
type FactIndex struct {
	order []FactKey
	index map[FactKey]int
}

// NewFactIndex returns an empty fact index.
func NewFactIndex() *FactIndex {
	return &FactIndex{index: make(map[FactKey]int)}
}

// Intern returns the stable index for (predicate, args), assigning a fresh
// one in first-seen order if this is the first time it's encountered.
func (f *FactIndex) Intern(predicate string, args []string) int {
	key := NewFactKey(predicate, args)
	if idx, ok := f.index[key]; ok {
		return idx
	}
	idx := len(f.order)
	f.order = append(f.order, key)
	f.index[key] = idx
	return idx
}

// Lookup returns the index for (predicate, args) without assigning one.
func (f *FactIndex) Lookup(predicate string, args []string) (int, bool) {
	idx, ok := f.index[NewFactKey(predicate, args)]
	return idx, ok
}

// Len returns the number of distinct ground facts interned so far.
func (f *FactIndex) Len() int { return len(f.order) }

// Key returns the FactKey assigned to idx.
func (f *FactIndex) Key(idx int) FactKey { return f.order[idx] }

// Keys returns every interned key in stable index order.
func (f *FactIndex) Keys() []FactKey {
	out := make([]FactKey, len(f.order))
	copy(out, f.order)
	return out
}
