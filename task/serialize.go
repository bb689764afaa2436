package task

// Snapshot is a flat, serialisable view of a compiled Task. FactIndex's
// internal maps aren't directly marshalable, so Snapshot stores its
// first-seen key order instead — from which the index rebuilds exactly
// (§4.3's stable-numbering guarantee makes this a faithful round trip).
type Snapshot struct {
	DomainName      string           `yaml:"domain_name"`
	ProblemName     string           `yaml:"problem_name"`
	Requirements    []string         `yaml:"requirements"`
	Types           []string         `yaml:"types"`
	Predicates      []PredicateSig   `yaml:"predicates"`
	Objects         []Object         `yaml:"objects"`
	Actions         []ActionTemplate `yaml:"actions"`
	FactKeys        []FactKey        `yaml:"fact_keys"`
	InitialFacts    []bool           `yaml:"initial_facts"`
	InitialNumeric  map[string]float64 `yaml:"initial_numeric"`
	GoalConditions  []Condition      `yaml:"goal_conditions"`
	MutexGroups     []MutexGroup     `yaml:"mutex_groups"`
	DefaultDuration float64          `yaml:"default_duration"`
	Warnings        []string         `yaml:"warnings"`
}

// Snapshot captures t as a flat, serialisable structure.
func (t *Task) Snapshot() Snapshot {
	return Snapshot{
		DomainName:      t.DomainName,
		ProblemName:     t.ProblemName,
		Requirements:    t.Requirements,
		Types:           t.Types,
		Predicates:      t.Predicates,
		Objects:         t.Objects,
		Actions:         t.Actions,
		FactKeys:        t.Facts.Keys(),
		InitialFacts:    t.InitialFacts,
		InitialNumeric:  t.InitialNumeric,
		GoalConditions:  t.GoalConditions,
		MutexGroups:     t.MutexGroups,
		DefaultDuration: t.DefaultDuration,
		Warnings:        t.Warnings,
	}
}

// FromSnapshot reconstructs a Task from a Snapshot, rebuilding the fact
// index by re-interning keys in their original stable order.
func FromSnapshot(s Snapshot) *Task {
	t := NewTask()
	t.DomainName = s.DomainName
	t.ProblemName = s.ProblemName
	t.Requirements = s.Requirements
	t.Types = s.Types
	t.Predicates = s.Predicates
	t.Objects = s.Objects
	t.Actions = s.Actions
	t.InitialFacts = s.InitialFacts
	t.InitialNumeric = s.InitialNumeric
	if t.InitialNumeric == nil {
		t.InitialNumeric = make(map[string]float64)
	}
	t.GoalConditions = s.GoalConditions
	t.MutexGroups = s.MutexGroups
	t.DefaultDuration = s.DefaultDuration
	t.Warnings = s.Warnings

	for _, k := range s.FactKeys {
		t.Facts.Intern(k.Predicate, k.Arguments())
	}
	return t
}
