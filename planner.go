// Package temporalplan is the public library façade over the lexer,
// parser, compiler, state space, heuristics, and A* search engine — the
// surface described in §6.
package temporalplan

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/corox/temporalplan/compile"
	"github.com/corox/temporalplan/config"
	"github.com/corox/temporalplan/heuristic"
	"github.com/corox/temporalplan/search"
	"github.com/corox/temporalplan/state"
	"github.com/corox/temporalplan/task"
	"github.com/corox/temporalplan/taskcache"
	"github.com/corox/temporalplan/tplerr"
)

// Version is the library's semantic version, reported by Info.
const Version = "0.1.0"

// Task is the public alias for a compiled planning task.
type Task = task.Task

// Plan is the public alias for a solved plan.
type Plan = search.Plan

// Status mirrors search.Status for callers that don't want to import the
// search package directly.
type Status = search.Status

const (
	StatusSolved      = search.StatusSolved
	StatusNoSolution  = search.StatusNoSolution
	StatusInterrupted = search.StatusInterrupted
)

// Info describes the library's capabilities, per §6.
type Info struct {
	Version           string
	Algorithm         string
	SupportsDurative  bool
	SupportsNumeric   bool
}

// Planner is the library's entry point: it owns a heuristic and exposes
// load/solve operations over planning-description text or files. ID
// identifies this instance in logs; it has no bearing on search behavior.
type Planner struct {
	ID        string
	Heuristic heuristic.Heuristic
	Options   search.Options

	// cache memoizes compiled tasks across Load calls, keyed by a digest of
	// the domain/problem text. Nil means caching is disabled (the default
	// for New()).
	cache *taskcache.Cache
}

// New constructs a Planner with the default heuristic (HMaxRelaxed) and
// A* engine.
func New() *Planner {
	h := heuristic.MaxRelaxed{}
	return &Planner{ID: uuid.NewString(), Heuristic: h, Options: search.Options{Heuristic: h}}
}

// NewWithConfig constructs a Planner using cfg's heuristic choice and
// search limits. If cfg.CacheDir is set, compiled tasks are memoized there
// across Load calls; a cache that fails to open is treated as disabled
// rather than a fatal error, since it is a pure performance optimization.
func NewWithConfig(cfg config.Config) *Planner {
	var h heuristic.Heuristic = heuristic.MaxRelaxed{}
	if cfg.DefaultHeuristic == "zero" {
		h = heuristic.Zero{}
	}
	opts := search.Options{Heuristic: h, NodeBudget: cfg.NodeBudget}
	if cfg.Deadline > 0 {
		opts.Deadline = time.Now().Add(cfg.Deadline)
	}
	p := &Planner{ID: uuid.NewString(), Heuristic: h, Options: opts}
	if cfg.CacheDir != "" {
		if c, err := taskcache.Open(cfg.CacheDir); err == nil {
			p.cache = c
		}
	}
	return p
}

// Close releases the planner's task cache, if one is open. Safe to call on
// a Planner with no cache.
func (p *Planner) Close() error {
	if p.cache == nil {
		return nil
	}
	return p.cache.Close()
}

// Info reports this build's capabilities.
func (p *Planner) Info() Info {
	return Info{
		Version:          Version,
		Algorithm:        "A* (best-first, admissible heuristic)",
		SupportsDurative: true,
		SupportsNumeric:  true,
	}
}

// LoadFromStrings compiles a domain/problem text pair into a Task, consulting
// the task cache first (if one is open) and populating it on a miss.
func (p *Planner) LoadFromStrings(domainText, problemText string) (*Task, error) {
	if p.cache == nil {
		return compile.FromStrings(domainText, problemText, compile.DefaultOptions())
	}

	key := taskcache.Key(domainText, problemText)
	if t, ok := p.cache.Get(key); ok {
		return t, nil
	}

	t, err := compile.FromStrings(domainText, problemText, compile.DefaultOptions())
	if err != nil {
		return nil, err
	}
	_ = p.cache.Put(key, t)
	return t, nil
}

// LoadFromFiles reads and compiles a domain/problem file pair.
func (p *Planner) LoadFromFiles(domainPath, problemPath string) (*Task, error) {
	domainText, err := readFile(domainPath)
	if err != nil {
		return nil, err
	}
	problemText, err := readFile(problemPath)
	if err != nil {
		return nil, err
	}
	return p.LoadFromStrings(domainText, problemText)
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", tplerr.Wrap(tplerr.IOFailure, err, "failed to read %s", path)
	}
	return string(b), nil
}

// Solve runs the A* engine over t and returns its terminal result.
func (p *Planner) Solve(t *Task) search.Result {
	sp := state.NewStateSpace(t)
	opts := p.Options
	if opts.Heuristic == nil {
		opts.Heuristic = p.Heuristic
	}
	return search.Solve(sp, opts)
}

// SolveFromFiles is a convenience wrapper combining LoadFromFiles and Solve.
func (p *Planner) SolveFromFiles(domainPath, problemPath string) (search.Result, error) {
	t, err := p.LoadFromFiles(domainPath, problemPath)
	if err != nil {
		return search.Result{}, err
	}
	return p.Solve(t), nil
}

// SolveFromStrings is a convenience wrapper combining LoadFromStrings and
// Solve.
func (p *Planner) SolveFromStrings(domainText, problemText string) (search.Result, error) {
	t, err := p.LoadFromStrings(domainText, problemText)
	if err != nil {
		return search.Result{}, err
	}
	return p.Solve(t), nil
}

// ActionSummary reports one action template's temporal-group shape.
type ActionSummary struct {
	Name           string
	Durative       bool
	Duration       float64
	StartConds     int
	OverAllConds   int
	EndConds       int
	StartEffects   int
	EndEffects     int
}

// TaskSummary reports a compiled task's size and, per action, its
// duration and condition/effect counts by temporal group — grounded on
// the original CLI's per-action demo printout.
type TaskSummary struct {
	DomainName   string
	ProblemName  string
	FactCount    int
	ObjectCount  int
	GoalCount    int
	Actions      []ActionSummary
}

// Explain builds a TaskSummary for t, for callers (typically a CLI report)
// that want a human-readable shape of the compiled task without re-walking
// its internals themselves.
func (p *Planner) Explain(t *Task) TaskSummary {
	summary := TaskSummary{
		DomainName:  t.DomainName,
		ProblemName: t.ProblemName,
		FactCount:   t.Facts.Len(),
		ObjectCount: len(t.Objects),
		GoalCount:   len(t.GoalConditions),
	}
	for _, a := range t.Actions {
		summary.Actions = append(summary.Actions, ActionSummary{
			Name:         a.Name,
			Durative:     a.Durative,
			Duration:     a.Duration,
			StartConds:   len(a.CondStart),
			OverAllConds: len(a.CondOver),
			EndConds:     len(a.CondEnd),
			StartEffects: len(a.EffStart),
			EndEffects:   len(a.EffEnd),
		})
	}
	return summary
}

// String renders a TaskSummary as a short human-readable report.
func (s TaskSummary) String() string {
	out := fmt.Sprintf("%s / %s: %d facts, %d objects, %d goal conditions\n",
		s.DomainName, s.ProblemName, s.FactCount, s.ObjectCount, s.GoalCount)
	for _, a := range s.Actions {
		out += fmt.Sprintf("  %-24s duration=%-6g start=%d over-all=%d end=%d eff-start=%d eff-end=%d\n",
			a.Name, a.Duration, a.StartConds, a.OverAllConds, a.EndConds, a.StartEffects, a.EndEffects)
	}
	return out
}
