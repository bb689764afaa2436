package state

import (
	"sort"

	"github.com/corox/temporalplan/task"
)

// StateSpace owns the full ground-action registry for a task, built once by
// grounding every action template against the task's declared objects. It
// is the object the search package drives — the task itself stays an
// immutable set of templates (§4.3's property that action count equals the
// number of parsed action blocks, not the grounded count).
type StateSpace struct {
	Task    *task.Task
	Actions []GroundAction
}

// NewStateSpace grounds every action template once and returns the space.
func NewStateSpace(t *task.Task) *StateSpace {
	return &StateSpace{Task: t, Actions: groundAllActions(t)}
}

// InitialState builds the task's starting TemporalState: the initial
// classical facts and numeric fluents, no scheduled effects, clock at 0.
func (sp *StateSpace) InitialState() TemporalState {
	cls := NewClassicalState(len(sp.Task.InitialFacts))
	copy(cls.Facts, sp.Task.InitialFacts)
	for k, v := range sp.Task.InitialNumeric {
		cls.Numeric[k] = v
	}
	return TemporalState{Classical: cls}
}

// stateSatisfies reports whether every condition holds against cls. A fact
// absent from the index (Predicate unknown) is permanently false, so a
// positive condition on it fails and a negated condition on it holds.
func (sp *StateSpace) stateSatisfies(cls ClassicalState, conds []task.Condition) bool {
	for _, c := range conds {
		idx, ok := sp.Task.Facts.Lookup(c.Predicate, groundArgNames(c.Args))
		held := ok && idx < len(cls.Facts) && cls.Facts[idx]
		if held == c.Negated {
			return false
		}
	}
	return true
}

// projectState applies every scheduled effect with FireTime < cutoff, in
// fire-time order with deletes applied before adds at each distinct time,
// to a fresh clone of cls. Used to evaluate a durative action's at-end
// conditions against the state as it will look once its own start-time
// window has elapsed.
func (sp *StateSpace) projectState(cls ClassicalState, scheduled []ScheduledEffect, cutoff float64) ClassicalState {
	out := cls.Clone()
	due := make([]ScheduledEffect, 0, len(scheduled))
	for _, se := range scheduled {
		if se.FireTime < cutoff {
			due = append(due, se)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].FireTime < due[j].FireTime })
	for i := 0; i < len(due); {
		j := i
		for j < len(due) && due[j].FireTime == due[i].FireTime {
			j++
		}
		applyEffectsDeletesFirst(sp.Task, &out, due[i:j])
		i = j
	}
	return out
}

// applyEffectsDeletesFirst mutates cls in place: every delete effect first
// (in slice order), then every add effect (in slice order). This is the
// deterministic tie-break policy of §4.6 — ties are broken by the
// caller-supplied slice order, never by a global sequence counter.
func applyEffectsDeletesFirst(t *task.Task, cls *ClassicalState, effects []ScheduledEffect) {
	for _, se := range effects {
		if !se.Effect.IsDelete {
			continue
		}
		idx, ok := t.Facts.Lookup(se.Effect.Predicate, groundArgNames(se.Effect.Args))
		if ok && idx < len(cls.Facts) {
			cls.Facts[idx] = false
		}
	}
	for _, se := range effects {
		if se.Effect.IsDelete {
			continue
		}
		idx, ok := t.Facts.Lookup(se.Effect.Predicate, groundArgNames(se.Effect.Args))
		if ok && idx < len(cls.Facts) {
			cls.Facts[idx] = true
		}
	}
}

// overAllSafe reports whether starting ga at startTime would not conflict
// with any effect already scheduled to land strictly inside the action's
// own (start, start+duration) execution window, and vice versa — that no
// in-flight action's over-all conditions would be violated by ga's own
// start-time effects. This is the cheap local half of §4.5's exclusion
// check; the stn package separately enforces the rigid timing constraint.
func (sp *StateSpace) overAllSafe(s TemporalState, ga GroundAction, startTime float64) bool {
	if len(ga.CondOver) == 0 && len(s.InFlight) == 0 {
		return true
	}
	endTime := startTime + ga.Duration

	for _, se := range s.Scheduled {
		if se.FireTime <= startTime || se.FireTime >= endTime {
			continue
		}
		if effectViolates(ga.CondOver, se.Effect) {
			return false
		}
	}

	for _, inf := range s.InFlight {
		for _, e := range ga.EffStart {
			if effectViolates(inf.OverAll, e) {
				return false
			}
		}
	}
	return true
}

// effectViolates reports whether applying eff would falsify any condition
// in conds (a delete of a positively-required fact, or an add of a
// negatively-required fact).
func effectViolates(conds []task.Condition, eff task.Effect) bool {
	for _, c := range conds {
		if c.Predicate != eff.Predicate || len(c.Args) != len(eff.Args) {
			continue
		}
		match := true
		for i := range c.Args {
			if c.Args[i].Name != eff.Args[i].Name {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if !c.Negated && eff.IsDelete {
			return true
		}
		if c.Negated && !eff.IsDelete {
			return true
		}
	}
	return false
}

// ApplicableActions returns the IDs of every ground action that may start
// at startTime in state s: its start and over-all conditions hold now, its
// end conditions hold against the state projected to its end time, and it
// does not conflict with any in-flight over-all condition.
func (sp *StateSpace) ApplicableActions(s TemporalState, startTime float64) []int {
	var out []int
	for _, ga := range sp.Actions {
		if !sp.stateSatisfies(s.Classical, ga.CondStart) {
			continue
		}
		if !sp.stateSatisfies(s.Classical, ga.CondOver) {
			continue
		}
		if len(ga.CondEnd) > 0 {
			projected := sp.projectState(s.Classical, s.Scheduled, startTime+ga.Duration)
			if !sp.stateSatisfies(projected, ga.CondEnd) {
				continue
			}
		}
		if !sp.overAllSafe(s, ga, startTime) {
			continue
		}
		out = append(out, ga.ID)
	}
	return out
}

// Apply starts ga at startTime: at-start effects land immediately, at-end
// effects are enqueued on the scheduled-effects agenda, and — if ga has
// over-all conditions to protect — an InFlight entry is registered so later
// applicability checks can detect a conflicting concurrent effect.
func (sp *StateSpace) Apply(s TemporalState, ga GroundAction, startTime float64) TemporalState {
	next := s.Clone()
	applyEffectsDeletesFirst(sp.Task, &next.Classical, effectsAsScheduled(ga.EffStart, ga.ID, startTime))

	endTime := startTime + ga.Duration
	for i, e := range ga.EffEnd {
		next.Scheduled = append(next.Scheduled, ScheduledEffect{
			FireTime:       endTime,
			Effect:         e,
			OriginActionID: ga.ID,
			EffectID:       i,
		})
	}
	if len(ga.CondOver) > 0 {
		next.InFlight = append(next.InFlight, InFlightAction{
			ActionID:  ga.ID,
			StartTime: startTime,
			EndTime:   endTime,
			OverAll:   ga.CondOver,
		})
	}
	if startTime > next.Clock {
		next.Clock = startTime
	}
	return next
}

func effectsAsScheduled(effs []task.Effect, actionID int, fireTime float64) []ScheduledEffect {
	out := make([]ScheduledEffect, len(effs))
	for i, e := range effs {
		out[i] = ScheduledEffect{FireTime: fireTime, Effect: e, OriginActionID: actionID, EffectID: i}
	}
	return out
}

// ProcessScheduledEffects advances the clock to the earliest pending
// scheduled-effect fire-time, applies every effect due at that instant
// (deletes before adds), and drops any InFlight entry whose EndTime has
// been reached. It reports ok=false when there is nothing left to advance
// to (the agenda is empty).
func (sp *StateSpace) ProcessScheduledEffects(s TemporalState) (TemporalState, bool) {
	if len(s.Scheduled) == 0 {
		return s, false
	}
	next := s.Clone()

	earliest := next.Scheduled[0].FireTime
	for _, se := range next.Scheduled[1:] {
		if se.FireTime < earliest {
			earliest = se.FireTime
		}
	}

	var due, remaining []ScheduledEffect
	for _, se := range next.Scheduled {
		if se.FireTime <= earliest {
			due = append(due, se)
		} else {
			remaining = append(remaining, se)
		}
	}
	applyEffectsDeletesFirst(sp.Task, &next.Classical, due)
	next.Scheduled = remaining

	var stillInFlight []InFlightAction
	for _, inf := range next.InFlight {
		if inf.EndTime > earliest {
			stillInFlight = append(stillInFlight, inf)
		}
	}
	next.InFlight = stillInFlight

	if earliest > next.Clock {
		next.Clock = earliest
	}
	return next, true
}

// GoalSatisfied reports whether s's classical facts satisfy every goal
// condition and the scheduled-effects agenda is empty — a plan is only
// complete once every in-flight action has actually finished (§4.7).
func (sp *StateSpace) GoalSatisfied(s TemporalState) bool {
	return len(s.Scheduled) == 0 && sp.stateSatisfies(s.Classical, sp.Task.GoalConditions)
}
