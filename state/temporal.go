package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corox/temporalplan/task"
)

// ScheduledEffect is `{ fire-time, effect, origin-action-id }` — a member
// of the unordered multiset of pending timed effects.
type ScheduledEffect struct {
	FireTime       float64
	Effect         task.Effect
	OriginActionID int
	EffectID       int // index of Effect within the origin action's EffEnd list
}

// InFlightAction records a still-executing durative action's over-all
// conditions, so later applicability checks can detect a parallel effect
// that would violate them (§4.5's exclusion constraint).
type InFlightAction struct {
	ActionID  int
	StartTime float64
	EndTime   float64
	OverAll   []task.Condition
}

// TemporalState is `{ classical-state, scheduled-effects, clock }`.
type TemporalState struct {
	Classical ClassicalState
	Scheduled []ScheduledEffect
	InFlight  []InFlightAction
	Clock     float64
}

// Clone deep-copies everything so predecessors are never mutated.
func (s TemporalState) Clone() TemporalState {
	sched := make([]ScheduledEffect, len(s.Scheduled))
	copy(sched, s.Scheduled)
	inflight := make([]InFlightAction, len(s.InFlight))
	copy(inflight, s.InFlight)
	return TemporalState{
		Classical: s.Classical.Clone(),
		Scheduled: sched,
		InFlight:  inflight,
		Clock:     s.Clock,
	}
}

// canonicalEffect is the sort key for a scheduled effect's identity.
type canonicalEffect struct {
	FireTime       float64
	OriginActionID int
	EffectID       int
}

// IdentityKey is the closed-set dedup key: classical-state plus the
// canonicalised scheduled-effects, sorted by (fire-time, origin-action-id,
// effect-id). The raw clock is deliberately excluded — the search re-derives
// progress time from g-cost (§3).
func (s TemporalState) IdentityKey() string {
	effects := make([]canonicalEffect, len(s.Scheduled))
	for i, se := range s.Scheduled {
		effects[i] = canonicalEffect{se.FireTime, se.OriginActionID, se.EffectID}
	}
	sort.Slice(effects, func(i, j int) bool {
		a, b := effects[i], effects[j]
		if a.FireTime != b.FireTime {
			return a.FireTime < b.FireTime
		}
		if a.OriginActionID != b.OriginActionID {
			return a.OriginActionID < b.OriginActionID
		}
		return a.EffectID < b.EffectID
	})

	var b strings.Builder
	b.WriteString(s.Classical.IdentityKey())
	for _, e := range effects {
		fmt.Fprintf(&b, "~%.6f/%d/%d", e.FireTime, e.OriginActionID, e.EffectID)
	}
	return b.String()
}
