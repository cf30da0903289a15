// Package trigger decides which authored events become due when the
// campaign clock moves between two timestamps, in what order they
// fire, and how their status advances. It also carries the event
// mutators (add, status update, remove), the forward-looking upcoming
// query, and recurrence date advancement.
//
// Evaluation is deterministic and replayable: satisfying events sort
// by priority descending, then by trigger timestamp ascending, and a
// stable sort preserves authored order for remaining ties.
package trigger

import (
	"sort"

	"github.com/torchbearer/chronicle/internal/calendar"
	"github.com/torchbearer/chronicle/internal/timeline"
)

// Result is the outcome of one trigger check: the events that fired,
// in firing order, and the snapshot with status transitions applied.
type Result struct {
	Fired    []calendar.Event
	Snapshot calendar.Snapshot
}

// CheckTriggers evaluates every event in the snapshot against the
// transition from (oldDate, oldTime) to (newDate, newTime) and
// returns the fired subset plus a new snapshot. The input snapshot is
// never modified.
//
// The date/time window is half-open: an event timestamp strictly
// after old and at or before new fires. Chained checks over [T0,T1]
// then [T1,T2] therefore fire each event exactly once. Each event is
// evaluated independently:
//
//   - a location-scoped event is suppressed unless the context's
//     current location matches the scope
//   - a date/time trigger inside the window fires
//   - otherwise the condition, if any, is evaluated at the new time
//   - completed and failed events are skipped unless recurring
//
// A firing pending non-recurring event becomes triggered. A firing
// recurring event keeps its status; its next occurrence is advanced
// separately by AdvanceRecurringEventDate.
func CheckTriggers(snap calendar.Snapshot, oldDate, oldTime, newDate, newTime string, ctx Context) (Result, error) {
	window, err := timeline.Elapsed(oldDate, oldTime, newDate, newTime)
	if err != nil {
		return Result{}, err
	}

	out := snap.Clone()

	type candidate struct {
		index   int // index into out.Events
		elapsed int // minutes from old to trigger; maxInt without a date
	}
	var fired []candidate

	for i, ev := range out.Events {
		if ev.Status.Terminal() && !ev.Recurring() {
			continue
		}
		if ev.Location != "" && ev.Location != ctx.CurrentLocation {
			continue
		}

		satisfied := false
		elapsed := maxElapsed
		if ev.HasDateTrigger() {
			at, err := timeline.Elapsed(oldDate, oldTime, ev.TriggerDate, ev.EffectiveTriggerTime())
			if err == nil {
				elapsed = at
				if at > 0 && at <= window {
					satisfied = true
				}
			}
		}
		if !satisfied && conditionMet(ev.Condition, newDate, newTime, ctx) {
			satisfied = true
		}
		if satisfied {
			fired = append(fired, candidate{index: i, elapsed: elapsed})
		}
	}

	sort.SliceStable(fired, func(a, b int) bool {
		ea, eb := out.Events[fired[a].index], out.Events[fired[b].index]
		if ea.Priority != eb.Priority {
			return ea.Priority > eb.Priority
		}
		return fired[a].elapsed < fired[b].elapsed
	})

	result := Result{Snapshot: out}
	for _, c := range fired {
		ev := &out.Events[c.index]
		if ev.Status == calendar.StatusPending && !ev.Recurring() {
			ev.Status = calendar.StatusTriggered
		}
		result.Fired = append(result.Fired, ev.Clone())
	}
	return result, nil
}

// maxElapsed sorts condition-only events after dated ones within the
// same priority.
const maxElapsed = int(^uint(0) >> 1)
