// Package harness runs campaign simulation scenarios end to end: it
// loads an initial calendar document, executes a sequence of time
// advances through the real engine packages, records a deterministic
// trace, and checks assertions against the trace and final state.
// Traces are compared against golden files so behavior changes
// surface as reviewable diffs.
package harness

import (
	"context"
	"fmt"

	"github.com/torchbearer/chronicle/internal/calendar"
	"github.com/torchbearer/chronicle/internal/content"
	"github.com/torchbearer/chronicle/internal/schedule"
	"github.com/torchbearer/chronicle/internal/store"
	"github.com/torchbearer/chronicle/internal/testutil"
	"github.com/torchbearer/chronicle/internal/timeline"
	"github.com/torchbearer/chronicle/internal/trigger"
)

// Run executes a scenario and returns its trace and final state.
//
// Each run gets a fresh in-memory history database, a numbered token
// sequence, and a logical clock for trace sequence numbers, so
// repeated runs produce byte-identical traces for golden comparison.
func Run(scenario *Scenario) (*Result, error) {
	snap, err := store.LoadSnapshot(scenario.Calendar)
	if err != nil {
		return nil, fmt.Errorf("load scenario calendar: %w", err)
	}

	hist, err := store.OpenHistory(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open scenario history: %w", err)
	}
	defer hist.Close()

	clock := testutil.NewDeterministicClock()
	tokens := testutil.NewTokenSequence(scenario.TokenPrefix)

	var resolver *schedule.Resolver
	if scenario.Content != "" {
		resolver = schedule.NewResolver(schedule.NewCache(), content.NewDirLoader(scenario.Content))
	}

	ctx := context.Background()
	result := NewResult()

	for i, step := range scenario.Steps {
		minutes, err := timeline.ParseDuration(step.Advance)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		oldDate, oldTime := snap.Current.Date, snap.Current.Time
		advanced, err := calendar.AdvanceTime(snap, minutes, step.Reason)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		tctx := trigger.Context{
			CurrentLocation:  step.Location,
			PreviousLocation: step.PrevLocation,
			Flags:            flagSet(step.Flags),
		}
		res, err := trigger.CheckTriggers(advanced, oldDate, oldTime,
			advanced.Current.Date, advanced.Current.Time, tctx)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		next := res.Snapshot
		var changes []schedule.Change
		if resolver != nil {
			changes, next, err = resolver.UpdateAll(next, stateSet(step.Flags))
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
		}

		token := tokens.Generate()
		err = hist.RecordAdvance(ctx, store.Advance{
			Token:    token,
			FromDate: oldDate,
			FromTime: oldTime,
			ToDate:   next.Current.Date,
			ToTime:   next.Current.Time,
			Minutes:  minutes,
			Reason:   step.Reason,
		}, res.Fired)
		if err != nil {
			return nil, fmt.Errorf("step %d: record advance: %w", i, err)
		}

		result.addAdvance(token, next.Current.Date, next.Current.Time, minutes, clock.Next())
		for _, ev := range res.Fired {
			result.addFired(ev.ID, ev.Priority, clock.Next())
		}
		for _, ch := range changes {
			result.addNPCMove(ch, clock.Next())
		}
		snap = next
	}

	result.Final = snap
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func flagSet(flags []string) map[string]bool {
	if len(flags) == 0 {
		return nil
	}
	out := make(map[string]bool, len(flags))
	for _, f := range flags {
		out[f] = true
	}
	return out
}

func stateSet(flags []string) schedule.GameState {
	if len(flags) == 0 {
		return nil
	}
	out := make(schedule.GameState, len(flags))
	for _, f := range flags {
		out[f] = true
	}
	return out
}
