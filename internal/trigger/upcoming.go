package trigger

import (
	"sort"

	"github.com/torchbearer/chronicle/internal/calendar"
	"github.com/torchbearer/chronicle/internal/timeline"
)

// UpcomingEvents returns pending, date/time-triggered events due
// within the next lookaheadMinutes of the snapshot's current time,
// chronologically sorted. It is a read-only forward query: nothing
// fires and no status changes. Events due exactly now (elapsed 0) are
// excluded; those belong to trigger detection.
func UpcomingEvents(snap calendar.Snapshot, lookaheadMinutes int) ([]calendar.Event, error) {
	if lookaheadMinutes <= 0 {
		return nil, nil
	}

	type upcoming struct {
		event   calendar.Event
		elapsed int
	}
	var due []upcoming

	for _, ev := range snap.Events {
		if ev.Status != calendar.StatusPending || !ev.HasDateTrigger() {
			continue
		}
		elapsed, err := timeline.Elapsed(snap.Current.Date, snap.Current.Time,
			ev.TriggerDate, ev.EffectiveTriggerTime())
		if err != nil {
			continue // malformed authored date; skip, never block the query
		}
		if elapsed > 0 && elapsed <= lookaheadMinutes {
			due = append(due, upcoming{event: ev.Clone(), elapsed: elapsed})
		}
	}

	sort.SliceStable(due, func(a, b int) bool {
		return due[a].elapsed < due[b].elapsed
	})

	out := make([]calendar.Event, len(due))
	for i, u := range due {
		out[i] = u.event
	}
	return out, nil
}
