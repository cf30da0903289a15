package trigger

import (
	"github.com/torchbearer/chronicle/internal/calendar"
	"github.com/torchbearer/chronicle/internal/simerr"
	"github.com/torchbearer/chronicle/internal/timeline"
)

// allowedTransitions defines the event lifecycle. Terminal states
// have no exits; restamping a completed event is rejected.
var allowedTransitions = map[calendar.Status][]calendar.Status{
	calendar.StatusPending:   {calendar.StatusTriggered, calendar.StatusCompleted, calendar.StatusFailed},
	calendar.StatusTriggered: {calendar.StatusCompleted, calendar.StatusFailed},
}

// AddEvent validates the event and returns a new snapshot with it
// appended. An empty status defaults to pending. Duplicate ids are
// rejected and the caller's snapshot is never modified.
func AddEvent(snap calendar.Snapshot, ev calendar.Event) (calendar.Snapshot, error) {
	if ev.ID == "" {
		return calendar.Snapshot{}, simerr.New(simerr.CodeInvalidFormat, "event id is required")
	}
	if ev.Name == "" {
		return calendar.Snapshot{}, simerr.New(simerr.CodeInvalidFormat, "event %q: name is required", ev.ID)
	}
	if ev.Status == "" {
		ev.Status = calendar.StatusPending
	}
	if !calendar.ValidStatuses[ev.Status] {
		return calendar.Snapshot{}, simerr.New(simerr.CodeInvalidStatus,
			"event %q: unknown status %q", ev.ID, ev.Status)
	}
	if ev.TriggerDate != "" {
		if _, err := timeline.ParseDate(ev.TriggerDate); err != nil {
			return calendar.Snapshot{}, err
		}
	}
	if ev.TriggerTime != "" {
		if _, err := timeline.ParseClock(ev.TriggerTime); err != nil {
			return calendar.Snapshot{}, err
		}
	}
	if ev.Recurrence != "" {
		switch ev.Recurrence {
		case calendar.RecurrenceDaily, calendar.RecurrenceWeekly, calendar.RecurrenceMonthly:
		default:
			return calendar.Snapshot{}, simerr.New(simerr.CodeUnsupportedRecurrence,
				"event %q: unsupported recurrence %q", ev.ID, ev.Recurrence)
		}
	}
	if snap.FindEvent(ev.ID) >= 0 {
		return calendar.Snapshot{}, simerr.New(simerr.CodeDuplicateEvent,
			"event %q already exists", ev.ID)
	}

	out := snap.Clone()
	out.Events = append(out.Events, ev.Clone())
	return out, nil
}

// UpdateEventStatus returns a new snapshot with the event moved to
// the given status. Only lifecycle transitions are allowed; setting
// the current status again is a no-op that still returns a fresh
// snapshot.
func UpdateEventStatus(snap calendar.Snapshot, eventID string, status calendar.Status) (calendar.Snapshot, error) {
	if !calendar.ValidStatuses[status] {
		return calendar.Snapshot{}, simerr.New(simerr.CodeInvalidStatus, "unknown status %q", status)
	}
	i := snap.FindEvent(eventID)
	if i < 0 {
		return calendar.Snapshot{}, simerr.New(simerr.CodeNotFound, "event %q not found", eventID)
	}

	current := snap.Events[i].Status
	if current != status && !transitionAllowed(current, status) {
		return calendar.Snapshot{}, simerr.New(simerr.CodeInvalidStatus,
			"event %q: cannot move from %s to %s", eventID, current, status)
	}

	out := snap.Clone()
	out.Events[i].Status = status
	return out, nil
}

// RemoveEvent returns a new snapshot without the given event.
func RemoveEvent(snap calendar.Snapshot, eventID string) (calendar.Snapshot, error) {
	i := snap.FindEvent(eventID)
	if i < 0 {
		return calendar.Snapshot{}, simerr.New(simerr.CodeNotFound, "event %q not found", eventID)
	}
	out := snap.Clone()
	out.Events = append(out.Events[:i], out.Events[i+1:]...)
	return out, nil
}

func transitionAllowed(from, to calendar.Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
