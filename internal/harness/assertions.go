package harness

import "fmt"

// EvaluateAssertions checks every assertion against the trace and
// final snapshot, returning one message per failure. All assertions
// are evaluated; the first failure does not short-circuit the rest.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if msg := evaluate(result, &a); msg != "" {
			failures = append(failures, fmt.Sprintf("assertion %d (%s): %s", i, a.Type, msg))
		}
	}
	return failures
}

func evaluate(result *Result, a *Assertion) string {
	switch a.Type {
	case AssertClockAt:
		cur := result.Final.Current
		if cur.Date != a.Date || cur.Time != a.Time {
			return fmt.Sprintf("clock is %s %s, want %s %s", cur.Date, cur.Time, a.Date, a.Time)
		}

	case AssertEventFired:
		if countFired(result, a.Event) == 0 {
			return fmt.Sprintf("event %q never fired", a.Event)
		}

	case AssertFiredCount:
		if n := countFired(result, a.Event); n != a.Count {
			return fmt.Sprintf("event %q fired %d times, want %d", a.Event, n, a.Count)
		}

	case AssertEventStatus:
		i := result.Final.FindEvent(a.Event)
		if i < 0 {
			return fmt.Sprintf("event %q not in final calendar", a.Event)
		}
		if got := string(result.Final.Events[i].Status); got != a.Status {
			return fmt.Sprintf("event %q is %s, want %s", a.Event, got, a.Status)
		}

	case AssertNPCAt:
		npc, ok := result.Final.NPCs[a.NPC]
		if !ok {
			return fmt.Sprintf("npc %q is not tracked in the final calendar", a.NPC)
		}
		if npc.Location != a.Location {
			return fmt.Sprintf("npc %q is at %q, want %q", a.NPC, npc.Location, a.Location)
		}

	default:
		// Load-time validation rejects unknown types; guard anyway for
		// assertions constructed in code.
		return fmt.Sprintf("unknown assertion type %q", a.Type)
	}
	return ""
}

func countFired(result *Result, eventID string) int {
	n := 0
	for _, ev := range result.Trace {
		if ev.Type == "fired" && ev.EventID == eventID {
			n++
		}
	}
	return n
}
