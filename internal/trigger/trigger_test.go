package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torchbearer/chronicle/internal/calendar"
)

func snapshotAt(date, time string, events ...calendar.Event) calendar.Snapshot {
	return calendar.Snapshot{
		Current: calendar.Current{Date: date, Time: time, DayOfWeek: "Friday", Season: "autumn"},
		Events:  events,
	}
}

func datedEvent(id string, date, time string, priority int) calendar.Event {
	return calendar.Event{
		ID:          id,
		Name:        id,
		TriggerDate: date,
		TriggerTime: time,
		Priority:    priority,
		Status:      calendar.StatusPending,
	}
}

func TestCheckTriggers_EndToEnd(t *testing.T) {
	snap := snapshotAt("0735-10-12", "14:00",
		datedEvent("dawn-raid", "0735-10-13", "06:00", 5))

	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-13", "08:00", Context{})
	require.NoError(t, err)

	require.Len(t, res.Fired, 1)
	assert.Equal(t, "dawn-raid", res.Fired[0].ID)
	assert.Equal(t, calendar.StatusTriggered, res.Fired[0].Status)
	assert.Equal(t, calendar.StatusTriggered, res.Snapshot.Events[0].Status)
}

func TestCheckTriggers_DoesNotMutateInput(t *testing.T) {
	snap := snapshotAt("0735-10-12", "14:00",
		datedEvent("dawn-raid", "0735-10-13", "06:00", 5))

	_, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-13", "08:00", Context{})
	require.NoError(t, err)

	assert.Equal(t, calendar.StatusPending, snap.Events[0].Status,
		"caller's snapshot must stay untouched")
}

func TestCheckTriggers_HalfOpenWindow(t *testing.T) {
	atOld := datedEvent("at-old", "0735-10-12", "14:00", 0)
	atNew := datedEvent("at-new", "0735-10-13", "08:00", 0)
	inside := datedEvent("inside", "0735-10-12", "20:00", 0)
	before := datedEvent("before", "0735-10-12", "13:59", 0)
	after := datedEvent("after", "0735-10-13", "08:01", 0)

	snap := snapshotAt("0735-10-12", "14:00", atOld, atNew, inside, before, after)
	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-13", "08:00", Context{})
	require.NoError(t, err)

	var ids []string
	for _, ev := range res.Fired {
		ids = append(ids, ev.ID)
	}
	// (old, new]: the old boundary is excluded so chained checks over
	// adjacent windows cannot double-fire an event.
	assert.ElementsMatch(t, []string{"inside", "at-new"}, ids)
}

func TestCheckTriggers_ChainedWindowsFireOnce(t *testing.T) {
	ev := datedEvent("noon-bell", "0735-10-12", "12:00", 0)
	snap := snapshotAt("0735-10-12", "08:00", ev)

	first, err := CheckTriggers(snap, "0735-10-12", "08:00", "0735-10-12", "12:00", Context{})
	require.NoError(t, err)
	require.Len(t, first.Fired, 1)

	second, err := CheckTriggers(first.Snapshot, "0735-10-12", "12:00", "0735-10-12", "16:00", Context{})
	require.NoError(t, err)
	assert.Empty(t, second.Fired, "boundary event must not fire again in the next window")
}

func TestCheckTriggers_PriorityOrdering(t *testing.T) {
	snap := snapshotAt("0735-10-12", "14:00",
		datedEvent("low", "0735-10-12", "15:00", 1),
		datedEvent("high", "0735-10-12", "16:00", 10),
		datedEvent("mid", "0735-10-12", "17:00", 5))

	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-12", "18:00", Context{})
	require.NoError(t, err)

	require.Len(t, res.Fired, 3)
	assert.Equal(t, "high", res.Fired[0].ID)
	assert.Equal(t, "mid", res.Fired[1].ID)
	assert.Equal(t, "low", res.Fired[2].ID)
}

func TestCheckTriggers_TieBreakByTriggerTimeThenAuthoredOrder(t *testing.T) {
	a := datedEvent("later", "0735-10-12", "17:00", 3)
	b := datedEvent("sooner", "0735-10-12", "15:00", 3)
	c := datedEvent("sooner-twin", "0735-10-12", "15:00", 3)

	snap := snapshotAt("0735-10-12", "14:00", a, b, c)
	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-12", "18:00", Context{})
	require.NoError(t, err)

	require.Len(t, res.Fired, 3)
	assert.Equal(t, "sooner", res.Fired[0].ID)
	assert.Equal(t, "sooner-twin", res.Fired[1].ID, "stable sort keeps authored order")
	assert.Equal(t, "later", res.Fired[2].ID)
}

func TestCheckTriggers_LocationGating(t *testing.T) {
	scoped := datedEvent("ambush", "0735-10-12", "15:00", 0)
	scoped.Location = "blackwood"
	unscoped := datedEvent("storm", "0735-10-12", "15:00", 0)

	snap := snapshotAt("0735-10-12", "14:00", scoped, unscoped)

	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-12", "16:00",
		Context{CurrentLocation: "thornhaven"})
	require.NoError(t, err)
	require.Len(t, res.Fired, 1)
	assert.Equal(t, "storm", res.Fired[0].ID, "scoped event suppressed elsewhere")

	res, err = CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-12", "16:00",
		Context{CurrentLocation: "blackwood"})
	require.NoError(t, err)
	assert.Len(t, res.Fired, 2)
}

func TestCheckTriggers_RecurringStaysPending(t *testing.T) {
	rec := datedEvent("market-day", "0735-10-12", "15:00", 0)
	rec.Recurrence = calendar.RecurrenceDaily

	snap := snapshotAt("0735-10-12", "14:00", rec)
	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-12", "16:00", Context{})
	require.NoError(t, err)

	require.Len(t, res.Fired, 1)
	assert.Equal(t, calendar.StatusPending, res.Snapshot.Events[0].Status,
		"recurring events observe firing only through the result list")
}

func TestCheckTriggers_TerminalSuppression(t *testing.T) {
	done := datedEvent("done", "0735-10-12", "15:00", 0)
	done.Status = calendar.StatusCompleted

	doneRecurring := datedEvent("done-recurring", "0735-10-12", "15:00", 0)
	doneRecurring.Status = calendar.StatusCompleted
	doneRecurring.Recurrence = calendar.RecurrenceWeekly

	snap := snapshotAt("0735-10-12", "14:00", done, doneRecurring)
	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-12", "16:00", Context{})
	require.NoError(t, err)

	require.Len(t, res.Fired, 1)
	assert.Equal(t, "done-recurring", res.Fired[0].ID,
		"completed recurring events still fire; completed non-recurring never do")
	assert.Equal(t, calendar.StatusCompleted, res.Snapshot.Events[1].Status,
		"terminal events are not restamped")
}

func TestCheckTriggers_TriggeredEventDoesNotRefire(t *testing.T) {
	ev := datedEvent("bell", "0735-10-12", "15:00", 0)
	ev.Status = calendar.StatusTriggered

	snap := snapshotAt("0735-10-12", "14:00", ev)
	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-12", "16:00", Context{})
	require.NoError(t, err)

	// Still satisfied by the window, so it appears in the list, but
	// its status does not change again.
	require.Len(t, res.Fired, 1)
	assert.Equal(t, calendar.StatusTriggered, res.Snapshot.Events[0].Status)
}

func TestCheckTriggers_ConditionOnly(t *testing.T) {
	ev := calendar.Event{
		ID: "war-council", Name: "War Council", Status: calendar.StatusPending,
		Condition: &calendar.Condition{Name: CondGlobalFlag, Params: map[string]string{"flag": "at_war"}},
	}
	snap := snapshotAt("0735-10-12", "14:00", ev)

	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-12", "16:00",
		Context{Flags: map[string]bool{"at_war": false}})
	require.NoError(t, err)
	assert.Empty(t, res.Fired)

	res, err = CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-12", "16:00",
		Context{Flags: map[string]bool{"at_war": true}})
	require.NoError(t, err)
	require.Len(t, res.Fired, 1)
	assert.Equal(t, calendar.StatusTriggered, res.Fired[0].Status)
}

func TestCheckTriggers_DateOrConditionSuffices(t *testing.T) {
	ev := datedEvent("either", "0735-10-20", "06:00", 0) // date outside window
	ev.Condition = &calendar.Condition{Name: CondGlobalFlag, Params: map[string]string{"flag": "omen"}}

	snap := snapshotAt("0735-10-12", "14:00", ev)
	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-12", "16:00",
		Context{Flags: map[string]bool{"omen": true}})
	require.NoError(t, err)
	assert.Len(t, res.Fired, 1, "condition fires even though the date is out of window")
}

func TestCheckTriggers_NoTriggerNeverAutoFires(t *testing.T) {
	ev := calendar.Event{ID: "inert", Name: "Inert", Status: calendar.StatusPending}
	snap := snapshotAt("0735-10-12", "14:00", ev)

	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-13", "14:00", Context{})
	require.NoError(t, err)
	assert.Empty(t, res.Fired)
}

func TestCheckTriggers_UnknownConditionIsFalse(t *testing.T) {
	ev := calendar.Event{
		ID: "weird", Name: "Weird", Status: calendar.StatusPending,
		Condition: &calendar.Condition{Name: "alignment_of_spheres"},
	}
	snap := snapshotAt("0735-10-12", "14:00", ev)

	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-12", "16:00", Context{})
	require.NoError(t, err)
	assert.Empty(t, res.Fired, "unknown condition names resolve to false, never an error")
}

func TestCheckTriggers_MalformedEventDateDoesNotBlock(t *testing.T) {
	bad := calendar.Event{
		ID: "bad", Name: "Bad", Status: calendar.StatusPending,
		TriggerDate: "0735-13-99", TriggerTime: "14:00",
	}
	good := datedEvent("good", "0735-10-12", "15:00", 0)

	snap := snapshotAt("0735-10-12", "14:00", bad, good)
	res, err := CheckTriggers(snap, "0735-10-12", "14:00", "0735-10-12", "16:00", Context{})
	require.NoError(t, err)
	require.Len(t, res.Fired, 1)
	assert.Equal(t, "good", res.Fired[0].ID)
}

func TestCheckTriggers_InvalidWindow(t *testing.T) {
	snap := snapshotAt("0735-10-12", "14:00")
	_, err := CheckTriggers(snap, "0735-10-12", "14:00", "not-a-date", "16:00", Context{})
	assert.Error(t, err)
}
