package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torchbearer/chronicle/internal/calendar"
	"github.com/torchbearer/chronicle/internal/store"
)

// testCampaign writes a calendar document into a temp dir and returns
// the global flags pointing every command at it.
func testCampaign(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	calPath := filepath.Join(dir, "calendar.yaml")

	snap := calendar.Snapshot{
		Current: calendar.Current{
			Date: "0735-10-12",
			Time: "14:00",
		},
		Events: []calendar.Event{
			{
				ID:          "harvest_festival",
				Name:        "Harvest Festival",
				TriggerDate: "0735-10-12",
				TriggerTime: "18:00",
				Status:      calendar.StatusPending,
				Priority:    5,
			},
		},
		Metadata: calendar.Metadata{Campaign: "test"},
	}
	require.NoError(t, store.SaveSnapshot(calPath, snap))

	return calPath, []string{
		"--calendar", calPath,
		"--history", filepath.Join(dir, "history.db"),
		"--content", filepath.Join(dir, "content"),
	}
}

func execute(t *testing.T, args []string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestAdvanceCommand_MovesClock(t *testing.T) {
	calPath, globals := testCampaign(t)

	out, err := execute(t, append(globals, "--format", "json", "advance", "2 hours"))
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   AdvanceOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "0735-10-12", resp.Data.Date)
	assert.Equal(t, "16:00", resp.Data.Time)
	assert.Equal(t, 120, resp.Data.Minutes)
	assert.Empty(t, resp.Data.Fired, "event at 18:00 is still ahead")

	// The save is durable: a fresh load sees the new clock.
	snap, err := store.LoadSnapshot(calPath)
	require.NoError(t, err)
	assert.Equal(t, "16:00", snap.Current.Time)
}

func TestAdvanceCommand_FiresEvent(t *testing.T) {
	calPath, globals := testCampaign(t)

	out, err := execute(t, append(globals, "--format", "json", "advance", "6 hours"))
	require.NoError(t, err)

	var resp struct {
		Data AdvanceOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Fired, 1)
	assert.Equal(t, "harvest_festival", resp.Data.Fired[0].ID)

	snap, err := store.LoadSnapshot(calPath)
	require.NoError(t, err)
	i := snap.FindEvent("harvest_festival")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, calendar.StatusTriggered, snap.Events[i].Status)
}

func TestAdvanceCommand_BareMinutes(t *testing.T) {
	_, globals := testCampaign(t)

	out, err := execute(t, append(globals, "--format", "json", "advance", "90"))
	require.NoError(t, err)

	var resp struct {
		Data AdvanceOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "15:30", resp.Data.Time)
}

func TestAdvanceCommand_InvalidDuration(t *testing.T) {
	_, globals := testCampaign(t)

	tests := []struct {
		name     string
		duration string
	}{
		{"gibberish", "soon"},
		{"zero", "0"},
		{"negative", "-30"},
		{"over_cap", "8 days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append(globals, "advance", tt.duration))
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
		})
	}
}

func TestAdvanceCommand_MissingCalendar(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, []string{
		"--calendar", filepath.Join(dir, "nope.yaml"),
		"--history", filepath.Join(dir, "history.db"),
		"advance", "1 hour",
	})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestStatusCommand_Text(t *testing.T) {
	_, globals := testCampaign(t)

	out, err := execute(t, append(globals, "status"))
	require.NoError(t, err)
	assert.Contains(t, out, "0735-10-12 14:00")
	assert.Contains(t, out, "1 events")
}

func TestEventsAddThenList(t *testing.T) {
	_, globals := testCampaign(t)

	_, err := execute(t, append(globals,
		"events", "add", "caravan_arrives", "Caravan arrives",
		"--date", "0735-10-14", "--time", "09:00", "--priority", "3"))
	require.NoError(t, err)

	out, err := execute(t, append(globals, "events", "list"))
	require.NoError(t, err)
	assert.Contains(t, out, "caravan_arrives")
	assert.Contains(t, out, "harvest_festival")
}

func TestEventsAdd_Duplicate(t *testing.T) {
	_, globals := testCampaign(t)

	_, err := execute(t, append(globals,
		"events", "add", "harvest_festival", "Harvest Festival again"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestEventsStatusTransition(t *testing.T) {
	calPath, globals := testCampaign(t)

	_, err := execute(t, append(globals, "events", "status", "harvest_festival", "completed"))
	require.NoError(t, err)

	snap, err := store.LoadSnapshot(calPath)
	require.NoError(t, err)
	i := snap.FindEvent("harvest_festival")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, calendar.StatusCompleted, snap.Events[i].Status)
}

func TestEventsRemove(t *testing.T) {
	calPath, globals := testCampaign(t)

	_, err := execute(t, append(globals, "events", "rm", "harvest_festival"))
	require.NoError(t, err)

	snap, err := store.LoadSnapshot(calPath)
	require.NoError(t, err)
	assert.Equal(t, -1, snap.FindEvent("harvest_festival"))
}

func TestUpcomingCommand(t *testing.T) {
	_, globals := testCampaign(t)

	out, err := execute(t, append(globals, "upcoming", "--within", "6 hours"))
	require.NoError(t, err)
	assert.Contains(t, out, "harvest_festival")

	out, err = execute(t, append(globals, "upcoming", "--within", "1 hour"))
	require.NoError(t, err)
	assert.NotContains(t, out, "harvest_festival")
}
