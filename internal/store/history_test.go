package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torchbearer/chronicle/internal/calendar"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func sampleAdvance(token string) Advance {
	return Advance{
		Token:    token,
		FromDate: "0735-10-12", FromTime: "14:00",
		ToDate: "0735-10-13", ToTime: "08:00",
		Minutes: 1080,
		Reason:  "overnight rest",
	}
}

func TestHistory_RecordAndReadBack(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	fired := []calendar.Event{
		{ID: "dawn-raid", Name: "Dawn Raid", Priority: 5, Status: calendar.StatusTriggered},
		{ID: "market-day", Name: "Market Day", Status: calendar.StatusPending, Recurrence: calendar.RecurrenceDaily},
	}
	require.NoError(t, h.RecordAdvance(ctx, sampleAdvance("adv-1"), fired))

	advances, err := h.Advances(ctx, 10)
	require.NoError(t, err)
	require.Len(t, advances, 1)
	assert.Equal(t, "adv-1", advances[0].Token)
	assert.Equal(t, 1080, advances[0].Minutes)

	events, err := h.FiredEvents(ctx, "adv-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "dawn-raid", events[0].EventID, "firing order preserved")
	assert.Equal(t, 0, events[0].Position)
	assert.Equal(t, "market-day", events[1].EventID)
	assert.Equal(t, "pending", events[1].Status)
}

func TestHistory_AdvancesNewestFirst(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	require.NoError(t, h.RecordAdvance(ctx, sampleAdvance("adv-1"), nil))
	require.NoError(t, h.RecordAdvance(ctx, sampleAdvance("adv-2"), nil))
	require.NoError(t, h.RecordAdvance(ctx, sampleAdvance("adv-3"), nil))

	advances, err := h.Advances(ctx, 2)
	require.NoError(t, err)
	require.Len(t, advances, 2)
	assert.Equal(t, "adv-3", advances[0].Token)
	assert.Equal(t, "adv-2", advances[1].Token)
}

func TestHistory_DuplicateTokenRejected(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	require.NoError(t, h.RecordAdvance(ctx, sampleAdvance("adv-1"), nil))
	err := h.RecordAdvance(ctx, sampleAdvance("adv-1"), nil)
	assert.Error(t, err, "advance tokens are primary keys")
}

func TestHistory_FiredEventsUnknownToken(t *testing.T) {
	h := openTestHistory(t)
	events, err := h.FiredEvents(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestOpenHistory_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h1, err := OpenHistory(path)
	require.NoError(t, err)
	require.NoError(t, h1.RecordAdvance(context.Background(), sampleAdvance("adv-1"), nil))
	require.NoError(t, h1.Close())

	h2, err := OpenHistory(path)
	require.NoError(t, err)
	defer h2.Close()

	advances, err := h2.Advances(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, advances, 1, "reopening keeps existing rows")
}

func TestOpenHistory_WithBusyTimeout(t *testing.T) {
	h, err := OpenHistory(":memory:", WithBusyTimeout(100))
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.RecordAdvance(context.Background(), sampleAdvance("adv-1"), nil))
}

func TestTokenGenerators(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)

	fixed := NewFixedGenerator("t1", "t2")
	assert.Equal(t, "t1", fixed.Generate())
	assert.Equal(t, "t2", fixed.Generate())
	assert.Panics(t, func() { fixed.Generate() })
}
