package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torchbearer/chronicle/internal/simerr"
)

func TestParseDuration_Phrases(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1 hour 30 minutes", 90},
		{"1 hour and 30 minutes", 90},
		{"2 days", 2880},
		{"45 min", 45},
		{"45m", 45},
		{"3 hrs", 180},
		{"1 day 2 hours 5 minutes", 1440 + 120 + 5},
		{"90 MINUTES", 90},
		{"1h", 60},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseDuration_Unrecognized(t *testing.T) {
	bad := []string{"", "soon", "an hour", "ten minutes", "minutes"}
	for _, in := range bad {
		_, err := ParseDuration(in)
		assert.True(t, simerr.Is(err, simerr.CodeInvalidFormat), "input %q got %v", in, err)
	}
}

func TestParseDuration_Zero(t *testing.T) {
	_, err := ParseDuration("0 minutes")
	assert.True(t, simerr.Is(err, simerr.CodeInvalidFormat))
}

func TestParseDuration_OverCap(t *testing.T) {
	_, err := ParseDuration("8 days")
	assert.True(t, simerr.Is(err, simerr.CodeDurationTooLarge))

	got, err := ParseDuration("7 days")
	require.NoError(t, err)
	assert.Equal(t, MaxAdvanceMinutes, got)
}

func TestActionDuration_KnownKinds(t *testing.T) {
	ctx := ActionContext{}
	assert.Equal(t, 60, ActionDuration(ActionTravel, ctx))
	assert.Equal(t, 30, ActionDuration(ActionSearch, ctx))
	assert.Equal(t, 10, ActionDuration(ActionDialogue, ctx))
	assert.Equal(t, 60, ActionDuration(ActionShortRest, ctx))
	assert.Equal(t, 480, ActionDuration(ActionLongRest, ctx))
	assert.Equal(t, 30, ActionDuration(ActionCombat, ctx))
}

func TestActionDuration_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, DefaultActionMinutes, ActionDuration("interpretive_dance", ActionContext{}))
	assert.Equal(t, 45, ActionDuration("interpretive_dance", ActionContext{DefaultMinutes: 45}))
}

func TestActionDuration_ScalesWithPace(t *testing.T) {
	fast := ActionContext{DefaultMinutes: 15}
	assert.Equal(t, 30, ActionDuration(ActionTravel, fast))
	assert.Equal(t, 240, ActionDuration(ActionLongRest, fast))
}
