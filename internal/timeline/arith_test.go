package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torchbearer/chronicle/internal/simerr"
)

func TestAddMinutes_SameDay(t *testing.T) {
	d, c, err := AddMinutes("0735-10-12", "14:00", 90)
	require.NoError(t, err)
	assert.Equal(t, "0735-10-12", d)
	assert.Equal(t, "15:30", c)
}

func TestAddMinutes_Rollover(t *testing.T) {
	tests := []struct {
		date, clock string
		minutes     int
		wantDate    string
		wantClock   string
	}{
		{"0735-10-12", "23:30", 45, "0735-10-13", "00:15"},
		{"0735-10-31", "23:59", 1, "0735-11-01", "00:00"},
		{"0735-12-31", "23:00", 120, "0736-01-01", "01:00"},
		{"0735-02-28", "12:00", 1440, "0735-03-01", "12:00"},  // 735 is not a leap year
		{"0736-02-28", "12:00", 1440, "0736-02-29", "12:00"},  // 736 is
		{"0735-04-30", "00:00", 1440, "0735-05-01", "00:00"},
	}
	for _, tt := range tests {
		d, c, err := AddMinutes(tt.date, tt.clock, tt.minutes)
		require.NoError(t, err, "from %s %s +%d", tt.date, tt.clock, tt.minutes)
		assert.Equal(t, tt.wantDate, d, "from %s %s +%d", tt.date, tt.clock, tt.minutes)
		assert.Equal(t, tt.wantClock, c, "from %s %s +%d", tt.date, tt.clock, tt.minutes)
	}
}

func TestAddMinutes_Negative(t *testing.T) {
	d, c, err := AddMinutes("0735-01-01", "00:30", -60)
	require.NoError(t, err)
	assert.Equal(t, "0734-12-31", d)
	assert.Equal(t, "23:30", c)
}

func TestAddMinutes_BeforeEpoch(t *testing.T) {
	_, _, err := AddMinutes("1-01-01", "00:00", -1)
	assert.True(t, simerr.Is(err, simerr.CodeInvalidFormat))
}

func TestAddMinutes_MalformedInput(t *testing.T) {
	_, _, err := AddMinutes("0735-13-01", "14:00", 10)
	assert.True(t, simerr.Is(err, simerr.CodeInvalidFormat))

	_, _, err = AddMinutes("0735-10-12", "25:00", 10)
	assert.True(t, simerr.Is(err, simerr.CodeInvalidFormat))
}

// Elapsed back to the origin must recover the advance exactly, for
// any advance within the one-week cap.
func TestAddMinutes_ElapsedRoundTrip(t *testing.T) {
	origins := []struct{ date, clock string }{
		{"0735-10-12", "14:00"},
		{"0735-12-31", "23:59"},
		{"0736-02-28", "00:00"},
		{"9999-12-25", "06:30"},
	}
	deltas := []int{1, 59, 60, 1439, 1440, 4321, MaxAdvanceMinutes}
	for _, o := range origins {
		for _, m := range deltas {
			d, c, err := AddMinutes(o.date, o.clock, m)
			require.NoError(t, err)
			got, err := Elapsed(o.date, o.clock, d, c)
			require.NoError(t, err)
			assert.Equal(t, m, got, "from %s %s +%d", o.date, o.clock, m)
		}
	}
}

func TestElapsed_Signed(t *testing.T) {
	got, err := Elapsed("0735-10-13", "08:00", "0735-10-12", "14:00")
	require.NoError(t, err)
	assert.Equal(t, -1080, got, "negative when end precedes start")

	got, err = Elapsed("0735-10-12", "14:00", "0735-10-12", "14:00")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestElapsed_AcrossYears(t *testing.T) {
	got, err := Elapsed("0735-12-31", "23:00", "0736-01-01", "01:00")
	require.NoError(t, err)
	assert.Equal(t, 120, got)
}

func TestIsLeapYear(t *testing.T) {
	assert.False(t, IsLeapYear(735))
	assert.True(t, IsLeapYear(736))
	assert.False(t, IsLeapYear(900))
	assert.True(t, IsLeapYear(800))
}

func TestDayOfWeek_EpochAndProgression(t *testing.T) {
	day, err := DayOfWeek("1-01-01")
	require.NoError(t, err)
	assert.Equal(t, "Monday", day)

	day, err = DayOfWeek("1-01-08")
	require.NoError(t, err)
	assert.Equal(t, "Monday", day)

	day, err = DayOfWeek("1-01-03")
	require.NoError(t, err)
	assert.Equal(t, "Wednesday", day)
}

func TestDayOfWeek_ConsecutiveDays(t *testing.T) {
	first, err := DayOfWeek("0735-10-12")
	require.NoError(t, err)
	next, err := DayOfWeek("0735-10-13")
	require.NoError(t, err)
	assert.NotEqual(t, first, next)
}

func TestSeason(t *testing.T) {
	tests := map[string]string{
		"0735-03-01": "spring",
		"0735-05-31": "spring",
		"0735-06-01": "summer",
		"0735-09-15": "autumn",
		"0735-12-01": "winter",
		"0735-01-20": "winter",
	}
	for date, want := range tests {
		got, err := Season(date)
		require.NoError(t, err)
		assert.Equal(t, want, got, "date %s", date)
	}
}
