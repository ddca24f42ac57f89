package timecalc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/toggl-tempo/internal/timecalc"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    timecalc.TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"09:30:45", 570, false},
		{"24:00", 0, true},
		{"9:30", 0, true},
		{"09:60", 0, true},
		{"09:30:60", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := timecalc.ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayFormat(t *testing.T) {
	tod, err := timecalc.NewTimeOfDay(7, 5)
	require.NoError(t, err)
	assert.Equal(t, "07:05", tod.String())
	assert.Equal(t, "07:05:00", tod.WithSeconds())
	assert.Equal(t, int64(7*3600+5*60), tod.Seconds())

	_, err = timecalc.NewTimeOfDay(24, 0)
	assert.Error(t, err)
}

func TestClockTruncatesToMinute(t *testing.T) {
	ts := time.Date(2023, 12, 5, 9, 14, 59, 999, time.UTC)
	assert.Equal(t, "09:14", timecalc.Clock(ts).String())
}

func TestUntil(t *testing.T) {
	tests := []struct {
		start, end string
		want       int64
	}{
		{"09:00", "10:00", 3600},
		{"09:00", "09:00", 0},
		{"09:15", "09:45", 1800},
		// Crossing midnight carries one day.
		{"23:30", "00:30", 3600},
		{"22:00", "01:15", 3*3600 + 15*60},
	}
	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			s, err := timecalc.ParseTimeOfDay(tt.start)
			require.NoError(t, err)
			e, err := timecalc.ParseTimeOfDay(tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Until(e))
		})
	}
}

func TestParseSecondsOfDay(t *testing.T) {
	got, err := timecalc.ParseSecondsOfDay("09:00:30")
	require.NoError(t, err)
	assert.Equal(t, int64(9*3600+30), got)

	got, err = timecalc.ParseSecondsOfDay("09:00")
	require.NoError(t, err)
	assert.Equal(t, int64(9*3600), got)
}

func TestFormatClockDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00"},
		{59, "00:00"},
		{60, "00:01"},
		{3600 + 30*60, "01:30"},
		{23*3600 + 59*60, "23:59"},
		// Wraps past 24h.
		{24 * 3600, "00:00"},
		{25*3600 + 5*60, "01:05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timecalc.FormatClockDuration(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestDecimalHours(t *testing.T) {
	tests := []struct {
		seconds int64
		want    float64
	}{
		{0, 0},
		{3600, 1},
		{90 * 60, 1.5},
		{20 * 60, 0.33},
		{40 * 60, 0.67},
		{7*3600 + 45*60, 7.75},
		// Partial minutes do not count.
		{59, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, timecalc.DecimalHours(tt.seconds), 1e-9, "seconds=%d", tt.seconds)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m"},
		{3600, "1h 0m"},
		{3661, "1h 1m"},
		{5400, "1h 30m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timecalc.FormatDuration(tt.seconds))
	}
}

func TestFormatDurationHHMMSS(t *testing.T) {
	assert.Equal(t, "00:00:00", timecalc.FormatDurationHHMMSS(0))
	assert.Equal(t, "00:01:01", timecalc.FormatDurationHHMMSS(61))
	assert.Equal(t, "01:01:01", timecalc.FormatDurationHHMMSS(3661))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	assert.True(t, timecalc.SameDay(a, b))
	assert.False(t, timecalc.SameDay(a, c))
	assert.Equal(t, time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC), timecalc.StartOfDay(b))
}

func TestParsePeriod(t *testing.T) {
	loc := time.UTC

	month, err := timecalc.ParsePeriod("2023-12", loc)
	require.NoError(t, err)
	assert.True(t, month.IsMonth())
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, loc), month.From)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), month.To)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, loc), month.LastDay())
	assert.Equal(t, "for the month 2023-12", month.String())

	day, err := timecalc.ParsePeriod("2024-02-29", loc)
	require.NoError(t, err)
	assert.False(t, day.IsMonth())
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, loc), day.To)
	assert.Equal(t, "for the day 2024-02-29", day.String())

	for _, bad := range []string{"", "2023", "2023-13", "2023-1", "2023-02-30", "12-2023", "commit"} {
		_, err := timecalc.ParsePeriod(bad, loc)
		assert.Error(t, err, "input %q", bad)
	}
}
