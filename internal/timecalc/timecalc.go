package timecalc

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

const (
	// MinutesPerDay is the number of minutes in a calendar day.
	MinutesPerDay = 24 * 60
	// SecondsPerDay is the number of seconds in a calendar day.
	SecondsPerDay = 24 * 60 * 60
)

// TimeOfDay is a wall-clock time with minute precision, stored as minutes
// since midnight. Valid values are 0 through MinutesPerDay-1.
type TimeOfDay int

// Clock returns the time of day of t in t's location, truncated to the minute.
func Clock(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// NewTimeOfDay returns the time of day for hour:minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time of day %02d:%02d out of range", hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

var clockRe = regexp.MustCompile(`^(\d{2}):(\d{2})(?::(\d{2}))?$`)

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS". Seconds are validated and
// then truncated.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	secs, err := ParseSecondsOfDay(s)
	if err != nil {
		return 0, err
	}
	return TimeOfDay(secs / 60), nil
}

// ParseSecondsOfDay parses "HH:MM" or "HH:MM:SS" into seconds since midnight.
func ParseSecondsOfDay(s string) (int64, error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time of day %q (expected HH:MM or HH:MM:SS)", s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	if h > 23 || min > 59 || sec > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return int64(h*3600 + min*60 + sec), nil
}

// String formats t as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// WithSeconds formats t as "HH:MM:SS".
func (t TimeOfDay) WithSeconds() string {
	return t.String() + ":00"
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int64 {
	return int64(t) * 60
}

// Until returns the number of seconds from t to end. An end before t is
// taken to be on the following day, so the result is always in [0, 24h).
func (t TimeOfDay) Until(end TimeOfDay) int64 {
	d := end.Seconds() - t.Seconds()
	if d < 0 {
		d += SecondsPerDay
	}
	return d
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// FormatClockDuration formats a duration in seconds as "HH:MM".
// The rendering wraps modulo 24h: 25h is shown as "01:00". Callers that
// need the full value must keep the seconds.
func FormatClockDuration(seconds int64) string {
	m := (seconds / 60) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// DecimalHours converts seconds to hours with two decimal places. Only whole
// minutes count; rounding is half-up.
func DecimalHours(seconds int64) float64 {
	minutes := seconds / 60
	h := float64(minutes/60) + float64(minutes%60)/60
	return math.Floor(h*100+0.5) / 100
}

// FormatDuration formats seconds as a human-readable string like "1h 40m" or "45m" or "30s".
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatDurationHHMMSS formats seconds as HH:MM:SS.
func FormatDurationHHMMSS(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
