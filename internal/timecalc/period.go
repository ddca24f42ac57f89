package timecalc

import (
	"fmt"
	"regexp"
	"time"
)

// Period is a half-open range of whole days [From, To) selected on the
// command line, either a calendar month or a single day.
type Period struct {
	// Arg is the selector exactly as given, e.g. "2023-12" or "2023-12-05".
	Arg  string
	From time.Time
	To   time.Time
}

var (
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
	dayRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParsePeriod parses a "YYYY-MM" month or "YYYY-MM-DD" day selector in loc.
func ParsePeriod(arg string, loc *time.Location) (Period, error) {
	switch {
	case monthRe.MatchString(arg):
		start, err := time.ParseInLocation("2006-01", arg, loc)
		if err != nil {
			return Period{}, fmt.Errorf("invalid month %q: %w", arg, err)
		}
		return Period{Arg: arg, From: start, To: start.AddDate(0, 1, 0)}, nil
	case dayRe.MatchString(arg):
		start, err := time.ParseInLocation("2006-01-02", arg, loc)
		if err != nil {
			return Period{}, fmt.Errorf("invalid day %q: %w", arg, err)
		}
		return Period{Arg: arg, From: start, To: start.AddDate(0, 0, 1)}, nil
	default:
		return Period{}, fmt.Errorf("invalid period %q (expected YYYY-MM or YYYY-MM-DD)", arg)
	}
}

// IsMonth reports whether p selects a whole calendar month.
func (p Period) IsMonth() bool {
	return monthRe.MatchString(p.Arg)
}

// LastDay returns the final day included in p.
func (p Period) LastDay() time.Time {
	return p.To.AddDate(0, 0, -1)
}

// String describes p for progress output.
func (p Period) String() string {
	if p.IsMonth() {
		return "for the month " + p.Arg
	}
	return "for the day " + p.Arg
}
