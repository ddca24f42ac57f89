package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tiliavir/toggl-tempo/internal/timecalc"
)

// RawEntry is a single time entry as returned by the time-tracking service.
type RawEntry struct {
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop"` // nil while the entry is still running
	Description string     `json:"description"`
	ProjectID   *int64     `json:"project_id"`
}

// Record is a RawEntry reduced to minute-precision clock times on one day.
type Record struct {
	Start       timecalc.TimeOfDay  `json:"start_time" yaml:"start_time"`
	End         *timecalc.TimeOfDay `json:"end_time" yaml:"end_time"`
	Description string              `json:"description" yaml:"description"`
}

// Ongoing reports whether the record is still running.
func (r Record) Ongoing() bool {
	return r.End == nil
}

// DurationSeconds returns the record's duration and false if it is ongoing.
// A record ending before it starts crosses midnight and is carried into the
// next day.
func (r Record) DurationSeconds() (int64, bool) {
	if r.End == nil {
		return 0, false
	}
	return r.Start.Until(*r.End), true
}

// TimeBlock is a maximal run of contiguous records within one day.
type TimeBlock struct {
	Start timecalc.TimeOfDay  `json:"start_time" yaml:"start_time"`
	End   *timecalc.TimeOfDay `json:"end_time" yaml:"end_time"` // nil if the last record is ongoing
}

// TaskAggregate is the cumulative duration of all records sharing one
// description on a day.
type TaskAggregate struct {
	Description string `json:"description" yaml:"description"`
	Seconds     int64  `json:"seconds" yaml:"seconds"`
	// Duration is Seconds rendered as "HH:MM", wrapping modulo 24h.
	Duration string `json:"duration" yaml:"duration"`
}

// Day aggregates the records, time blocks and totals of one calendar date.
type Day struct {
	Date              string          `json:"date" yaml:"date"`
	Records           []Record        `json:"records" yaml:"records"`
	TimeBlocks        []TimeBlock     `json:"time_blocks" yaml:"time_blocks"`
	Tasks             []TaskAggregate `json:"tasks" yaml:"tasks"`
	TotalSeconds      int64           `json:"total_seconds" yaml:"total_seconds"`
	HoursTotal        string          `json:"hours_total" yaml:"hours_total"`
	HoursTotalDecimal float64         `json:"hours_total_decimal" yaml:"hours_total_decimal"`
}

// ErrUnsortedDay is returned by Day.Validate when a day has not been built
// by the normalizer.
var ErrUnsortedDay = errors.New("day is not normalized")

// Validate checks that d has a date and that its records are sorted by
// start time.
func (d Day) Validate() error {
	if _, err := time.Parse("2006-01-02", d.Date); err != nil {
		return fmt.Errorf("%w: bad date %q", ErrUnsortedDay, d.Date)
	}
	for i := 1; i < len(d.Records); i++ {
		if d.Records[i].Start < d.Records[i-1].Start {
			return fmt.Errorf("%w: %s records out of order at %s", ErrUnsortedDay, d.Date, d.Records[i].Start)
		}
	}
	return nil
}

// WorklogEntry is a worklog already persisted in the remote worklog service.
type WorklogEntry struct {
	StartTime        string // "HH:MM:SS"
	TimeSpentSeconds int64
	IssueID          string
}

// RecordInfo is a record enriched with everything needed to decide whether
// and how to push it.
type RecordInfo struct {
	Day              string
	StartTime        string // "HH:MM:SS"
	TimeSpentSeconds int64
	Ongoing          bool
	IssueName        string
	IssueID          string
}

func (i RecordInfo) String() string {
	spent := fmt.Sprint(i.TimeSpentSeconds)
	if i.Ongoing {
		spent = "ongoing"
	}
	return fmt.Sprintf("Day: %s, Start time: %s, Time spent (seconds): %s, Issue: %s/%s",
		i.Day, i.StartTime, spent, i.IssueName, i.IssueID)
}
