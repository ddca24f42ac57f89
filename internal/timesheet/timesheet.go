// Package timesheet turns raw time entries into ordered days with time
// blocks and duration totals.
package timesheet

import (
	"sort"
	"time"

	"github.com/Tiliavir/toggl-tempo/internal/model"
	"github.com/Tiliavir/toggl-tempo/internal/timecalc"
)

// Build groups entries into days in loc and fills in time blocks and
// totals for each day.
func Build(entries []model.RawEntry, loc *time.Location) []model.Day {
	days := GroupByDay(entries, loc)
	for i := range days {
		days[i].TimeBlocks = TimeBlocks(days[i].Records)
		days[i].Tasks = TaskTotals(days[i].Records)
		Total(&days[i])
	}
	return days
}

// GroupByDay groups entries by the calendar date of their start in loc.
// Records within a day are sorted by start time and days are sorted by date.
// Entries that are still running keep a nil end time.
func GroupByDay(entries []model.RawEntry, loc *time.Location) []model.Day {
	byDate := map[string][]model.Record{}
	for _, e := range entries {
		start := e.Start.In(loc)
		date := start.Format("2006-01-02")

		rec := model.Record{
			Start:       timecalc.Clock(start),
			Description: e.Description,
		}
		if e.Stop != nil {
			end := timecalc.Clock(e.Stop.In(loc))
			rec.End = &end
		}
		byDate[date] = append(byDate[date], rec)
	}

	days := make([]model.Day, 0, len(byDate))
	for date, records := range byDate {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Start < records[j].Start
		})
		days = append(days, model.Day{Date: date, Records: records})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

// TimeBlocks merges sorted records into maximal contiguous blocks. Two
// records are contiguous when the first ends at the minute the second
// starts. If the last record is ongoing, the last block has a nil end.
func TimeBlocks(records []model.Record) []model.TimeBlock {
	if len(records) == 0 {
		return nil
	}

	var blocks []model.TimeBlock
	current := model.TimeBlock{Start: records[0].Start}
	last := records[0]
	for _, rec := range records[1:] {
		if last.End == nil || *last.End != rec.Start {
			current.End = last.End
			blocks = append(blocks, current)
			current = model.TimeBlock{Start: rec.Start}
		}
		last = rec
	}
	current.End = last.End
	return append(blocks, current)
}

// TaskTotals sums record durations per description, in order of first
// appearance. Ongoing records are left out.
func TaskTotals(records []model.Record) []model.TaskAggregate {
	var tasks []model.TaskAggregate
	index := map[string]int{}
	for _, rec := range records {
		secs, ok := rec.DurationSeconds()
		if !ok {
			continue
		}
		i, seen := index[rec.Description]
		if !seen {
			i = len(tasks)
			index[rec.Description] = i
			tasks = append(tasks, model.TaskAggregate{Description: rec.Description})
		}
		tasks[i].Seconds += secs
	}
	for i := range tasks {
		tasks[i].Duration = timecalc.FormatClockDuration(tasks[i].Seconds)
	}
	return tasks
}

// Total sets the day's total duration, its "HH:MM" rendering and the
// decimal hours. Ongoing records are left out.
func Total(d *model.Day) {
	var total int64
	for _, rec := range d.Records {
		if secs, ok := rec.DurationSeconds(); ok {
			total += secs
		}
	}
	d.TotalSeconds = total
	d.HoursTotal = timecalc.FormatClockDuration(total)
	d.HoursTotalDecimal = timecalc.DecimalHours(total)
}

// TotalHours sums the decimal hours of days.
func TotalHours(days []model.Day) float64 {
	var sum float64
	for _, d := range days {
		sum += d.HoursTotalDecimal
	}
	return sum
}
