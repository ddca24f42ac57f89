// Package reconcile pushes a day's time records to a remote worklog store,
// skipping records that are already logged.
package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Tiliavir/toggl-tempo/internal/jira"
	"github.com/Tiliavir/toggl-tempo/internal/model"
	"github.com/Tiliavir/toggl-tempo/internal/timecalc"
)

// WorklogStore reads and writes worklogs of one remote account.
type WorklogStore interface {
	FetchWorklogs(ctx context.Context, day, userID string) ([]model.WorklogEntry, error)
	CreateWorklog(ctx context.Context, userID string, info model.RecordInfo) error
}

// IssueResolver maps an issue key to the id the worklog store expects.
type IssueResolver interface {
	ResolveIssueID(ctx context.Context, issueName string) (string, error)
}

// WorklogConflictError reports a remote worklog starting at the same time
// as a record but with a different duration.
type WorklogConflictError struct {
	Day       string
	StartTime string
	Existing  int64
	Expected  int64
}

func (e *WorklogConflictError) Error() string {
	return fmt.Sprintf("worklog entry with same start time found (%s %s), but with duration %d instead of %d",
		e.Day, e.StartTime, e.Existing, e.Expected)
}

// ReconciliationError reports that the remote worklog count after pushing
// differs from the expected count.
type ReconciliationError struct {
	Day      string
	Remote   int
	Expected int
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("remote has %d worklogs, but should have %d on day %s", e.Remote, e.Expected, e.Day)
}

// Options configures a push run.
type Options struct {
	UserID string
	// Commit creates worklogs. Without it the run only reports what it
	// would push.
	Commit bool
}

// Summary holds counters for a push run.
type Summary struct {
	Days       int
	Pushed     int
	Duplicates int
	Ongoing    int
	Empty      int
}

func (s *Summary) add(o Summary) {
	s.Days += o.Days
	s.Pushed += o.Pushed
	s.Duplicates += o.Duplicates
	s.Ongoing += o.Ongoing
	s.Empty += o.Empty
}

// Reconciler compares days against a WorklogStore and creates the missing
// worklogs. Days and records are processed strictly in order.
type Reconciler struct {
	Store  WorklogStore
	Issues IssueResolver
	Out    io.Writer
	Log    *slog.Logger
}

func (r *Reconciler) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}

func (r *Reconciler) printf(format string, args ...any) {
	if r.Out != nil {
		fmt.Fprintf(r.Out, format, args...)
	}
}

// Push reconciles each day in order. The first error aborts the run; days
// already committed stay committed.
func (r *Reconciler) Push(ctx context.Context, days []model.Day, opts Options) (Summary, error) {
	var total Summary
	for _, day := range days {
		s, err := r.PushDay(ctx, day, opts)
		total.add(s)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// PushDay reconciles the records of one day. day must come from the
// normalizer: records sorted by start time.
func (r *Reconciler) PushDay(ctx context.Context, day model.Day, opts Options) (Summary, error) {
	sum := Summary{Days: 1}
	if err := day.Validate(); err != nil {
		return sum, err
	}
	log := r.logger().With(slog.String("day", day.Date))

	var existing []model.WorklogEntry
	if len(day.Records) > 0 {
		var err error
		existing, err = r.Store.FetchWorklogs(ctx, day.Date, opts.UserID)
		if err != nil {
			return sum, err
		}
		log.Debug("fetched worklogs", slog.Int("count", len(existing)))
	}

	expected := 0
	for _, rec := range day.Records {
		info, err := r.recordInfo(ctx, day.Date, rec)
		if err != nil {
			return sum, err
		}

		switch {
		case info.Ongoing:
			r.printf("Record is ongoing: %s. Skipping...\n", info)
			sum.Ongoing++
			continue
		case info.TimeSpentSeconds == 0:
			r.printf("Record has 0 seconds logged: %s. Skipping...\n", info)
			sum.Empty++
			continue
		}

		found, err := findWorklog(existing, rec.Start)
		if err != nil {
			return sum, err
		}
		if found != nil {
			if found.TimeSpentSeconds != info.TimeSpentSeconds {
				return sum, &WorklogConflictError{
					Day:       day.Date,
					StartTime: found.StartTime,
					Existing:  found.TimeSpentSeconds,
					Expected:  info.TimeSpentSeconds,
				}
			}
			if found.IssueID != "" && found.IssueID != info.IssueID {
				// Matching only compares start and duration.
				log.Warn("existing worklog is on a different issue",
					slog.String("start", info.StartTime),
					slog.String("remote_issue", found.IssueID),
					slog.String("issue", info.IssueID))
			}
			r.printf("Record exists: %s. Skipping...\n", info)
			sum.Duplicates++
			expected++
			continue
		}

		if !opts.Commit {
			r.printf("Would push: %s\n", info)
			sum.Pushed++
			expected++
			continue
		}
		r.printf("Pushing: %s\n", info)
		if err := r.Store.CreateWorklog(ctx, opts.UserID, info); err != nil {
			return sum, err
		}
		sum.Pushed++
		expected++
	}

	if opts.Commit {
		after, err := r.Store.FetchWorklogs(ctx, day.Date, opts.UserID)
		if err != nil {
			return sum, err
		}
		if len(after) != expected {
			return sum, &ReconciliationError{Day: day.Date, Remote: len(after), Expected: expected}
		}
		log.Debug("day reconciled", slog.Int("worklogs", expected))
	}
	return sum, nil
}

// recordInfo resolves the issue of rec and computes its duration. The issue
// is resolved even for records that will be skipped.
func (r *Reconciler) recordInfo(ctx context.Context, day string, rec model.Record) (model.RecordInfo, error) {
	secs, done := rec.DurationSeconds()

	name, err := jira.ParseIssueName(rec.Description)
	if err != nil {
		return model.RecordInfo{}, fmt.Errorf("%s %s: %w", day, rec.Start, err)
	}
	id, err := r.Issues.ResolveIssueID(ctx, name)
	if err != nil {
		return model.RecordInfo{}, fmt.Errorf("%s %s: %w", day, rec.Start, err)
	}

	return model.RecordInfo{
		Day:              day,
		StartTime:        rec.Start.WithSeconds(),
		TimeSpentSeconds: secs,
		Ongoing:          !done,
		IssueName:        name,
		IssueID:          id,
	}, nil
}

// findWorklog returns the worklog starting at start, compared to the second.
func findWorklog(worklogs []model.WorklogEntry, start timecalc.TimeOfDay) (*model.WorklogEntry, error) {
	for i := range worklogs {
		secs, err := timecalc.ParseSecondsOfDay(worklogs[i].StartTime)
		if err != nil {
			return nil, fmt.Errorf("remote worklog: %w", err)
		}
		if secs == start.Seconds() {
			return &worklogs[i], nil
		}
	}
	return nil, nil
}
