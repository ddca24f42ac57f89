package cmd

import (
	"net/http"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggl-tempo/internal/config"
	"github.com/Tiliavir/toggl-tempo/internal/model"
	"github.com/Tiliavir/toggl-tempo/internal/timecalc"
	"github.com/Tiliavir/toggl-tempo/internal/timesheet"
	"github.com/Tiliavir/toggl-tempo/internal/toggl"
)

var (
	monthArgRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
	rateArgRe  = regexp.MustCompile(`^\d+$`)
)

// periodArgs validates a leading YYYY-MM or YYYY-MM-DD argument followed by
// up to extra more arguments.
func periodArgs(extra int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return usagef("missing period argument (YYYY-MM or YYYY-MM-DD, e.g. 2023-12)")
		}
		if len(args) > 1+extra {
			return usagef("too many arguments")
		}
		if _, err := timecalc.ParsePeriod(args[0], time.UTC); err != nil {
			return usagef("%v", err)
		}
		return nil
	}
}

// parsePeriod parses the already validated period argument in the
// configured zone.
func parsePeriod(cfg *config.Config, arg string) (timecalc.Period, *time.Location, error) {
	loc, err := cfg.Location()
	if err != nil {
		return timecalc.Period{}, nil, err
	}
	p, err := timecalc.ParsePeriod(arg, loc)
	return p, loc, err
}

func httpClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.HTTPTimeout}
}

func newTogglClient(env *appEnv) *toggl.Client {
	return toggl.NewClient(env.cfg.TogglBaseURL, env.cfg.TogglAPIToken, httpClient(env.cfg), env.log)
}

// loadDays fetches the entries of p and builds the day aggregates.
func loadDays(cmd *cobra.Command, env *appEnv, p timecalc.Period, loc *time.Location) ([]model.Day, error) {
	entries, err := newTogglClient(env).TimeEntries(cmd.Context(), p.From, p.To)
	if err != nil {
		return nil, err
	}
	entries = toggl.FilterProject(entries, env.cfg.TogglProjectID)
	env.log.Debug("fetched time entries", "period", p.Arg, "count", len(entries))
	return timesheet.Build(entries, loc), nil
}
