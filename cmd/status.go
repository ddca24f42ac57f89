package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggl-tempo/internal/config"
	"github.com/Tiliavir/toggl-tempo/internal/timecalc"
	"github.com/Tiliavir/toggl-tempo/internal/timesheet"
	"github.com/Tiliavir/toggl-tempo/internal/toggl"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running Toggl entry and today's total",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	env := envFrom(cmd)
	if err := env.cfg.Validate(config.TogglKeys...); err != nil {
		return err
	}
	loc, err := env.cfg.Location()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	client := newTogglClient(env)
	current := now().In(loc)

	active, err := client.Current(ctx)
	if err != nil {
		return err
	}
	if active != nil {
		start := active.Start.In(loc)
		since := start.Format("15:04")
		if !timecalc.SameDay(start, current) {
			since = start.Format("2006-01-02 15:04")
		}
		elapsed := int64(current.Sub(start).Seconds())
		fmt.Fprintln(out, "Running:")
		fmt.Fprintf(out, "  Description: %s\n", active.Description)
		fmt.Fprintf(out, "  Since: %s\n", since)
		fmt.Fprintf(out, "  Elapsed: %s\n", timecalc.FormatDurationHHMMSS(elapsed))
	} else {
		fmt.Fprintln(out, "No running entry.")
	}

	from := timecalc.StartOfDay(current)
	entries, err := client.TimeEntries(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	var total int64
	for _, d := range timesheet.Build(toggl.FilterProject(entries, env.cfg.TogglProjectID), loc) {
		if d.Date == from.Format("2006-01-02") {
			total = d.TotalSeconds
		}
	}
	fmt.Fprintf(out, "Today: %s logged.\n", timecalc.FormatDuration(total))
	return nil
}
