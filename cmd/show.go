package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/toggl-tempo/internal/config"
	"github.com/Tiliavir/toggl-tempo/internal/model"
	"github.com/Tiliavir/toggl-tempo/internal/timecalc"
)

const ongoing = "ongoing"

func newShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <YYYY-MM|YYYY-MM-DD>",
		Short: "Show Toggl entries grouped by day with time blocks and totals",
		Args:  periodArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "table", "json", "yaml":
			default:
				return usagef("invalid --format %q (expected table, json or yaml)", format)
			}
			env := envFrom(cmd)
			if err := env.cfg.Validate(config.TogglKeys...); err != nil {
				return err
			}
			period, loc, err := parsePeriod(env.cfg, args[0])
			if err != nil {
				return err
			}
			days, err := loadDays(cmd, env, period, loc)
			if err != nil {
				return err
			}
			return printDays(cmd.OutOrStdout(), days, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, yaml")
	return cmd
}

func printDays(w io.Writer, days []model.Day, format string) error {
	switch format {
	case "json":
		if days == nil {
			days = []model.Day{}
		}
		data, err := json.MarshalIndent(days, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(days); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	default:
		printDayTables(w, days)
		return nil
	}
}

func printDayTables(w io.Writer, days []model.Day) {
	if len(days) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}
	for i, d := range days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, boldText(d.Date))

		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"Start", "End", "Duration", "Description"})
		for _, r := range d.Records {
			end, dur := ongoing, ongoing
			if secs, ok := r.DurationSeconds(); ok {
				end = r.End.String()
				dur = timecalc.FormatClockDuration(secs)
			}
			tw.AppendRow(table.Row{r.Start, end, dur, r.Description})
		}
		tw.AppendFooter(table.Row{"", "Total", d.HoursTotal, fmt.Sprintf("%.2f h", d.HoursTotalDecimal)})
		tw.Render()

		fmt.Fprintln(w, "Time blocks: "+formatBlocks(d.TimeBlocks))

		tasks := table.NewWriter()
		tasks.SetOutputMirror(w)
		tasks.SetStyle(table.StyleLight)
		tasks.AppendHeader(table.Row{"Task", "Duration"})
		for _, t := range d.Tasks {
			tasks.AppendRow(table.Row{t.Description, t.Duration})
		}
		tasks.Render()
	}
}

// formatBlocks renders blocks as "08:00-12:00 (04:00), 13:00-ongoing".
func formatBlocks(blocks []model.TimeBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.End == nil {
			parts = append(parts, fmt.Sprintf("%s-%s", b.Start, ongoing))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s-%s (%s)", b.Start, b.End,
			timecalc.FormatClockDuration(b.Start.Until(*b.End))))
	}
	return strings.Join(parts, ", ")
}
