package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggl-tempo/internal/config"
	"github.com/Tiliavir/toggl-tempo/internal/invoice"
)

func newInvoiceCmd() *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "invoice <YYYY-MM> <invoice-no> <hourly-rate>",
		Short: "Write a PDF invoice for the hours tracked in a month",
		Example: `  toggl-tempo invoice 2023-12 2023-012 95
  toggl-tempo invoice 2023-12 2023-012 95 --out december.pdf`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return usagef("expected month, invoice number and hourly rate")
			}
			if !monthArgRe.MatchString(args[0]) {
				return usagef("provide the month as first argument in format YYYY-MM (e.g. 2023-12)")
			}
			if !rateArgRe.MatchString(args[2]) {
				return usagef("provide the hourly rate as integer as third argument")
			}
			return periodArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			if err := env.cfg.Validate(config.TogglKeys...); err != nil {
				return err
			}
			month, loc, err := parsePeriod(env.cfg, args[0])
			if err != nil {
				return err
			}
			rate, err := strconv.Atoi(args[2])
			if err != nil {
				return usagef("invalid hourly rate %q", args[2])
			}

			days, err := loadDays(cmd, env, month, loc)
			if err != nil {
				return err
			}
			inv, err := invoice.Build(days, invoice.Params{
				Number:      args[1],
				HourlyRate:  rate,
				Month:       month,
				BillingDate: now().In(loc),
			})
			if err != nil {
				return err
			}

			path := outFile
			if path == "" {
				path = fmt.Sprintf("invoice-%s.pdf", args[1])
			}
			if err := invoice.Render(inv, path); err != nil {
				return fmt.Errorf("writing invoice %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (Total hours: %s) %s\n",
				primaryText("Completed!"), inv.TotalHours, silentText(path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "PDF file to write (default invoice-<invoice-no>.pdf)")
	return cmd
}
