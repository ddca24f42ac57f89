package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggl-tempo/internal/config"
)

func newSetupCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the credentials file interactively",
		Args:  cobra.NoArgs,
		// The file may not exist yet.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return errors.New("setup needs an interactive terminal; write " + *configFile + " by hand instead")
			}
			if err := config.RunSetup(*configFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", primaryText("Done."), *configFile)
			return nil
		},
	}
}
