package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/toggl-tempo/internal/config"
	"github.com/Tiliavir/toggl-tempo/internal/jira"
	"github.com/Tiliavir/toggl-tempo/internal/reconcile"
	"github.com/Tiliavir/toggl-tempo/internal/tempo"
)

const commitArg = "commit"

func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push <YYYY-MM|YYYY-MM-DD> [commit]",
		Short: "Push Toggl entries of a month or day to Tempo",
		Long: `Push all Toggl entries of the month or day (restricted to TOGGL_PROJECT_ID if
set) to the Jira Tempo worklog.

Without the literal "commit" argument nothing is written: the command only
logs what would be pushed.`,
		Example: `  toggl-tempo push 2023-12          # dry run
  toggl-tempo push 2023-12 commit   # push the month
  toggl-tempo push 2023-12-05 commit`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := periodArgs(1)(cmd, args); err != nil {
				return err
			}
			if len(args) == 2 && args[1] != commitArg {
				return usagef("unexpected argument %q (only %q is accepted after the period)", args[1], commitArg)
			}
			return nil
		},
		RunE: runPush,
	}
}

func runPush(cmd *cobra.Command, args []string) error {
	env := envFrom(cmd)
	if err := env.cfg.Validate(config.PushKeys...); err != nil {
		return err
	}
	period, loc, err := parsePeriod(env.cfg, args[0])
	if err != nil {
		return err
	}
	commit := len(args) == 2

	out := cmd.OutOrStdout()
	if commit {
		fmt.Fprintf(out, "Pushing records to Jira %s\n", period)
	} else {
		fmt.Fprintf(out, "Logging what would be pushed to Jira %s\n", period)
	}

	ctx := cmd.Context()
	days, err := loadDays(cmd, env, period, loc)
	if err != nil {
		return err
	}

	client := httpClient(env.cfg)
	jiraClient := jira.NewClient(jira.BaseURL(env.cfg.JiraDomain), env.cfg.JiraUsername, env.cfg.JiraAPIToken, client, env.log)
	userID, err := jiraClient.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	tempoCtx := context.WithValue(ctx, oauth2.HTTPClient, client)
	rec := &reconcile.Reconciler{
		Store:  tempo.NewClient(tempoCtx, env.cfg.TempoBaseURL, env.cfg.TempoAPIToken, env.cfg.TempoAttributes(), env.log),
		Issues: jira.NewCachingResolver(jiraClient),
		Out:    out,
		Log:    env.log,
	}

	sum, err := rec.Push(ctx, days, reconcile.Options{UserID: userID, Commit: commit})
	env.log.Info("push finished",
		"days", sum.Days, "pushed", sum.Pushed, "duplicates", sum.Duplicates,
		"ongoing", sum.Ongoing, "empty", sum.Empty)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, primaryText("Completed!"))
	printSummary(cmd, sum, commit)
	if !commit {
		fmt.Fprintln(out, warningText(fmt.Sprintf(
			"This was a dry run. Run the following command to actually push to JIRA: toggl-tempo push %s %s",
			period.Arg, commitArg)))
	}
	return nil
}

func printSummary(cmd *cobra.Command, sum reconcile.Summary, commit bool) {
	pushed := "pushed"
	if !commit {
		pushed = "to push"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, silentText(fmt.Sprintf("  %d days, %d %s, %d already logged, %d ongoing, %d empty",
		sum.Days, sum.Pushed, pushed, sum.Duplicates, sum.Ongoing, sum.Empty)))
}
