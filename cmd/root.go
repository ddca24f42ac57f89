package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggl-tempo/internal/config"
	"github.com/Tiliavir/toggl-tempo/internal/logging"
)

// Version is set at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

// now is replaced in tests.
var now = time.Now

// usageError is a malformed command line. It exits with status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// appEnv is what every command needs after startup.
type appEnv struct {
	cfg *config.Config
	log *slog.Logger
}

type appEnvKey struct{}

func envFrom(cmd *cobra.Command) *appEnv {
	return cmd.Context().Value(appEnvKey{}).(*appEnv)
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "toggl-tempo",
		Short: "Push Toggl time entries to Jira Tempo worklogs",
		Long: `toggl-tempo reads your Toggl Track time entries, groups them by day and
pushes each finished entry as a Tempo worklog on the Jira issue named at the
start of its description (e.g. "ABC-123 review").

Credentials are read from .env.local in the working directory and from the
environment. Run "toggl-tempo setup" to create the file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return &config.ConfigurationError{Key: config.KeyLogLevel, Reason: err.Error()}
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appEnvKey{}, &appEnv{cfg: cfg, log: log}))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", config.DefaultFile, "dotenv file with credentials")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	root.AddCommand(newPushCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newInvoiceCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newSetupCmd(&configFile))
	return root
}

// run executes one invocation and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(stderr, errorText("Error: "+err.Error()))
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
		return 2
	}
	fmt.Fprintln(stderr, errorText("Error: "+err.Error()))
	return 1
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
