package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/boombim-admin/internal/app"
	"github.com/oshokin/boombim-admin/internal/config"
	"github.com/oshokin/boombim-admin/internal/domain/failure"
	"github.com/oshokin/boombim-admin/internal/logger"
	"github.com/oshokin/boombim-admin/internal/service/console"
	"github.com/oshokin/boombim-admin/internal/version"
)

var (
	// globalOptions stores the persistent flag values shared by every command.
	globalOptions app.Options

	// rootCmd represents the base command running the interactive console.
	rootCmd = &cobra.Command{
		Use:   "boombim-admin",
		Short: "Boombim admin console for broadcasting notifications.",
		Long: `Terminal admin console for the Boombim notification service.

Without a subcommand an interactive console starts. It shows the login screen
until an administrator logs in, then the alarm screen where announcements and
events are broadcast to every user. The access token is kept in the session
file so later runs and subcommands reuse it until the server rejects it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return console.Run(ctx, &console.Options{
				Options: globalOptions,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
			})
		},
	}
)

// Execute runs the boombim-admin CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("❌ " + describe(err))
		logger.ErrorKV(context.Background(), "Command failed", "error", err)
		os.Exit(1)
	}
}

// describe returns the operator-facing message of taxonomy failures and the plain text of anything else.
func describe(err error) string {
	var f *failure.Error
	if errors.As(err, &f) {
		return f.Error()
	}

	return err.Error()
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&globalOptions.ConfigPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVar(&globalOptions.BaseURL, "base-url", "", "admin API base URL, overrides the configuration file")
	flags.StringVar(&globalOptions.SessionFile, "session-file", "", "path to the session file, overrides the configuration file")
	flags.StringVar(&globalOptions.LogLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(loginCmd, sendCmd, logoutCmd, statusCmd)
}
