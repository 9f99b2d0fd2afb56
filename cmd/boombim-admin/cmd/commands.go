package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/boombim-admin/internal/service/login"
	"github.com/oshokin/boombim-admin/internal/service/logout"
	"github.com/oshokin/boombim-admin/internal/service/send"
	"github.com/oshokin/boombim-admin/internal/service/status"
)

var (
	// loginOptions stores the login flag values.
	loginOptions login.Options
	// sendOptions stores the send flag values.
	sendOptions send.Options
	// logoutOptions stores the logout flag values.
	logoutOptions logout.Options

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Log in as an administrator and store the session.",
		Long: `Authenticates against the admin API and stores the access token in the
session file. Missing credentials are prompted for; the password is read
without echo on a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			loginOptions.Options = globalOptions
			loginOptions.In = cmd.InOrStdin()
			loginOptions.Out = cmd.OutOrStdout()

			return login.Run(ctx, &loginOptions)
		},
	}

	sendCmd = &cobra.Command{
		Use:   "send",
		Short: "Broadcast a notification to every user.",
		Long: `Sends an announcement or an event notice with the stored session and
prints the delivery counts returned by the server.

Example:
  boombim-admin send --type EVENT --title "주말 이벤트" --message "지금 참여하세요"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			sendOptions.Options = globalOptions
			sendOptions.Out = cmd.OutOrStdout()

			return send.Run(ctx, &sendOptions)
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			logoutOptions.Options = globalOptions
			logoutOptions.In = cmd.InOrStdin()
			logoutOptions.Out = cmd.OutOrStdout()

			return logout.Run(ctx, &logoutOptions)
		},
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is stored.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return status.Run(ctx, &status.Options{
				Options: globalOptions,
				Out:     cmd.OutOrStdout(),
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	loginCmd.Flags().StringVarP(&loginOptions.LoginID, "login-id", "u", "", "administrator e-mail")
	loginCmd.Flags().StringVarP(&loginOptions.Password, "password", "p", "", "administrator password, prompted for when omitted")

	sendCmd.Flags().StringVarP(&sendOptions.Title, "title", "t", "", "notification title (up to 100 characters)")
	sendCmd.Flags().StringVarP(&sendOptions.Message, "message", "m", "", "notification body (up to 500 characters)")
	sendCmd.Flags().StringVar(&sendOptions.Type, "type", "ANNOUNCEMENT", "notification type: ANNOUNCEMENT or EVENT")
	sendCmd.Flags().BoolVar(&sendOptions.JSON, "json", false, "print the raw result as JSON")

	logoutCmd.Flags().BoolVarP(&logoutOptions.Yes, "yes", "y", false, "skip the confirmation prompt")
}
