package status

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/boombim-admin/internal/app"
	"github.com/oshokin/boombim-admin/internal/logger"
)

// Options configures the status command.
type Options struct {
	app.Options

	// Out receives the report.
	Out io.Writer
}

// Run prints the API endpoint and whether an access token is stored.
// A stored token may still be rejected by the server; expiry is not tracked.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "status")

	application, err := app.New(ctx, &opts.Options)
	if err != nil {
		return err
	}

	defer application.Close()

	state := "logged out"
	if application.Session.IsAuthenticated(ctx) {
		state = "logged in"
	}

	_, _ = fmt.Fprintf(opts.Out, "api: %s\nsession: %s (%s)\n", application.Config.BaseURL, state, application.Config.SessionFile)

	return nil
}
