package console

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/boombim-admin/internal/app"
	"github.com/oshokin/boombim-admin/internal/logger"
)

// Options configures the interactive console.
type Options struct {
	app.Options

	// In is the operator input.
	In io.Reader
	// Out receives screens and results.
	Out io.Writer
}

// Run starts the interactive console and blocks until the operator quits.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "console")

	appOptions := opts.Options
	appOptions.Navigator = func(context.Context) {
		_, _ = fmt.Fprintln(opts.Out, "🔐 로그인 화면으로 이동합니다.")
	}

	application, err := app.New(ctx, &appOptions)
	if err != nil {
		return err
	}

	defer application.Close()

	logger.InfoKV(ctx, "Console started", "base_url", application.Config.BaseURL)

	c := New(
		application.Session,
		application.Auth,
		application.Alarms,
		NewPrompter(opts.In, opts.Out),
		opts.Out,
	)

	return c.Loop(ctx)
}
