package logout

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/boombim-admin/internal/app"
	"github.com/oshokin/boombim-admin/internal/logger"
	"github.com/oshokin/boombim-admin/internal/service/auth"
	"github.com/oshokin/boombim-admin/internal/service/console"
)

// Options configures the logout command.
type Options struct {
	app.Options

	// Yes confirms the logout without asking.
	Yes bool

	// In is read for the confirmation.
	In io.Reader
	// Out receives the question and the outcome.
	Out io.Writer
}

// Run clears the stored session after confirmation.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "logout")

	application, err := app.New(ctx, &opts.Options)
	if err != nil {
		return err
	}

	defer application.Close()

	var confirmer auth.Confirmer = console.NewPrompter(opts.In, opts.Out)
	if opts.Yes {
		confirmer = auth.ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
	}

	done, err := application.Auth.Logout(ctx, confirmer)
	if err != nil {
		return err
	}

	if done {
		_, _ = fmt.Fprintln(opts.Out, "👋 로그아웃되었습니다.")
	}

	return nil
}
