package login

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/boombim-admin/internal/app"
	"github.com/oshokin/boombim-admin/internal/logger"
	"github.com/oshokin/boombim-admin/internal/service/console"
)

// Options configures the login command.
type Options struct {
	app.Options

	// LoginID is the administrator e-mail, prompted for when empty.
	LoginID string
	// Password is prompted for without echo when empty.
	Password string

	// In is read for missing credentials.
	In io.Reader
	// Out receives prompts and the outcome.
	Out io.Writer
}

// Run authenticates and stores the access token for later commands.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "login")

	application, err := app.New(ctx, &opts.Options)
	if err != nil {
		return err
	}

	defer application.Close()

	prompt := console.NewPrompter(opts.In, opts.Out)

	loginID := opts.LoginID
	if loginID == "" {
		if loginID, err = prompt.Line("이메일", ""); err != nil {
			return fmt.Errorf("read login id: %w", err)
		}
	}

	password := opts.Password
	if password == "" {
		if password, err = prompt.Secret("비밀번호"); err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	if err = application.Auth.Login(ctx, loginID, password); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(opts.Out, "✅ 로그인되었습니다.")

	return nil
}
