package send

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/oshokin/boombim-admin/internal/app"
	domain "github.com/oshokin/boombim-admin/internal/domain/alarm"
	"github.com/oshokin/boombim-admin/internal/domain/failure"
	"github.com/oshokin/boombim-admin/internal/logger"
	"github.com/oshokin/boombim-admin/internal/service/alarm"
	"github.com/oshokin/boombim-admin/internal/service/console"
)

// Options configures the send command.
type Options struct {
	app.Options

	// Title is the notification headline.
	Title string
	// Message is the notification body.
	Message string
	// Type is ANNOUNCEMENT or EVENT, ANNOUNCEMENT when empty.
	Type string
	// JSON prints the raw server result instead of a table.
	JSON bool

	// Out receives the result.
	Out io.Writer
}

// Run submits one broadcast with the stored session.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "send")

	draft := domain.NewRequest()
	draft.Title = opts.Title
	draft.Message = opts.Message

	if opts.Type != "" {
		t, ok := domain.ParseType(opts.Type)
		if !ok {
			return failure.Validation("type", alarm.MessageTypeInvalid)
		}

		draft.Type = t
	}

	appOptions := opts.Options
	appOptions.Navigator = func(context.Context) {
		_, _ = fmt.Fprintln(opts.Out, "🔐 세션이 만료되었습니다. `boombim-admin login`으로 다시 로그인하세요.")
	}

	application, err := app.New(ctx, &appOptions)
	if err != nil {
		return err
	}

	defer application.Close()

	result, err := application.Alarms.Submit(ctx, draft)
	if err != nil {
		return err
	}

	if opts.JSON {
		data, encodeErr := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(result, "", "  ")
		if encodeErr != nil {
			return fmt.Errorf("encode result: %w", encodeErr)
		}

		_, _ = fmt.Fprintln(opts.Out, string(data))

		return nil
	}

	_, _ = fmt.Fprintln(opts.Out, alarm.MessageSent)
	console.RenderResult(opts.Out, result)

	return nil
}
