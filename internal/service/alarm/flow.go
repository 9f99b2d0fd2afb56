package alarm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	domain "github.com/oshokin/boombim-admin/internal/domain/alarm"
	"github.com/oshokin/boombim-admin/internal/domain/failure"
	"github.com/oshokin/boombim-admin/internal/logger"
)

// Validation messages shown on the alarm screen.
const (
	MessageTitleRequired   = "알림 제목을 입력해주세요."
	MessageMessageRequired = "알림 내용을 입력해주세요."
	MessageTitleTooLong    = "알림 제목은 100자 이하로 입력해주세요."
	MessageMessageTooLong  = "알림 내용은 500자 이하로 입력해주세요."
	MessageTypeInvalid     = "알림 타입을 선택해주세요."

	// MessageSent is shown after a successful send.
	MessageSent = "알림이 성공적으로 전송되었습니다! 🎉"
)

// ErrSubmissionInProgress is returned when Submit is called while another send is outstanding.
var ErrSubmissionInProgress = errors.New("submission already in progress")

// API is the part of the HTTP client the flow depends on.
type API interface {
	SendAlarm(ctx context.Context, request *domain.Request) (*domain.Result, error)
}

// Flow submits broadcasts.
type Flow struct {
	// api sends the broadcast.
	api API
	// validate checks length and type constraints of a trimmed draft.
	validate *validator.Validate
	// inFlight is held for the duration of a send.
	inFlight sync.Mutex
}

// NewFlow creates a submission flow on top of api.
func NewFlow(api API) *Flow {
	return &Flow{
		api:      api,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Submit validates draft and sends it. On success the server result is returned
// unmodified and draft is reset; on failure draft is left as entered.
func (f *Flow) Submit(ctx context.Context, draft *domain.Request) (*domain.Result, error) {
	if draft == nil {
		draft = domain.NewRequest()
	}

	if draft.Type == "" {
		draft.Type = domain.TypeAnnouncement
	}

	if err := f.check(draft); err != nil {
		return nil, err
	}

	if !f.inFlight.TryLock() {
		return nil, ErrSubmissionInProgress
	}
	defer f.inFlight.Unlock()

	logger.InfoKV(ctx, "Sending alarm", "type", draft.Type, "title", draft.Title)

	result, err := f.api.SendAlarm(ctx, draft)
	if err != nil {
		logger.WarnKV(ctx, "Alarm send failed", "error", err)

		return nil, err
	}

	logger.InfoKV(
		ctx,
		"Alarm sent",
		"alarm_id", result.AlarmID,
		"status", result.Status,
		"success", result.SuccessCount,
		"failure", result.FailureCount,
		"total", result.TotalTargets,
	)

	draft.Reset()

	return result, nil
}

// check returns the first failing constraint, title before message before type.
func (f *Flow) check(draft *domain.Request) error {
	trimmed := domain.Request{
		Title:   strings.TrimSpace(draft.Title),
		Message: strings.TrimSpace(draft.Message),
		Type:    draft.Type,
	}

	err := f.validate.Struct(&trimmed)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fmt.Errorf("validate alarm: %w", err)
	}

	fe := fieldErrors[0]

	switch fe.StructField() {
	case "Title":
		if fe.Tag() == "max" {
			return failure.Validation("title", MessageTitleTooLong)
		}

		return failure.Validation("title", MessageTitleRequired)
	case "Message":
		if fe.Tag() == "max" {
			return failure.Validation("message", MessageMessageTooLong)
		}

		return failure.Validation("message", MessageMessageRequired)
	default:
		return failure.Validation("type", MessageTypeInvalid)
	}
}
