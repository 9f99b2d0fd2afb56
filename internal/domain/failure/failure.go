package failure

import "errors"

// Kind sentinels matched with errors.Is.
var (
	// ErrValidation marks a blank or oversized field caught before any network call.
	ErrValidation = errors.New("validation failed")
	// ErrServerRejected marks a structured error body returned by the backend.
	ErrServerRejected = errors.New("server rejected request")
	// ErrNetworkUnavailable marks a call without a usable response.
	ErrNetworkUnavailable = errors.New("network unavailable")
	// ErrUnauthorized marks an HTTP 401 response.
	ErrUnauthorized = errors.New("unauthorized")
)

// Operator-facing default messages.
const (
	MessageNetwork      = "네트워크 오류가 발생했습니다."
	MessageLogin        = "로그인에 실패했습니다."
	MessageSend         = "알림 전송에 실패했습니다."
	MessageUnauthorized = "인증이 만료되었습니다. 다시 로그인해주세요."
)

// Error is a failure shown to the operator as a single message.
type Error struct {
	// Kind is one of the package sentinels.
	Kind error
	// Field names the offending input for validation failures.
	Field string
	// Status is the HTTP status of the response, zero without one.
	Status int
	// Code is the backend error code, zero when absent.
	Code int
	// Time is the backend error timestamp, empty when absent.
	Time string
	// Message is the human-readable text to display.
	Message string
	// Cause is the underlying error, kept for logs.
	Cause error
}

// Error returns the operator-facing message.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Kind != nil {
		return e.Kind.Error()
	}

	return "unknown failure"
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}

// Validation builds a validation failure for field.
func Validation(field, message string) *Error {
	return &Error{
		Kind:    ErrValidation,
		Field:   field,
		Message: message,
	}
}

// NetworkUnavailable builds a failure for a call without a usable response.
func NetworkUnavailable(cause error) *Error {
	return &Error{
		Kind:    ErrNetworkUnavailable,
		Message: MessageNetwork,
		Cause:   cause,
	}
}

// ServerRejected builds a failure from a backend error body.
// An empty message is replaced by fallback.
func ServerRejected(status, code int, message, time, fallback string) *Error {
	if message == "" {
		message = fallback
	}

	return &Error{
		Kind:    ErrServerRejected,
		Status:  status,
		Code:    code,
		Time:    time,
		Message: message,
	}
}

// Unauthorized builds the failure reported for HTTP 401.
// An empty message is replaced by MessageUnauthorized.
func Unauthorized(code int, message, time string) *Error {
	if message == "" {
		message = MessageUnauthorized
	}

	return &Error{
		Kind:    ErrUnauthorized,
		Status:  401,
		Code:    code,
		Time:    time,
		Message: message,
	}
}

// Message returns the text to display for err.
// Errors outside the taxonomy are shown with the generic network message.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var f *Error
	if errors.As(err, &f) {
		return f.Error()
	}

	return MessageNetwork
}
