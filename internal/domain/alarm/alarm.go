package alarm

import "strings"

// Type is the category of a broadcast.
type Type string

const (
	// TypeAnnouncement is a service announcement.
	TypeAnnouncement Type = "ANNOUNCEMENT"
	// TypeEvent is a promotional event notice.
	TypeEvent Type = "EVENT"
)

const (
	// MaxTitleLength is the maximum number of characters in a title.
	MaxTitleLength = 100
	// MaxMessageLength is the maximum number of characters in a message body.
	MaxMessageLength = 500
)

// Types lists the supported broadcast types in display order.
func Types() []Type {
	return []Type{TypeAnnouncement, TypeEvent}
}

// ParseType converts user input to a Type, case-insensitively.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TypeAnnouncement, TypeEvent:
		return t, true
	default:
		return "", false
	}
}

// Label returns the operator-facing name of the type.
func (t Type) Label() string {
	switch t {
	case TypeAnnouncement:
		return "📢 공지사항"
	case TypeEvent:
		return "🎉 이벤트"
	default:
		return string(t)
	}
}

// Request is the broadcast draft submitted to the server.
type Request struct {
	// Title is the notification headline, 1 to MaxTitleLength characters.
	Title string `json:"title" validate:"required,max=100"`
	// Message is the notification body, 1 to MaxMessageLength characters.
	Message string `json:"message" validate:"required,max=500"`
	// Type selects the broadcast category.
	Type Type `json:"type" validate:"required,oneof=ANNOUNCEMENT EVENT"`
}

// NewRequest returns a blank draft with the default type.
func NewRequest() *Request {
	return &Request{Type: TypeAnnouncement}
}

// Reset clears the draft back to its blank state.
func (r *Request) Reset() {
	*r = *NewRequest()
}

// Result holds the aggregate delivery counts of a broadcast.
type Result struct {
	// AlarmID is the server-side identifier of the broadcast.
	AlarmID int64 `json:"alarmId"`
	// Status is the server-reported delivery status.
	Status string `json:"status"`
	// SuccessCount is the number of recipients reached.
	SuccessCount int64 `json:"successCount"`
	// FailureCount is the number of failed deliveries.
	FailureCount int64 `json:"failureCount"`
	// TotalTargets is the number of recipients addressed.
	TotalTargets int64 `json:"totalTargets"`
	// CompletedAt is the completion timestamp, nil while delivery is still running.
	CompletedAt *string `json:"completedAt"`
}
