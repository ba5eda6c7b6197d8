package models

import "time"

// Conversation steps for the manual booking dialogue.
const (
	StepAskName    = "ask_name"
	StepAskService = "ask_service"
	StepAskDate    = "ask_date"
	StepAskTime    = "ask_time"
)

// ConversationState tracks one phone number's progress through the
// booking dialogue. A state at StepAskTime always carries the slot
// labels that were offered for Date/DurationMinutes.
type ConversationState struct {
	Phone           string    `json:"phone"`
	Step            string    `json:"step"`
	ClientName      string    `json:"client_name,omitempty"`
	ServiceName     string    `json:"service_name,omitempty"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	Date            string    `json:"date,omitempty"` // YYYY-MM-DD
	Slots           []string  `json:"slots,omitempty"`
	// PendingTime holds a slot label the extractor already picked while
	// the dialogue still collects the remaining fields.
	PendingTime     string    `json:"pending_time,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OfferedSlot reports whether label was part of the slot list previously
// shown to the user.
func (s *ConversationState) OfferedSlot(label string) bool {
	for _, l := range s.Slots {
		if l == label {
			return true
		}
	}
	return false
}
