package models

import "time"

// ReminderPayload is the asynq task payload for one reminder send.
type ReminderPayload struct {
	AppointmentID string    `json:"appointmentId"`
	ClientName    string    `json:"clientName"`
	ClientPhone   string    `json:"clientPhone"`
	ServiceName   string    `json:"serviceName"`
	Start         time.Time `json:"start"`
}
