package models

import "time"

// Appointment status lifecycle values.
const (
	StatusScheduled = "scheduled"
	StatusAwaiting  = "awaiting-confirmation"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

// Appointment represents a committed calendar entry.
type Appointment struct {
	ID          string    `bson:"id" json:"id"`
	ClientName  string    `bson:"client_name" json:"client_name"`
	ClientPhone string    `bson:"client_phone" json:"client_phone"` // digits only
	ServiceName string    `bson:"service_name" json:"service_name"`
	Status      string    `bson:"status" json:"status"`
	Start       time.Time `bson:"start_time" json:"start_time"`
	End         time.Time `bson:"end_time" json:"end_time"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Overlaps reports whether the half-open interval [start,end) collides
// with the appointment's own [Start,End) interval.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return start.Before(a.End) && a.Start.Before(end)
}
