package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"zapagenda/models"
)

var (
	// ErrSlotConflict is returned by Create when the requested window
	// overlaps an existing appointment at write time.
	ErrSlotConflict = errors.New("appointment slot conflict")
	// ErrNotFound is returned when no appointment matches the given id.
	ErrNotFound = errors.New("appointment not found")
	// ErrStatusMismatch is returned by UpdateStatus when the stored
	// status no longer matches the expected source status.
	ErrStatusMismatch = errors.New("appointment status mismatch")
)

// AppointmentRepository is the durable appointment store. Create must
// re-check half-open interval overlap atomically; UpdateStatus is
// compare-and-set so the scheduler and the confirmation path cannot
// revive each other's transitions.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id, from, to string) error
	Delete(ctx context.Context, id string) error

	// ListByWindow returns appointments whose start lies in [start, end).
	ListByWindow(ctx context.Context, start, end time.Time) ([]models.Appointment, error)
	// ListScheduledBetween returns scheduled appointments with a client
	// phone whose start lies in (after, until].
	ListScheduledBetween(ctx context.Context, after, until time.Time) ([]models.Appointment, error)
	// FindAwaitingByPhone returns the earliest awaiting-confirmation
	// appointment for the phone, or ErrNotFound.
	FindAwaitingByPhone(ctx context.Context, phone string) (*models.Appointment, error)
	// NextScheduledByPhone returns the nearest future scheduled
	// appointment for the phone, or ErrNotFound.
	NextScheduledByPhone(ctx context.Context, phone string, now time.Time) (*models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
}
