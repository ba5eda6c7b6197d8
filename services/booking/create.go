package booking

import (
	"context"
	"errors"
	"time"

	appointmentRepo "zapagenda/database/repository/appointment"
	"zapagenda/models"

	"github.com/google/uuid"
)

// slotsForDate runs one availability query: existing appointments on the
// date are read and fed to the pure slot computation.
func (e *DefaultBookingEngine) slotsForDate(ctx context.Context, snap *models.Settings, day time.Time, durationMinutes int, now time.Time) ([]models.Slot, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	existing, err := e.Appointments.ListByWindow(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, &UpstreamError{Op: "list appointments", Err: err}
	}
	slots, err := AvailableSlots(day, durationMinutes, snap.WorkStart, snap.WorkEnd, existing, now)
	if err != nil {
		return nil, &UpstreamError{Op: "compute slots", Err: err}
	}
	return slots, nil
}

// createAppointment performs the booking write. The repository re-checks
// overlap atomically; a conflict here means another conversation took
// the window after our availability read.
func (e *DefaultBookingEngine) createAppointment(ctx context.Context, name, service, phone string, start time.Time, durationMinutes int) (*models.Appointment, error) {
	appt := &models.Appointment{
		ID:          uuid.New().String(),
		ClientName:  name,
		ClientPhone: phone,
		ServiceName: service,
		Status:      models.StatusScheduled,
		Start:       start,
		End:         start.Add(time.Duration(durationMinutes) * time.Minute),
		CreatedAt:   time.Now(),
	}

	if err := e.Appointments.Create(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotConflict) {
			return nil, &ConflictError{Message: "slot taken at write time"}
		}
		return nil, &UpstreamError{Op: "create appointment", Err: err}
	}
	return appt, nil
}
