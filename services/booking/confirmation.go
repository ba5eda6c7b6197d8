package booking

import (
	"context"
	"errors"
	"time"

	appointmentRepo "zapagenda/database/repository/appointment"
	"zapagenda/models"
)

// tryConfirmation checks an inbound message against the confirmation
// lifecycle, independent of any conversation state. It prefers an
// awaiting-confirmation appointment and falls back to the nearest future
// scheduled one. Returns handled=false when the message is not a
// confirmation for this phone.
func (e *DefaultBookingEngine) tryConfirmation(ctx context.Context, phone, text string, now time.Time) (reply string, handled bool, err error) {
	if !isConfirmationWord(text) {
		return "", false, nil
	}

	appt, err := e.Appointments.FindAwaitingByPhone(ctx, phone)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		appt, err = e.Appointments.NextScheduledByPhone(ctx, phone, now)
	}
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &UpstreamError{Op: "confirmation lookup", Err: err}
	}

	err = e.Appointments.UpdateStatus(ctx, appt.ID, appt.Status, models.StatusConfirmed)
	if errors.Is(err, appointmentRepo.ErrStatusMismatch) {
		// Someone advanced it first; the acknowledgment still holds.
		return replyConfirmed(appt.ClientName), true, nil
	}
	if err != nil {
		return "", false, &UpstreamError{Op: "confirm appointment", Err: err}
	}
	return replyConfirmed(appt.ClientName), true, nil
}
