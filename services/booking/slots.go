package booking

import (
	"fmt"
	"time"

	"zapagenda/models"
)

// AvailableSlots computes the free booking windows on day (a midnight
// instant in the business timezone). The grid is aligned so the final
// slot ends exactly at workEnd; any remainder of the working window is
// dropped at the start of the day. Candidates that start before now or
// overlap an existing appointment are excluded. An empty result is a
// valid outcome, distinct from an error.
//
// The function is pure: callers may compute slots speculatively and
// discard them if the subsequent booking write conflicts.
func AvailableSlots(day time.Time, durationMinutes int, workStart, workEnd string, existing []models.Appointment, now time.Time) ([]models.Slot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("invalid slot duration %d", durationMinutes)
	}
	startClock, err := time.Parse("15:04", workStart)
	if err != nil {
		return nil, fmt.Errorf("invalid work start %q: %w", workStart, err)
	}
	endClock, err := time.Parse("15:04", workEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid work end %q: %w", workEnd, err)
	}

	loc := day.Location()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), startClock.Hour(), startClock.Minute(), 0, 0, loc)
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), endClock.Hour(), endClock.Minute(), 0, 0, loc)
	if !dayEnd.After(dayStart) {
		return nil, fmt.Errorf("work end %q not after work start %q", workEnd, workStart)
	}

	duration := time.Duration(durationMinutes) * time.Minute
	window := dayEnd.Sub(dayStart)
	if window < duration {
		return []models.Slot{}, nil
	}

	// Align the grid to workEnd: the unusable remainder sits before the
	// first slot, so the last slot always closes out the working day.
	current := dayStart.Add(window % duration)

	slots := []models.Slot{}
	for current.Before(dayEnd) {
		slotEnd := current.Add(duration)
		if slotEnd.After(dayEnd) {
			break
		}
		if current.Before(now) {
			current = slotEnd
			continue
		}
		if !overlapsAny(current, slotEnd, existing) {
			slots = append(slots, models.Slot{
				Label: current.Format("15:04"),
				Start: current,
				End:   slotEnd,
			})
		}
		current = slotEnd
	}
	return slots, nil
}

func overlapsAny(start, end time.Time, existing []models.Appointment) bool {
	for i := range existing {
		if existing[i].Status == models.StatusCanceled {
			continue
		}
		if existing[i].Overlaps(start, end) {
			return true
		}
	}
	return false
}
