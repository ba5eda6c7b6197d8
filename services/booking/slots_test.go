package booking

import (
	"testing"
	"time"

	"zapagenda/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", value, time.Local)
	require.NoError(t, err)
	return d
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	instant, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	require.NoError(t, err)
	return instant
}

func appt(t *testing.T, start, end, status string) models.Appointment {
	t.Helper()
	return models.Appointment{
		ID:     "appt-" + start,
		Status: status,
		Start:  at(t, start),
		End:    at(t, end),
	}
}

func TestAvailableSlotsFullDay(t *testing.T) {
	d := day(t, "2026-09-10")
	now := at(t, "2026-09-09 12:00")

	slots, err := AvailableSlots(d, 40, "09:00", "18:00", nil, now)
	require.NoError(t, err)

	// 540 minutes of working window fit 13 slots of 40; the 20-minute
	// remainder is dropped before the first slot.
	require.Len(t, slots, 13)
	assert.Equal(t, "09:20", slots[0].Label)
	assert.Equal(t, "17:20", slots[len(slots)-1].Label)
	assert.Equal(t, at(t, "2026-09-10 18:00"), slots[len(slots)-1].End)

	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End, slots[i].Start, "slots must tile without gaps")
	}
}

func TestAvailableSlotsExactFit(t *testing.T) {
	d := day(t, "2026-09-10")
	now := at(t, "2026-09-09 12:00")

	slots, err := AvailableSlots(d, 60, "09:00", "12:00", nil, now)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].Label)
	assert.Equal(t, "11:00", slots[2].Label)
}

func TestAvailableSlotsExcludesPast(t *testing.T) {
	d := day(t, "2026-09-10")
	now := at(t, "2026-09-10 14:05")

	slots, err := AvailableSlots(d, 40, "09:00", "18:00", nil, now)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, "14:40", slots[0].Label)
	assert.Equal(t, "17:20", slots[len(slots)-1].Label)
	for _, s := range slots {
		assert.False(t, s.Start.Before(now), "slot %s starts in the past", s.Label)
	}
}

func TestAvailableSlotsSkipsConflicts(t *testing.T) {
	d := day(t, "2026-09-10")
	now := at(t, "2026-09-09 12:00")
	existing := []models.Appointment{
		appt(t, "2026-09-10 10:00", "2026-09-10 10:40", models.StatusScheduled),
	}

	slots, err := AvailableSlots(d, 40, "09:00", "18:00", existing, now)
	require.NoError(t, err)

	labels := models.SlotLabels(slots)
	assert.NotContains(t, labels, "10:00")
	assert.Contains(t, labels, "09:20")
	assert.Contains(t, labels, "10:40")
	assert.Len(t, slots, 12)
}

func TestAvailableSlotsPartialOverlap(t *testing.T) {
	d := day(t, "2026-09-10")
	now := at(t, "2026-09-09 12:00")
	// A booking straddling two grid slots blocks both.
	existing := []models.Appointment{
		appt(t, "2026-09-10 10:30", "2026-09-10 11:10", models.StatusScheduled),
	}

	slots, err := AvailableSlots(d, 40, "09:00", "18:00", existing, now)
	require.NoError(t, err)

	labels := models.SlotLabels(slots)
	assert.NotContains(t, labels, "10:00")
	assert.NotContains(t, labels, "10:40")
	assert.Contains(t, labels, "11:20")
}

func TestAvailableSlotsBackToBackDoesNotConflict(t *testing.T) {
	d := day(t, "2026-09-10")
	now := at(t, "2026-09-09 12:00")
	// Half-open intervals: an appointment ending at 10:00 leaves the
	// 10:00 slot free.
	existing := []models.Appointment{
		appt(t, "2026-09-10 09:20", "2026-09-10 10:00", models.StatusScheduled),
	}

	slots, err := AvailableSlots(d, 40, "09:00", "18:00", existing, now)
	require.NoError(t, err)

	labels := models.SlotLabels(slots)
	assert.NotContains(t, labels, "09:20")
	assert.Contains(t, labels, "10:00")
}

func TestAvailableSlotsIgnoresCanceled(t *testing.T) {
	d := day(t, "2026-09-10")
	now := at(t, "2026-09-09 12:00")
	existing := []models.Appointment{
		appt(t, "2026-09-10 10:00", "2026-09-10 10:40", models.StatusCanceled),
	}

	slots, err := AvailableSlots(d, 40, "09:00", "18:00", existing, now)
	require.NoError(t, err)
	assert.Contains(t, models.SlotLabels(slots), "10:00")
}

func TestAvailableSlotsWindowSmallerThanDuration(t *testing.T) {
	d := day(t, "2026-09-10")
	now := at(t, "2026-09-09 12:00")

	slots, err := AvailableSlots(d, 90, "09:00", "10:00", nil, now)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestAvailableSlotsInvalidInputs(t *testing.T) {
	d := day(t, "2026-09-10")
	now := at(t, "2026-09-09 12:00")

	_, err := AvailableSlots(d, 0, "09:00", "18:00", nil, now)
	assert.Error(t, err)

	_, err = AvailableSlots(d, 40, "9am", "18:00", nil, now)
	assert.Error(t, err)

	_, err = AvailableSlots(d, 40, "18:00", "09:00", nil, now)
	assert.Error(t, err)
}
