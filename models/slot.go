package models

import "time"

// Slot is a candidate time window offered to a user. It is derived from
// one availability query and never persisted.
type Slot struct {
	Label string    `json:"label"` // HH:MM in the business timezone
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SlotLabels extracts the labels of an ordered slot list.
func SlotLabels(slots []Slot) []string {
	labels := make([]string, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, s.Label)
	}
	return labels
}
