package models

// Intent kinds produced by the extractor bridge.
const (
	IntentText = "text"
	IntentBook = "book"
)

// BookingCommand is the structured action the extractor may emit instead
// of free text.
type BookingCommand struct {
	Action  string `json:"action"` // fixed tag: "book"
	Name    string `json:"name"`
	Service string `json:"service"`
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time"` // HH:MM
}

// Intent is the tagged variant decoded once from raw extractor output:
// either a free-text reply or a booking command.
type Intent struct {
	Kind string
	Text string
	Book *BookingCommand
}
