package models

// Settings is a point-in-time snapshot of the business configuration
// stored as knowledge entries. Fields carry parsed values with defaults
// already applied; Knowledge keeps the raw entries for prompt building
// and per-service duration hints.
type Settings struct {
	WorkStart         string            `json:"work_start"` // HH:MM
	WorkEnd           string            `json:"work_end"`   // HH:MM
	DefaultDuration   int               `json:"default_duration"` // minutes
	AllowedNumbers    []string          `json:"allowed_numbers"`  // digits only, empty = unrestricted
	DailyMessageLimit int               `json:"daily_message_limit"`
	DailyCharLimit    int               `json:"daily_char_limit"`
	Knowledge         map[string]string `json:"knowledge"`
}

// PhoneAllowed reports whether the digits-only phone may talk to the bot.
// An empty allow-list means unrestricted.
func (s *Settings) PhoneAllowed(phone string) bool {
	if len(s.AllowedNumbers) == 0 {
		return true
	}
	for _, n := range s.AllowedNumbers {
		if n == phone {
			return true
		}
	}
	return false
}
