package ai

import (
	"encoding/json"
	"strings"

	"zapagenda/models"
)

// ParseIntent decodes raw extractor output exactly once into the tagged
// variant the engine consumes. Anything that is not a well-formed
// booking command is treated as plain text.
func ParseIntent(raw string) models.Intent {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return models.Intent{Kind: models.IntentText, Text: raw}
	}

	var cmd models.BookingCommand
	if err := json.Unmarshal([]byte(trimmed), &cmd); err != nil {
		return models.Intent{Kind: models.IntentText, Text: raw}
	}
	if !strings.EqualFold(cmd.Action, "book") && !strings.EqualFold(cmd.Action, "agendar") {
		return models.Intent{Kind: models.IntentText, Text: raw}
	}
	if cmd.Date == "" || cmd.Time == "" {
		return models.Intent{Kind: models.IntentText, Text: raw}
	}
	return models.Intent{Kind: models.IntentBook, Book: &cmd}
}
