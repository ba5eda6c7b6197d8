package ai

import (
	"context"

	"zapagenda/models"
)

// Extractor is the free-text understanding component. It receives the
// role-tagged conversation history plus the business knowledge snapshot
// and returns either natural-language text or a serialized booking
// command (decoded by ParseIntent).
type Extractor interface {
	GenerateReply(ctx context.Context, history []models.ChatMessage, knowledge map[string]string) (string, error)
}

// HistoryStore keeps the per-phone conversation history fed to the
// extractor.
type HistoryStore interface {
	Get(ctx context.Context, phone string) ([]models.ChatMessage, error)
	Save(ctx context.Context, phone string, history []models.ChatMessage) error
	Clear(ctx context.Context, phone string) error
}
