package settings

import (
	"context"

	"zapagenda/models"
)

// Configuration keys recognized inside the knowledge store.
const (
	KeyWorkStart    = "config_inicio"
	KeyWorkEnd      = "config_fim"
	KeyDuration     = "config_duracao"
	KeyAllowList    = "config_numeros"
	KeyMessageLimit = "config_limite_msg"
	KeyCharLimit    = "config_limite_chars"
)

// Defaults applied when a key is absent or unparsable.
const (
	DefaultWorkStart    = "09:00"
	DefaultWorkEnd      = "19:00"
	DefaultDuration     = 40
	DefaultMessageLimit = 200
	DefaultCharLimit    = 20000
)

// Provider exposes the current business configuration as a refreshed
// snapshot.
type Provider interface {
	Snapshot(ctx context.Context) (*models.Settings, error)
	// Invalidate drops the cached snapshot so the next Snapshot call
	// re-reads the store (used after admin writes).
	Invalidate()
}
