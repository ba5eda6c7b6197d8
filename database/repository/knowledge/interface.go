package knowledgeRepo

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a knowledge key does not exist.
var ErrNotFound = errors.New("knowledge entry not found")

// KnowledgeRepository stores the flat key/value entries that back both
// business configuration and the free-text knowledge fed to the
// extractor prompt.
type KnowledgeRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	All(ctx context.Context) (map[string]string, error)
}
