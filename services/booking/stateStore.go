package booking

import (
	"context"
	"encoding/json"
	"time"

	"zapagenda/models"

	"github.com/go-redis/redis/v8"
)

const statePrefix = "conv:state:"

// StateStore persists per-phone conversation state. Get returns
// (nil, nil) when no conversation is active.
type StateStore interface {
	Get(ctx context.Context, phone string) (*models.ConversationState, error)
	Set(ctx context.Context, state *models.ConversationState) error
	Clear(ctx context.Context, phone string) error
}

// RedisStateStore implements StateStore. The TTL doubles as the
// conversation idle expiry: a stalled dialogue simply ages out.
type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStateStore constructs a RedisStateStore with the given TTL.
func NewRedisStateStore(client *redis.Client, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, ttl: ttl}
}

func (s *RedisStateStore) Get(ctx context.Context, phone string) (*models.ConversationState, error) {
	data, err := s.client.Get(ctx, statePrefix+phone).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state models.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStateStore) Set(ctx context.Context, state *models.ConversationState) error {
	state.UpdatedAt = time.Now()
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statePrefix+state.Phone, b, s.ttl).Err()
}

func (s *RedisStateStore) Clear(ctx context.Context, phone string) error {
	return s.client.Del(ctx, statePrefix+phone).Err()
}
