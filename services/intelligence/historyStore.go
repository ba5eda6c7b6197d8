package ai

import (
	"context"
	"encoding/json"
	"time"

	"zapagenda/models"

	"github.com/go-redis/redis/v8"
)

const (
	historyPrefix = "chat:hist:"
	// MaxHistory caps the turns kept per phone; older turns are dropped
	// before persisting.
	MaxHistory = 50
)

// RedisHistoryStore implements HistoryStore on Redis.
type RedisHistoryStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisHistoryStore constructs a RedisHistoryStore. A zero ttl keeps
// histories until explicitly cleared.
func NewRedisHistoryStore(client *redis.Client, ttl time.Duration) *RedisHistoryStore {
	return &RedisHistoryStore{client: client, ttl: ttl}
}

func (s *RedisHistoryStore) Get(ctx context.Context, phone string) ([]models.ChatMessage, error) {
	data, err := s.client.Get(ctx, historyPrefix+phone).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var history []models.ChatMessage
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *RedisHistoryStore) Save(ctx context.Context, phone string, history []models.ChatMessage) error {
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	b, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, historyPrefix+phone, b, s.ttl).Err()
}

func (s *RedisHistoryStore) Clear(ctx context.Context, phone string) error {
	return s.client.Del(ctx, historyPrefix+phone).Err()
}
