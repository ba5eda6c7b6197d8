package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	knowledgeRepo "zapagenda/database/repository/knowledge"
	"zapagenda/models"
	"zapagenda/utils"
)

// CachedProvider serves settings snapshots from the knowledge store with
// a short TTL, so one chat turn never re-reads the store more than once
// and admin edits show up within seconds.
type CachedProvider struct {
	Repo knowledgeRepo.KnowledgeRepository
	TTL  time.Duration

	mu        sync.Mutex
	snapshot  *models.Settings
	fetchedAt time.Time
}

// NewCachedProvider constructs a CachedProvider with the given TTL.
func NewCachedProvider(repo knowledgeRepo.KnowledgeRepository, ttl time.Duration) *CachedProvider {
	return &CachedProvider{Repo: repo, TTL: ttl}
}

// Snapshot returns the current settings, re-reading the store when the
// cached copy is older than the TTL.
func (p *CachedProvider) Snapshot(ctx context.Context) (*models.Settings, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.snapshot != nil && time.Since(p.fetchedAt) < p.TTL {
		return p.snapshot, nil
	}

	entries, err := p.Repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings: loading knowledge entries: %w", err)
	}
	p.snapshot = parseSettings(entries)
	p.fetchedAt = time.Now()
	return p.snapshot, nil
}

// Invalidate drops the cached snapshot.
func (p *CachedProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshot = nil
}

func parseSettings(entries map[string]string) *models.Settings {
	s := &models.Settings{
		WorkStart:         DefaultWorkStart,
		WorkEnd:           DefaultWorkEnd,
		DefaultDuration:   DefaultDuration,
		DailyMessageLimit: DefaultMessageLimit,
		DailyCharLimit:    DefaultCharLimit,
		Knowledge:         entries,
	}

	if v, ok := entries[KeyWorkStart]; ok && validClock(v) {
		s.WorkStart = strings.TrimSpace(v)
	}
	if v, ok := entries[KeyWorkEnd]; ok && validClock(v) {
		s.WorkEnd = strings.TrimSpace(v)
	}
	if n := parsePositiveInt(entries[KeyDuration]); n > 0 {
		s.DefaultDuration = n
	}
	if n := parsePositiveInt(entries[KeyMessageLimit]); n > 0 {
		s.DailyMessageLimit = n
	}
	if n := parsePositiveInt(entries[KeyCharLimit]); n > 0 {
		s.DailyCharLimit = n
	}
	if raw, ok := entries[KeyAllowList]; ok && strings.TrimSpace(raw) != "" {
		for _, part := range strings.Split(raw, ",") {
			if phone := utils.NormalizePhone(part); phone != "" {
				s.AllowedNumbers = append(s.AllowedNumbers, phone)
			}
		}
	}
	return s
}

func parsePositiveInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func validClock(v string) bool {
	_, err := time.Parse("15:04", strings.TrimSpace(v))
	return err == nil
}
