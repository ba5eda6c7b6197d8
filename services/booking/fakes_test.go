package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	appointmentRepo "zapagenda/database/repository/appointment"
	"zapagenda/models"
)

// memAppointmentRepo is an in-memory AppointmentRepository with the same
// write-time overlap re-check as the Mongo implementation.
type memAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]*models.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{appts: make(map[string]*models.Appointment)}
}

func (r *memAppointmentRepo) Create(_ context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.appts {
		if existing.Status == models.StatusCanceled {
			continue
		}
		if existing.Overlaps(appt.Start, appt.End) {
			return appointmentRepo.ErrSlotConflict
		}
	}
	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

func (r *memAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *appt
	return &cp, nil
}

func (r *memAppointmentRepo) UpdateStatus(_ context.Context, id, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok || appt.Status != from {
		return appointmentRepo.ErrStatusMismatch
	}
	appt.Status = to
	return nil
}

func (r *memAppointmentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appts[id]; !ok {
		return appointmentRepo.ErrNotFound
	}
	delete(r.appts, id)
	return nil
}

func (r *memAppointmentRepo) ListByWindow(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, appt := range r.appts {
		if !appt.Start.Before(start) && appt.Start.Before(end) {
			out = append(out, *appt)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *memAppointmentRepo) ListScheduledBetween(_ context.Context, after, until time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, appt := range r.appts {
		if appt.Status != models.StatusScheduled || appt.ClientPhone == "" {
			continue
		}
		if appt.Start.After(after) && !appt.Start.After(until) {
			out = append(out, *appt)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *memAppointmentRepo) FindAwaitingByPhone(_ context.Context, phone string) (*models.Appointment, error) {
	return r.firstByPhone(phone, models.StatusAwaiting, time.Time{})
}

func (r *memAppointmentRepo) NextScheduledByPhone(_ context.Context, phone string, now time.Time) (*models.Appointment, error) {
	return r.firstByPhone(phone, models.StatusScheduled, now)
}

func (r *memAppointmentRepo) firstByPhone(phone, status string, after time.Time) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *models.Appointment
	for _, appt := range r.appts {
		if appt.ClientPhone != phone || appt.Status != status {
			continue
		}
		if !after.IsZero() && !appt.Start.After(after) {
			continue
		}
		if best == nil || appt.Start.Before(best.Start) {
			best = appt
		}
	}
	if best == nil {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (r *memAppointmentRepo) ListAll(_ context.Context) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, appt := range r.appts {
		out = append(out, *appt)
	}
	sortByStart(out)
	return out, nil
}

func sortByStart(appts []models.Appointment) {
	sort.Slice(appts, func(i, j int) bool { return appts[i].Start.Before(appts[j].Start) })
}

// memStateStore is an in-memory StateStore.
type memStateStore struct {
	mu     sync.Mutex
	states map[string]*models.ConversationState
}

func newMemStateStore() *memStateStore {
	return &memStateStore{states: make(map[string]*models.ConversationState)}
}

func (s *memStateStore) Get(_ context.Context, phone string) (*models.ConversationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[phone]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (s *memStateStore) Set(_ context.Context, state *models.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *state
	s.states[state.Phone] = &cp
	return nil
}

func (s *memStateStore) Clear(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, phone)
	return nil
}

// memHistoryStore is an in-memory ai.HistoryStore.
type memHistoryStore struct {
	mu       sync.Mutex
	messages map[string][]models.ChatMessage
}

func newMemHistoryStore() *memHistoryStore {
	return &memHistoryStore{messages: make(map[string][]models.ChatMessage)}
}

func (h *memHistoryStore) Get(_ context.Context, phone string) ([]models.ChatMessage, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.ChatMessage(nil), h.messages[phone]...), nil
}

func (h *memHistoryStore) Save(_ context.Context, phone string, history []models.ChatMessage) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages[phone] = append([]models.ChatMessage(nil), history...)
	return nil
}

func (h *memHistoryStore) Clear(_ context.Context, phone string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.messages, phone)
	return nil
}

// scriptedExtractor returns canned responses in order and records the
// histories it was invoked with.
type scriptedExtractor struct {
	mu        sync.Mutex
	responses []string
	calls     [][]models.ChatMessage
}

func (f *scriptedExtractor) GenerateReply(_ context.Context, history []models.ChatMessage, _ map[string]string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]models.ChatMessage(nil), history...))
	if len(f.responses) == 0 {
		return "Certo!", nil
	}
	next := f.responses[0]
	f.responses = f.responses[1:]
	return next, nil
}

func (f *scriptedExtractor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeSettings serves a fixed snapshot.
type fakeSettings struct {
	snap        *models.Settings
	invalidated int
}

func (f *fakeSettings) Snapshot(_ context.Context) (*models.Settings, error) {
	return f.snap, nil
}

func (f *fakeSettings) Invalidate() {
	f.invalidated++
}

// fakeUsage counts in memory.
type fakeUsage struct {
	mu       sync.Mutex
	messages int64
	chars    int64
}

func (f *fakeUsage) CountMessage(_ context.Context, _ string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages++
	return f.messages, nil
}

func (f *fakeUsage) CountChars(_ context.Context, _ string, n int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chars += int64(n)
	return f.chars, nil
}

// memKnowledgeRepo is an in-memory KnowledgeRepository.
type memKnowledgeRepo struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemKnowledgeRepo() *memKnowledgeRepo {
	return &memKnowledgeRepo{entries: make(map[string]string)}
}

func (r *memKnowledgeRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.entries[key]
	if !ok {
		return "", nil
	}
	return v, nil
}

func (r *memKnowledgeRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = value
	return nil
}

func (r *memKnowledgeRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
	return nil
}

func (r *memKnowledgeRepo) All(_ context.Context) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.entries))
	for k, v := range r.entries {
		out[k] = v
	}
	return out, nil
}
