package cron

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	appointmentRepo "zapagenda/database/repository/appointment"
	"zapagenda/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo serves a fixed appointment list and records status writes.
type fakeRepo struct {
	mu     sync.Mutex
	appts  []models.Appointment
	status map[string]string
}

func newFakeRepo(appts ...models.Appointment) *fakeRepo {
	r := &fakeRepo{appts: appts, status: make(map[string]string)}
	for _, a := range appts {
		r.status[a.ID] = a.Status
	}
	return r
}

func (r *fakeRepo) Create(context.Context, *models.Appointment) error { return nil }

func (r *fakeRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appts {
		if r.appts[i].ID == id {
			appt := r.appts[i]
			appt.Status = r.status[id]
			return &appt, nil
		}
	}
	return nil, appointmentRepo.ErrNotFound
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status[id] != from {
		return appointmentRepo.ErrStatusMismatch
	}
	r.status[id] = to
	return nil
}

func (r *fakeRepo) Delete(context.Context, string) error { return nil }

func (r *fakeRepo) ListByWindow(context.Context, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeRepo) ListScheduledBetween(_ context.Context, after, until time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if r.status[a.ID] != models.StatusScheduled || a.ClientPhone == "" {
			continue
		}
		if a.Start.After(after) && !a.Start.After(until) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindAwaitingByPhone(context.Context, string) (*models.Appointment, error) {
	return nil, appointmentRepo.ErrNotFound
}

func (r *fakeRepo) NextScheduledByPhone(context.Context, string, time.Time) (*models.Appointment, error) {
	return nil, appointmentRepo.ErrNotFound
}

func (r *fakeRepo) ListAll(context.Context) ([]models.Appointment, error) { return r.appts, nil }

// fakeQueue records enqueued tasks.
type fakeQueue struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (q *fakeQueue) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func (q *fakeQueue) payloads(t *testing.T) []models.ReminderPayload {
	t.Helper()
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.ReminderPayload, 0, len(q.tasks))
	for _, task := range q.tasks {
		var p models.ReminderPayload
		require.NoError(t, json.Unmarshal(task.Payload(), &p))
		out = append(out, p)
	}
	return out
}

func instant(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return ts
}

func TestTickQueuesAppointmentsEnteringLeadWindow(t *testing.T) {
	start := instant(t, "2026-09-10 15:00")
	repo := newFakeRepo(models.Appointment{
		ID:          "appt-1",
		ClientName:  "Maria",
		ClientPhone: "5562999990000",
		ServiceName: "corte",
		Status:      models.StatusScheduled,
		Start:       start,
	})
	queue := &fakeQueue{}
	s := NewReminderScanner(repo, queue, 3*time.Hour)

	// Lead boundary not reached yet.
	s.Tick(context.Background(), instant(t, "2026-09-10 11:58"))
	assert.Empty(t, queue.payloads(t))

	// Start enters (lastScan+lead, now+lead].
	s.Tick(context.Background(), instant(t, "2026-09-10 12:00"))
	payloads := queue.payloads(t)
	require.Len(t, payloads, 1)
	assert.Equal(t, "appt-1", payloads[0].AppointmentID)
	assert.Equal(t, "5562999990000", payloads[0].ClientPhone)
	assert.True(t, payloads[0].Start.Equal(start))

	// Subsequent ticks never re-queue the same appointment.
	s.Tick(context.Background(), instant(t, "2026-09-10 12:01"))
	s.Tick(context.Background(), instant(t, "2026-09-10 12:02"))
	assert.Len(t, queue.payloads(t), 1)
}

func TestTickCoversMissedIntervals(t *testing.T) {
	repo := newFakeRepo(
		models.Appointment{
			ID: "appt-1", ClientPhone: "1", Status: models.StatusScheduled,
			Start: instant(t, "2026-09-10 15:02"),
		},
		models.Appointment{
			ID: "appt-2", ClientPhone: "2", Status: models.StatusScheduled,
			Start: instant(t, "2026-09-10 15:06"),
		},
	)
	queue := &fakeQueue{}
	s := NewReminderScanner(repo, queue, 3*time.Hour)

	s.Tick(context.Background(), instant(t, "2026-09-10 12:01"))
	require.Len(t, queue.payloads(t), 0)

	// The next tick arrives late; the whole gap is still scanned.
	s.Tick(context.Background(), instant(t, "2026-09-10 12:07"))
	payloads := queue.payloads(t)
	require.Len(t, payloads, 2)
}

func TestTickSkipsNonScheduled(t *testing.T) {
	repo := newFakeRepo(
		models.Appointment{
			ID: "appt-1", ClientPhone: "1", Status: models.StatusConfirmed,
			Start: instant(t, "2026-09-10 15:00"),
		},
		models.Appointment{
			ID: "appt-2", ClientPhone: "", Status: models.StatusScheduled,
			Start: instant(t, "2026-09-10 15:00"),
		},
	)
	queue := &fakeQueue{}
	s := NewReminderScanner(repo, queue, 3*time.Hour)

	s.Tick(context.Background(), instant(t, "2026-09-10 11:59"))
	s.Tick(context.Background(), instant(t, "2026-09-10 12:00"))
	assert.Empty(t, queue.payloads(t))
}

func TestTickIgnoresClockGoingBackwards(t *testing.T) {
	repo := newFakeRepo(models.Appointment{
		ID: "appt-1", ClientPhone: "1", Status: models.StatusScheduled,
		Start: instant(t, "2026-09-10 15:00"),
	})
	queue := &fakeQueue{}
	s := NewReminderScanner(repo, queue, 3*time.Hour)

	s.Tick(context.Background(), instant(t, "2026-09-10 12:05"))
	before := len(queue.payloads(t))

	s.Tick(context.Background(), instant(t, "2026-09-10 12:03"))
	assert.Len(t, queue.payloads(t), before)
}
