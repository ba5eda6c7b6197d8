package cron

import (
	"context"
	"sync"
	"time"

	appointmentRepo "zapagenda/database/repository/appointment"
	"zapagenda/models"
	"zapagenda/services/tasks"
	"zapagenda/utils"

	"github.com/hibiken/asynq"
	cronlib "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// taskEnqueuer is the slice of asynq.Client the scanner needs.
type taskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScanner finds appointments entering the reminder lead window
// and queues one send task per appointment. Instead of probing a narrow
// window around a single instant each tick, it scans the half-open
// interval since the previous tick, so jittered or missed ticks cannot
// skip an appointment.
type ReminderScanner struct {
	Repo     appointmentRepo.AppointmentRepository
	Queue    taskEnqueuer
	LeadTime time.Duration

	mu       sync.Mutex
	lastScan time.Time
}

// NewReminderScanner constructs a scanner with the given lead time.
func NewReminderScanner(repo appointmentRepo.AppointmentRepository, queue taskEnqueuer, leadTime time.Duration) *ReminderScanner {
	return &ReminderScanner{Repo: repo, Queue: queue, LeadTime: leadTime}
}

// Start registers the scanner on a one-minute cron cadence.
func (s *ReminderScanner) Start() *cronlib.Cron {
	c := cronlib.New()
	c.AddFunc("* * * * *", func() {
		s.Tick(context.Background(), time.Now())
	})
	c.Start()
	return c
}

// Tick scans appointments whose start lies in (lastScan+lead, now+lead].
// The first tick after startup seeds the watermark one tick period back.
func (s *ReminderScanner) Tick(ctx context.Context, now time.Time) {
	logger := utils.GetLogger()

	s.mu.Lock()
	last := s.lastScan
	if last.IsZero() {
		last = now.Add(-time.Minute)
	}
	s.lastScan = now
	s.mu.Unlock()

	if !now.After(last) {
		return
	}

	appts, err := s.Repo.ListScheduledBetween(ctx, last.Add(s.LeadTime), now.Add(s.LeadTime))
	if err != nil {
		logger.Error("reminder scan failed", zap.Error(err))
		return
	}
	for i := range appts {
		s.enqueue(&appts[i], logger)
	}
}

func (s *ReminderScanner) enqueue(appt *models.Appointment, logger *zap.Logger) {
	task, err := tasks.NewReminderTask(models.ReminderPayload{
		AppointmentID: appt.ID,
		ClientName:    appt.ClientName,
		ClientPhone:   appt.ClientPhone,
		ServiceName:   appt.ServiceName,
		Start:         appt.Start,
	})
	if err != nil {
		logger.Error("reminder task build failed", zap.String("appointment", appt.ID), zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task); err != nil {
		logger.Error("reminder enqueue failed", zap.String("appointment", appt.ID), zap.Error(err))
		return
	}
	logger.Info("reminder queued",
		zap.String("appointment", appt.ID),
		zap.Time("start", appt.Start),
	)
}
