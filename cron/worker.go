package cron

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"zapagenda/config"
	appointmentRepo "zapagenda/database/repository/appointment"
	"zapagenda/models"
	"zapagenda/services/booking"
	"zapagenda/services/messenger"
	"zapagenda/services/tasks"
	"zapagenda/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(repo appointmentRepo.AppointmentRepository, sender messenger.Messenger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, HandleReminderTask(repo, sender))

	// Start async worker with retry logic.
	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker start failed",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err),
				)
				if attempts == maxAttempts {
					logger.Fatal("reminder worker gave up")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// HandleReminderTask sends one reminder and advances the appointment to
// awaiting-confirmation. The status write happens only after a
// successful send; a send failure keeps the appointment scheduled and
// the task is retried.
func HandleReminderTask(repo appointmentRepo.AppointmentRepository, sender messenger.Messenger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		// The appointment may have been confirmed or canceled since the
		// scan; only a still-scheduled one gets a reminder.
		appt, err := repo.GetByID(ctx, p.AppointmentID)
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if appt.Status != models.StatusScheduled {
			return nil
		}

		msg := booking.ReminderMessage(p.ClientName, p.ServiceName, p.Start)
		if err := sender.SendText(ctx, p.ClientPhone, msg); err != nil {
			logger.Error("reminder send failed",
				zap.String("appointment", p.AppointmentID),
				zap.Error(err),
			)
			return err
		}

		err = repo.UpdateStatus(ctx, p.AppointmentID, models.StatusScheduled, models.StatusAwaiting)
		if errors.Is(err, appointmentRepo.ErrStatusMismatch) {
			// The user confirmed between send and write; leave it be.
			return nil
		}
		if err != nil {
			return err
		}

		logger.Info("reminder sent",
			zap.String("appointment", p.AppointmentID),
			zap.String("phone", p.ClientPhone),
		)
		return nil
	}
}
