package tasks

import (
	"encoding/json"

	"zapagenda/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask wraps one reminder send into an asynq task.
func NewReminderTask(payload models.ReminderPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	// TaskID pinned to the appointment: a rescan cannot enqueue the
	// same reminder twice while the first task is still pending.
	return asynq.NewTask(TypeSendReminder, b, asynq.TaskID("reminder:"+payload.AppointmentID)), nil
}
