package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"detailing/models"

	"github.com/hibiken/asynq"
)

const TypeEmailSend = "email:send"

// NewEmailTask wraps an e-mail in an asynq task. A zero fireAt sends as soon as a worker is free.
func NewEmailTask(payload models.EmailPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEmailSend, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}
	if !fireAt.IsZero() {
		opts = append(opts, asynq.ProcessAt(fireAt))
	}
	if payload.BookingID != "" && payload.Kind != "" {
		// A retried enqueue for the same booking and kind is dropped by asynq.
		opts = append(opts, asynq.TaskID(fmt.Sprintf("%s:%s:%s", payload.Kind, payload.BookingID, payload.To)))
	}
	return task, opts, nil
}

// ParseEmailPayload decodes the payload of an e-mail task.
func ParseEmailPayload(task *asynq.Task) (models.EmailPayload, error) {
	var p models.EmailPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid email payload: %w", err)
	}
	return p, nil
}
