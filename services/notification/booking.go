package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"detailing/models"
	"detailing/services/tasks"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of *asynq.Client the notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// BookingNotifier queues the e-mails that follow booking lifecycle changes.
type BookingNotifier interface {
	BookingCreated(ctx context.Context, b models.Booking, start time.Time) error
	BookingCancelled(ctx context.Context, b models.Booking) error
}

// QueueNotifier implements BookingNotifier on an asynq queue.
type QueueNotifier struct {
	queue        Enqueuer
	ownerEmail   string
	location     *time.Location
	reminderLead time.Duration
	now          func() time.Time
}

func NewQueueNotifier(queue Enqueuer, ownerEmail string, loc *time.Location) *QueueNotifier {
	return &QueueNotifier{
		queue:        queue,
		ownerEmail:   ownerEmail,
		location:     loc,
		reminderLead: 24 * time.Hour,
		now:          time.Now,
	}
}

// BookingCreated queues the customer confirmation, the owner alert and a reminder
// one day ahead when that is still in the future.
func (n *QueueNotifier) BookingCreated(ctx context.Context, b models.Booking, start time.Time) error {
	var errs []error

	subject, body := confirmationEmail(b, start, n.location)
	errs = append(errs, n.enqueue(ctx, models.EmailPayload{
		BookingID: b.ID, To: b.CustomerEmail, Subject: subject, Body: body, Kind: KindConfirmation,
	}, time.Time{}))

	if n.ownerEmail != "" {
		subject, body = ownerAlertEmail(b, start, n.location)
		errs = append(errs, n.enqueue(ctx, models.EmailPayload{
			BookingID: b.ID, To: n.ownerEmail, Subject: subject, Body: body, Kind: KindOwnerAlert,
		}, time.Time{}))
	}

	if remindAt := start.Add(-n.reminderLead); remindAt.After(n.now()) {
		subject, body = reminderEmail(b, start, n.location)
		errs = append(errs, n.enqueue(ctx, models.EmailPayload{
			BookingID: b.ID, To: b.CustomerEmail, Subject: subject, Body: body, Kind: KindReminder,
		}, remindAt))
	}
	return errors.Join(errs...)
}

// BookingCancelled queues the cancellation notice. The worker skips reminders of cancelled bookings.
func (n *QueueNotifier) BookingCancelled(ctx context.Context, b models.Booking) error {
	subject, body := cancellationEmail(b)
	return n.enqueue(ctx, models.EmailPayload{
		BookingID: b.ID, To: b.CustomerEmail, Subject: subject, Body: body, Kind: KindCancellation,
	}, time.Time{})
}

func (n *QueueNotifier) enqueue(ctx context.Context, payload models.EmailPayload, fireAt time.Time) error {
	if payload.To == "" {
		return nil
	}
	task, opts, err := tasks.NewEmailTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := n.queue.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
			return nil
		}
		return fmt.Errorf("failed to enqueue %s e-mail: %w", payload.Kind, err)
	}
	return nil
}
