package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"winetrail/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(fmt.Sprintf("reminder:%s:%d", payload.BookingID, payload.Index)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ReminderScheduler queues tasting reminders for a booking.
type ReminderScheduler interface {
	ScheduleReminders(ctx context.Context, booking *models.Booking) (int, error)
}

// enqueuer is the part of asynq.Client the scheduler uses.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type AsynqReminderScheduler struct {
	client enqueuer
	lead   time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewAsynqReminderScheduler(client *asynq.Client, lead time.Duration, logger *zap.Logger) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: client, lead: lead, now: time.Now, logger: logger}
}

// ScheduleReminders enqueues one reminder per sub-booking, lead before its time.
// Reminders that would already be due are skipped. It returns how many were queued.
func (s *AsynqReminderScheduler) ScheduleReminders(ctx context.Context, b *models.Booking) (int, error) {
	now := s.now()
	queued := 0
	for i, sub := range b.Wineries {
		fireAt := sub.Datetime.Add(-s.lead)
		if !fireAt.After(now) {
			continue
		}
		task, opts, err := NewReminderTask(models.ReminderPayload{
			BookingID: b.ID,
			WineryID:  sub.WineryID,
			Index:     i,
			FireDate:  fireAt.UTC().Format(time.RFC3339),
		}, fireAt)
		if err != nil {
			return queued, err
		}
		if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
			return queued, fmt.Errorf("enqueue reminder %d for booking %s: %w", i, b.ID, err)
		}
		queued++
	}
	s.logger.Debug("reminders scheduled", zap.String("bookingID", b.ID), zap.Int("count", queued))
	return queued, nil
}

// NoopReminderScheduler is used when reminders are disabled.
type NoopReminderScheduler struct{}

func (NoopReminderScheduler) ScheduleReminders(context.Context, *models.Booking) (int, error) {
	return 0, nil
}
