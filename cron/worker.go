package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"winetrail/config"
	"winetrail/models"
	"winetrail/services/notification"
	"winetrail/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingReader loads the booking a reminder belongs to.
type BookingReader interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

// RedisOpt is the asynq connection shared by the scheduler client and the worker.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}
}

// InitReminderWorker runs the async worker in background and returns it for shutdown.
func InitReminderWorker(bookings BookingReader, notifier notification.NotificationService, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, HandleReminderTask(bookings, notifier, logger))

	go func() {
		logger.Info("[ReminderWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("[ReminderWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[ReminderWorker] giving up, reminders disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleReminderTask re-reads the booking so that cancellations made after
// scheduling suppress the reminder.
func HandleReminderTask(bookings BookingReader, notifier notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("[ReminderHandler] invalid payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		b, err := bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			return fmt.Errorf("load booking %s: %w", p.BookingID, err)
		}
		if b.Status == models.BookingCancelled {
			logger.Info("[ReminderHandler] booking cancelled, skipping", zap.String("bookingID", p.BookingID))
			return nil
		}

		if err := notifier.RemindGuest(ctx, b, p.Index); err != nil {
			logger.Warn("[ReminderHandler] reminder failed",
				zap.String("bookingID", p.BookingID), zap.Int("index", p.Index), zap.Error(err))
			return err
		}
		logger.Info("[ReminderHandler] reminder sent", zap.String("bookingID", p.BookingID), zap.String("wineryID", p.WineryID))
		return nil
	}
}
