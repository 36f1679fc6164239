package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"winetrail/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBookings map[string]*models.Booking

func (s stubBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	if b, ok := s[id]; ok {
		return b, nil
	}
	return nil, errors.New("booking not found")
}

type stubNotifier struct {
	reminded []int
}

func (s *stubNotifier) NotifyBooking(context.Context, *models.Booking, models.BookingStatus) []models.DeliveryOutcome {
	return nil
}

func (s *stubNotifier) RemindGuest(_ context.Context, _ *models.Booking, index int) error {
	s.reminded = append(s.reminded, index)
	return nil
}

func reminderTask(t *testing.T, p models.ReminderPayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask("reminder:send", data)
}

func TestHandleReminderTask(t *testing.T) {
	bookings := stubBookings{
		"live":      {ID: "live", Status: models.BookingConfirmed},
		"cancelled": {ID: "cancelled", Status: models.BookingCancelled},
	}
	notifier := &stubNotifier{}
	handler := HandleReminderTask(bookings, notifier, zap.NewNop())

	require.NoError(t, handler(context.Background(), reminderTask(t, models.ReminderPayload{BookingID: "live", Index: 1})))
	require.NoError(t, handler(context.Background(), reminderTask(t, models.ReminderPayload{BookingID: "cancelled"})))
	assert.Error(t, handler(context.Background(), reminderTask(t, models.ReminderPayload{BookingID: "missing"})))

	assert.Equal(t, []int{1}, notifier.reminded)
}

func TestHandleReminderTask_BadPayloadSkipsRetry(t *testing.T) {
	handler := HandleReminderTask(stubBookings{}, &stubNotifier{}, zap.NewNop())

	err := handler(context.Background(), asynq.NewTask("reminder:send", []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
}
