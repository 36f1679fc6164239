package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"winetrail/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	BookingCreated   = "booking_created"
	BookingConfirmed = "booking_confirmed"
	BookingCancelled = "booking_cancelled"
)

// Publisher emits booking lifecycle events.
type Publisher interface {
	PublishBooking(ctx context.Context, eventType string, booking *models.Booking) error
}

// messageWriter is the part of kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{writer: writer, topic: topic, logger: logger}
}

// NewEvent builds the event body for a booking.
func NewEvent(eventType string, b *models.Booking) models.BookingEvent {
	ids := make([]string, 0, len(b.Wineries))
	for _, w := range b.Wineries {
		ids = append(ids, w.WineryID)
	}
	return models.BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		UserID:        b.UserID,
		Status:        b.Status,
		PaymentMethod: b.PaymentMethod,
		TotalAmount:   b.TotalAmount,
		WineryIDs:     ids,
	}
}

// PublishBooking writes one event keyed by booking id so a booking's events stay ordered.
func (p *Producer) PublishBooking(ctx context.Context, eventType string, b *models.Booking) error {
	data, err := json.Marshal(NewEvent(eventType, b))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(b.ID),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write %s for booking %s: %w", eventType, b.ID, err)
	}
	p.logger.Debug("published booking event", zap.String("type", eventType), zap.String("bookingID", b.ID))
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// Discard is used when no brokers are configured.
type Discard struct{}

func (Discard) PublishBooking(context.Context, string, *models.Booking) error { return nil }
