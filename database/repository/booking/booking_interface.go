package bookingRepo

import (
	"context"
	"errors"

	"winetrail/models"
)

var (
	// ErrBookingNotFound is returned when no booking matches the id.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrStatusConflict is returned when a conditional status update finds the
	// booking in a state outside the allowed set.
	ErrStatusConflict = errors.New("booking status changed concurrently")
)

// Scope restricts a listing. An empty scope lists every booking.
type Scope struct {
	UserID    string
	WineryIDs []string
}

// BookingRepository persists booking aggregates.
type BookingRepository interface {
	// Create inserts a new booking.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by id.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByPaymentSession retrieves the booking opened for a hosted checkout session.
	GetByPaymentSession(ctx context.Context, sessionID string) (*models.Booking, error)
	// UpdateStatus moves a booking to status if its current status is one of from.
	UpdateStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus) (*models.Booking, error)
	// List returns one page of bookings in scope, newest first, and the total count.
	List(ctx context.Context, scope Scope, page, limit int) ([]models.Booking, int64, error)
}
