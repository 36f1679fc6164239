package booking

import (
	"errors"
)

var (
	// ErrNothingToPay rejects a hosted checkout whose payable line items came out empty.
	ErrNothingToPay = errors.New("select at least one paid item")
	// ErrBookingNotFound is returned for unknown bookings.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrNotOwner is returned when a caller acts on someone else's booking.
	ErrNotOwner = errors.New("booking belongs to another user")
	// ErrForbidden is returned when the caller's role does not allow the action.
	ErrForbidden = errors.New("action not allowed for this role")
	// ErrInvalidTransition is returned when the booking's status does not allow the change.
	ErrInvalidTransition = errors.New("booking status does not allow this change")
)

// ValidationError rejects a checkout before anything is written or charged.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// PaymentError carries a payment gateway failure. Its message is the gateway's own.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string { return e.Err.Error() }

func (e *PaymentError) Unwrap() error { return e.Err }
