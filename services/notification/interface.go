package notification

import (
	"context"

	"winetrail/models"
)

// Mailer delivers one transactional email.
type Mailer interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}

// Pusher delivers one push message to a device token.
type Pusher interface {
	Push(ctx context.Context, token, title, body string, data map[string]string) error
}

// WineryLookup resolves winery contact details.
type WineryLookup interface {
	GetByID(ctx context.Context, id string) (*models.Winery, error)
}

// UserLookup resolves the guest and the admin recipients.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListAdmins(ctx context.Context) ([]models.User, error)
}

// NotificationService announces booking status changes and tasting reminders.
type NotificationService interface {
	// NotifyBooking emails the guest, each winery and every admin about the booking
	// being in status. Failures are logged per recipient and never returned.
	NotifyBooking(ctx context.Context, booking *models.Booking, status models.BookingStatus) []models.DeliveryOutcome
	// RemindGuest sends the reminder for one sub-booking.
	RemindGuest(ctx context.Context, booking *models.Booking, index int) error
}
