package notification

import (
	"context"
	"fmt"
	"html/template"
	"sync"
	"time"

	"winetrail/metrics"
	"winetrail/models"

	"go.uber.org/zap"
)

const sendTimeout = 15 * time.Second

// delivery is one independent send.
type delivery struct {
	class     models.RecipientClass
	recipient string
	send      func(ctx context.Context) error
}

// Fanout dispatches booking notifications to every recipient concurrently.
type Fanout struct {
	mailer   Mailer
	pusher   Pusher
	wineries WineryLookup
	users    UserLookup
	logger   *zap.Logger
}

// NewFanout builds the notifier. pusher may be nil, which disables guest push.
func NewFanout(mailer Mailer, pusher Pusher, wineries WineryLookup, users UserLookup, logger *zap.Logger) *Fanout {
	return &Fanout{mailer: mailer, pusher: pusher, wineries: wineries, users: users, logger: logger}
}

// NotifyBooking resolves recipients, sends to all of them at once and waits for
// every send. One recipient's failure has no effect on the others.
func (f *Fanout) NotifyBooking(ctx context.Context, b *models.Booking, status models.BookingStatus) []models.DeliveryOutcome {
	start := time.Now()
	defer func() { metrics.NotificationDuration.Observe(time.Since(start).Seconds()) }()

	// Sends outlive a cancelled request; each one has its own timeout.
	ctx = context.WithoutCancel(ctx)

	deliveries := f.plan(ctx, b, status)
	outcomes := f.dispatch(ctx, deliveries)
	for _, o := range outcomes {
		f.record(b.ID, o)
	}
	return outcomes
}

func (f *Fanout) plan(ctx context.Context, b *models.Booking, status models.BookingStatus) []delivery {
	guest, err := f.users.GetByID(ctx, b.UserID)
	if err != nil {
		f.logger.Warn("guest lookup failed, guest will not be notified",
			zap.String("bookingID", b.ID), zap.String("userID", b.UserID), zap.Error(err))
	}
	admins, err := f.users.ListAdmins(ctx)
	if err != nil {
		f.logger.Warn("admin lookup failed, admins will not be notified", zap.String("bookingID", b.ID), zap.Error(err))
	}

	customer := "Customer"
	if guest != nil && guest.Name != "" {
		customer = guest.Name
	}

	var out []delivery
	for _, sub := range b.Wineries {
		data := emailData{
			BookingID:     b.ID,
			Status:        string(status),
			StatusTitle:   capitalize(string(status)),
			CustomerName:  customer,
			WineryName:    sub.WineryName,
			PaymentMethod: string(b.PaymentMethod),
			Date:          sub.Datetime.UTC().Format("2006-01-02"),
			Time:          sub.Datetime.UTC().Format("15:04"),
		}

		// Existence is only checked here; a missing winery drops its own email.
		winery, err := f.wineries.GetByID(ctx, sub.WineryID)
		if err != nil {
			f.logger.Warn("winery not found, skipping winery email",
				zap.String("bookingID", b.ID), zap.String("wineryID", sub.WineryID), zap.Error(err))
		} else {
			data.WineryName = winery.Name
			if t, ok := winery.Tasting(sub.TastingIndex); ok {
				data.TastingTitle = t.Title
			}
		}
		if data.WineryName == "" {
			data.WineryName = "Unknown Winery"
		}

		if guest != nil {
			out = f.appendEmail(out, models.RecipientGuest, guest.Email,
				fmt.Sprintf("Booking %s - %s", status, data.WineryName), guestTmpl, data)
		}
		if winery != nil {
			out = f.appendEmail(out, models.RecipientWinery, winery.ContactInfo.Email,
				fmt.Sprintf("Booking %s Notification", status), wineryTmpl, data)
		}
		for _, admin := range admins {
			out = f.appendEmail(out, models.RecipientAdmin, admin.Email,
				fmt.Sprintf("Admin: Booking %s - %s", status, b.ID), adminTmpl, data)
		}
	}

	if f.pusher != nil && guest != nil && guest.FCMToken != "" {
		token := guest.FCMToken
		title := "Booking " + capitalize(string(status))
		body := fmt.Sprintf("Your tasting itinerary with %d %s is %s.", len(b.Wineries), plural(len(b.Wineries), "winery", "wineries"), status)
		out = append(out, delivery{
			class:     models.RecipientPush,
			recipient: guest.ID,
			send: func(ctx context.Context) error {
				return f.pusher.Push(ctx, token, title, body, map[string]string{
					"type":      "booking_status",
					"bookingId": b.ID,
					"status":    string(status),
				})
			},
		})
	}
	return out
}

func (f *Fanout) appendEmail(out []delivery, class models.RecipientClass, to, subject string, tmpl *template.Template, data emailData) []delivery {
	if to == "" {
		return out
	}
	html, err := render(tmpl, data)
	if err != nil {
		f.logger.Error("email template failed", zap.String("template", tmpl.Name()), zap.Error(err))
		return out
	}
	msg := models.EmailMessage{To: to, Subject: subject, HTML: html}
	return append(out, delivery{
		class:     class,
		recipient: to,
		send:      func(ctx context.Context) error { return f.mailer.Send(ctx, msg) },
	})
}

// dispatch runs every delivery in its own goroutine and collects each outcome
// at the delivery's index. There is no early exit and no retry.
func (f *Fanout) dispatch(ctx context.Context, deliveries []delivery) []models.DeliveryOutcome {
	outcomes := make([]models.DeliveryOutcome, len(deliveries))
	var wg sync.WaitGroup
	for i, d := range deliveries {
		wg.Add(1)
		go func(i int, d delivery) {
			defer wg.Done()
			outcomes[i] = models.DeliveryOutcome{Recipient: d.recipient, Class: d.class}
			defer func() {
				if r := recover(); r != nil {
					outcomes[i].Success = false
					outcomes[i].Reason = fmt.Sprintf("panic: %v", r)
				}
			}()

			sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
			defer cancel()
			if err := d.send(sendCtx); err != nil {
				outcomes[i].Reason = err.Error()
				return
			}
			outcomes[i].Success = true
		}(i, d)
	}
	wg.Wait()
	return outcomes
}

func (f *Fanout) record(bookingID string, o models.DeliveryOutcome) {
	outcome := "success"
	if !o.Success {
		outcome = "failure"
	}
	metrics.Notifications.WithLabelValues(string(o.Class), outcome).Inc()

	fields := []zap.Field{
		zap.String("bookingID", bookingID),
		zap.String("class", string(o.Class)),
		zap.String("recipient", o.Recipient),
	}
	if o.Success {
		f.logger.Info("notification delivered", fields...)
		return
	}
	f.logger.Warn("notification failed", append(fields, zap.String("reason", o.Reason))...)
}

// RemindGuest emails, and pushes when possible, a reminder for one sub-booking.
func (f *Fanout) RemindGuest(ctx context.Context, b *models.Booking, index int) error {
	if index < 0 || index >= len(b.Wineries) {
		return fmt.Errorf("booking %s has no sub-booking %d", b.ID, index)
	}
	sub := b.Wineries[index]

	guest, err := f.users.GetByID(ctx, b.UserID)
	if err != nil {
		return fmt.Errorf("reminder guest lookup: %w", err)
	}

	data := emailData{
		BookingID:    b.ID,
		CustomerName: guest.Name,
		WineryName:   sub.WineryName,
		Date:         sub.Datetime.UTC().Format("2006-01-02"),
		Time:         sub.Datetime.UTC().Format("15:04"),
	}
	if winery, err := f.wineries.GetByID(ctx, sub.WineryID); err == nil {
		data.WineryName = winery.Name
		if t, ok := winery.Tasting(sub.TastingIndex); ok {
			data.TastingTitle = t.Title
		}
	}
	if data.CustomerName == "" {
		data.CustomerName = "Customer"
	}

	html, err := render(reminderTmpl, data)
	if err != nil {
		return fmt.Errorf("reminder template: %w", err)
	}
	if err := f.mailer.Send(ctx, models.EmailMessage{
		To:      guest.Email,
		Subject: fmt.Sprintf("Reminder: %s on %s", data.WineryName, data.Date),
		HTML:    html,
	}); err != nil {
		return err
	}

	if f.pusher != nil && guest.FCMToken != "" {
		body := fmt.Sprintf("%s at %s %s", data.WineryName, data.Date, data.Time)
		if err := f.pusher.Push(ctx, guest.FCMToken, "Upcoming tasting", body, map[string]string{
			"type":      "tasting_reminder",
			"bookingId": b.ID,
		}); err != nil {
			f.logger.Warn("reminder push failed", zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
