package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "winetrail/database/repository/booking"
	wineryRepo "winetrail/database/repository/winery"
	"winetrail/metrics"
	"winetrail/models"
	"winetrail/services/events"
	"winetrail/services/itinerary"
	"winetrail/services/notification"
	"winetrail/services/tasks"
	"winetrail/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService is the checkout and booking management API used by the handlers.
type BookingService interface {
	// Checkout books a finalized itinerary, through hosted payment when anything must be paid in-app.
	Checkout(ctx context.Context, userID string, it models.Itinerary, specialRequests string) (*models.CheckoutResult, error)
	// CheckoutEntries resolves raw selections against the catalog and checks them out.
	CheckoutEntries(ctx context.Context, userID string, entries []models.EntryInput, specialRequests string) (*models.CheckoutResult, error)
	// Get returns a booking visible to the caller.
	Get(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error)
	// Cancel marks the caller's own booking cancelled. Repeating it is a no-op.
	Cancel(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error)
	// UpdateStatus confirms or cancels a pending booking. Admins only.
	UpdateStatus(ctx context.Context, caller models.Caller, bookingID string, status models.BookingStatus) (*models.Booking, error)
	// List pages through the bookings in the caller's scope, newest first.
	List(ctx context.Context, caller models.Caller, page, limit int) (*models.BookingPage, error)
	// ReconcilePayment applies a verified payment provider event.
	ReconcilePayment(ctx context.Context, ev PaymentEvent) error
}

// Catalog is the part of the winery catalog checkout needs.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*models.Winery, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Winery, error)
}

// CheckoutConfig holds the hosted session settings.
type CheckoutConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	catalog   Catalog
	bookings  bookingRepo.BookingRepository
	gateway   PaymentGateway
	notifier  notification.NotificationService
	events    events.Publisher
	reminders tasks.ReminderScheduler
	cfg       CheckoutConfig
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewBookingService(
	catalog Catalog,
	bookings bookingRepo.BookingRepository,
	gateway PaymentGateway,
	notifier notification.NotificationService,
	publisher events.Publisher,
	reminders tasks.ReminderScheduler,
	cfg CheckoutConfig,
	logger *zap.Logger,
) *DefaultBookingService {
	if publisher == nil {
		publisher = events.Discard{}
	}
	if reminders == nil {
		reminders = tasks.NoopReminderScheduler{}
	}
	return &DefaultBookingService{
		catalog:   catalog,
		bookings:  bookings,
		gateway:   gateway,
		notifier:  notifier,
		events:    publisher,
		reminders: reminders,
		cfg:       cfg,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.New().String() },
	}
}

func checkoutFailed(reason string) {
	metrics.CheckoutFailures.WithLabelValues(reason).Inc()
}

func (s *DefaultBookingService) CheckoutEntries(ctx context.Context, userID string, entries []models.EntryInput, specialRequests string) (*models.CheckoutResult, error) {
	if len(entries) == 0 {
		checkoutFailed("validation")
		return nil, &ValidationError{Err: errors.New("invalid booking data: no wineries selected")}
	}

	seen := make(map[string]bool, len(entries))
	for _, in := range entries {
		if seen[in.WineryID] {
			checkoutFailed("validation")
			return nil, &ValidationError{Err: fmt.Errorf("duplicate winery %s", in.WineryID)}
		}
		seen[in.WineryID] = true
	}

	store := itinerary.NewStore(models.Itinerary{})
	for _, in := range entries {
		w, err := s.catalog.GetByID(ctx, in.WineryID)
		if errors.Is(err, wineryRepo.ErrWineryNotFound) {
			checkoutFailed("validation")
			return nil, &ValidationError{Err: fmt.Errorf("unknown winery %s", in.WineryID)}
		}
		if err != nil {
			checkoutFailed("catalog")
			return nil, fmt.Errorf("load winery %s: %w", in.WineryID, err)
		}
		store.Add(*w)
		if _, err := store.Update(w.ID, in.Selection); err != nil {
			checkoutFailed("validation")
			return nil, &ValidationError{Err: err}
		}
	}
	return s.Checkout(ctx, userID, store.Snapshot(), specialRequests)
}

// Checkout validates everything before the first external call. On the hosted path
// the payment session is opened before the booking is written, so a gateway failure
// leaves nothing behind; the booking then waits in pending for the payment webhook.
func (s *DefaultBookingService) Checkout(ctx context.Context, userID string, it models.Itinerary, specialRequests string) (*models.CheckoutResult, error) {
	final, err := itinerary.Finalize(it)
	if err != nil {
		checkoutFailed("validation")
		return nil, &ValidationError{Err: err}
	}

	plan, err := Route(final)
	if err != nil {
		if errors.Is(err, ErrNothingToPay) {
			checkoutFailed("nothing_to_pay")
		} else {
			checkoutFailed("validation")
		}
		return nil, err
	}

	now := s.now()
	b := &models.Booking{
		ID:              s.newID(),
		UserID:          userID,
		Status:          models.BookingPending,
		PaymentMethod:   plan.Method,
		TotalAmount:     plan.Total,
		Wineries:        plan.Items,
		SpecialRequests: specialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	result := &models.CheckoutResult{Path: plan.Path, Booking: b, Amount: plan.Total}

	if plan.Path == models.HostedPaymentPath {
		sess, err := s.gateway.CreateCheckoutSession(ctx, models.CheckoutSessionRequest{
			LineItems:  plan.LineItems,
			Currency:   s.cfg.Currency,
			SuccessURL: s.cfg.SuccessURL,
			CancelURL:  s.cfg.CancelURL,
			Metadata:   map[string]string{metaBookingID: b.ID, metaUserID: userID},
		})
		if err != nil {
			checkoutFailed("payment")
			s.logger.Warn("checkout session failed", zap.String("userID", userID), zap.Error(err))
			return nil, &PaymentError{Err: err}
		}
		b.PaymentSession = sess.ID
		result.Session = sess
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		checkoutFailed("persistence")
		return nil, fmt.Errorf("persist booking: %w", err)
	}
	metrics.Checkouts.WithLabelValues(string(plan.Path)).Inc()
	s.logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("userID", userID),
		zap.String("path", string(plan.Path)),
		zap.Int("wineries", len(b.Wineries)),
		zap.String("amount", plan.Total.String()),
	)

	s.afterCreate(ctx, b)
	return result, nil
}

// afterCreate runs the side effects of a new booking. None of them can fail the checkout.
func (s *DefaultBookingService) afterCreate(ctx context.Context, b *models.Booking) {
	s.notifier.NotifyBooking(ctx, b, models.BookingPending)
	s.publish(ctx, events.BookingCreated, b)
	if _, err := s.reminders.ScheduleReminders(ctx, b); err != nil {
		s.logger.Warn("reminder scheduling failed", zap.String("bookingID", b.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) afterTransition(ctx context.Context, b *models.Booking) {
	s.notifier.NotifyBooking(ctx, b, b.Status)
	eventType := events.BookingConfirmed
	if b.Status == models.BookingCancelled {
		eventType = events.BookingCancelled
	}
	s.publish(ctx, eventType, b)
}

func (s *DefaultBookingService) publish(ctx context.Context, eventType string, b *models.Booking) {
	if err := s.events.PublishBooking(ctx, eventType, b); err != nil {
		s.logger.Warn("booking event not published", zap.String("type", eventType), zap.String("bookingID", b.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) load(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	return b, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleAdmin && b.UserID != caller.UserID {
		return nil, ErrNotOwner
	}
	return b, nil
}

// transition applies from→to and reports whether this call changed anything.
// A booking already in the target status is returned unchanged.
func (s *DefaultBookingService) transition(ctx context.Context, b *models.Booking, from []models.BookingStatus, to models.BookingStatus) (*models.Booking, bool, error) {
	if b.Status == to {
		return b, false, nil
	}
	updated, err := s.bookings.UpdateStatus(ctx, b.ID, from, to)
	if err == nil {
		return updated, true, nil
	}
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return nil, false, ErrBookingNotFound
	}
	if errors.Is(err, bookingRepo.ErrStatusConflict) {
		current, loadErr := s.load(ctx, b.ID)
		if loadErr == nil && current.Status == to {
			return current, false, nil
		}
		return nil, false, ErrInvalidTransition
	}
	return nil, false, fmt.Errorf("update booking status: %w", err)
}

func (s *DefaultBookingService) Cancel(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != caller.UserID {
		return nil, ErrNotOwner
	}
	if b.Status == models.BookingCancelled {
		return b, nil
	}
	if b.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	updated, changed, err := s.transition(ctx, b, []models.BookingStatus{models.BookingPending}, models.BookingCancelled)
	if err != nil {
		return nil, err
	}
	if changed {
		s.logger.Info("booking cancelled by owner", zap.String("bookingID", bookingID), zap.String("userID", caller.UserID))
		s.afterTransition(ctx, updated)
	}
	return updated, nil
}

func (s *DefaultBookingService) UpdateStatus(ctx context.Context, caller models.Caller, bookingID string, status models.BookingStatus) (*models.Booking, error) {
	if caller.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if status != models.BookingConfirmed && status != models.BookingCancelled {
		return nil, &ValidationError{Err: fmt.Errorf("invalid status %q", status)}
	}

	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() && b.Status != status {
		return nil, ErrInvalidTransition
	}

	updated, changed, err := s.transition(ctx, b, []models.BookingStatus{models.BookingPending}, status)
	if err != nil {
		return nil, err
	}
	if changed {
		s.logger.Info("booking status updated by admin",
			zap.String("bookingID", bookingID), zap.String("status", string(status)), zap.String("adminID", caller.UserID))
		s.afterTransition(ctx, updated)
	}
	return updated, nil
}

func (s *DefaultBookingService) List(ctx context.Context, caller models.Caller, page, limit int) (*models.BookingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = utils.DefaultPageSize
	}
	if limit > utils.MaxPageSize {
		limit = utils.MaxPageSize
	}

	var scope bookingRepo.Scope
	switch caller.Role {
	case models.RoleAdmin:
	case models.RoleWinery:
		owned, err := s.catalog.ListByOwner(ctx, caller.UserID)
		if err != nil {
			return nil, fmt.Errorf("load managed wineries: %w", err)
		}
		scope.WineryIDs = make([]string, 0, len(owned))
		for _, w := range owned {
			scope.WineryIDs = append(scope.WineryIDs, w.ID)
		}
	default:
		scope.UserID = caller.UserID
	}

	bookings, total, err := s.bookings.List(ctx, scope, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return &models.BookingPage{
		Bookings:    bookings,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
	}, nil
}

// ReconcilePayment confirms a booking when its checkout completes and cancels it
// when the session expires. Replayed or out-of-order events are ignored.
func (s *DefaultBookingService) ReconcilePayment(ctx context.Context, ev PaymentEvent) error {
	var to models.BookingStatus
	switch ev.Type {
	case EventCheckoutCompleted:
		to = models.BookingConfirmed
	case EventCheckoutExpired:
		to = models.BookingCancelled
	default:
		return nil
	}

	var (
		b   *models.Booking
		err error
	)
	if ev.BookingID != "" {
		b, err = s.load(ctx, ev.BookingID)
	} else {
		b, err = s.bookings.GetByPaymentSession(ctx, ev.SessionID)
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			err = ErrBookingNotFound
		}
	}
	if err != nil {
		return err
	}
	if ev.SessionID != "" && b.PaymentSession != "" && b.PaymentSession != ev.SessionID {
		s.logger.Warn("payment event for a different session ignored",
			zap.String("bookingID", b.ID), zap.String("sessionID", ev.SessionID))
		return nil
	}

	updated, changed, err := s.transition(ctx, b, []models.BookingStatus{models.BookingPending}, to)
	if errors.Is(err, ErrInvalidTransition) {
		s.logger.Warn("payment event does not apply to booking",
			zap.String("bookingID", b.ID), zap.String("event", ev.Type), zap.String("status", string(b.Status)))
		return nil
	}
	if err != nil {
		return err
	}
	if changed {
		s.logger.Info("booking reconciled with payment", zap.String("bookingID", b.ID), zap.String("status", string(to)))
		s.afterTransition(ctx, updated)
	}
	return nil
}
