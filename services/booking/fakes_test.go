package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	bookingRepo "winetrail/database/repository/booking"
	wineryRepo "winetrail/database/repository/winery"
	"winetrail/models"
	"winetrail/services/notification"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func testWinery(id string, method models.PaymentMethodType) models.Winery {
	return models.Winery{
		ID:            id,
		Name:          "Winery " + id,
		OwnerID:       "owner-" + id,
		ContactInfo:   models.ContactInfo{Email: id + "@wineries.example"},
		PaymentMethod: models.PaymentMethod{Type: method},
		Tastings: []models.TastingInfo{{
			Title: "Estate Flight",
			Price: 45,
			FoodPairingOptions: []models.FoodPairingOption{
				{ID: "fp-1", Name: "Cheese Board", Price: 12},
			},
			Tours: models.Tours{Available: true, Options: []models.TourOption{
				{Description: "Cellar Tour", Cost: 30},
			}},
			BookingInfo: models.BookingInfo{AvailableSlots: []string{
				"2024-05-04T10:00Z", "2024-05-04T14:00Z", "2024-05-05T10:00Z",
			}},
		}},
	}
}

func entry(w models.Winery, sel models.BookingSelection) models.ItineraryEntry {
	return models.ItineraryEntry{Winery: w, Selection: sel}
}

func timed(t string) models.BookingSelection {
	return models.BookingSelection{Time: t}
}

type fakeCatalog map[string]models.Winery

func (c fakeCatalog) GetByID(_ context.Context, id string) (*models.Winery, error) {
	w, ok := c[id]
	if !ok {
		return nil, wineryRepo.ErrWineryNotFound
	}
	return &w, nil
}

func (c fakeCatalog) ListByOwner(_ context.Context, ownerID string) ([]models.Winery, error) {
	var out []models.Winery
	for _, w := range c {
		if w.OwnerID == ownerID {
			out = append(out, w)
		}
	}
	return out, nil
}

// memBookings is an in-memory BookingRepository with the same conditional update semantics.
type memBookings struct {
	mu        sync.Mutex
	items     map[string]models.Booking
	createErr error
}

func newMemBookings() *memBookings {
	return &memBookings{items: map[string]models.Booking{}}
}

func (m *memBookings) Create(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.items[b.ID] = *b
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (m *memBookings) GetByPaymentSession(_ context.Context, sessionID string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.items {
		if b.PaymentSession == sessionID {
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *memBookings) UpdateStatus(_ context.Context, id string, from []models.BookingStatus, to models.BookingStatus) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	for _, f := range from {
		if b.Status == f {
			b.Status = to
			m.items[id] = b
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrStatusConflict
}

func (m *memBookings) List(_ context.Context, scope bookingRepo.Scope, page, limit int) ([]models.Booking, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.Booking
	for _, b := range m.items {
		if scope.UserID != "" && b.UserID != scope.UserID {
			continue
		}
		if scope.WineryIDs != nil && !touches(b, scope.WineryIDs) {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], int64(len(matched)), nil
}

func touches(b models.Booking, ids []string) bool {
	for _, w := range b.Wineries {
		for _, id := range ids {
			if w.WineryID == id {
				return true
			}
		}
	}
	return false
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSession, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*models.CheckoutSession)
	return s, args.Error(1)
}

func (m *mockGateway) ParseWebhook(payload []byte, signature string) (*PaymentEvent, error) {
	args := m.Called(payload, signature)
	ev, _ := args.Get(0).(*PaymentEvent)
	return ev, args.Error(1)
}

type recordingNotifier struct {
	mu       sync.Mutex
	statuses []models.BookingStatus
}

func (r *recordingNotifier) NotifyBooking(_ context.Context, _ *models.Booking, status models.BookingStatus) []models.DeliveryOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
	return nil
}

func (r *recordingNotifier) RemindGuest(context.Context, *models.Booking, int) error { return nil }

type recordingPublisher struct {
	types []string
	err   error
}

func (p *recordingPublisher) PublishBooking(_ context.Context, eventType string, _ *models.Booking) error {
	p.types = append(p.types, eventType)
	return p.err
}

type recordingReminders struct {
	scheduled []string
}

func (r *recordingReminders) ScheduleReminders(_ context.Context, b *models.Booking) (int, error) {
	r.scheduled = append(r.scheduled, b.ID)
	return len(b.Wineries), nil
}

type harness struct {
	svc       *DefaultBookingService
	catalog   fakeCatalog
	bookings  *memBookings
	gateway   *mockGateway
	notifier  notification.NotificationService
	events    *recordingPublisher
	reminders *recordingReminders
}

func newHarness(t *testing.T, notifier notification.NotificationService, wineries ...models.Winery) *harness {
	t.Helper()
	h := &harness{
		catalog:   fakeCatalog{},
		bookings:  newMemBookings(),
		gateway:   &mockGateway{},
		notifier:  notifier,
		events:    &recordingPublisher{},
		reminders: &recordingReminders{},
	}
	for _, w := range wineries {
		h.catalog[w.ID] = w
	}
	if h.notifier == nil {
		h.notifier = &recordingNotifier{}
	}
	h.svc = NewBookingService(h.catalog, h.bookings, h.gateway, h.notifier, h.events, h.reminders,
		CheckoutConfig{Currency: "usd", SuccessURL: "https://app/success", CancelURL: "https://app/cancel"}, zap.NewNop())

	seq := 0
	h.svc.newID = func() string {
		seq++
		return "booking-" + string(rune('0'+seq))
	}
	h.svc.now = func() time.Time { return time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(seq) * time.Minute) }
	return h
}

var errRelay = errors.New("relay refused recipient")

type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *counter) get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
