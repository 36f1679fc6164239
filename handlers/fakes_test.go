package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	wineryRepo "winetrail/database/repository/winery"
	"winetrail/middleware"
	"winetrail/models"
	"winetrail/services/booking"
	"winetrail/services/itinerary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockBookingService struct{ mock.Mock }

func (m *mockBookingService) Checkout(ctx context.Context, userID string, it models.Itinerary, specialRequests string) (*models.CheckoutResult, error) {
	args := m.Called(ctx, userID, it, specialRequests)
	r, _ := args.Get(0).(*models.CheckoutResult)
	return r, args.Error(1)
}

func (m *mockBookingService) CheckoutEntries(ctx context.Context, userID string, entries []models.EntryInput, specialRequests string) (*models.CheckoutResult, error) {
	args := m.Called(ctx, userID, entries, specialRequests)
	r, _ := args.Get(0).(*models.CheckoutResult)
	return r, args.Error(1)
}

func (m *mockBookingService) Get(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, caller, bookingID)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingService) Cancel(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, caller, bookingID)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, caller models.Caller, bookingID string, status models.BookingStatus) (*models.Booking, error) {
	args := m.Called(ctx, caller, bookingID, status)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingService) List(ctx context.Context, caller models.Caller, page, limit int) (*models.BookingPage, error) {
	args := m.Called(ctx, caller, page, limit)
	p, _ := args.Get(0).(*models.BookingPage)
	return p, args.Error(1)
}

func (m *mockBookingService) ReconcilePayment(ctx context.Context, ev booking.PaymentEvent) error {
	return m.Called(ctx, ev).Error(0)
}

var _ booking.BookingService = (*mockBookingService)(nil)

// memCarts mirrors CartSessions without Redis.
type memCarts struct {
	mu    sync.Mutex
	carts map[string]itinerary.Cart
	saves int
}

func newMemCarts() *memCarts {
	return &memCarts{carts: map[string]itinerary.Cart{}}
}

func (m *memCarts) Create(_ context.Context, userID string) (*itinerary.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart := itinerary.Cart{ID: uuid.New().String(), UserID: userID, UpdatedAt: time.Now()}
	m.carts[cart.ID] = cart
	return &cart, nil
}

func (m *memCarts) Load(_ context.Context, cartID string) (*itinerary.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, itinerary.ErrCartNotFound
	}
	cart.Itinerary = cart.Itinerary.Clone()
	return &cart, nil
}

func (m *memCarts) Mutate(ctx context.Context, loaded *itinerary.Cart, fn func(*itinerary.Store) (bool, error)) (*itinerary.Cart, bool, error) {
	cart, err := m.Load(ctx, loaded.ID)
	if err != nil {
		return nil, false, err
	}
	store := itinerary.NewStore(cart.Itinerary)
	changed, err := fn(store)
	if err != nil || !changed {
		return cart, false, err
	}
	cart.Itinerary = store.Snapshot()
	m.mu.Lock()
	m.carts[cart.ID] = *cart
	m.saves++
	m.mu.Unlock()
	return cart, true, nil
}

type stubCatalog map[string]models.Winery

func (s stubCatalog) GetByID(_ context.Context, id string) (*models.Winery, error) {
	w, ok := s[id]
	if !ok {
		return nil, wineryRepo.ErrWineryNotFound
	}
	return &w, nil
}

func (s stubCatalog) List(_ context.Context, page, limit int) ([]models.Winery, int64, error) {
	out := make([]models.Winery, 0, len(s))
	for _, w := range s {
		out = append(out, w)
	}
	return out, int64(len(out)), nil
}

func (s stubCatalog) GetMany(ctx context.Context, ids []string) ([]models.Winery, error) {
	var out []models.Winery
	for _, id := range ids {
		if w, ok := s[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s stubCatalog) ListByOwner(_ context.Context, ownerID string) ([]models.Winery, error) {
	var out []models.Winery
	for _, w := range s {
		if w.OwnerID == ownerID {
			out = append(out, w)
		}
	}
	return out, nil
}

func sampleWinery(id string) models.Winery {
	return models.Winery{
		ID:            id,
		Name:          "Winery " + id,
		PaymentMethod: models.PaymentMethod{Type: models.PayHosted},
		Tastings: []models.TastingInfo{{
			Title: "Estate Flight",
			Price: 45,
			BookingInfo: models.BookingInfo{AvailableSlots: []string{
				"2024-05-04T10:00Z", "2024-05-04T14:00Z", "2024-05-05T10:00Z",
			}},
		}},
	}
}

// asCaller injects an authenticated caller in place of IdentityMiddleware.
func asCaller(userID string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetCaller(c, models.Caller{UserID: userID, Role: role})
		c.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
