package handlers

import (
	"context"
	"net/http"

	"winetrail/middleware"
	"winetrail/models"
	"winetrail/services/booking"
	"winetrail/services/itinerary"
	"winetrail/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WineryLookup resolves wineries added to an itinerary.
type WineryLookup interface {
	GetByID(ctx context.Context, id string) (*models.Winery, error)
}

// ItineraryHandler exposes the server-side cart.
type ItineraryHandler struct {
	Carts    itinerary.CartService
	Catalog  WineryLookup
	Bookings booking.BookingService
}

func NewItineraryHandler(carts itinerary.CartService, catalog WineryLookup, bookings booking.BookingService) *ItineraryHandler {
	return &ItineraryHandler{Carts: carts, Catalog: catalog, Bookings: bookings}
}

// ownedCart loads the cart and hides carts belonging to other users.
func (h *ItineraryHandler) ownedCart(c *gin.Context) (*itinerary.Cart, models.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return nil, caller, false
	}
	cart, err := h.Carts.Load(c.Request.Context(), c.Param("cartID"))
	if err != nil {
		respondError(c, err)
		return nil, caller, false
	}
	if cart.UserID != "" && cart.UserID != caller.UserID {
		respondError(c, itinerary.ErrCartNotFound)
		return nil, caller, false
	}
	return cart, caller, true
}

// mutate applies fn to the caller's cart and returns the resulting view.
func (h *ItineraryHandler) mutate(c *gin.Context, fn func(*itinerary.Store) (bool, error)) (itinerary.CartView, bool) {
	cart, _, ok := h.ownedCart(c)
	if !ok {
		return itinerary.CartView{}, false
	}
	updated, _, err := h.Carts.Mutate(c.Request.Context(), cart, fn)
	if err != nil {
		respondError(c, err)
		return itinerary.CartView{}, false
	}
	return itinerary.View(updated.ID, updated.Itinerary), true
}

func (h *ItineraryHandler) respondMutation(c *gin.Context, fn func(*itinerary.Store) (bool, error)) {
	if view, ok := h.mutate(c, fn); ok {
		c.JSON(http.StatusOK, view)
	}
}

func (h *ItineraryHandler) CreateItineraryHandler(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	cart, err := h.Carts.Create(c.Request.Context(), caller.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, itinerary.View(cart.ID, cart.Itinerary))
}

// GetItineraryHandler returns the time-ordered view with prices and the payment summary.
func (h *ItineraryHandler) GetItineraryHandler(c *gin.Context) {
	cart, _, ok := h.ownedCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, itinerary.View(cart.ID, cart.Itinerary))
}

func (h *ItineraryHandler) AddWineryHandler(c *gin.Context) {
	var input struct {
		WineryID string `json:"wineryId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	w, err := h.Catalog.GetByID(c.Request.Context(), input.WineryID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondMutation(c, func(s *itinerary.Store) (bool, error) {
		return s.Add(*w), nil
	})
}

// UpdateSelectionHandler replaces the selection of one entry after validating it against the catalog.
// A date with no slots leaves the entry untouched and is echoed back as rejectedDate.
func (h *ItineraryHandler) UpdateSelectionHandler(c *gin.Context) {
	var sel models.BookingSelection
	if err := c.ShouldBindJSON(&sel); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	wineryID := c.Param("wineryID")
	var applied models.BookingSelection
	view, ok := h.mutate(c, func(s *itinerary.Store) (bool, error) {
		changed, err := s.Update(wineryID, sel)
		if e, found := s.Entry(wineryID); found {
			applied = e.Selection
		}
		return changed, err
	})
	if !ok {
		return
	}
	if sel.Time == "" && sel.Date != "" && applied.Date != sel.Date {
		view.RejectedDate = sel.Date
	}
	c.JSON(http.StatusOK, view)
}

func (h *ItineraryHandler) RemoveWineryHandler(c *gin.Context) {
	wineryID := c.Param("wineryID")
	h.respondMutation(c, func(s *itinerary.Store) (bool, error) {
		return s.Remove(wineryID), nil
	})
}

func (h *ItineraryHandler) ClearItineraryHandler(c *gin.Context) {
	h.respondMutation(c, func(s *itinerary.Store) (bool, error) {
		return s.Clear(), nil
	})
}

// CheckoutItineraryHandler books the cart and empties it on success.
func (h *ItineraryHandler) CheckoutItineraryHandler(c *gin.Context) {
	var input struct {
		SpecialRequests string `json:"specialRequests"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}
	}

	cart, caller, ok := h.ownedCart(c)
	if !ok {
		return
	}
	result, err := h.Bookings.Checkout(c.Request.Context(), caller.UserID, cart.Itinerary, input.SpecialRequests)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, _, err := h.Carts.Mutate(c.Request.Context(), cart, func(s *itinerary.Store) (bool, error) {
		return s.Clear(), nil
	}); err != nil {
		utils.GetLogger().Warn("failed to clear itinerary after checkout", zap.String("cartID", cart.ID), zap.Error(err))
	}
	c.JSON(http.StatusCreated, result)
}
