package handlers

import (
	"net/http"

	"winetrail/middleware"
	"winetrail/models"
	"winetrail/services/booking"
	"winetrail/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes checkout and booking management.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func callerOrAbort(c *gin.Context) (models.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
	}
	return caller, ok
}

// CreateBookingHandler checks out entries submitted directly, without a stored itinerary.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var input struct {
		Entries         []models.EntryInput `json:"entries" binding:"required,min=1,dive"`
		SpecialRequests string              `json:"specialRequests"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	result, err := h.Service.CheckoutEntries(c.Request.Context(), caller.UserID, input.Entries, input.SpecialRequests)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListBookingsHandler returns the bookings visible to the caller's role, newest first.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	page, limit := pagination(c)
	result, err := h.Service.List(c.Request.Context(), caller, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	b, err := h.Service.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	b, err := h.Service.Cancel(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "booking": b})
}
