package handlers

import (
	"net/http"

	"winetrail/models"
	"winetrail/services/booking"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Bookings booking.BookingService
}

func NewAdminHandler(svc booking.BookingService) *AdminHandler {
	return &AdminHandler{Bookings: svc}
}

var adminStatuses = map[string]models.BookingStatus{
	"confirm":   models.BookingConfirmed,
	"confirmed": models.BookingConfirmed,
	"cancel":    models.BookingCancelled,
	"cancelled": models.BookingCancelled,
}

// UpdateBookingStatusHandler confirms or cancels a pending booking.
func (ah *AdminHandler) UpdateBookingStatusHandler(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	status, ok := adminStatuses[c.Param("status")]
	if !ok {
		status = models.BookingStatus(c.Param("status"))
	}

	b, err := ah.Bookings.UpdateStatus(c.Request.Context(), caller, c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking " + string(b.Status), "booking": b})
}
