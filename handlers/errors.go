package handlers

import (
	"errors"
	"net/http"
	"strconv"

	wineryRepo "winetrail/database/repository/winery"
	"winetrail/services/booking"
	"winetrail/services/itinerary"
	"winetrail/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses.
// Bookings owned by someone else are reported as missing.
func respondError(c *gin.Context, err error) {
	var (
		validation *booking.ValidationError
		payment    *booking.PaymentError
		selection  *itinerary.SelectionError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &selection):
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking details", err.Error())
	case errors.Is(err, booking.ErrNothingToPay):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.As(err, &payment):
		utils.JSONError(c, http.StatusPaymentRequired, "Payment could not be started", payment.Error())
	case errors.Is(err, booking.ErrBookingNotFound), errors.Is(err, booking.ErrNotOwner):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
	case errors.Is(err, wineryRepo.ErrWineryNotFound):
		utils.JSONError(c, http.StatusNotFound, "Winery not found", "")
	case errors.Is(err, itinerary.ErrCartNotFound):
		utils.JSONError(c, http.StatusNotFound, "Itinerary not found", err.Error())
	case errors.Is(err, itinerary.ErrEntryNotFound):
		utils.JSONError(c, http.StatusNotFound, "Winery not in itinerary", "")
	case errors.Is(err, booking.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, itinerary.ErrCartConflict):
		utils.JSONError(c, http.StatusConflict, "Itinerary changed concurrently", err.Error())
	case errors.Is(err, booking.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "Booking status conflict", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

func pagination(c *gin.Context) (page, limit int) {
	page = queryInt(c, "page", 1)
	limit = queryInt(c, "limit", utils.DefaultPageSize)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > utils.MaxPageSize {
		limit = utils.DefaultPageSize
	}
	return page, limit
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
