package handlers

import (
	"errors"
	"io"
	"net/http"

	"winetrail/services/booking"
	"winetrail/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxWebhookBody = 64 << 10

// WebhookHandler receives payment provider callbacks.
type WebhookHandler struct {
	Gateway  booking.PaymentGateway
	Bookings booking.BookingService
}

func NewWebhookHandler(gateway booking.PaymentGateway, svc booking.BookingService) *WebhookHandler {
	return &WebhookHandler{Gateway: gateway, Bookings: svc}
}

// StripeWebhookHandler verifies the signature and reconciles the booking.
// Events for unknown bookings are acknowledged so Stripe stops retrying them.
func (h *WebhookHandler) StripeWebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Failed to read body", err.Error())
		return
	}

	ev, err := h.Gateway.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid webhook signature", err.Error())
		return
	}

	if err := h.Bookings.ReconcilePayment(c.Request.Context(), *ev); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			utils.GetLogger().Warn("webhook for unknown booking",
				zap.String("type", ev.Type), zap.String("sessionID", ev.SessionID), zap.String("bookingID", ev.BookingID))
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
