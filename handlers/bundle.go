package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Catalog endpoints
	ListWineriesHandler    gin.HandlerFunc
	GetWineryHandler       gin.HandlerFunc
	GetAvailabilityHandler gin.HandlerFunc

	// Itinerary endpoints
	CreateItineraryHandler   gin.HandlerFunc
	GetItineraryHandler      gin.HandlerFunc
	AddWineryHandler         gin.HandlerFunc
	UpdateSelectionHandler   gin.HandlerFunc
	RemoveWineryHandler      gin.HandlerFunc
	ClearItineraryHandler    gin.HandlerFunc
	CheckoutItineraryHandler gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler gin.HandlerFunc
	ListBookingsHandler  gin.HandlerFunc
	GetBookingHandler    gin.HandlerFunc
	CancelBookingHandler gin.HandlerFunc

	// Admin endpoints
	UpdateBookingStatusHandler gin.HandlerFunc

	// Payment provider callbacks
	StripeWebhookHandler gin.HandlerFunc
}
