package itinerary

import "winetrail/models"

// PaymentMode classifies how a cart will be settled.
type PaymentMode string

const (
	ModeEmpty           PaymentMode = "empty"
	ModeInApp           PaymentMode = "in_app"
	ModeMixed           PaymentMode = "mixed"
	ModeExternalBooking PaymentMode = "external_booking"
	ModePayAtVenue      PaymentMode = "pay_at_venue"
)

// PaymentSummary describes the settlement of a cart for display.
type PaymentSummary struct {
	Mode       PaymentMode  `json:"mode"`
	InAppTotal models.Cents `json:"inAppTotal"`
	Hosted     int          `json:"hosted"`
	AtVenue    int          `json:"atVenue"`
	External   int          `json:"external"`
}

// Summarize counts entries per payment method and totals the in-app part.
func Summarize(it models.Itinerary) PaymentSummary {
	s := PaymentSummary{InAppTotal: CartTotal(it)}
	for _, e := range it.Entries {
		switch e.Winery.PaymentMethod.Type {
		case models.PayHosted:
			s.Hosted++
		case models.PayAtVenue:
			s.AtVenue++
		case models.ExternalBooking:
			s.External++
		}
	}
	switch {
	case len(it.Entries) == 0:
		s.Mode = ModeEmpty
	case s.Hosted > 0 && s.AtVenue == 0 && s.External == 0:
		s.Mode = ModeInApp
	case s.External > 0 && s.Hosted == 0 && s.AtVenue == 0:
		s.Mode = ModeExternalBooking
	case s.AtVenue > 0 && s.Hosted == 0 && s.External == 0:
		s.Mode = ModePayAtVenue
	default:
		s.Mode = ModeMixed
	}
	return s
}

// CartView is the derived, read-only view of a cart returned to clients.
type CartView struct {
	CartID  string                  `json:"cartId"`
	Entries []models.ItineraryEntry `json:"entries"`
	Prices  []EntryPrice            `json:"prices"`
	Total   models.Cents            `json:"total"`
	Payment PaymentSummary          `json:"payment"`
	Ready   bool                    `json:"ready"`
	// RejectedDate is set when the last update asked for a date without slots.
	RejectedDate string `json:"rejectedDate,omitempty"`
}

// View builds the cart view: entries ordered by time, prices and readiness for checkout.
func View(cartID string, it models.Itinerary) CartView {
	ordered := OrderByTime(it)
	ready := len(ordered) > 0
	for _, e := range ordered {
		if e.Selection.Time == "" {
			ready = false
			break
		}
	}
	return CartView{
		CartID:  cartID,
		Entries: ordered,
		Prices:  Breakdown(models.Itinerary{Entries: ordered}),
		Total:   CartTotal(it),
		Payment: Summarize(it),
		Ready:   ready,
	}
}
