package booking

import (
	"fmt"

	"winetrail/models"
	"winetrail/services/itinerary"
)

// Plan is the routing decision for a finalized itinerary.
type Plan struct {
	Path      models.CheckoutPath
	Method    models.PaymentMethodType
	LineItems []models.LineItem
	Items     []models.WineryBooking
	Total     models.Cents
}

// Route decides between the direct-booking and hosted-payment paths. Every entry
// becomes a sub-booking in itinerary order; only hosted entries with something to
// charge become line items, one per entry.
func Route(it models.Itinerary) (Plan, error) {
	var plan Plan
	hosted, external := 0, 0
	for _, e := range it.Entries {
		switch e.Winery.PaymentMethod.Type {
		case models.PayHosted:
			hosted++
		case models.ExternalBooking:
			external++
		}
	}

	for _, e := range it.Entries {
		price := itinerary.PriceEntry(e)
		item, err := bookingItem(e, price)
		if err != nil {
			return Plan{}, err
		}
		plan.Items = append(plan.Items, item)

		if hosted > 0 && e.Winery.PaymentMethod.RequiresInAppPayment() && price.Contribution > 0 {
			plan.LineItems = append(plan.LineItems, models.LineItem{
				Name:     lineItemName(price),
				Amount:   price.Contribution,
				Quantity: 1,
			})
			plan.Total += price.Contribution
		}
	}

	switch {
	case hosted > 0:
		if len(plan.LineItems) == 0 {
			return Plan{}, ErrNothingToPay
		}
		plan.Path = models.HostedPaymentPath
		plan.Method = models.PayHosted
	case external > 0 && external == len(it.Entries):
		plan.Path = models.DirectBookingPath
		plan.Method = models.ExternalBooking
	default:
		plan.Path = models.DirectBookingPath
		plan.Method = models.PayAtVenue
	}
	return plan, nil
}

func lineItemName(p itinerary.EntryPrice) string {
	if p.TastingTitle == "" {
		return p.WineryName
	}
	return p.WineryName + " - " + p.TastingTitle
}

// bookingItem converts an entry to its sub-booking. Amounts are only recorded for
// entries paid in-app; the rest are written at zero cost.
func bookingItem(e models.ItineraryEntry, p itinerary.EntryPrice) (models.WineryBooking, error) {
	at, ok := itinerary.ParseSlot(e.Selection.Time)
	if !ok {
		return models.WineryBooking{}, &ValidationError{Err: fmt.Errorf("winery %s: selectedTime %q is not a valid timestamp", e.Winery.ID, e.Selection.Time)}
	}

	item := models.WineryBooking{
		WineryID:     e.Winery.ID,
		WineryName:   e.Winery.Name,
		Datetime:     at,
		TastingIndex: e.Selection.TastingIndex,
		FoodPairings: make([]models.FoodPairing, 0, len(e.Selection.FoodPairings)),
	}
	paid := e.Winery.PaymentMethod.RequiresInAppPayment()
	for _, fp := range e.Selection.FoodPairings {
		var price models.Cents
		if paid {
			price = models.FromDollars(fp.Price)
		}
		item.FoodPairings = append(item.FoodPairings, models.FoodPairing{Name: fp.Name, Price: price})
	}
	if !paid {
		return item, nil
	}

	tasting := p.Tasting
	item.Tasting = &tasting
	if len(e.Selection.Tours) > 0 {
		tours := p.Tours
		item.Tour = &tours
	}
	if len(e.Selection.OtherFeatures) > 0 {
		other := p.Other
		item.Other = &other
	}
	return item, nil
}
