package itinerary

import "winetrail/models"

// EntryPrice is the priced breakdown of one entry.
type EntryPrice struct {
	WineryID     string                   `json:"wineryId"`
	WineryName   string                   `json:"wineryName"`
	TastingTitle string                   `json:"tastingTitle"`
	Method       models.PaymentMethodType `json:"paymentMethod"`
	Tasting      models.Cents             `json:"tasting"`
	FoodPairings models.Cents             `json:"foodPairings"`
	Tours        models.Cents             `json:"tours"`
	Other        models.Cents             `json:"otherFeatures"`
	Contribution models.Cents             `json:"contribution"`
}

// ActiveTasting resolves the entry's selected tasting, index 0 by default.
func ActiveTasting(e models.ItineraryEntry) (models.TastingInfo, bool) {
	return e.Winery.Tasting(e.Selection.TastingIndex)
}

// PriceEntry computes the breakdown of one entry. Only wineries paid in-app contribute;
// their base tasting price always counts, selections add on top of it.
func PriceEntry(e models.ItineraryEntry) EntryPrice {
	p := EntryPrice{
		WineryID:   e.Winery.ID,
		WineryName: e.Winery.Name,
		Method:     e.Winery.PaymentMethod.Type,
	}
	tasting, ok := ActiveTasting(e)
	if ok {
		p.TastingTitle = tasting.Title
	}
	if !e.Winery.PaymentMethod.RequiresInAppPayment() {
		return p
	}
	if ok {
		p.Tasting = models.FromDollars(tasting.Price)
	}
	p.FoodPairings = sumOptions(e.Selection.FoodPairings)
	p.Tours = sumOptions(e.Selection.Tours)
	p.Other = sumOptions(e.Selection.OtherFeatures)
	p.Contribution = p.Tasting + p.FoodPairings + p.Tours + p.Other
	return p
}

// EntryContribution is the amount one entry adds to the in-app total.
func EntryContribution(e models.ItineraryEntry) models.Cents {
	return PriceEntry(e).Contribution
}

// CartTotal sums every entry's contribution. Each contribution depends on its own entry only.
func CartTotal(it models.Itinerary) models.Cents {
	var total models.Cents
	for _, e := range it.Entries {
		total += EntryContribution(e)
	}
	return total
}

// Breakdown prices every entry in cart order.
func Breakdown(it models.Itinerary) []EntryPrice {
	out := make([]EntryPrice, 0, len(it.Entries))
	for _, e := range it.Entries {
		out = append(out, PriceEntry(e))
	}
	return out
}

func sumOptions(opts []models.ChosenOption) models.Cents {
	var sum models.Cents
	for _, o := range opts {
		sum += models.FromDollars(o.Price)
	}
	return sum
}
