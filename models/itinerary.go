package models

// ChosenOption is one selected food pairing, tour or extra feature.
// Price is always re-resolved from the catalog; client supplied prices are ignored.
type ChosenOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// BookingSelection is the per-entry state a guest builds in the itinerary.
type BookingSelection struct {
	TastingIndex  int            `json:"selectedTastingIndex"`
	Date          string         `json:"selectedDate,omitempty"`
	Time          string         `json:"selectedTime,omitempty"`
	FoodPairings  []ChosenOption `json:"foodPairings,omitempty"`
	Tours         []ChosenOption `json:"tours,omitempty"`
	OtherFeatures []ChosenOption `json:"otherFeature,omitempty"`
}

// Equal compares two selections structurally. Nil and empty option lists are equal.
func (s BookingSelection) Equal(o BookingSelection) bool {
	return s.TastingIndex == o.TastingIndex &&
		s.Date == o.Date &&
		s.Time == o.Time &&
		equalOptions(s.FoodPairings, o.FoodPairings) &&
		equalOptions(s.Tours, o.Tours) &&
		equalOptions(s.OtherFeatures, o.OtherFeatures)
}

func equalOptions(a, b []ChosenOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the selection.
func (s BookingSelection) Clone() BookingSelection {
	c := s
	c.FoodPairings = append([]ChosenOption(nil), s.FoodPairings...)
	c.Tours = append([]ChosenOption(nil), s.Tours...)
	c.OtherFeatures = append([]ChosenOption(nil), s.OtherFeatures...)
	return c
}

// ItineraryEntry is a winery snapshot plus the guest's selection for it.
type ItineraryEntry struct {
	Winery    Winery           `json:"winery"`
	Selection BookingSelection `json:"bookingDetails"`
}

// Itinerary is the transient cart. Entries are unique by winery id.
type Itinerary struct {
	Entries []ItineraryEntry `json:"entries"`
}

// Equal compares two itineraries by entry order, winery identity and selection.
func (it Itinerary) Equal(o Itinerary) bool {
	if len(it.Entries) != len(o.Entries) {
		return false
	}
	for i := range it.Entries {
		if it.Entries[i].Winery.ID != o.Entries[i].Winery.ID {
			return false
		}
		if !it.Entries[i].Selection.Equal(o.Entries[i].Selection) {
			return false
		}
	}
	return true
}

// Clone returns a copy whose selections can be changed without touching the original.
func (it Itinerary) Clone() Itinerary {
	out := Itinerary{Entries: make([]ItineraryEntry, len(it.Entries))}
	for i, e := range it.Entries {
		out.Entries[i] = ItineraryEntry{Winery: e.Winery, Selection: e.Selection.Clone()}
	}
	return out
}

// EntryInput is a selection submitted directly for checkout, without a stored cart.
type EntryInput struct {
	WineryID  string           `json:"wineryId" binding:"required"`
	Selection BookingSelection `json:"selection"`
}
