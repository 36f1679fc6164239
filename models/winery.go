package models

// PaymentMethodType tags how a winery collects payment for a tasting.
type PaymentMethodType string

const (
	// PayAtVenue means the guest settles directly with the winery.
	PayAtVenue PaymentMethodType = "pay_at_venue"
	// PayHosted means the guest pays in-app through a hosted checkout session.
	PayHosted PaymentMethodType = "pay_hosted"
	// ExternalBooking means the winery books through its own link; nothing is charged here.
	ExternalBooking PaymentMethodType = "external_booking"
)

// PaymentMethod is the normalized payment descriptor of a winery.
// Every winery carries exactly one; raw catalog values are normalized on read.
type PaymentMethod struct {
	Type                PaymentMethodType `bson:"type" json:"type"`
	ExternalBookingLink string            `bson:"external_booking_link,omitempty" json:"external_booking_link,omitempty"`
}

// RequiresInAppPayment reports whether entries for this winery are charged at checkout.
func (m PaymentMethod) RequiresInAppPayment() bool {
	return m.Type == PayHosted
}

type Location struct {
	Address            string  `bson:"address" json:"address"`
	Latitude           float64 `bson:"latitude" json:"latitude"`
	Longitude          float64 `bson:"longitude" json:"longitude"`
	IsMountainLocation bool    `bson:"is_mountain_location" json:"is_mountain_location"`
}

type ContactInfo struct {
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Website string `bson:"website,omitempty" json:"website,omitempty"`
}

type FoodPairingOption struct {
	ID    string  `bson:"id,omitempty" json:"id,omitempty"`
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

type TourOption struct {
	ID          string  `bson:"tour_id,omitempty" json:"tour_id,omitempty"`
	Description string  `bson:"description" json:"description"`
	Cost        float64 `bson:"cost" json:"cost"`
}

type Tours struct {
	Available bool         `bson:"available" json:"available"`
	TourPrice float64      `bson:"tour_price" json:"tour_price"`
	Options   []TourOption `bson:"tour_options" json:"tour_options"`
}

type OtherFeature struct {
	ID          string  `bson:"feature_id,omitempty" json:"feature_id,omitempty"`
	Description string  `bson:"description" json:"description"`
	Cost        float64 `bson:"cost" json:"cost"`
}

type DynamicPricing struct {
	Enabled           bool    `bson:"enabled" json:"enabled"`
	WeekendMultiplier float64 `bson:"weekend_multiplier" json:"weekend_multiplier"`
}

// BookingInfo holds the bookable slots of a tasting and its per-slot capacity.
type BookingInfo struct {
	BookingEnabled      bool           `bson:"booking_enabled" json:"booking_enabled"`
	MaxGuestsPerSlot    int            `bson:"max_guests_per_slot" json:"max_guests_per_slot"`
	NumberOfPeople      []int          `bson:"number_of_people" json:"number_of_people"`
	DynamicPricing      DynamicPricing `bson:"dynamic_pricing" json:"dynamic_pricing"`
	AvailableSlots      []string       `bson:"available_slots" json:"available_slots"`
	ExternalBookingLink string         `bson:"external_booking_link,omitempty" json:"external_booking_link,omitempty"`
}

// TastingInfo is one tasting offering of a winery.
type TastingInfo struct {
	Title              string              `bson:"tasting_title" json:"tasting_title"`
	Description        string              `bson:"tasting_description" json:"tasting_description"`
	AVA                string              `bson:"ava,omitempty" json:"ava,omitempty"`
	Price              float64             `bson:"tasting_price" json:"tasting_price"`
	AvailableTimes     []string            `bson:"available_times" json:"available_times"`
	WineTypes          []string            `bson:"wine_types" json:"wine_types"`
	WinesPerTasting    int                 `bson:"number_of_wines_per_tasting" json:"number_of_wines_per_tasting"`
	SpecialFeatures    []string            `bson:"special_features" json:"special_features"`
	FoodPairingOptions []FoodPairingOption `bson:"food_pairing_options" json:"food_pairing_options"`
	Tours              Tours               `bson:"tours" json:"tours"`
	BookingInfo        BookingInfo         `bson:"booking_info" json:"booking_info"`
	OtherFeatures      []OtherFeature      `bson:"other_features" json:"other_features"`
}

// Slots returns the bookable timestamps of the tasting.
func (t TastingInfo) Slots() []string {
	return t.BookingInfo.AvailableSlots
}

// SlotCapacity is the number of guests one slot accepts.
func (t TastingInfo) SlotCapacity() int {
	return t.BookingInfo.MaxGuestsPerSlot
}

// Winery is the catalog view of a winery after boundary normalization.
type Winery struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Location      Location      `json:"location"`
	ContactInfo   ContactInfo   `json:"contact_info"`
	Description   string        `json:"description"`
	Tastings      []TastingInfo `json:"tasting_info"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	OwnerID       string        `json:"owner,omitempty"`
}

// Tasting returns the tasting at index i.
func (w Winery) Tasting(i int) (TastingInfo, bool) {
	if i < 0 || i >= len(w.Tastings) {
		return TastingInfo{}, false
	}
	return w.Tastings[i], true
}
