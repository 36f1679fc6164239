package models

import "time"

// BookingStatus is the lifecycle state of a booking aggregate.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingConfirmed || s == BookingCancelled
}

type FoodPairing struct {
	Name  string `bson:"name" json:"name"`
	Price Cents  `bson:"price" json:"price"`
}

// WineryBooking is one winery's portion of a booking (a sub-booking).
// It has no status of its own; the aggregate status applies to all of them.
type WineryBooking struct {
	WineryID     string        `bson:"winery_id" json:"wineryId"`
	WineryName   string        `bson:"winery_name,omitempty" json:"wineryName,omitempty"`
	Datetime     time.Time     `bson:"datetime" json:"datetime"`
	TastingIndex int           `bson:"tasting_index" json:"tastingIndex"`
	Tasting      *Cents        `bson:"tasting" json:"tasting"`
	Tour         *Cents        `bson:"tour" json:"tour"`
	Other        *Cents        `bson:"other_features,omitempty" json:"otherFeatures,omitempty"`
	FoodPairings []FoodPairing `bson:"food_pairings" json:"foodPairings"`
}

// Booking is the persisted aggregate written at checkout.
type Booking struct {
	ID              string            `bson:"id" json:"id"`
	UserID          string            `bson:"user_id" json:"userId"`
	Status          BookingStatus     `bson:"status" json:"status"`
	PaymentMethod   PaymentMethodType `bson:"payment_method" json:"payment_method"`
	PaymentSession  string            `bson:"payment_session,omitempty" json:"paymentSession,omitempty"`
	TotalAmount     Cents             `bson:"total_amount" json:"totalAmount"`
	Wineries        []WineryBooking   `bson:"wineries" json:"wineries"`
	SpecialRequests string            `bson:"special_requests,omitempty" json:"specialRequests,omitempty"`
	CreatedAt       time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `bson:"updated_at" json:"updatedAt"`
}

// BookingPage is one page of a booking listing.
type BookingPage struct {
	Bookings    []Booking `json:"bookings"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
}
