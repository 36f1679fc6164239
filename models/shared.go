package models

// ReminderPayload is the body of a scheduled tasting reminder task.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	WineryID  string `json:"wineryId"`
	Index     int    `json:"index"`
	FireDate  string `json:"fireDate"`
}

// BookingEvent is published whenever a booking is created or changes status.
type BookingEvent struct {
	Type          string            `json:"type"`
	BookingID     string            `json:"booking_id"`
	UserID        string            `json:"user_id"`
	Status        BookingStatus     `json:"status"`
	PaymentMethod PaymentMethodType `json:"payment_method"`
	TotalAmount   Cents             `json:"total_amount"`
	WineryIDs     []string          `json:"winery_ids"`
}
