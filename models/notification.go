package models

// RecipientClass groups notification recipients.
type RecipientClass string

const (
	RecipientGuest  RecipientClass = "guest"
	RecipientWinery RecipientClass = "winery"
	RecipientAdmin  RecipientClass = "admin"
	RecipientPush   RecipientClass = "guest_push"
)

// EmailMessage is one transactional email.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
}

// DeliveryOutcome records what happened to one recipient. It is only logged.
type DeliveryOutcome struct {
	Recipient string         `json:"recipient"`
	Class     RecipientClass `json:"class"`
	Success   bool           `json:"success"`
	Reason    string         `json:"reason,omitempty"`
}
