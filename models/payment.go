package models

// LineItem is one aggregated charge sent to the hosted payment provider.
type LineItem struct {
	Name     string `json:"name"`
	Amount   Cents  `json:"unit_amount"`
	Quantity int64  `json:"quantity"`
}

// CheckoutSessionRequest is what the payment gateway needs to open a hosted session.
type CheckoutSessionRequest struct {
	LineItems  []LineItem
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutSession is the opaque reference returned by the gateway.
type CheckoutSession struct {
	ID  string `json:"sessionId"`
	URL string `json:"url,omitempty"`
}

// CheckoutPath names the branch a checkout took.
type CheckoutPath string

const (
	DirectBookingPath CheckoutPath = "direct"
	HostedPaymentPath CheckoutPath = "hosted"
)

// CheckoutResult is returned to the caller after a successful checkout.
type CheckoutResult struct {
	Path    CheckoutPath     `json:"path"`
	Booking *Booking         `json:"booking"`
	Session *CheckoutSession `json:"session,omitempty"`
	Amount  Cents            `json:"amount"`
}
