package booking

import (
	"context"
	"encoding/json"
	"fmt"

	"winetrail/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"

	metaBookingID = "booking_id"
	metaUserID    = "user_id"
)

// PaymentEvent is a verified notification from the payment provider.
type PaymentEvent struct {
	Type      string
	SessionID string
	BookingID string
}

// PaymentGateway opens hosted checkout sessions and verifies their webhooks.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSession, error)
	ParseWebhook(payload []byte, signature string) (*PaymentEvent, error)
}

// StripeGateway implements PaymentGateway with Stripe Checkout. The API key is
// set globally on stripe.Key at startup.
type StripeGateway struct {
	webhookSecret string
}

func NewStripeGateway(webhookSecret string) *StripeGateway {
	return &StripeGateway{webhookSecret: webhookSecret}
}

func checkoutParams(req models.CheckoutSessionRequest) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}
	for _, li := range req.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(req.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(li.Name),
				},
				UnitAmount: stripe.Int64(int64(li.Amount)),
			},
			Quantity: stripe.Int64(li.Quantity),
		})
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if id, ok := req.Metadata[metaBookingID]; ok {
		params.ClientReferenceID = stripe.String(id)
	}
	return params
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSession, error) {
	params := checkoutParams(req)
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return nil, err
	}
	return &models.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// ParseWebhook verifies the signature and extracts the checkout session reference.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("invalid webhook: %w", err)
	}

	ev := &PaymentEvent{Type: string(event.Type)}
	if event.Type != EventCheckoutCompleted && event.Type != EventCheckoutExpired {
		return ev, nil
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	ev.SessionID = s.ID
	ev.BookingID = s.Metadata[metaBookingID]
	if ev.BookingID == "" {
		ev.BookingID = s.ClientReferenceID
	}
	return ev, nil
}
