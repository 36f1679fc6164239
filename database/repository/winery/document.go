package wineryRepo

import (
	"strings"

	"winetrail/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// wineryDocument mirrors the stored shape. Some fields were written in more than
// one form over time and are decoded raw.
type wineryDocument struct {
	ID            bson.RawValue        `bson:"_id"`
	Name          string               `bson:"name"`
	Location      models.Location      `bson:"location"`
	ContactInfo   models.ContactInfo   `bson:"contact_info"`
	Description   string               `bson:"description"`
	Tastings      []models.TastingInfo `bson:"tasting_info"`
	PaymentMethod bson.RawValue        `bson:"payment_method"`
	Owner         bson.RawValue        `bson:"owner"`

	// Legacy single-tasting fields kept at the top level.
	FoodPairingOptions []models.FoodPairingOption `bson:"food_pairing_options"`
	Tours              *models.Tours              `bson:"tours"`
	BookingInfo        *models.BookingInfo        `bson:"booking_info"`
}

type rawPaymentMethod struct {
	Type                string `bson:"type"`
	ExternalBookingLink string `bson:"external_booking_link"`
}

// ParsePaymentMethodType maps stored method names, current and legacy, to the
// normalized variant. Unknown or empty names fall back to hosted payment.
func ParsePaymentMethodType(s string) models.PaymentMethodType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pay_winery", "pay_at_venue":
		return models.PayAtVenue
	case "external_booking":
		return models.ExternalBooking
	default:
		return models.PayHosted
	}
}

// NormalizePaymentMethod decodes payment_method whether it is stored as an
// object, a bare string or not at all.
func NormalizePaymentMethod(raw bson.RawValue) models.PaymentMethod {
	switch raw.Type {
	case bsontype.String:
		s, _ := raw.StringValueOK()
		return models.PaymentMethod{Type: ParsePaymentMethodType(s)}
	case bsontype.EmbeddedDocument:
		var pm rawPaymentMethod
		if err := raw.Unmarshal(&pm); err != nil {
			return models.PaymentMethod{Type: models.PayHosted}
		}
		out := models.PaymentMethod{Type: ParsePaymentMethodType(pm.Type)}
		if out.Type == models.ExternalBooking {
			out.ExternalBookingLink = pm.ExternalBookingLink
		}
		return out
	default:
		return models.PaymentMethod{Type: models.PayHosted}
	}
}

// rawID renders an ObjectID or string id as a string.
func rawID(raw bson.RawValue) string {
	switch raw.Type {
	case bsontype.ObjectID:
		oid, _ := raw.ObjectIDOK()
		return oid.Hex()
	case bsontype.String:
		s, _ := raw.StringValueOK()
		return s
	default:
		return ""
	}
}

// idValue converts an id from a request into what _id was stored as.
func idValue(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

func (d wineryDocument) toModel() models.Winery {
	w := models.Winery{
		ID:            rawID(d.ID),
		Name:          d.Name,
		Location:      d.Location,
		ContactInfo:   d.ContactInfo,
		Description:   d.Description,
		Tastings:      make([]models.TastingInfo, len(d.Tastings)),
		PaymentMethod: NormalizePaymentMethod(d.PaymentMethod),
		OwnerID:       rawID(d.Owner),
	}
	for i, t := range d.Tastings {
		w.Tastings[i] = d.foldLegacy(t)
	}
	if w.PaymentMethod.Type == models.ExternalBooking && w.PaymentMethod.ExternalBookingLink == "" {
		for _, t := range w.Tastings {
			if link := t.BookingInfo.ExternalBookingLink; link != "" {
				w.PaymentMethod.ExternalBookingLink = link
				break
			}
		}
	}
	return w
}

// foldLegacy fills tasting fields that are empty from the winery-level legacy fields.
func (d wineryDocument) foldLegacy(t models.TastingInfo) models.TastingInfo {
	if len(t.FoodPairingOptions) == 0 && len(d.FoodPairingOptions) > 0 {
		t.FoodPairingOptions = append([]models.FoodPairingOption(nil), d.FoodPairingOptions...)
	}
	if d.Tours != nil && !t.Tours.Available && len(t.Tours.Options) == 0 {
		t.Tours = *d.Tours
		t.Tours.Options = append([]models.TourOption(nil), d.Tours.Options...)
	}
	if d.BookingInfo != nil && len(t.BookingInfo.AvailableSlots) == 0 {
		t.BookingInfo.AvailableSlots = append([]string(nil), d.BookingInfo.AvailableSlots...)
		if t.BookingInfo.MaxGuestsPerSlot == 0 {
			t.BookingInfo.MaxGuestsPerSlot = d.BookingInfo.MaxGuestsPerSlot
		}
		if t.BookingInfo.ExternalBookingLink == "" {
			t.BookingInfo.ExternalBookingLink = d.BookingInfo.ExternalBookingLink
		}
	}
	return t
}
