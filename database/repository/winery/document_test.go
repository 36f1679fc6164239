package wineryRepo

import (
	"testing"

	"winetrail/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func rawValue(t *testing.T, v interface{}) bson.RawValue {
	t.Helper()
	typ, data, err := bson.MarshalValue(v)
	require.NoError(t, err)
	return bson.RawValue{Type: typ, Value: data}
}

func TestNormalizePaymentMethod(t *testing.T) {
	cases := []struct {
		name string
		raw  bson.RawValue
		want models.PaymentMethod
	}{
		{"missing", bson.RawValue{}, models.PaymentMethod{Type: models.PayHosted}},
		{"legacy stripe object", rawValue(t, bson.M{"type": "pay_stripe"}), models.PaymentMethod{Type: models.PayHosted}},
		{"legacy winery object", rawValue(t, bson.M{"type": "pay_winery"}), models.PaymentMethod{Type: models.PayAtVenue}},
		{"bare string", rawValue(t, "pay_at_venue"), models.PaymentMethod{Type: models.PayAtVenue}},
		{"bare unknown string", rawValue(t, "cash"), models.PaymentMethod{Type: models.PayHosted}},
		{"external with link", rawValue(t, bson.M{"type": "external_booking", "external_booking_link": "https://book.example"}),
			models.PaymentMethod{Type: models.ExternalBooking, ExternalBookingLink: "https://book.example"}},
		{"number", rawValue(t, int32(3)), models.PaymentMethod{Type: models.PayHosted}},
		{"object without type", rawValue(t, bson.M{"note": "x"}), models.PaymentMethod{Type: models.PayHosted}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePaymentMethod(tc.raw))
		})
	}
}

func decodeDoc(t *testing.T, m bson.M) models.Winery {
	t.Helper()
	data, err := bson.Marshal(m)
	require.NoError(t, err)
	var doc wineryDocument
	require.NoError(t, bson.Unmarshal(data, &doc))
	return doc.toModel()
}

func TestToModel_IDsAndMethod(t *testing.T) {
	oid := primitive.NewObjectID()
	owner := primitive.NewObjectID()

	w := decodeDoc(t, bson.M{
		"_id":            oid,
		"name":           "Hillside",
		"owner":          owner,
		"payment_method": "pay_winery",
		"tasting_info":   bson.A{bson.M{"tasting_title": "Flight", "tasting_price": 30.0}},
	})

	assert.Equal(t, oid.Hex(), w.ID)
	assert.Equal(t, owner.Hex(), w.OwnerID)
	assert.Equal(t, models.PayAtVenue, w.PaymentMethod.Type)
	require.Len(t, w.Tastings, 1)
	assert.Equal(t, 30.0, w.Tastings[0].Price)
}

func TestToModel_FoldsLegacyFields(t *testing.T) {
	w := decodeDoc(t, bson.M{
		"_id":                  "w-1",
		"food_pairing_options": bson.A{bson.M{"name": "Olives", "price": 6.0}},
		"tours":                bson.M{"available": true, "tour_price": 20.0},
		"booking_info": bson.M{
			"available_slots":     bson.A{"2024-05-04T10:00Z"},
			"max_guests_per_slot": 8,
		},
		"tasting_info": bson.A{
			bson.M{"tasting_title": "Legacy"},
			bson.M{
				"tasting_title":        "Modern",
				"food_pairing_options": bson.A{bson.M{"name": "Cheese", "price": 10.0}},
				"booking_info":         bson.M{"available_slots": bson.A{"2024-06-01T12:00Z"}},
			},
		},
	})

	require.Len(t, w.Tastings, 2)
	legacy, modern := w.Tastings[0], w.Tastings[1]
	assert.Equal(t, "Olives", legacy.FoodPairingOptions[0].Name)
	assert.True(t, legacy.Tours.Available)
	assert.Equal(t, []string{"2024-05-04T10:00Z"}, legacy.Slots())
	assert.Equal(t, 8, legacy.SlotCapacity())

	assert.Equal(t, "Cheese", modern.FoodPairingOptions[0].Name)
	assert.Equal(t, []string{"2024-06-01T12:00Z"}, modern.Slots())
	assert.Equal(t, models.PayHosted, w.PaymentMethod.Type)
}

func TestToModel_ExternalLinkFromTasting(t *testing.T) {
	w := decodeDoc(t, bson.M{
		"_id":            "w-2",
		"payment_method": bson.M{"type": "external_booking"},
		"tasting_info": bson.A{bson.M{
			"booking_info": bson.M{"external_booking_link": "https://tock.example/w2"},
		}},
	})

	assert.Equal(t, models.ExternalBooking, w.PaymentMethod.Type)
	assert.Equal(t, "https://tock.example/w2", w.PaymentMethod.ExternalBookingLink)
}

func TestIDValue(t *testing.T) {
	oid := primitive.NewObjectID()

	assert.Equal(t, oid, idValue(oid.Hex()))
	assert.Equal(t, "not-hex", idValue("not-hex"))
}
