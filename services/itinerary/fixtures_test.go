package itinerary

import "winetrail/models"

func testWinery(id string, method models.PaymentMethodType) models.Winery {
	return models.Winery{
		ID:            id,
		Name:          "Winery " + id,
		ContactInfo:   models.ContactInfo{Email: id + "@winery.test"},
		PaymentMethod: models.PaymentMethod{Type: method},
		Tastings: []models.TastingInfo{
			{
				Title: "Estate Flight",
				Price: 45,
				FoodPairingOptions: []models.FoodPairingOption{
					{ID: "fp-1", Name: "Cheese Board", Price: 12},
					{ID: "fp-2", Name: "Charcuterie", Price: 18.5},
				},
				Tours: models.Tours{
					Available: true,
					Options: []models.TourOption{
						{Description: "Cellar Tour", Cost: 30},
						{Description: "Vineyard Walk", Cost: 15},
					},
				},
				OtherFeatures: []models.OtherFeature{
					{Description: "Souvenir Glass", Cost: 8},
				},
				BookingInfo: models.BookingInfo{
					MaxGuestsPerSlot: 10,
					AvailableSlots: []string{
						"2024-05-04T14:00Z",
						"2024-05-04T10:00Z",
						"2024-05-05T10:00Z",
					},
				},
			},
			{
				Title: "Reserve Tasting",
				Price: 80,
				BookingInfo: models.BookingInfo{
					AvailableSlots: []string{"2024-06-01T16:00Z"},
				},
			},
		},
	}
}
