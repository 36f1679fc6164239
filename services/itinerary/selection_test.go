package itinerary

import (
	"testing"

	"winetrail/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSelection_RejectsUnknownOptions(t *testing.T) {
	w := testWinery("a", models.PayHosted)
	idx := GroupByDate(w.Tastings[0].Slots())

	cases := map[string]models.BookingSelection{
		"foodPairings": {FoodPairings: []models.ChosenOption{{Name: "Oysters"}}},
		"tours":        {Tours: []models.ChosenOption{{Name: "Helicopter"}}},
		"otherFeature": {OtherFeatures: []models.ChosenOption{{Name: "Limo"}}},
	}
	for field, sel := range cases {
		_, err := ResolveSelection(w, idx, models.BookingSelection{}, sel)
		var selErr *SelectionError
		require.ErrorAs(t, err, &selErr, field)
		assert.Equal(t, field, selErr.Field)
	}
}

func TestResolveSelection_UsesCatalogPrices(t *testing.T) {
	w := testWinery("a", models.PayHosted)
	idx := GroupByDate(w.Tastings[0].Slots())

	sel, err := ResolveSelection(w, idx, models.BookingSelection{}, models.BookingSelection{
		FoodPairings: []models.ChosenOption{{Name: "Cheese Board", Price: 0.01}, {Name: "cheese board"}},
	})

	require.NoError(t, err)
	assert.Equal(t, []models.ChosenOption{{Name: "Cheese Board", Price: 12}}, sel.FoodPairings)
}

func TestResolveSelection_FlatTourPrice(t *testing.T) {
	w := testWinery("a", models.PayHosted)
	w.Tastings[0].Tours = models.Tours{Available: true, TourPrice: 25}
	idx := GroupByDate(w.Tastings[0].Slots())

	sel, err := ResolveSelection(w, idx, models.BookingSelection{}, models.BookingSelection{
		Tours: []models.ChosenOption{{Name: "Tour"}},
	})

	require.NoError(t, err)
	assert.Equal(t, []models.ChosenOption{{Name: "Tour", Price: 25}}, sel.Tours)
}

func TestResolveSelection_TastingIndexOutOfRange(t *testing.T) {
	w := testWinery("a", models.PayHosted)

	_, err := ResolveSelection(w, GroupByDate(nil), models.BookingSelection{}, models.BookingSelection{TastingIndex: 5})

	var selErr *SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, "selectedTastingIndex", selErr.Field)
}

func TestFinalize_RequiresTime(t *testing.T) {
	it := models.Itinerary{Entries: []models.ItineraryEntry{
		{Winery: testWinery("a", models.PayHosted), Selection: models.BookingSelection{Time: "2024-05-04T10:00Z"}},
		{Winery: testWinery("b", models.PayAtVenue)},
	}}

	_, err := Finalize(it)

	var selErr *SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, "b", selErr.WineryID)
	assert.Equal(t, "selectedTime", selErr.Field)
}

func TestFinalize_Empty(t *testing.T) {
	_, err := Finalize(models.Itinerary{})

	assert.EqualError(t, err, "itinerary: no wineries selected")
}

func TestFinalize_ReResolvesPrices(t *testing.T) {
	it := models.Itinerary{Entries: []models.ItineraryEntry{{
		Winery: testWinery("a", models.PayHosted),
		Selection: models.BookingSelection{
			Time:  "2024-05-04T14:00Z",
			Tours: []models.ChosenOption{{Name: "Cellar Tour", Price: 1}},
		},
	}}}

	out, err := Finalize(it)

	require.NoError(t, err)
	assert.Equal(t, "2024-05-04", out.Entries[0].Selection.Date)
	assert.Equal(t, 30.0, out.Entries[0].Selection.Tours[0].Price)
}
