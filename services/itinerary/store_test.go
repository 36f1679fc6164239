package itinerary

import (
	"testing"

	"winetrail/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddDeduplicates(t *testing.T) {
	s := NewStore(models.Itinerary{})

	assert.True(t, s.Add(testWinery("a", models.PayHosted)))
	assert.False(t, s.Add(testWinery("a", models.PayHosted)))
	assert.True(t, s.Add(testWinery("b", models.PayAtVenue)))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Version())
	e, ok := s.Entry("a")
	require.True(t, ok)
	assert.True(t, e.Selection.Equal(models.BookingSelection{}))
}

func TestStore_UpdateTouchesOnlyOneEntry(t *testing.T) {
	s := NewStore(models.Itinerary{})
	s.Add(testWinery("a", models.PayHosted))
	s.Add(testWinery("b", models.PayHosted))
	_, err := s.Update("b", models.BookingSelection{Time: "2024-05-05T10:00Z"})
	require.NoError(t, err)
	before, _ := s.Entry("b")

	changed, err := s.Update("a", models.BookingSelection{
		Time:         "2024-05-04T10:00Z",
		FoodPairings: []models.ChosenOption{{Name: "cheese board"}},
	})
	require.NoError(t, err)
	assert.True(t, changed)

	after, _ := s.Entry("b")
	assert.True(t, before.Selection.Equal(after.Selection))

	a, _ := s.Entry("a")
	assert.Equal(t, "2024-05-04", a.Selection.Date)
	assert.Equal(t, []models.ChosenOption{{Name: "Cheese Board", Price: 12}}, a.Selection.FoodPairings)
}

func TestStore_UpdateEqualStateDoesNotCommit(t *testing.T) {
	s := NewStore(models.Itinerary{})
	s.Add(testWinery("a", models.PayHosted))

	notified := 0
	s.Subscribe(func(models.Itinerary) { notified++ })

	sel := models.BookingSelection{Time: "2024-05-04T14:00Z"}
	changed, err := s.Update("a", sel)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.Update("a", sel)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, notified)
}

func TestStore_UpdateRejectsUnknownSlot(t *testing.T) {
	s := NewStore(models.Itinerary{})
	s.Add(testWinery("a", models.PayHosted))
	version := s.Version()

	_, err := s.Update("a", models.BookingSelection{Time: "2024-05-06T10:00Z"})

	var selErr *SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, "selectedTime", selErr.Field)
	assert.Equal(t, version, s.Version())
}

func TestStore_UpdateRetainsDateOnOutOfRangeDate(t *testing.T) {
	s := NewStore(models.Itinerary{})
	s.Add(testWinery("a", models.PayHosted))
	_, err := s.Update("a", models.BookingSelection{Date: "2024-05-04"})
	require.NoError(t, err)

	changed, err := s.Update("a", models.BookingSelection{Date: "2024-05-06"})
	require.NoError(t, err)
	assert.False(t, changed)

	e, _ := s.Entry("a")
	assert.Equal(t, "2024-05-04", e.Selection.Date)
}

func TestStore_RejectedDateKeepsSelectedTime(t *testing.T) {
	s := NewStore(models.Itinerary{})
	s.Add(testWinery("a", models.PayHosted))
	changed, err := s.Update("a", models.BookingSelection{Time: "2024-05-04T14:00Z"})
	require.NoError(t, err)
	require.True(t, changed)
	version := s.Version()

	changed, err = s.Update("a", models.BookingSelection{Date: "2024-05-06"})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, version, s.Version())

	e, _ := s.Entry("a")
	assert.Equal(t, "2024-05-04", e.Selection.Date)
	assert.Equal(t, "2024-05-04T14:00Z", e.Selection.Time)
}

func TestStore_UpdateUnknownEntry(t *testing.T) {
	s := NewStore(models.Itinerary{})

	_, err := s.Update("missing", models.BookingSelection{})

	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestStore_RemoveLeavesOthersUntouched(t *testing.T) {
	s := NewStore(models.Itinerary{})
	s.Add(testWinery("a", models.PayHosted))
	s.Add(testWinery("b", models.PayHosted))
	s.Add(testWinery("c", models.PayAtVenue))
	_, err := s.Update("a", models.BookingSelection{Time: "2024-05-04T10:00Z"})
	require.NoError(t, err)
	_, err = s.Update("c", models.BookingSelection{Time: "2024-05-05T10:00Z", Tours: []models.ChosenOption{{Name: "Cellar Tour"}}})
	require.NoError(t, err)
	a, _ := s.Entry("a")
	c, _ := s.Entry("c")

	assert.True(t, s.Remove("b"))
	assert.False(t, s.Remove("b"))

	a2, _ := s.Entry("a")
	c2, _ := s.Entry("c")
	assert.True(t, a.Selection.Equal(a2.Selection))
	assert.True(t, c.Selection.Equal(c2.Selection))
	assert.Equal(t, 2, s.Len())
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(models.Itinerary{})
	assert.False(t, s.Clear())

	s.Add(testWinery("a", models.PayHosted))
	assert.True(t, s.Clear())
	assert.Equal(t, 0, s.Len())
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	s := NewStore(models.Itinerary{})
	s.Add(testWinery("a", models.PayHosted))
	_, err := s.Update("a", models.BookingSelection{Time: "2024-05-04T10:00Z", FoodPairings: []models.ChosenOption{{Name: "Charcuterie"}}})
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.Entries[0].Selection.FoodPairings[0].Price = 999

	e, _ := s.Entry("a")
	assert.Equal(t, 18.5, e.Selection.FoodPairings[0].Price)
}

func TestOrdered_TimeAscendingMissingLast(t *testing.T) {
	s := NewStore(models.Itinerary{})
	s.Add(testWinery("late", models.PayHosted))
	s.Add(testWinery("none", models.PayHosted))
	s.Add(testWinery("early", models.PayHosted))
	_, err := s.Update("late", models.BookingSelection{Time: "2024-05-05T10:00Z"})
	require.NoError(t, err)
	_, err = s.Update("early", models.BookingSelection{Time: "2024-05-04T10:00Z"})
	require.NoError(t, err)
	version := s.Version()

	var ids []string
	for _, e := range s.Ordered() {
		ids = append(ids, e.Winery.ID)
	}

	assert.Equal(t, []string{"early", "late", "none"}, ids)
	assert.Equal(t, version, s.Version())
	snap := s.Snapshot()
	assert.Equal(t, "late", snap.Entries[0].Winery.ID)
}

func TestStore_SlotIndexIsMemoized(t *testing.T) {
	s := NewStore(models.Itinerary{})
	s.Add(testWinery("a", models.PayHosted))

	first, ok := s.SlotIndex("a", 0)
	require.True(t, ok)
	second, _ := s.SlotIndex("a", 0)

	assert.Same(t, first, second)
}
