package itinerary

import (
	"errors"
	"testing"
	"time"

	"winetrail/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyToCart(t *testing.T) {
	then := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	now := then.Add(time.Hour)
	base := func() *Cart {
		s := NewStore(models.Itinerary{})
		s.Add(testWinery("a", models.PayHosted))
		return &Cart{ID: "c1", UserID: "u1", Itinerary: s.Snapshot(), UpdatedAt: then}
	}

	t.Run("no change leaves the cart alone", func(t *testing.T) {
		cart := base()
		changed, err := applyToCart(cart, func(s *Store) (bool, error) {
			return s.Add(testWinery("a", models.PayHosted)), nil
		}, now)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Len(t, cart.Itinerary.Entries, 1)
		assert.Equal(t, then, cart.UpdatedAt)
	})

	t.Run("change commits the snapshot", func(t *testing.T) {
		cart := base()
		changed, err := applyToCart(cart, func(s *Store) (bool, error) {
			return s.Add(testWinery("b", models.PayAtVenue)), nil
		}, now)

		require.NoError(t, err)
		assert.True(t, changed)
		require.Len(t, cart.Itinerary.Entries, 2)
		assert.Equal(t, "b", cart.Itinerary.Entries[1].Winery.ID)
		assert.Equal(t, now, cart.UpdatedAt)
	})

	t.Run("error discards the change", func(t *testing.T) {
		cart := base()
		boom := errors.New("boom")
		changed, err := applyToCart(cart, func(s *Store) (bool, error) {
			s.Add(testWinery("b", models.PayAtVenue))
			return true, boom
		}, now)

		assert.ErrorIs(t, err, boom)
		assert.False(t, changed)
		assert.Len(t, cart.Itinerary.Entries, 1)
		assert.Equal(t, then, cart.UpdatedAt)
	})
}
