package handlers

import (
	"net/http"
	"testing"

	"winetrail/services/itinerary"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wineryRouter() *gin.Engine {
	h := NewWineryHandler(stubCatalog{"w1": sampleWinery("w1")})
	r := gin.New()
	r.GET("/api/wineries", h.ListWineriesHandler)
	r.GET("/api/wineries/:id", h.GetWineryHandler)
	r.GET("/api/wineries/:id/availability", h.GetAvailabilityHandler)
	return r
}

func TestGetAvailabilityHandler(t *testing.T) {
	w := doJSON(t, wineryRouter(), http.MethodGet, "/api/wineries/w1/availability", nil)

	require.Equal(t, http.StatusOK, w.Code)
	view := decode[itinerary.Availability](t, w)
	assert.Len(t, view.Dates, 2)
	assert.Equal(t, view.Dates[0], view.MinDate)
	assert.Equal(t, view.Dates[1], view.MaxDate)
	assert.Equal(t, []string{"2024-05-04T10:00Z", "2024-05-04T14:00Z"}, view.Times[view.Dates[0]])
}

func TestGetAvailabilityHandler_BadTasting(t *testing.T) {
	for _, q := range []string{"?tasting=3", "?tasting=x", "?tasting=-1"} {
		w := doJSON(t, wineryRouter(), http.MethodGet, "/api/wineries/w1/availability"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestWineryHandlers_NotFound(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, doJSON(t, wineryRouter(), http.MethodGet, "/api/wineries/zz", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, wineryRouter(), http.MethodGet, "/api/wineries/zz/availability", nil).Code)
}

func TestListWineriesHandler(t *testing.T) {
	w := doJSON(t, wineryRouter(), http.MethodGet, "/api/wineries?page=1&limit=10", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, body["totalPages"])
	assert.EqualValues(t, 1, body["currentPage"])
}
