package handlers

import (
	"net/http"
	"strconv"

	wineryRepo "winetrail/database/repository/winery"
	"winetrail/services/itinerary"
	"winetrail/utils"

	"github.com/gin-gonic/gin"
)

// WineryHandler serves the read-only winery catalog.
type WineryHandler struct {
	Catalog wineryRepo.WineryRepository
}

func NewWineryHandler(catalog wineryRepo.WineryRepository) *WineryHandler {
	return &WineryHandler{Catalog: catalog}
}

// ListWineriesHandler pages through the catalog ordered by name.
func (h *WineryHandler) ListWineriesHandler(c *gin.Context) {
	page, limit := pagination(c)
	wineries, total, err := h.Catalog.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wineries":    wineries,
		"totalPages":  int((total + int64(limit) - 1) / int64(limit)),
		"currentPage": page,
	})
}

func (h *WineryHandler) GetWineryHandler(c *gin.Context) {
	w, err := h.Catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// GetAvailabilityHandler returns the bookable dates and times of one tasting (?tasting=N, default 0).
func (h *WineryHandler) GetAvailabilityHandler(c *gin.Context) {
	w, err := h.Catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	tastingIndex := 0
	if raw := c.Query("tasting"); raw != "" {
		if tastingIndex, err = strconv.Atoi(raw); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid tasting index", raw)
			return
		}
	}
	tasting, ok := w.Tasting(tastingIndex)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid tasting index", strconv.Itoa(tastingIndex))
		return
	}

	c.JSON(http.StatusOK, itinerary.GroupByDate(tasting.Slots()).View())
}
