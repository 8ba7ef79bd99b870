package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busadmin/internal/services"
)

// GET /api/stations
func (h *Handler) ListStations(c *gin.Context) {
	page, err := h.stations(c).List(c.Request.Context(), listQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/stations/:id
func (h *Handler) GetStation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	st, err := h.stations(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// POST /api/stations
func (h *Handler) CreateStation(c *gin.Context) {
	var in services.StationInput
	if !BindJSONOrError(c, &in) {
		return
	}
	st, err := h.stations(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// PUT /api/stations/:id
func (h *Handler) UpdateStation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in services.StationInput
	if !BindJSONOrError(c, &in) {
		return
	}
	st, err := h.stations(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DELETE /api/stations/:id
func (h *Handler) DeleteStation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.stations(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/stations/cities
func (h *Handler) StationCities(c *gin.Context) {
	cities, err := h.stations(c).Cities(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// GET /api/stations/code-suggestion?name=
func (h *Handler) SuggestStationCode(c *gin.Context) {
	code, err := h.stations(c).SuggestCode(c.Request.Context(), c.Query("name"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}
