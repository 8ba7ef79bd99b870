package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busadmin/internal/services"
)

// GET /api/trips
func (h *Handler) ListTrips(c *gin.Context) {
	page, err := h.trips(c).List(c.Request.Context(), listQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/trips/:id
func (h *Handler) GetTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	t, err := h.trips(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// POST /api/trips
func (h *Handler) CreateTrip(c *gin.Context) {
	var in services.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	t, err := h.trips(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PUT /api/trips/:id
func (h *Handler) UpdateTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in services.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	t, err := h.trips(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /api/trips/:id
func (h *Handler) DeleteTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.trips(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/trips/availability?routeId=&departureDate=&departureTime=&tripId=
func (h *Handler) TripAvailability(c *gin.Context) {
	avail, err := h.trips(c).Availability(c.Request.Context(), services.AvailabilityQuery{
		RouteID:       queryInt64(c, "routeId"),
		DepartureDate: c.Query("departureDate"),
		DepartureTime: c.Query("departureTime"),
		TripID:        queryInt64(c, "tripId"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

// GET /api/trips/:id/seats
func (h *Handler) TripSeats(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	seats, err := h.trips(c).Seats(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tripId": id, "seats": seats})
}

// GET /api/trips/:id/manifest
func (h *Handler) TripManifest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	data, filename, err := h.docs(c).TripManifest(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendPDF(c, data, filename)
}
