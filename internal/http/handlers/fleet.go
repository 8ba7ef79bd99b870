package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busadmin/internal/services"
)

// GET /api/buses
func (h *Handler) ListBuses(c *gin.Context) {
	page, err := h.buses(c).List(c.Request.Context(), listQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/buses/:id
func (h *Handler) GetBus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.buses(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /api/buses
func (h *Handler) CreateBus(c *gin.Context) {
	var in services.BusInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := h.buses(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// PUT /api/buses/:id
func (h *Handler) UpdateBus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in services.BusInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := h.buses(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /api/buses/:id
func (h *Handler) DeleteBus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.buses(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/drivers
func (h *Handler) ListDrivers(c *gin.Context) {
	page, err := h.drivers(c).List(c.Request.Context(), listQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/drivers/:id
func (h *Handler) GetDriver(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	d, err := h.drivers(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/drivers
func (h *Handler) CreateDriver(c *gin.Context) {
	var in services.DriverInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := h.drivers(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// PUT /api/drivers/:id
func (h *Handler) UpdateDriver(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in services.DriverInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := h.drivers(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DELETE /api/drivers/:id
func (h *Handler) DeleteDriver(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.drivers(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
