package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busadmin/internal/services"
)

// GET /api/routes
func (h *Handler) ListRoutes(c *gin.Context) {
	page, err := h.routes(c).List(c.Request.Context(), listQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/routes/:id
func (h *Handler) GetRoute(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rt, err := h.routes(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// POST /api/routes
func (h *Handler) CreateRoute(c *gin.Context) {
	var in services.RouteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rt, err := h.routes(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rt)
}

// PUT /api/routes/:id
func (h *Handler) UpdateRoute(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in services.RouteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rt, err := h.routes(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// DELETE /api/routes/:id
func (h *Handler) DeleteRoute(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.routes(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/routes/code-suggestion?originStationId=&destinationStationId=
func (h *Handler) SuggestRoute(c *gin.Context) {
	s, err := h.routes(c).Suggest(c.Request.Context(), queryInt64(c, "originStationId"), queryInt64(c, "destinationStationId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
