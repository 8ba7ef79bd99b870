package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busadmin/internal/http/middleware"
	"busadmin/internal/services"
)

// GET /api/users
func (h *Handler) ListUsers(c *gin.Context) {
	page, err := h.users(c).List(c.Request.Context(), listQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	u, err := h.users(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// POST /api/users
func (h *Handler) CreateUser(c *gin.Context) {
	var in services.UserInput
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := h.users(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// PUT /api/users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in services.UserInput
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := h.users(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type userStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

// PUT /api/users/:id/status
func (h *Handler) SetUserStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in userStatusRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	if in.IsActive == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "isActive is required", nil)
		return
	}
	u, err := h.users(c).SetActive(c.Request.Context(), id, *in.IsActive)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /api/users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.users(c).Delete(c.Request.Context(), middleware.Caller(c).UserID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
