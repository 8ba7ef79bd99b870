package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busadmin/internal/http/middleware"
	"busadmin/internal/services"
)

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var in services.LoginInput
	if !BindJSONOrError(c, &in) {
		return
	}
	res, err := h.auth(c).Login(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/auth/profile
func (h *Handler) Profile(c *gin.Context) {
	u, err := h.auth(c).Profile(c.Request.Context(), middleware.Caller(c).UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PUT /api/auth/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var in services.ProfileInput
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := h.auth(c).UpdateProfile(c.Request.Context(), middleware.Caller(c).UserID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
