package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings
func (h *Handler) ListBookings(c *gin.Context) {
	page, err := h.bookings(c).List(c.Request.Context(), listQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.bookings(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /api/bookings/:id/cancel
func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.bookings(c).Cancel(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /api/bookings/:id/e-ticket
func (h *Handler) BookingETicket(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	data, filename, err := h.docs(c).BookingETicket(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendPDF(c, data, filename)
}

// GET /api/dashboard/summary
func (h *Handler) DashboardSummary(c *gin.Context) {
	summary, err := h.dashboard().Summary(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
