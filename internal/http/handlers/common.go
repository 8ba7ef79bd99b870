package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"busadmin/internal/domain"
	"busadmin/internal/http/middleware"
)

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// paramID parses the :id path parameter, answering 400 when it is not a
// positive integer.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

func queryInt64(c *gin.Context, key string) int64 {
	v, _ := strconv.ParseInt(c.Query(key), 10, 64)
	return v
}

// listQuery reads ?search=&status=&page=&pageSize= .
func listQuery(c *gin.Context) domain.ListQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("pageSize"))
	return domain.ListQuery{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   domain.NewPagination(page, size),
	}
}

// sendPDF streams an inline PDF.
func sendPDF(c *gin.Context, data []byte, filename string) {
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
