package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"busadmin/internal/domain"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// TokenParser validates a bearer token.
type TokenParser func(token string) (domain.RequestContext, error)

// Auth requires a valid bearer token and stores the caller in the context.
func Auth(parse TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		rc, err := parse(strings.TrimSpace(token))
		if err != nil {
			abort(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(userIDKey, rc.UserID)
		c.Set(userRoleKey, rc.Role)
		c.Next()
	}
}

// RequireRoles only lets through callers whose role is in allowedRoles.
// Auth must run first.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := strings.ToLower(strings.TrimSpace(c.GetString(userRoleKey)))
		if role == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", "no role in request context")
			return
		}
		if _, ok := allowed[role]; !ok {
			abort(c, http.StatusForbidden, "forbidden", "role not allowed")
			return
		}
		c.Next()
	}
}

// Caller returns the authenticated user set by Auth.
func Caller(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{UserID: c.GetInt64(userIDKey), Role: c.GetString(userRoleKey)}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"message":    message,
		"request_id": GetRequestID(c),
	})
}
