package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"busadmin/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(parse TokenParser, roles ...string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", Auth(parse), RequireRoles(roles...), func(c *gin.Context) {
		rc := Caller(c)
		c.JSON(http.StatusOK, gin.H{"user": rc.UserID, "role": rc.Role})
	})
	return r
}

func parser(rc domain.RequestContext, err error) TokenParser {
	return func(string) (domain.RequestContext, error) { return rc, err }
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r := newEngine(parser(domain.RequestContext{UserID: 1, Role: "admin"}, nil), "admin")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	r := newEngine(parser(domain.RequestContext{}, errors.New("bad")), "admin")

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	cases := map[string]struct {
		role string
		want int
	}{
		"admin allowed":      {"admin", http.StatusOK},
		"staff allowed":      {"Staff", http.StatusOK},
		"customer forbidden": {"customer", http.StatusForbidden},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := newEngine(parser(domain.RequestContext{UserID: 7, Role: tc.role}, nil), "admin", "staff")

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("Authorization", "Bearer token")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRequestIDKeepsClientValue(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
}
