package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "busadmin/internal/config"
	"busadmin/internal/domain/models"
	"busadmin/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testEnv = intconfig.Env{
	JWTSecret:   "router-secret",
	TokenTTL:    time.Hour,
	CORSOrigins: []string{"http://localhost:5173"},
	Location:    time.UTC,
}

func tokenFor(t *testing.T, role models.Role) string {
	t.Helper()
	auth := services.AuthService{Secret: []byte(testEnv.JWTSecret), TTL: testEnv.TokenTTL}
	tok, _, err := auth.IssueToken(models.User{ID: 42, Role: role})
	require.NoError(t, err)
	return tok
}

func serve(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthIsPublic(t *testing.T) {
	r := NewRouter(testEnv, nil)

	w := serve(r, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r := NewRouter(testEnv, nil)

	for _, path := range []string{"/api/stations", "/api/trips/availability", "/api/dashboard/summary", "/api/users"} {
		w := serve(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestTokenFromAnotherSecretIsRejected(t *testing.T) {
	r := NewRouter(testEnv, nil)
	auth := services.AuthService{Secret: []byte("other"), TTL: time.Hour}
	tok, _, err := auth.IssueToken(models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	w := serve(r, http.MethodGet, "/api/stations", tok)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGates(t *testing.T) {
	r := NewRouter(testEnv, nil)

	cases := []struct {
		name   string
		role   models.Role
		method string
		path   string
	}{
		{"staff cannot manage users", models.RoleStaff, http.MethodGet, "/api/users"},
		{"staff cannot list routes table", models.RoleStaff, http.MethodGet, "/api/routes-table"},
		{"customer cannot create stations", models.RoleCustomer, http.MethodPost, "/api/stations"},
		{"customer cannot cancel bookings", models.RoleCustomer, http.MethodPut, "/api/bookings/1/cancel"},
		{"customer cannot delete trips", models.RoleCustomer, http.MethodDelete, "/api/trips/1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(r, tc.method, tc.path, tokenFor(t, tc.role))
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestRoutesTableListsRegisteredRoutes(t *testing.T) {
	r := NewRouter(testEnv, nil)

	w := serve(r, http.MethodGet, "/api/routes-table", tokenFor(t, models.RoleAdmin))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/trips/availability")
	assert.Contains(t, w.Body.String(), "/api/bookings/:id/e-ticket")
}

func TestUnknownRoute(t *testing.T) {
	r := NewRouter(testEnv, nil)

	w := serve(r, http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found")
}

func TestCORSPreflight(t *testing.T) {
	r := NewRouter(testEnv, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/stations", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
