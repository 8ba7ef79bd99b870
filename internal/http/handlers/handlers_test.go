package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busadmin/internal/domain/models"
	"busadmin/internal/http/middleware"
	"busadmin/internal/services"
)

var (
	testNow  = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	mysqlDup = mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'BXMD' for key 'code'"}
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return &Handler{DB: db, Secret: []byte("test-secret"), TokenTTL: time.Hour, Location: time.UTC}, mock
}

// asUser stands in for middleware.Auth.
func asUser(id int64, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Set("userRole", role)
		c.Next()
	}
}

func newTestEngine(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/api/auth/login", h.Login)

	api := r.Group("/api", asUser(1, "admin"))
	api.GET("/stations/code-suggestion", h.SuggestStationCode)
	api.GET("/trips/availability", h.TripAvailability)
	api.GET("/stations/:id", h.GetStation)
	api.POST("/stations", h.CreateStation)
	api.PUT("/users/:id/status", h.SetUserStatus)
	api.DELETE("/users/:id", h.DeleteUser)
	api.GET("/health", h.Health)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func stationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "code", "street", "ward", "district", "city", "status", "created_at", "updated_at"}).
		AddRow(3, "Bến xe Mỹ Đình", "BXMD", "20 Phạm Hùng", "", "Nam Từ Liêm", "Hà Nội", "active", testNow, testNow)
}

func TestGetStation(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery("FROM stations WHERE id = ?").WithArgs(int64(3)).WillReturnRows(stationRows())

	w := do(newTestEngine(h), http.MethodGet, "/api/stations/3", "")

	require.Equal(t, http.StatusOK, w.Code)
	var st models.Station
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, "BXMD", st.Code)
	assert.Equal(t, "Hà Nội", st.Address.City)
}

func TestGetStationNotFound(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery("FROM stations WHERE id = ?").WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	w := do(newTestEngine(h), http.MethodGet, "/api/stations/99", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeError(t, w).Code)
	assert.NotEmpty(t, decodeError(t, w).RequestID)
}

func TestGetStationInvalidID(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(newTestEngine(h), http.MethodGet, "/api/stations/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", decodeError(t, w).Code)
}

func TestCreateStationRejectsBadBody(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestEngine(h)

	w := do(r, http.MethodPost, "/api/stations", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/stations", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/stations", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decodeError(t, w).Code)
}

func TestCreateStationConflict(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectExec("INSERT INTO stations").WillReturnError(&mysqlDup)

	w := do(newTestEngine(h), http.MethodPost, "/api/stations", `{"name":"Bến xe Mỹ Đình","code":"BXMD"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decodeError(t, w).Code)
}

func TestSuggestStationCode(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery("SELECT code FROM stations").
		WillReturnRows(sqlmock.NewRows([]string{"code"}).AddRow("BXMD"))

	w := do(newTestEngine(h), http.MethodGet, "/api/stations/code-suggestion?name=B%E1%BA%BFn%20xe%20M%E1%BB%B9%20%C4%90%C3%ACnh", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":"BXMD01"}`, w.Body.String())
}

func TestSetUserStatusRequiresFlag(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(newTestEngine(h), http.MethodPut, "/api/users/4/status", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decodeError(t, w).Code)
}

func TestDeleteUserRefusesSelf(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(newTestEngine(h), http.MethodDelete, "/api/users/1", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUser(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectExec("DELETE FROM users WHERE id = ?").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))

	w := do(newTestEngine(h), http.MethodDelete, "/api/users/4", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLogin(t *testing.T) {
	h, mock := newTestHandler(t)
	hash, err := services.HashPassword("secret123")
	require.NoError(t, err)

	mock.ExpectQuery("FROM users WHERE email = ?").
		WithArgs("staff@example.com", "staff@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "full_name", "phone", "email", "citizen_id", "date_of_birth", "gender", "address",
			"role", "is_active", "password_hash", "created_at", "updated_at",
		}).AddRow(5, "Trần Thị B", "", "staff@example.com", "", "", "", "", "staff", true, hash, testNow, testNow))

	w := do(newTestEngine(h), http.MethodPost, "/api/auth/login", `{"login":"Staff@Example.com","password":"secret123"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var res services.LoginResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Token)
	assert.NotContains(t, w.Body.String(), hash)

	rc, err := h.TokenParser()(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rc.UserID)
	assert.Equal(t, "staff", rc.Role)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery("FROM users WHERE email = ?").WillReturnError(sql.ErrNoRows)

	w := do(newTestEngine(h), http.MethodPost, "/api/auth/login", `{"login":"nobody@example.com","password":"secret123"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(newTestEngine(h), http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func busRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "operator", "license_plate", "bus_type", "seat_count", "status", "created_at", "updated_at"}).
		AddRow(10, "Sao Việt", "29B-100.10", "standard", 29, "active", testNow, testNow).
		AddRow(11, "Sao Việt", "29B-100.11", "sleeper", 40, "active", testNow, testNow)
}

func driverRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "full_name", "phone", "email", "license_number", "operator", "status", "created_at", "updated_at"}).
		AddRow(20, "Trần Văn B", "", "", "B2-20", "Sao Việt", "active", testNow, testNow).
		AddRow(21, "Lê Văn C", "", "", "B2-21", "Sao Việt", "active", testNow, testNow)
}

func TestTripAvailability(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery("FROM buses WHERE status").WillReturnRows(busRows())
	mock.ExpectQuery("FROM drivers WHERE status").WillReturnRows(driverRows())
	mock.ExpectQuery("FROM routes r").WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "code", "origin", "destination", "distance", "duration", "status", "created_at", "updated_at",
			"o.name", "o.code", "o.city", "d.name", "d.code", "d.city",
		}).AddRow(2, "Hà Nội - Hải Phòng", "ROU-HNHP", 3, 4, 120.0, 120, "active", testNow, testNow, "", "", "", "", "", ""))
	// trip 1 holds bus 10 and driver 20 from 08:00 to 10:00
	mock.ExpectQuery("WHERE t.status IN").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "trip_code", "route_id", "bus_id", "driver_id", "departure_date", "departure_time",
			"base_price", "available_seats", "status", "notes", "created_at", "updated_at",
			"r.id", "r.name", "r.code", "r.estimated_duration", "r.origin", "r.destination", "r.distance_km",
		}).AddRow(1, "TR-HNHP", 2, 10, 20, "2025-06-01", "08:00", 200000, 29, "scheduled", "", testNow, testNow,
			2, "Hà Nội - Hải Phòng", "ROU-HNHP", 120, 3, 4, 120.0))

	w := do(newTestEngine(h), http.MethodGet,
		"/api/trips/availability?routeId=2&departureDate=2025-06-01&departureTime=9&tripId=abc", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Buses   []models.Bus    `json:"buses"`
		Drivers []models.Driver `json:"drivers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Buses, 1)
	assert.Equal(t, int64(11), got.Buses[0].ID)
	require.Len(t, got.Drivers, 1)
	assert.Equal(t, int64(21), got.Drivers[0].ID)
}

func TestTripAvailabilityWithoutRouteOffersEveryone(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery("FROM buses WHERE status").WillReturnRows(busRows())
	mock.ExpectQuery("FROM drivers WHERE status").WillReturnRows(driverRows())
	mock.ExpectQuery("WHERE t.status IN").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "trip_code", "route_id", "bus_id", "driver_id", "departure_date", "departure_time",
			"base_price", "available_seats", "status", "notes", "created_at", "updated_at",
			"r.id", "r.name", "r.code", "r.estimated_duration", "r.origin", "r.destination", "r.distance_km",
		}))

	w := do(newTestEngine(h), http.MethodGet, "/api/trips/availability?departureDate=2025-06-01", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[10, 11]`, idsOf(t, w.Body.Bytes(), "buses"))
	assert.JSONEq(t, `[20, 21]`, idsOf(t, w.Body.Bytes(), "drivers"))
}

func idsOf(t *testing.T, body []byte, key string) string {
	t.Helper()
	var payload map[string][]struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	ids := make([]int64, 0, len(payload[key]))
	for _, item := range payload[key] {
		ids = append(ids, item.ID)
	}
	out, err := json.Marshal(ids)
	require.NoError(t, err)
	return string(out)
}
