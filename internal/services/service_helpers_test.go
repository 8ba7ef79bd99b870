package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	intconfig "busadmin/internal/config"
	"busadmin/internal/domain/models"
)

var testNow = time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	intconfig.DB = db
	t.Cleanup(func() {
		intconfig.DB = nil
		db.Close()
	})
	return db, mock
}

func routeRows(r models.Route) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "code", "origin", "destination", "distance", "duration", "status", "created_at", "updated_at",
		"o.name", "o.code", "o.city", "d.name", "d.code", "d.city",
	}).AddRow(r.ID, r.Name, r.Code, r.OriginStationID, r.DestinationStationID, r.DistanceKm, r.EstimatedDuration,
		string(r.Status), testNow, testNow, "", "", "", "", "", "")
}

func busRows(buses ...models.Bus) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "operator", "license_plate", "bus_type", "seat_count", "status", "created_at", "updated_at"})
	for _, b := range buses {
		rows.AddRow(b.ID, b.Operator, b.LicensePlate, string(b.BusType), b.SeatCount, string(b.Status), testNow, testNow)
	}
	return rows
}

func driverRows(drivers ...models.Driver) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "full_name", "phone", "email", "license_number", "operator", "status", "created_at", "updated_at"})
	for _, d := range drivers {
		rows.AddRow(d.ID, d.FullName, d.Phone, d.Email, d.LicenseNumber, d.Operator, string(d.Status), testNow, testNow)
	}
	return rows
}

func tripRows(trips ...models.Trip) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "trip_code", "route_id", "bus_id", "driver_id", "departure_date", "departure_time",
		"base_price", "available_seats", "status", "notes", "created_at", "updated_at",
		"r.id", "r.name", "r.code", "r.estimated_duration", "r.origin", "r.destination", "r.distance_km",
	})
	for _, t := range trips {
		var (
			routeID  any
			name     = ""
			duration = 0
		)
		if t.Route != nil {
			routeID, name, duration = t.Route.ID, t.Route.Name, t.Route.EstimatedDuration
		}
		rows.AddRow(t.ID, t.TripCode, routeID, t.BusID, t.DriverID, t.DepartureDate, t.DepartureTime,
			t.BasePrice, t.AvailableSeats, string(t.Status), t.Notes, testNow, testNow,
			routeID, name, "", duration, 0, 0, 0.0)
	}
	return rows
}

func userRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "full_name", "phone", "email", "citizen_id", "date_of_birth", "gender", "address",
		"role", "is_active", "password_hash", "created_at", "updated_at",
	})
	for _, u := range users {
		rows.AddRow(u.ID, u.FullName, u.Phone, u.Email, u.CitizenID, u.DateOfBirth, u.Gender, u.Address,
			string(u.Role), u.IsActive, u.PasswordHash, testNow, testNow)
	}
	return rows
}
