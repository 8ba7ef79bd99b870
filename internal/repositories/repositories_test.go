package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
)

var tripCols = []string{
	"id", "trip_code", "route_id", "bus_id", "driver_id", "departure_date", "departure_time",
	"base_price", "available_seats", "status", "notes", "created_at", "updated_at",
	"r.id", "r.name", "r.code", "r.estimated_duration", "r.origin", "r.destination", "r.distance_km",
}

func TestStationRepository_ListSearchesAndPages(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	p := "%Mỹ%"
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM stations WHERE (name LIKE ? OR code LIKE ? OR city LIKE ?)")).
		WithArgs(p, p, p).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(11))
	mock.ExpectQuery("FROM stations WHERE .* LIMIT \\? OFFSET \\?").
		WithArgs(p, p, p, 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "street", "ward", "district", "city", "status", "created_at", "updated_at"}).
			AddRow(3, "Bến xe Mỹ Đình", "BXMD", "20 Phạm Hùng", "", "Nam Từ Liêm", "Hà Nội", "active", now, now))

	repo := StationRepository{DB: db}
	got, total, err := repo.List(context.Background(), domain.ListQuery{Search: " Mỹ ", Page: domain.NewPagination(2, 10)})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, got, 1)
	assert.Equal(t, "BXMD", got[0].Code)
	assert.Equal(t, "Hà Nội", got[0].Address.City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_GetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM stations WHERE id = \\?").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = StationRepository{DB: db}.GetByID(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestStationRepository_CreateDuplicateIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO stations").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'BXHN' for key 'uq_stations_code'"})

	_, err = StationRepository{DB: db}.Create(context.Background(), models.Station{Name: "Bến xe Hà Nội", Code: "BXHN"})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}

func TestStationRepository_DeleteMissingIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM stations").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))

	err = StationRepository{DB: db}.Delete(context.Background(), 4)
	assert.True(t, domain.IsNotFound(err))
}

func TestStationRepository_DeleteReferencedIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM stations").WithArgs(int64(4)).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

	err = StationRepository{DB: db}.Delete(context.Background(), 4)
	assert.True(t, domain.IsConflict(err))
}

func TestRouteRepository_GetByIDJoinsStations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM routes r\\s+LEFT JOIN stations o").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "code", "origin", "destination", "distance", "duration", "status", "created_at", "updated_at",
			"o.name", "o.code", "o.city", "d.name", "d.code", "d.city",
		}).AddRow(1, "Mỹ Đình - Niệm Nghĩa", "ROU-HNHP", 3, 4, 120.5, 150, "active", now, now,
			"Bến xe Mỹ Đình", "BXMD", "Hà Nội", "", "", ""))

	rt, err := RouteRepository{DB: db}.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, rt.Origin)
	assert.Equal(t, int64(3), rt.Origin.ID)
	assert.Equal(t, "Hà Nội", rt.Origin.Address.City)
	assert.Nil(t, rt.Destination)
	assert.Equal(t, 150, rt.EstimatedDuration)
}

func TestTripRepository_ListOccupyingLocksAndResolvesRoutes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("WHERE t.status IN \\(\\?, \\?\\) .* FOR UPDATE").
		WithArgs(models.TripScheduled, models.TripInProgress).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(1, "TR-HNHP", 2, 10, 20, "2025-06-01", "08:00", 250000, 40, "scheduled", "", now, now,
				2, "Hà Nội - Hải Phòng", "ROU-HNHP", 120, 3, 4, 120.0).
			AddRow(2, "TR-HNND", nil, 11, 21, "2025-06-01", "09:00", 150000, 29, "in_progress", "", now, now,
				nil, "", "", 0, 0, 0, 0.0))

	trips, err := TripRepository{DB: db}.ListOccupying(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, trips, 2)

	require.NotNil(t, trips[0].Route)
	assert.Equal(t, 120, trips[0].Route.EstimatedDuration)
	assert.Equal(t, int64(2), trips[0].RouteID)

	assert.Nil(t, trips[1].Route)
	assert.Zero(t, trips[1].RouteID)
	assert.Equal(t, models.TripInProgress, trips[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepository_CreateStoresNullRoute(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO trips").
		WithArgs("TR", nil, int64(10), int64(20), "2025-06-01", "08:00", int64(100000), 30, models.TripScheduled, nil).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := TripRepository{DB: db}.Create(context.Background(), models.Trip{
		TripCode: "TR", BusID: 10, DriverID: 20, DepartureDate: "2025-06-01", DepartureTime: "08:00",
		BasePrice: 100000, AvailableSeats: 30, Status: models.TripScheduled,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestTripRepository_UnknownBusIsValidation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO trips").
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	_, err = TripRepository{DB: db}.Create(context.Background(), models.Trip{TripCode: "TR"})
	assert.True(t, domain.IsValidation(err))
}

func TestSeatRepository_InitSeatsBulkInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT IGNORE INTO trip_seats (trip_id, seat_number, status) VALUES (?, ?, 'available'), (?, ?, 'available'), (?, ?, 'available')")).
		WithArgs(int64(5), "1", int64(5), "2", int64(5), "3").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, SeatRepository{DB: db}.InitSeats(context.Background(), 5, 3))
	require.NoError(t, SeatRepository{DB: db}.InitSeats(context.Background(), 5, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatRepository_ResizeDropsSeatsAboveCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("status = 'booked' AND CAST\\(seat_number AS UNSIGNED\\) > \\?").
		WithArgs(int64(5), 2).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM trip_seats WHERE trip_id = ? AND CAST(seat_number AS UNSIGNED) > ?")).
		WithArgs(int64(5), 2).
		WillReturnResult(sqlmock.NewResult(0, 43))
	mock.ExpectExec("INSERT IGNORE INTO trip_seats").
		WithArgs(int64(5), "1", int64(5), "2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, SeatRepository{DB: db}.Resize(context.Background(), 5, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatRepository_ResizeRefusesToDropBookedSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("status = 'booked'").
		WithArgs(int64(5), 16).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))

	err = SeatRepository{DB: db}.Resize(context.Background(), 5, 16)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByIDSplitsSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "code", "customer", "trip", "pickup", "dropoff", "seats", "total", "bstatus", "pstatus", "method",
			"pdate", "notes", "created", "updated", "cname", "cphone", "tcode", "rname", "ddate", "dtime", "ps", "ds",
		}).AddRow(3, "BK-0003", 8, 1, 3, 4, "a1, a2", 500000, "paid", "paid", "cash",
			now, "", now, now, "Nguyễn Văn A", "0901", "TR-HNHP", "Hà Nội - Hải Phòng", "2025-06-01", "08:00", "Mỹ Đình", "Niệm Nghĩa"))

	b, err := BookingRepository{DB: db}.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, b.SeatNumbers)
	require.NotNil(t, b.PaymentDate)
	assert.Equal(t, "Nguyễn Văn A", b.CustomerName)
}

func TestBookingRepository_MonthlyRevenueFillsYear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("MONTH\\(created_at\\)").WithArgs(models.PaymentPaid, 2025).
		WillReturnRows(sqlmock.NewRows([]string{"m", "sum"}).AddRow(1, 1000).AddRow(12, 3000))

	got, err := BookingRepository{DB: db}.MonthlyRevenue(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got[0])
	assert.Equal(t, int64(3000), got[11])
	assert.Zero(t, got[5])
}

func TestUserRepository_UpdateKeepsPasswordWhenBlank(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE users\\s+SET full_name = .*, role = \\? WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("password_hash = \\? WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := UserRepository{DB: db}
	require.NoError(t, repo.Update(context.Background(), models.User{ID: 1, FullName: "A", Role: models.RoleStaff}))
	require.NoError(t, repo.Update(context.Background(), models.User{ID: 1, FullName: "A", Role: models.RoleStaff, PasswordHash: "x"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%50\%\_off%`, likePattern(" 50%_off "))
}
