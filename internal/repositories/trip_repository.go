package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "busadmin/internal/db"
	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
)

// departure_date is DATE; format it so the driver hands back YYYY-MM-DD
// regardless of parseTime.
const tripSelect = `
	SELECT t.id, t.trip_code, t.route_id, t.bus_id, t.driver_id,
	       DATE_FORMAT(t.departure_date, '%Y-%m-%d'), t.departure_time,
	       t.base_price, t.available_seats, t.status, COALESCE(t.notes, ''),
	       t.created_at, t.updated_at,
	       r.id, COALESCE(r.name, ''), COALESCE(r.code, ''), COALESCE(r.estimated_duration, 0),
	       COALESCE(r.origin_station_id, 0), COALESCE(r.destination_station_id, 0), COALESCE(r.distance_km, 0)
	FROM trips t
	LEFT JOIN routes r ON r.id = t.route_id`

type TripRepository struct {
	DB intdb.DBTX
}

func scanTrip(s scanner) (models.Trip, error) {
	var (
		t       models.Trip
		routeID sql.NullInt64
		joined  sql.NullInt64
		rt      models.Route
	)
	err := s.Scan(&t.ID, &t.TripCode, &routeID, &t.BusID, &t.DriverID,
		&t.DepartureDate, &t.DepartureTime,
		&t.BasePrice, &t.AvailableSeats, &t.Status, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt,
		&joined, &rt.Name, &rt.Code, &rt.EstimatedDuration,
		&rt.OriginStationID, &rt.DestinationStationID, &rt.DistanceKm)
	if err != nil {
		return models.Trip{}, err
	}
	if routeID.Valid {
		t.RouteID = routeID.Int64
	}
	if joined.Valid {
		rt.ID = joined.Int64
		t.Route = &rt
	}
	return t, nil
}

func scanTrips(rows *sql.Rows) ([]models.Trip, error) {
	defer rows.Close()
	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// List returns one page of trips, newest departure first. Search matches the
// trip code or the route name.
func (r TripRepository) List(ctx context.Context, q domain.ListQuery) ([]models.Trip, int, error) {
	var w whereClause
	if q.Search != "" {
		p := likePattern(q.Search)
		w.add("(t.trip_code LIKE ? OR r.name LIKE ?)", p, p)
	}
	if q.Status != "" {
		w.add("t.status = ?", q.Status)
	}

	var total int
	err := pick(r.DB).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM trips t LEFT JOIN routes r ON r.id = t.route_id WHERE `+w.String(), w.args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repositories.TripRepository.List: count: %w", err)
	}

	args := append(w.args, q.Page.PageSize, q.Page.Offset())
	rows, err := pick(r.DB).QueryContext(ctx,
		tripSelect+` WHERE `+w.String()+` ORDER BY t.departure_date DESC, t.departure_time DESC, t.id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repositories.TripRepository.List: %w", err)
	}
	trips, err := scanTrips(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repositories.TripRepository.List: scan: %w", err)
	}
	return trips, total, nil
}

// ListOccupying returns scheduled and in-progress trips, the only ones that
// hold a bus or driver. With forUpdate the rows are locked until the
// surrounding transaction ends.
func (r TripRepository) ListOccupying(ctx context.Context, forUpdate bool) ([]models.Trip, error) {
	query := tripSelect + ` WHERE t.status IN (?, ?) ORDER BY t.departure_date, t.departure_time, t.id`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := pick(r.DB).QueryContext(ctx, query, models.TripScheduled, models.TripInProgress)
	if err != nil {
		return nil, fmt.Errorf("repositories.TripRepository.ListOccupying: %w", err)
	}
	trips, err := scanTrips(rows)
	if err != nil {
		return nil, fmt.Errorf("repositories.TripRepository.ListOccupying: scan: %w", err)
	}
	return trips, nil
}

func (r TripRepository) GetByID(ctx context.Context, id int64) (models.Trip, error) {
	t, err := scanTrip(pick(r.DB).QueryRowContext(ctx, tripSelect+` WHERE t.id = ?`, id))
	if err != nil {
		return models.Trip{}, fmt.Errorf("repositories.TripRepository.GetByID: %w", mapReadError("trip", id, err))
	}
	return t, nil
}

func (r TripRepository) Create(ctx context.Context, t models.Trip) (int64, error) {
	res, err := pick(r.DB).ExecContext(ctx, `
		INSERT INTO trips (trip_code, route_id, bus_id, driver_id, departure_date, departure_time,
		                   base_price, available_seats, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TripCode, intdb.NullIfZero(t.RouteID), t.BusID, t.DriverID, t.DepartureDate, t.DepartureTime,
		t.BasePrice, t.AvailableSeats, t.Status, intdb.NullIfEmpty(t.Notes))
	if err != nil {
		return 0, fmt.Errorf("repositories.TripRepository.Create: %w", mapWriteError("trip", err))
	}
	return res.LastInsertId()
}

func (r TripRepository) Update(ctx context.Context, t models.Trip) error {
	_, err := pick(r.DB).ExecContext(ctx, `
		UPDATE trips
		SET trip_code = ?, route_id = ?, bus_id = ?, driver_id = ?, departure_date = ?, departure_time = ?,
		    base_price = ?, available_seats = ?, status = ?, notes = ?
		WHERE id = ?`,
		t.TripCode, intdb.NullIfZero(t.RouteID), t.BusID, t.DriverID, t.DepartureDate, t.DepartureTime,
		t.BasePrice, t.AvailableSeats, t.Status, intdb.NullIfEmpty(t.Notes), t.ID)
	if err != nil {
		return fmt.Errorf("repositories.TripRepository.Update: %w", mapWriteError("trip", err))
	}
	return nil
}

// SetAvailableSeats stores the seat counter after bookings change.
func (r TripRepository) SetAvailableSeats(ctx context.Context, id int64, n int) error {
	_, err := pick(r.DB).ExecContext(ctx, `UPDATE trips SET available_seats = ? WHERE id = ?`, n, id)
	if err != nil {
		return fmt.Errorf("repositories.TripRepository.SetAvailableSeats: %w", err)
	}
	return nil
}

func (r TripRepository) Delete(ctx context.Context, id int64) error {
	res, err := pick(r.DB).ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repositories.TripRepository.Delete: %w", mapWriteError("trip", err))
	}
	if err := affectedOrNotFound(res, "trip", id); err != nil {
		return fmt.Errorf("repositories.TripRepository.Delete: %w", err)
	}
	return nil
}

func (r TripRepository) Codes(ctx context.Context) ([]string, error) {
	return queryStrings(ctx, pick(r.DB), `SELECT trip_code FROM trips`)
}

// CountByStatus returns the number of trips per status.
func (r TripRepository) CountByStatus(ctx context.Context) (map[models.TripStatus]int, error) {
	rows, err := pick(r.DB).QueryContext(ctx, `SELECT status, COUNT(*) FROM trips GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("repositories.TripRepository.CountByStatus: %w", err)
	}
	defer rows.Close()

	out := map[models.TripStatus]int{}
	for rows.Next() {
		var (
			status models.TripStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("repositories.TripRepository.CountByStatus: scan: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}
