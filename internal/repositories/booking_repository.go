package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intdb "busadmin/internal/db"
	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
	"busadmin/internal/utils"
)

const bookingSelect = `
	SELECT b.id, b.booking_code, b.customer_id, b.trip_id,
	       COALESCE(b.pickup_station_id, 0), COALESCE(b.dropoff_station_id, 0),
	       b.seat_numbers, b.total_amount, b.booking_status, b.payment_status, b.payment_method,
	       b.payment_date, COALESCE(b.notes, ''), b.created_at, b.updated_at,
	       COALESCE(u.full_name, ''), COALESCE(u.phone, ''),
	       COALESCE(t.trip_code, ''), COALESCE(r.name, ''),
	       COALESCE(DATE_FORMAT(t.departure_date, '%Y-%m-%d'), ''), COALESCE(t.departure_time, ''),
	       COALESCE(ps.name, ''), COALESCE(ds.name, '')
	FROM bookings b
	LEFT JOIN users u ON u.id = b.customer_id
	LEFT JOIN trips t ON t.id = b.trip_id
	LEFT JOIN routes r ON r.id = t.route_id
	LEFT JOIN stations ps ON ps.id = b.pickup_station_id
	LEFT JOIN stations ds ON ds.id = b.dropoff_station_id`

type BookingRepository struct {
	DB intdb.DBTX
}

func scanBooking(s scanner) (models.Booking, error) {
	var (
		b           models.Booking
		seats       string
		paymentDate sql.NullTime
	)
	err := s.Scan(&b.ID, &b.BookingCode, &b.CustomerID, &b.TripID,
		&b.PickupStationID, &b.DropoffStationID,
		&seats, &b.TotalAmount, &b.BookingStatus, &b.PaymentStatus, &b.PaymentMethod,
		&paymentDate, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
		&b.CustomerName, &b.CustomerPhone,
		&b.TripCode, &b.RouteName,
		&b.DepartureDate, &b.DepartureTime,
		&b.PickupStation, &b.DropoffStation)
	if err != nil {
		return models.Booking{}, err
	}
	b.SeatNumbers = utils.SplitSeatList(seats)
	if paymentDate.Valid {
		t := paymentDate.Time
		b.PaymentDate = &t
	}
	return b, nil
}

func scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	defer rows.Close()
	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// List matches q.Search on booking code, customer name or phone and q.Status
// on booking status.
func (r BookingRepository) List(ctx context.Context, q domain.ListQuery) ([]models.Booking, int, error) {
	var w whereClause
	if q.Search != "" {
		p := likePattern(q.Search)
		w.add("(b.booking_code LIKE ? OR u.full_name LIKE ? OR u.phone LIKE ?)", p, p, p)
	}
	if q.Status != "" {
		w.add("b.booking_status = ?", q.Status)
	}

	var total int
	err := pick(r.DB).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings b LEFT JOIN users u ON u.id = b.customer_id WHERE `+w.String(), w.args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repositories.BookingRepository.List: count: %w", err)
	}

	args := append(w.args, q.Page.PageSize, q.Page.Offset())
	rows, err := pick(r.DB).QueryContext(ctx,
		bookingSelect+` WHERE `+w.String()+` ORDER BY b.created_at DESC, b.id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repositories.BookingRepository.List: %w", err)
	}
	out, err := scanBookings(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repositories.BookingRepository.List: scan: %w", err)
	}
	return out, total, nil
}

func (r BookingRepository) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	b, err := scanBooking(pick(r.DB).QueryRowContext(ctx, bookingSelect+` WHERE b.id = ?`, id))
	if err != nil {
		return models.Booking{}, fmt.Errorf("repositories.BookingRepository.GetByID: %w", mapReadError("booking", id, err))
	}
	return b, nil
}

// ListByTrip returns the non-cancelled bookings of a trip, for the manifest.
func (r BookingRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Booking, error) {
	rows, err := pick(r.DB).QueryContext(ctx,
		bookingSelect+` WHERE b.trip_id = ? AND b.booking_status <> ? ORDER BY b.created_at, b.id`,
		tripID, models.BookingCancelled)
	if err != nil {
		return nil, fmt.Errorf("repositories.BookingRepository.ListByTrip: %w", err)
	}
	out, err := scanBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("repositories.BookingRepository.ListByTrip: scan: %w", err)
	}
	return out, nil
}

func (r BookingRepository) Recent(ctx context.Context, limit int) ([]models.Booking, error) {
	rows, err := pick(r.DB).QueryContext(ctx, bookingSelect+` ORDER BY b.created_at DESC, b.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("repositories.BookingRepository.Recent: %w", err)
	}
	out, err := scanBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("repositories.BookingRepository.Recent: scan: %w", err)
	}
	return out, nil
}

// SetStatus updates booking_status only.
func (r BookingRepository) SetStatus(ctx context.Context, id int64, status models.BookingStatus) error {
	res, err := pick(r.DB).ExecContext(ctx, `UPDATE bookings SET booking_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("repositories.BookingRepository.SetStatus: %w", err)
	}
	if err := affectedOrNotFound(res, "booking", id); err != nil {
		return fmt.Errorf("repositories.BookingRepository.SetStatus: %w", err)
	}
	return nil
}

// PaidEarnings sums total_amount over paid bookings.
func (r BookingRepository) PaidEarnings(ctx context.Context) (int64, error) {
	var total int64
	err := pick(r.DB).QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE payment_status = ?`, models.PaymentPaid).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("repositories.BookingRepository.PaidEarnings: %w", err)
	}
	return total, nil
}

// MonthlyRevenue returns paid revenue for each month of year, indexed 0..11.
func (r BookingRepository) MonthlyRevenue(ctx context.Context, year int) ([12]int64, error) {
	var out [12]int64
	rows, err := pick(r.DB).QueryContext(ctx, `
		SELECT MONTH(created_at), COALESCE(SUM(total_amount), 0)
		FROM bookings
		WHERE payment_status = ? AND YEAR(created_at) = ?
		GROUP BY MONTH(created_at)`, models.PaymentPaid, year)
	if err != nil {
		return out, fmt.Errorf("repositories.BookingRepository.MonthlyRevenue: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			month int
			sum   int64
		)
		if err := rows.Scan(&month, &sum); err != nil {
			return out, fmt.Errorf("repositories.BookingRepository.MonthlyRevenue: scan: %w", err)
		}
		if month >= 1 && month <= 12 {
			out[month-1] = sum
		}
	}
	return out, rows.Err()
}

// CountPerDay returns booking counts keyed by YYYY-MM-DD for bookings created
// on or after since.
func (r BookingRepository) CountPerDay(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := pick(r.DB).QueryContext(ctx, `
		SELECT DATE_FORMAT(created_at, '%Y-%m-%d') AS day, COUNT(*)
		FROM bookings
		WHERE created_at >= ?
		GROUP BY day`, since)
	if err != nil {
		return nil, fmt.Errorf("repositories.BookingRepository.CountPerDay: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			day string
			n   int
		)
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("repositories.BookingRepository.CountPerDay: scan: %w", err)
		}
		out[day] = n
	}
	return out, rows.Err()
}
