package repositories

import (
	"context"
	"fmt"
	"strings"

	intdb "busadmin/internal/db"
	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
)

// SeatRepository manages the per-trip seat map in trip_seats.
type SeatRepository struct {
	DB intdb.DBTX
}

// InitSeats inserts seats 1..count as available. Existing seats are kept.
func (r SeatRepository) InitSeats(ctx context.Context, tripID int64, count int) error {
	if count <= 0 {
		return nil
	}
	values := make([]string, 0, count)
	args := make([]any, 0, 2*count)
	for i := 1; i <= count; i++ {
		values = append(values, "(?, ?, 'available')")
		args = append(args, tripID, fmt.Sprintf("%d", i))
	}
	_, err := pick(r.DB).ExecContext(ctx,
		`INSERT IGNORE INTO trip_seats (trip_id, seat_number, status) VALUES `+strings.Join(values, ", "), args...)
	if err != nil {
		return fmt.Errorf("repositories.SeatRepository.InitSeats: %w", err)
	}
	return nil
}

// Resize makes the seat map exactly seats 1..count. Seats above count are
// removed unless one of them is booked, which is a conflict.
func (r SeatRepository) Resize(ctx context.Context, tripID int64, count int) error {
	var booked int
	err := pick(r.DB).QueryRowContext(ctx, `
		SELECT COUNT(*) FROM trip_seats
		WHERE trip_id = ? AND status = 'booked' AND CAST(seat_number AS UNSIGNED) > ?`, tripID, count).Scan(&booked)
	if err != nil {
		return fmt.Errorf("repositories.SeatRepository.Resize: count booked: %w", err)
	}
	if booked > 0 {
		return domain.ConflictError{Resource: "trip seats", Msg: fmt.Sprintf("%d booked seat(s) are above the bus capacity of %d", booked, count)}
	}

	if _, err := pick(r.DB).ExecContext(ctx,
		`DELETE FROM trip_seats WHERE trip_id = ? AND CAST(seat_number AS UNSIGNED) > ?`, tripID, count); err != nil {
		return fmt.Errorf("repositories.SeatRepository.Resize: %w", err)
	}
	return r.InitSeats(ctx, tripID, count)
}

// ListByTrip returns the seat map in numeric seat order.
func (r SeatRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.TripSeat, error) {
	rows, err := pick(r.DB).QueryContext(ctx, `
		SELECT trip_id, seat_number, status, booking_id
		FROM trip_seats
		WHERE trip_id = ?
		ORDER BY CAST(seat_number AS UNSIGNED), seat_number`, tripID)
	if err != nil {
		return nil, fmt.Errorf("repositories.SeatRepository.ListByTrip: %w", err)
	}
	defer rows.Close()

	out := []models.TripSeat{}
	for rows.Next() {
		var s models.TripSeat
		if err := rows.Scan(&s.TripID, &s.SeatNumber, &s.Status, &s.BookingID); err != nil {
			return nil, fmt.Errorf("repositories.SeatRepository.ListByTrip: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r SeatRepository) CountAvailable(ctx context.Context, tripID int64) (int, error) {
	var n int
	err := pick(r.DB).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM trip_seats WHERE trip_id = ? AND status = 'available'`, tripID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repositories.SeatRepository.CountAvailable: %w", err)
	}
	return n, nil
}

// ReleaseBooking frees every seat held by the booking and returns how many
// were released.
func (r SeatRepository) ReleaseBooking(ctx context.Context, tripID, bookingID int64) (int64, error) {
	res, err := pick(r.DB).ExecContext(ctx, `
		UPDATE trip_seats SET status = 'available', booking_id = NULL
		WHERE trip_id = ? AND booking_id = ?`, tripID, bookingID)
	if err != nil {
		return 0, fmt.Errorf("repositories.SeatRepository.ReleaseBooking: %w", err)
	}
	return res.RowsAffected()
}
