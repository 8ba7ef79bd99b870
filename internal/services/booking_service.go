package services

import (
	"context"
	"database/sql"

	intdb "busadmin/internal/db"
	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
	"busadmin/internal/repositories"
	"busadmin/internal/utils"
)

type BookingService struct {
	DB        *sql.DB
	Bookings  repositories.BookingRepository
	RequestID string
}

func (s BookingService) List(ctx context.Context, q domain.ListQuery) (domain.Page[models.Booking], error) {
	items, total, err := s.Bookings.List(ctx, q)
	if err != nil {
		return domain.Page[models.Booking]{}, err
	}
	return pageOf(items, total, q.Page), nil
}

func (s BookingService) Get(ctx context.Context, id int64) (models.Booking, error) {
	return s.Bookings.GetByID(ctx, id)
}

// Cancel marks a booking cancelled, frees its seats and refreshes the trip's
// available seat counter. Cancelling twice is a no-op.
func (s BookingService) Cancel(ctx context.Context, id int64) (models.Booking, error) {
	var (
		released  int64
		cancelled bool
	)
	err := intdb.WithTx(ctx, dbOrDefault(s.DB), func(tx *sql.Tx) error {
		bookings := repositories.BookingRepository{DB: tx}
		seats := repositories.SeatRepository{DB: tx}
		trips := repositories.TripRepository{DB: tx}

		b, err := bookings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if b.BookingStatus == models.BookingCancelled {
			return nil
		}
		if err := bookings.SetStatus(ctx, id, models.BookingCancelled); err != nil {
			return err
		}
		cancelled = true
		if released, err = seats.ReleaseBooking(ctx, b.TripID, id); err != nil {
			return err
		}
		free, err := seats.CountAvailable(ctx, b.TripID)
		if err != nil {
			return err
		}
		return trips.SetAvailableSeats(ctx, b.TripID, free)
	})
	if err != nil {
		return models.Booking{}, err
	}

	if cancelled {
		utils.LogEvent(s.RequestID, "bookings", "cancel", "booking cancelled", "booking_id", id, "seats_released", released)
	}
	return s.Bookings.GetByID(ctx, id)
}
