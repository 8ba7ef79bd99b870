package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"busadmin/internal/codegen"
	intdb "busadmin/internal/db"
	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
	"busadmin/internal/repositories"
	"busadmin/internal/scheduling"
	"busadmin/internal/utils"
)

// TripService schedules trips. Writes run in one transaction that locks the
// occupying trips, so two admins cannot double-book the same bus or driver.
type TripService struct {
	DB        *sql.DB
	Location  *time.Location
	RequestID string
}

// tripRepos is the set of repositories a trip operation touches, bound to
// either the pool or a transaction.
type tripRepos struct {
	trips   repositories.TripRepository
	routes  repositories.RouteRepository
	buses   repositories.BusRepository
	drivers repositories.DriverRepository
	seats   repositories.SeatRepository
}

func reposOn(db intdb.DBTX) tripRepos {
	return tripRepos{
		trips:   repositories.TripRepository{DB: db},
		routes:  repositories.RouteRepository{DB: db},
		buses:   repositories.BusRepository{DB: db},
		drivers: repositories.DriverRepository{DB: db},
		seats:   repositories.SeatRepository{DB: db},
	}
}

func (s TripService) repos() tripRepos {
	if s.DB != nil {
		return reposOn(s.DB)
	}
	return tripRepos{}
}

func (s TripService) checker() scheduling.Checker {
	return scheduling.Checker{Location: s.Location}
}

type TripInput struct {
	TripCode      string            `json:"tripCode"`
	RouteID       int64             `json:"routeId"`
	BusID         int64             `json:"busId"`
	DriverID      int64             `json:"driverId"`
	DepartureDate string            `json:"departureDate"`
	DepartureTime string            `json:"departureTime"`
	BasePrice     int64             `json:"basePrice"`
	Status        models.TripStatus `json:"status"`
	Notes         string            `json:"notes"`
	// AvailableSeats defaults to the bus seat count on create and to the
	// stored value on update.
	AvailableSeats *int `json:"availableSeats"`
}

func (in TripInput) normalize() (TripInput, error) {
	in.TripCode = strings.ToUpper(strings.TrimSpace(in.TripCode))
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Status == "" {
		in.Status = models.TripScheduled
	}

	switch {
	case in.RouteID <= 0:
		return in, domain.ValidationError{Field: "routeId", Msg: "is required"}
	case in.BusID <= 0:
		return in, domain.ValidationError{Field: "busId", Msg: "is required"}
	case in.DriverID <= 0:
		return in, domain.ValidationError{Field: "driverId", Msg: "is required"}
	case in.BasePrice <= 0:
		return in, domain.ValidationError{Field: "basePrice", Msg: "must be greater than 0"}
	case !models.ValidTripStatus(in.Status):
		return in, domain.ValidationError{Field: "status", Msg: "unknown trip status"}
	}

	date, err := utils.NormalizeDate(in.DepartureDate)
	if err != nil {
		return in, domain.ValidationError{Field: "departureDate", Msg: "must be YYYY-MM-DD", Err: err}
	}
	clock, err := utils.NormalizeClock(in.DepartureTime)
	if err != nil {
		return in, domain.ValidationError{Field: "departureTime", Msg: "must be HH:mm", Err: err}
	}
	in.DepartureDate, in.DepartureTime = date, clock
	return in, nil
}

func (s TripService) List(ctx context.Context, q domain.ListQuery) (domain.Page[models.Trip], error) {
	items, total, err := s.repos().trips.List(ctx, q)
	if err != nil {
		return domain.Page[models.Trip]{}, err
	}
	return pageOf(items, total, q.Page), nil
}

// TripDetail is a trip with its seat map summary.
type TripDetail struct {
	models.Trip
	TotalSeats  int `json:"totalSeats"`
	BookedSeats int `json:"bookedSeats"`
}

func (s TripService) Get(ctx context.Context, id int64) (TripDetail, error) {
	r := s.repos()
	t, err := r.trips.GetByID(ctx, id)
	if err != nil {
		return TripDetail{}, err
	}
	seats, err := r.seats.ListByTrip(ctx, id)
	if err != nil {
		return TripDetail{}, err
	}
	d := TripDetail{Trip: t, TotalSeats: len(seats)}
	for _, st := range seats {
		if st.Status == models.SeatBooked {
			d.BookedSeats++
		}
	}
	return d, nil
}

func (s TripService) Seats(ctx context.Context, id int64) ([]models.TripSeat, error) {
	r := s.repos()
	if _, err := r.trips.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return r.seats.ListByTrip(ctx, id)
}

// AvailabilityQuery describes the trip form as currently filled in. Any
// field may be empty.
type AvailabilityQuery struct {
	RouteID       int64
	DepartureDate string
	DepartureTime string
	TripID        int64
}

// Availability lists active buses and drivers that can take the trip
// described by q. While the form is incomplete every active resource is
// offered.
func (s TripService) Availability(ctx context.Context, q AvailabilityQuery) (scheduling.Availability, error) {
	r := s.repos()
	buses, err := r.buses.ListByStatus(ctx, models.BusActive)
	if err != nil {
		return scheduling.Availability{}, err
	}
	drivers, err := r.drivers.ListByStatus(ctx, models.DriverActive)
	if err != nil {
		return scheduling.Availability{}, err
	}

	c := scheduling.Candidate{TripID: q.TripID}
	if q.RouteID > 0 {
		route, err := r.routes.GetByID(ctx, q.RouteID)
		switch {
		case err == nil:
			c.Route = &route
		case !domain.IsNotFound(err):
			return scheduling.Availability{}, err
		}
	}
	if date, err := utils.NormalizeDate(q.DepartureDate); err == nil {
		c.DepartureDate = date
	}
	if clock, err := utils.NormalizeClock(q.DepartureTime); err == nil {
		c.DepartureTime = clock
	}
	if q.TripID > 0 {
		own, err := r.trips.GetByID(ctx, q.TripID)
		if err != nil {
			return scheduling.Availability{}, err
		}
		c.BusID, c.DriverID = own.BusID, own.DriverID
	}

	trips, err := r.trips.ListOccupying(ctx, false)
	if err != nil {
		return scheduling.Availability{}, err
	}
	return s.checker().Available(c, trips, buses, drivers), nil
}

// Create schedules a trip. The code is generated from the route name when
// blank and the seat map is initialised from the bus.
func (s TripService) Create(ctx context.Context, in TripInput) (models.Trip, error) {
	in, err := in.normalize()
	if err != nil {
		return models.Trip{}, err
	}

	var id int64
	err = intdb.WithTx(ctx, dbOrDefault(s.DB), func(tx *sql.Tx) error {
		r := reposOn(tx)
		route, bus, err := s.assign(ctx, r, 0, in)
		if err != nil {
			return err
		}

		t := in.trip(0)
		if t.TripCode == "" {
			codes, err := r.trips.Codes(ctx)
			if err != nil {
				return err
			}
			t.TripCode = codegen.TripCode(route.Name, codes)
		}
		t.AvailableSeats = bus.SeatCount
		if in.AvailableSeats != nil {
			if t.AvailableSeats, err = seatsWithin(*in.AvailableSeats, bus); err != nil {
				return err
			}
		}

		if id, err = r.trips.Create(ctx, t); err != nil {
			return err
		}
		return r.seats.InitSeats(ctx, id, bus.SeatCount)
	})
	if err != nil {
		return models.Trip{}, err
	}

	utils.LogEvent(s.RequestID, "trips", "create", "trip scheduled", "trip_id", id, "bus_id", in.BusID, "driver_id", in.DriverID)
	return s.repos().trips.GetByID(ctx, id)
}

// Update rewrites a trip. The trip's own slot never conflicts with itself.
// Moving to another bus resizes the seat map and recounts free seats.
func (s TripService) Update(ctx context.Context, id int64, in TripInput) (models.Trip, error) {
	in, err := in.normalize()
	if err != nil {
		return models.Trip{}, err
	}

	err = intdb.WithTx(ctx, dbOrDefault(s.DB), func(tx *sql.Tx) error {
		r := reposOn(tx)
		current, err := r.trips.GetByID(ctx, id)
		if err != nil {
			return err
		}
		_, bus, err := s.assign(ctx, r, id, in)
		if err != nil {
			return err
		}

		t := in.trip(id)
		if t.TripCode == "" {
			t.TripCode = current.TripCode
		}
		t.AvailableSeats = current.AvailableSeats
		if bus.ID != current.BusID {
			if err := r.seats.Resize(ctx, id, bus.SeatCount); err != nil {
				return err
			}
			if t.AvailableSeats, err = r.seats.CountAvailable(ctx, id); err != nil {
				return err
			}
		}
		if in.AvailableSeats != nil {
			if t.AvailableSeats, err = seatsWithin(*in.AvailableSeats, bus); err != nil {
				return err
			}
		}

		return r.trips.Update(ctx, t)
	})
	if err != nil {
		return models.Trip{}, err
	}

	utils.LogEvent(s.RequestID, "trips", "update", "trip updated", "trip_id", id)
	return s.repos().trips.GetByID(ctx, id)
}

func (s TripService) Delete(ctx context.Context, id int64) error {
	if err := s.repos().trips.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trips", "delete", "trip deleted", "trip_id", id)
	return nil
}

// assign loads the route, bus and driver of in and, for a trip that will hold
// its resources, rejects inactive ones and overlapping assignments.
func (s TripService) assign(ctx context.Context, r tripRepos, tripID int64, in TripInput) (models.Route, models.Bus, error) {
	route, err := r.routes.GetByID(ctx, in.RouteID)
	if err != nil {
		return route, models.Bus{}, asFieldError("routeId", err)
	}
	bus, err := r.buses.GetByID(ctx, in.BusID)
	if err != nil {
		return route, bus, asFieldError("busId", err)
	}
	driver, err := r.drivers.GetByID(ctx, in.DriverID)
	if err != nil {
		return route, bus, asFieldError("driverId", err)
	}

	if !in.Status.Occupies() {
		return route, bus, nil
	}
	if bus.Status != models.BusActive {
		return route, bus, domain.ConflictError{Resource: "bus", Msg: fmt.Sprintf("%s is %s", bus.LicensePlate, bus.Status)}
	}
	if driver.Status != models.DriverActive {
		return route, bus, domain.ConflictError{Resource: "driver", Msg: fmt.Sprintf("%s is %s", driver.FullName, driver.Status)}
	}

	trips, err := r.trips.ListOccupying(ctx, true)
	if err != nil {
		return route, bus, err
	}
	conflicts := s.checker().Conflicts(scheduling.Candidate{
		Route:         &route,
		DepartureDate: in.DepartureDate,
		DepartureTime: in.DepartureTime,
		TripID:        tripID,
		BusID:         bus.ID,
		DriverID:      driver.ID,
	}, trips)
	if len(conflicts) > 0 {
		return route, bus, conflictError(bus, driver, conflicts)
	}
	return route, bus, nil
}

func conflictError(bus models.Bus, driver models.Driver, conflicts []scheduling.Conflict) error {
	var busTrips, driverTrips []string
	for _, c := range conflicts {
		if c.Bus {
			busTrips = append(busTrips, c.TripCode)
		}
		if c.Driver {
			driverTrips = append(driverTrips, c.TripCode)
		}
	}
	var parts []string
	if len(busTrips) > 0 {
		parts = append(parts, fmt.Sprintf("bus %s is already assigned to %s", bus.LicensePlate, strings.Join(busTrips, ", ")))
	}
	if len(driverTrips) > 0 {
		parts = append(parts, fmt.Sprintf("driver %s is already assigned to %s", driver.FullName, strings.Join(driverTrips, ", ")))
	}
	return domain.ConflictError{Resource: "trip", Msg: strings.Join(parts, "; ")}
}

// asFieldError reports a missing referenced record as invalid input.
func asFieldError(field string, err error) error {
	if domain.IsNotFound(err) {
		return domain.ValidationError{Field: field, Msg: "does not exist", Err: err}
	}
	return err
}

func seatsWithin(n int, bus models.Bus) (int, error) {
	if n < 0 || n > bus.SeatCount {
		return 0, domain.ValidationError{Field: "availableSeats", Msg: fmt.Sprintf("must be between 0 and %d", bus.SeatCount)}
	}
	return n, nil
}

func (in TripInput) trip(id int64) models.Trip {
	return models.Trip{
		ID:            id,
		TripCode:      in.TripCode,
		RouteID:       in.RouteID,
		BusID:         in.BusID,
		DriverID:      in.DriverID,
		DepartureDate: in.DepartureDate,
		DepartureTime: in.DepartureTime,
		BasePrice:     in.BasePrice,
		Status:        in.Status,
		Notes:         in.Notes,
	}
}
