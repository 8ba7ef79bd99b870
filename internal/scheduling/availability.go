package scheduling

import (
	"time"

	"busadmin/internal/domain/models"
)

// RouteResolver looks up a route by ID for trips whose route was not loaded.
type RouteResolver func(routeID int64) (*models.Route, bool)

// Candidate is the trip being created or edited.
// TripID, BusID and DriverID are zero for a new trip.
type Candidate struct {
	Route         *models.Route
	DepartureDate string
	DepartureTime string

	TripID   int64
	BusID    int64
	DriverID int64
}

// Availability is the subset of the offered pools that can be assigned.
type Availability struct {
	Buses   []models.Bus    `json:"buses"`
	Drivers []models.Driver `json:"drivers"`
}

// Conflict is an existing trip that holds the candidate's bus or driver.
type Conflict struct {
	TripID   int64      `json:"tripId"`
	TripCode string     `json:"tripCode"`
	Window   TimeWindow `json:"window"`
	Bus      bool       `json:"bus"`
	Driver   bool       `json:"driver"`
}

// Checker computes availability over a trip snapshot.
type Checker struct {
	// Location interprets departure dates and times. Defaults to time.Local.
	Location *time.Location
	// Resolve is consulted when a trip has no embedded route. Optional.
	Resolve RouteResolver
}

// Window returns the candidate's occupied window. The second return is false
// while the route, date or time is still missing.
func (ck Checker) Window(c Candidate) (TimeWindow, bool) {
	if c.Route == nil {
		return TimeWindow{}, false
	}
	return WindowFor(c.DepartureDate, c.DepartureTime, c.Route.EstimatedDuration, ck.Location)
}

// TripWindow returns the window an existing trip occupies. An unresolved
// route yields a zero-width window at the departure instant.
func (ck Checker) TripWindow(t models.Trip) (TimeWindow, bool) {
	return WindowFor(t.DepartureDate, t.DepartureTime, ck.durationOf(t), ck.Location)
}

func (ck Checker) durationOf(t models.Trip) int {
	if t.Route != nil {
		return t.Route.EstimatedDuration
	}
	if ck.Resolve != nil {
		if r, ok := ck.Resolve(t.RouteID); ok && r != nil {
			return r.EstimatedDuration
		}
	}
	return 0
}

// Busy returns the bus and driver IDs held by occupying trips whose window
// overlaps the candidate's. ok is false when the candidate is incomplete.
func (ck Checker) Busy(c Candidate, trips []models.Trip) (busIDs, driverIDs map[int64]struct{}, ok bool) {
	win, ok := ck.Window(c)
	if !ok {
		return nil, nil, false
	}

	busIDs = map[int64]struct{}{}
	driverIDs = map[int64]struct{}{}
	for _, t := range trips {
		if !ck.occupies(c, t, win) {
			continue
		}
		if t.BusID > 0 {
			busIDs[t.BusID] = struct{}{}
		}
		if t.DriverID > 0 {
			driverIDs[t.DriverID] = struct{}{}
		}
	}
	return busIDs, driverIDs, true
}

func (ck Checker) occupies(c Candidate, t models.Trip, win TimeWindow) bool {
	if !t.Status.Occupies() {
		return false
	}
	if c.TripID > 0 && t.ID == c.TripID {
		return false
	}
	other, ok := ck.TripWindow(t)
	if !ok {
		return false
	}
	return win.Overlaps(other)
}

// Available filters buses and drivers down to those safe to assign to the
// candidate. The pools are expected to be pre-filtered to active resources.
// The candidate's own bus and driver always stay selectable. Output order
// follows input order and the inputs are not modified.
func (ck Checker) Available(c Candidate, trips []models.Trip, buses []models.Bus, drivers []models.Driver) Availability {
	busy, busyDrivers, ok := ck.Busy(c, trips)
	if !ok {
		return Availability{
			Buses:   append([]models.Bus{}, buses...),
			Drivers: append([]models.Driver{}, drivers...),
		}
	}

	out := Availability{
		Buses:   make([]models.Bus, 0, len(buses)),
		Drivers: make([]models.Driver, 0, len(drivers)),
	}
	for _, b := range buses {
		if _, taken := busy[b.ID]; taken && b.ID != c.BusID {
			continue
		}
		out.Buses = append(out.Buses, b)
	}
	for _, d := range drivers {
		if _, taken := busyDrivers[d.ID]; taken && d.ID != c.DriverID {
			continue
		}
		out.Drivers = append(out.Drivers, d)
	}
	return out
}

// Conflicts lists occupying trips that overlap the candidate and share its
// bus or driver. Used to reject double-bookings on write.
func (ck Checker) Conflicts(c Candidate, trips []models.Trip) []Conflict {
	win, ok := ck.Window(c)
	if !ok {
		return nil
	}

	var out []Conflict
	for _, t := range trips {
		if !ck.occupies(c, t, win) {
			continue
		}
		sameBus := c.BusID > 0 && t.BusID == c.BusID
		sameDriver := c.DriverID > 0 && t.DriverID == c.DriverID
		if !sameBus && !sameDriver {
			continue
		}
		other, _ := ck.TripWindow(t)
		out = append(out, Conflict{
			TripID:   t.ID,
			TripCode: t.TripCode,
			Window:   other,
			Bus:      sameBus,
			Driver:   sameDriver,
		})
	}
	return out
}

// ActiveBuses keeps buses in service.
func ActiveBuses(buses []models.Bus) []models.Bus {
	out := make([]models.Bus, 0, len(buses))
	for _, b := range buses {
		if b.Status == models.BusActive {
			out = append(out, b)
		}
	}
	return out
}

// ActiveDrivers keeps drivers allowed to drive.
func ActiveDrivers(drivers []models.Driver) []models.Driver {
	out := make([]models.Driver, 0, len(drivers))
	for _, d := range drivers {
		if d.Status == models.DriverActive {
			out = append(out, d)
		}
	}
	return out
}
