package models

import "time"

type TripStatus string

const (
	TripScheduled  TripStatus = "scheduled"
	TripInProgress TripStatus = "in_progress"
	TripCompleted  TripStatus = "completed"
	TripCancelled  TripStatus = "cancelled"
)

// Occupies reports whether a trip in this status holds its bus and driver.
func (s TripStatus) Occupies() bool {
	return s == TripScheduled || s == TripInProgress
}

// ValidTripStatus reports whether s is one of the known trip statuses.
func ValidTripStatus(s TripStatus) bool {
	switch s {
	case TripScheduled, TripInProgress, TripCompleted, TripCancelled:
		return true
	}
	return false
}

// Trip is one scheduled departure of a bus and driver over a route.
// DepartureDate is YYYY-MM-DD and DepartureTime is HH:mm.
// Route is resolved by the repository and is nil when the route row is gone.
type Trip struct {
	ID             int64      `json:"id"`
	TripCode       string     `json:"tripCode"`
	RouteID        int64      `json:"routeId"`
	BusID          int64      `json:"busId"`
	DriverID       int64      `json:"driverId"`
	DepartureDate  string     `json:"departureDate"`
	DepartureTime  string     `json:"departureTime"`
	BasePrice      int64      `json:"basePrice"`
	AvailableSeats int        `json:"availableSeats"`
	Status         TripStatus `json:"status"`
	Notes          string     `json:"notes"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	Route *Route `json:"route,omitempty"`
}

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
)

// TripSeat is one cell of a trip's seat map.
type TripSeat struct {
	TripID     int64      `json:"tripId"`
	SeatNumber string     `json:"seatNumber"`
	Status     SeatStatus `json:"status"`
	BookingID  *int64     `json:"bookingId,omitempty"`
}
