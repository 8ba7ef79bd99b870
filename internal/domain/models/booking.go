package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingPaid      BookingStatus = "paid"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
	PaymentFailed PaymentStatus = "failed"
)

// Booking is a customer's reservation of one or more seats on a trip.
// The *Name/*Code fields are joined in by the repository for display.
type Booking struct {
	ID               int64         `json:"id"`
	BookingCode      string        `json:"bookingCode"`
	CustomerID       int64         `json:"customerId"`
	TripID           int64         `json:"tripId"`
	PickupStationID  int64         `json:"pickupStationId"`
	DropoffStationID int64         `json:"dropoffStationId"`
	SeatNumbers      []string      `json:"seatNumbers"`
	TotalAmount      int64         `json:"totalAmount"`
	BookingStatus    BookingStatus `json:"bookingStatus"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	PaymentMethod    string        `json:"paymentMethod"`
	PaymentDate      *time.Time    `json:"paymentDate,omitempty"`
	Notes            string        `json:"notes"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`

	CustomerName   string `json:"customerName,omitempty"`
	CustomerPhone  string `json:"customerPhone,omitempty"`
	TripCode       string `json:"tripCode,omitempty"`
	RouteName      string `json:"routeName,omitempty"`
	DepartureDate  string `json:"departureDate,omitempty"`
	DepartureTime  string `json:"departureTime,omitempty"`
	PickupStation  string `json:"pickupStation,omitempty"`
	DropoffStation string `json:"dropoffStation,omitempty"`
}
