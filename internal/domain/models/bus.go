package models

import "time"

type BusStatus string

const (
	BusActive      BusStatus = "active"
	BusMaintenance BusStatus = "maintenance"
	BusInactive    BusStatus = "inactive"
)

type BusType string

const (
	BusStandard  BusType = "standard"
	BusSleeper   BusType = "sleeper"
	BusLimousine BusType = "limousine"
	BusVIP       BusType = "vip"
)

// ValidBusType reports whether t is one of the known bus types.
func ValidBusType(t BusType) bool {
	switch t {
	case BusStandard, BusSleeper, BusLimousine, BusVIP:
		return true
	}
	return false
}

type Bus struct {
	ID           int64     `json:"id"`
	Operator     string    `json:"operator"`
	LicensePlate string    `json:"licensePlate"`
	BusType      BusType   `json:"busType"`
	SeatCount    int       `json:"seatCount"`
	Status       BusStatus `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
