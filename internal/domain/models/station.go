package models

import "time"

type StationStatus string

const (
	StationActive   StationStatus = "active"
	StationInactive StationStatus = "inactive"
)

// Address is the postal address of a station. City feeds route codes.
type Address struct {
	Street   string `json:"street"`
	Ward     string `json:"ward"`
	District string `json:"district"`
	City     string `json:"city"`
}

type Station struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Code      string        `json:"code"`
	Address   Address       `json:"address"`
	Status    StationStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
