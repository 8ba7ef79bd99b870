package models

import "time"

type DriverStatus string

const (
	DriverActive    DriverStatus = "active"
	DriverSuspended DriverStatus = "suspended"
	DriverInactive  DriverStatus = "inactive"
)

type Driver struct {
	ID            int64        `json:"id"`
	FullName      string       `json:"fullName"`
	Phone         string       `json:"phone"`
	Email         string       `json:"email"`
	LicenseNumber string       `json:"licenseNumber"`
	Operator      string       `json:"operator"`
	Status        DriverStatus `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
