package models

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullName"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	CitizenID    string    `json:"citizenId"`
	DateOfBirth  string    `json:"dateOfBirth"`
	Gender       string    `json:"gender"`
	Address      string    `json:"address"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
