package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleHR          Role = "HR"
	RoleLecturer    Role = "Lecturer"
	RoleCoordinator Role = "Coordinator"
	RoleManager     Role = "Manager"
)

var Roles = []Role{RoleHR, RoleLecturer, RoleCoordinator, RoleManager}

const (
	MinHourlyRate = 100
	MaxHourlyRate = 1000
)

func (r Role) Valid() bool {
	switch r {
	case RoleHR, RoleLecturer, RoleCoordinator, RoleManager:
		return true
	}
	return false
}

// BillsHours reports whether users with this role submit hourly claims.
func (r Role) BillsHours() bool {
	return r == RoleLecturer
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	HourlyRate   float64   `json:"hourlyRate"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.Surname)
}

// Validate checks the fields a directory entry must carry. The password hash
// is opaque here.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(u.Surname) == "" {
		return NewValidationError("surname", "surname is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return NewValidationError("email", "email is required")
	}
	if !u.Role.Valid() {
		return NewValidationError("role", "role must be one of HR, Lecturer, Coordinator, Manager")
	}
	if u.Role.BillsHours() && !(u.HourlyRate >= MinHourlyRate && u.HourlyRate <= MaxHourlyRate) {
		return NewValidationError("hourlyRate", "hourly rate must be between R100 and R1000")
	}
	return nil
}
