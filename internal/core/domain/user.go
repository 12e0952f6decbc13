package domain

import (
	"fmt"
	"time"
)

// Role is the flat access level assigned to a user at registration.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// User is a persisted identity. The password hash is excluded from every
// JSON projection.
type User struct {
	ID           int64     `json:"id" bson:"_id"`
	FirstName    string    `json:"first_name" bson:"first_name"`
	LastName     string    `json:"last_name" bson:"last_name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

const (
	minNameLen     = 3
	maxNameLen     = 50
	minPasswordLen = 5
	maxPasswordLen = 50
)

// Registration carries the transient signup input. The plaintext password
// lives only for the duration of the call and is never persisted or logged.
type Registration struct {
	Email           string
	FirstName       string
	LastName        string
	Role            Role
	Password        string
	ConfirmPassword string
}

// Validate enforces the structural rules before any storage access:
// name lengths 3–50, password length 5–50, password equals its confirmation,
// role one of the known values (empty defaults to patient).
func (r *Registration) Validate() error {
	if err := checkLen("first_name", r.FirstName, minNameLen, maxNameLen); err != nil {
		return err
	}
	if err := checkLen("last_name", r.LastName, minNameLen, maxNameLen); err != nil {
		return err
	}
	if err := checkLen("password", r.Password, minPasswordLen, maxPasswordLen); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if r.Role == "" {
		r.Role = RolePatient
	}
	if !r.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, r.Role)
	}
	return nil
}

func checkLen(field, value string, min, max int) error {
	if len(value) < min || len(value) > max {
		return fmt.Errorf("%w: %s must be between %d and %d characters", ErrValidation, field, min, max)
	}
	return nil
}
