package domain

import (
	"errors"
	"strings"
	"testing"
)

func validRegistration() Registration {
	return Registration{
		Email:           "user@example.com",
		FirstName:       "Test",
		LastName:        "Testov",
		Role:            RolePatient,
		Password:        "password",
		ConfirmPassword: "password",
	}
}

func TestRegistration_Validate_OK(t *testing.T) {
	reg := validRegistration()
	if err := reg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestRegistration_Validate_DefaultsRole(t *testing.T) {
	reg := validRegistration()
	reg.Role = ""
	if err := reg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if reg.Role != RolePatient {
		t.Fatalf("expected default role patient, got %q", reg.Role)
	}
}

func TestRegistration_Validate_PasswordMismatch(t *testing.T) {
	reg := validRegistration()
	reg.ConfirmPassword = "different"
	if err := reg.Validate(); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestRegistration_Validate_Lengths(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Registration)
	}{
		{"short first name", func(r *Registration) { r.FirstName = "Al" }},
		{"long first name", func(r *Registration) { r.FirstName = strings.Repeat("a", 51) }},
		{"short last name", func(r *Registration) { r.LastName = "Li" }},
		{"short password", func(r *Registration) { r.Password = "abcd"; r.ConfirmPassword = "abcd" }},
		{"long password", func(r *Registration) {
			p := strings.Repeat("x", 51)
			r.Password = p
			r.ConfirmPassword = p
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := validRegistration()
			tc.mutate(&reg)
			if err := reg.Validate(); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegistration_Validate_UnknownRole(t *testing.T) {
	reg := validRegistration()
	reg.Role = "superuser"
	if err := reg.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RolePatient, RoleDoctor, RoleAdmin} {
		if !r.Valid() {
			t.Fatalf("role %q should be valid", r)
		}
	}
	if Role("nurse").Valid() {
		t.Fatalf("unknown role reported valid")
	}
}
