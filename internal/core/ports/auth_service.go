package ports

import (
	"context"

	"github.com/clinichub/auth-service/internal/core/domain"
)

// AuthService exposes the three auth entry points consumed by the HTTP layer.
type AuthService interface {
	// Register creates a new user from validated-at-the-core registration input.
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	// Resolve turns a raw bearer token into the authenticated user, or
	// domain.ErrUnauthorized on any failure along the way.
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
