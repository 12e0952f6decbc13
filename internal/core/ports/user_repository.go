package ports

import (
	"context"

	"github.com/clinichub/auth-service/internal/core/domain"
)

// UserRepository is the directory of persisted identities, keyed by email.
// FindByEmail returns domain.ErrUserNotFound on a miss; Insert returns
// domain.ErrUserExists when the email is already taken (the unique index is
// the backstop for concurrent registrations).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}
