package service

import (
	"context"
	"errors"
	"time"

	"github.com/clinichub/auth-service/internal/core/domain"
	"github.com/clinichub/auth-service/internal/core/ports"
	"github.com/clinichub/auth-service/internal/core/security"
)

// AuthService implements registration, login and bearer-token resolution on
// top of the user directory and the token codec. It keeps no state of its own;
// every call is independent.
type AuthService struct {
	users    ports.UserRepository
	codec    *security.TokenCodec
	tokenTTL time.Duration
}

func NewAuthService(users ports.UserRepository, codec *security.TokenCodec, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &AuthService{users: users, codec: codec, tokenTTL: tokenTTL}
}

// Register validates the input, rejects duplicate emails, hashes the password
// and persists the new user. The duplicate check runs before hashing so a
// taken email never pays the bcrypt cost.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, reg.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := security.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		PasswordHash: hash,
		Role:         reg.Role,
		CreatedAt:    time.Now().UTC(),
	}

	// The unique index is the authority: a concurrent registration between the
	// lookup above and this insert surfaces as ErrUserExists here.
	return s.users.Insert(ctx, user)
}

// Login verifies the credentials and issues a bearer token with the user's
// email as subject. Unknown email and wrong password return the same error,
// and the unknown-email path still burns one bcrypt comparison so the two
// rejections are indistinguishable in timing as well as shape.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			security.BurnCompare(password)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	return s.codec.Issue(user.Email, string(user.Role), s.tokenTTL)
}

// Resolve decodes the token and looks the subject up in the directory. Every
// failure along the way collapses into ErrUnauthorized so the caller learns
// nothing about which step rejected the token.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.codec.Decode(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}
