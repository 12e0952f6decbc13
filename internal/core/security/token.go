package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers structural, signature and expiry failures.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSubject is returned when a token verifies but carries no
	// subject claim. Logically distinct from a signature failure; both map to
	// 401 at the boundary.
	ErrMissingSubject = errors.New("token has no subject")
)

// Claims is the payload embedded in every issued token.
type Claims struct {
	Subject string
	Role    string
}

// TokenCodec issues and validates signed bearer tokens. The secret and
// signing method are fixed at construction and shared process-wide.
type TokenCodec struct {
	secret []byte
	method *jwt.SigningMethodHMAC
}

// NewTokenCodec builds a codec for the given secret and algorithm identifier.
// Only the HMAC family (HS256, HS384, HS512) is supported; anything else is a
// startup error.
func NewTokenCodec(secret, algorithm string) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token codec: empty signing secret")
	}
	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case jwt.SigningMethodHS256.Alg():
		method = jwt.SigningMethodHS256
	case jwt.SigningMethodHS384.Alg():
		method = jwt.SigningMethodHS384
	case jwt.SigningMethodHS512.Alg():
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("token codec: unsupported algorithm %q", algorithm)
	}
	return &TokenCodec{secret: []byte(secret), method: method}, nil
}

// Issue signs a token embedding the subject and role, valid for ttl from now.
func (c *TokenCodec) Issue(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Decode verifies the token and returns its claims. The signing method is
// pinned to the configured one so a token cannot downgrade the algorithm.
// Expiry is validated during parse.
func (c *TokenCodec) Decode(tokenString string) (Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != c.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Claims{}, ErrMissingSubject
	}
	role, _ := claims["role"].(string)

	return Claims{Subject: sub, Role: role}, nil
}
