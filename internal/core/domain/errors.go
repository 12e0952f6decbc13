package domain

import "errors"

var (
	// ErrValidation marks structural input failures caught before storage access.
	ErrValidation = errors.New("validation failed")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrUserExists is returned when registering an email that is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is internal to the directory; login and token resolution
	// never surface it to callers.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// response never reveals whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized covers every bearer-token failure: malformed, expired,
	// bad signature, missing subject, or subject no longer in the directory.
	ErrUnauthorized = errors.New("unauthorized")
)
