package models

import "errors"

// Sentinel errors for the lobby core. Stores and services return these
// (possibly wrapped) and the HTTP boundary maps them to status codes,
// so no pg detail leaks past the store layer.
var (
	ErrGameNotFound       = errors.New("game not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoActiveSession    = errors.New("no active session found")
	ErrAlreadyFavorited   = errors.New("game already in favorites")
	ErrFavoriteNotFound   = errors.New("favorite not found")
	ErrDuplicateUser      = errors.New("email or username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and include uppercase, lowercase, and a number")
	ErrMissingFields      = errors.New("required fields are missing")
	ErrInvalidPagination  = errors.New("page and limit must be positive numbers")
	ErrMissingGameID      = errors.New("missing game id")
)
