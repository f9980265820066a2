// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPartnerRequired    = errors.New("partner user must belong to an organisation")

	// Partner organisation errors
	ErrPartnerNotFound  = errors.New("partner organisation not found")
	ErrDuplicatePartner = errors.New("partner organisation name already exists")

	// Deal workflow errors
	ErrDealNotFound      = errors.New("deal not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDealConflict      = errors.New("deal was modified concurrently")
	ErrNegativeValue     = errors.New("estimated value must not be negative")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")
)
