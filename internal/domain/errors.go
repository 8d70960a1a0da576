package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and delivery. Wrap them with %w and
// classify with errors.Is.
var (
	ErrValidation      = errors.New("invalid input")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")

	// ErrSourceMissing is returned by a RosterSource when the roster data it
	// points at does not exist. It is fatal at startup.
	ErrSourceMissing = errors.New("roster source missing")
	// ErrInvalidRoster is returned when the roster exists but lacks a required column.
	ErrInvalidRoster = errors.New("invalid roster")

	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Selection errors returned by Event.ValidateSelection. Both match ErrValidation.
var (
	ErrUnknownTimeSlot = fmt.Errorf("%w: time slot not offered", ErrValidation)
	ErrUnknownRole     = fmt.Errorf("%w: role not offered", ErrValidation)
)
