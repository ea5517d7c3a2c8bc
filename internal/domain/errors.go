package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. malformed date, unknown duty status).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidHour is returned when a slot mutation targets an hour outside
// 0..23. It wraps ErrValidation so callers can match either sentinel.
var ErrInvalidHour = fmt.Errorf("%w: hour must be between 0 and 23", ErrValidation)

// ErrCorruptState is returned when a persisted day-log snapshot cannot be
// parsed or fails shape validation. Callers fall back to a fresh empty log;
// the condition is never fatal.
var ErrCorruptState = errors.New("corrupt day log snapshot")

// ErrUnavailable is returned when an external collaborator (routing or
// weather provider) fails or returns an unusable response. Services do not
// retry; handlers should map this to HTTP 502 Bad Gateway.
var ErrUnavailable = errors.New("upstream unavailable")
