// Package apperrors defines the error taxonomy shared by services,
// repositories and HTTP handlers. Callers match with errors.Is; extra
// context is attached with fmt.Errorf("%w: ...").
package apperrors

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrFlightNotFound       = errors.New("flight not found")
	ErrNoAvailableSeats     = errors.New("no available seats")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrStoreUnavailable     = errors.New("store unavailable")
)
