package domain

import (
	"time"

	"github.com/google/uuid"
)

type Flight struct {
	ID             uuid.UUID
	From           string
	To             string
	AvailableDates []string
	Days           []string
	Capacity       int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasDate reports whether the flight operates on the given date.
func (f *Flight) HasDate(date string) bool {
	for _, d := range f.AvailableDates {
		if d == date {
			return true
		}
	}
	return false
}
