package domain

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusIssued    TicketStatus = "ISSUED"
	TicketStatusCheckedIn TicketStatus = "CHECKED_IN"
)

type Ticket struct {
	ID            uuid.UUID
	FlightID      uuid.UUID
	PassengerName string
	Date          string
	CheckedIn     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t *Ticket) Status() TicketStatus {
	if t.CheckedIn {
		return TicketStatusCheckedIn
	}
	return TicketStatusIssued
}
