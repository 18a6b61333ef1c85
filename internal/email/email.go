package email

import (
	"context"
	"fmt"

	"github.com/aviora/airline-api/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	switch event.Type {
	case kafka.EventTicketPurchased:
		fmt.Printf("send purchase confirmation to %s for ticket %s on %s\n", event.PassengerName, event.TicketID, event.Date)
	case kafka.EventTicketCheckedIn:
		fmt.Printf("send boarding pass to %s for ticket %s on %s\n", event.PassengerName, event.TicketID, event.Date)
	}
	return nil
}
