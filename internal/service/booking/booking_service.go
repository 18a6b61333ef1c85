package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aviora/airline-api/internal/apperrors"
	"github.com/aviora/airline-api/internal/domain"
	"github.com/aviora/airline-api/internal/kafka"
	"github.com/aviora/airline-api/internal/logger"
	"github.com/aviora/airline-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	PurchaseTicket(ctx context.Context, input PurchaseTicketInput) (*domain.Ticket, error)
	CheckIn(ctx context.Context, ticketID string) (*domain.Ticket, error)
}

// Cache is the slice of the redis cache the booking flow needs: flight
// listings go stale the moment a seat is sold.
type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	tickets            repository.TicketRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	ticketTopic        string
	notificationsTopic string
}

type PurchaseTicketInput struct {
	Date          string `json:"date"`
	From          string `json:"from"`
	To            string `json:"to"`
	PassengerName string `json:"passengerName"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	tickets repository.TicketRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	ticketTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		tickets:     tickets,
		flights:     flights,
		cache:       cache,
		producer:    producer,
		ticketTopic: ticketTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// PurchaseTicket sells one seat: locate the flight for the route and date,
// take a seat through the catalog's conditional decrement, then record the
// ticket. The decrement is the only step that may race with other buyers;
// everything after it runs on a seat this request already owns.
func (s *BookingService) PurchaseTicket(ctx context.Context, input PurchaseTicketInput) (*domain.Ticket, error) {
	if input.Date == "" {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if input.From == "" {
		return nil, fmt.Errorf("%w: from is required", apperrors.ErrValidation)
	}
	if input.To == "" {
		return nil, fmt.Errorf("%w: to is required", apperrors.ErrValidation)
	}
	if input.PassengerName == "" {
		return nil, fmt.Errorf("%w: passengerName is required", apperrors.ErrValidation)
	}

	flight, err := s.flights.FindForRoute(ctx, input.From, input.To, input.Date)
	if err != nil {
		return nil, err
	}

	if err := s.flights.DecrementCapacity(ctx, flight.ID); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientCapacity) {
			return nil, apperrors.ErrNoAvailableSeats
		}
		return nil, err
	}

	ticket := &domain.Ticket{
		ID:            uuid.New(),
		FlightID:      flight.ID,
		PassengerName: input.PassengerName,
		Date:          input.Date,
		CheckedIn:     false,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		// The seat is already decremented and there is no compensation
		// path; the flight ends up one seat short of its ticket count.
		logger.WithComponent("booking").Error("ticket insert failed after capacity decrement, seat left unticketed",
			zap.String("flight_id", flight.ID.String()),
			zap.String("date", input.Date),
			zap.Error(err))
		return nil, err
	}

	if err := s.publish(ctx, kafka.EventTicketPurchased, ticket); err != nil {
		logger.WithComponent("booking").Warn("failed to publish ticket_purchased event",
			zap.String("ticket_id", ticket.ID.String()), zap.Error(err))
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return ticket, nil
}

// CheckIn marks a ticket as checked in. Repeat calls succeed and observe
// the same state; the checked-in flag never goes back to false.
func (s *BookingService) CheckIn(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed ticket id %q", apperrors.ErrValidation, ticketID)
	}

	ticket, err := s.tickets.CheckIn(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, kafka.EventTicketCheckedIn, ticket); err != nil {
		logger.WithComponent("booking").Warn("failed to publish ticket_checked_in event",
			zap.String("ticket_id", ticket.ID.String()), zap.Error(err))
	}
	return ticket, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, ticket *domain.Ticket) error {
	if s.producer == nil || s.ticketTopic == "" {
		return nil
	}
	event := kafka.TicketEvent{
		Type:          eventType,
		TicketID:      ticket.ID.String(),
		FlightID:      ticket.FlightID.String(),
		PassengerName: ticket.PassengerName,
		Date:          ticket.Date,
		OccurredAt:    time.Now(),
	}
	if err := s.producer.Publish(ctx, s.ticketTopic, event.TicketID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, event.TicketID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
