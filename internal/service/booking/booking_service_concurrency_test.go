package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aviora/airline-api/internal/apperrors"
	"github.com/aviora/airline-api/internal/domain"
	"github.com/aviora/airline-api/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// In-memory repositories with the same decrement contract as the Postgres
// ones: the capacity check and the write happen under one lock, standing in
// for the conditional UPDATE.

type memFlightRepo struct {
	mu      sync.Mutex
	flights map[uuid.UUID]*domain.Flight
}

func newMemFlightRepo() *memFlightRepo {
	return &memFlightRepo{flights: make(map[uuid.UUID]*domain.Flight)}
}

func (r *memFlightRepo) Create(ctx context.Context, f *domain.Flight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *f
	r.flights[f.ID] = &copied
	return nil
}

func (r *memFlightRepo) Find(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Flight, 0)
	for _, f := range r.flights {
		if filter.From != "" && f.From != filter.From {
			continue
		}
		if filter.To != "" && f.To != filter.To {
			continue
		}
		if filter.Date != "" && !f.HasDate(filter.Date) {
			continue
		}
		result = append(result, *f)
	}
	return result, nil
}

func (r *memFlightRepo) FindForRoute(ctx context.Context, from, to, date string) (*domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.flights {
		if f.From == from && f.To == to && f.HasDate(date) {
			copied := *f
			return &copied, nil
		}
	}
	return nil, apperrors.ErrFlightNotFound
}

func (r *memFlightRepo) DecrementCapacity(ctx context.Context, flightID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flights[flightID]
	if !ok || f.Capacity < 1 {
		return apperrors.ErrInsufficientCapacity
	}
	f.Capacity--
	return nil
}

func (r *memFlightRepo) capacity(flightID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flights[flightID].Capacity
}

type memTicketRepo struct {
	mu      sync.Mutex
	tickets map[uuid.UUID]*domain.Ticket
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: make(map[uuid.UUID]*domain.Ticket)}
}

func (r *memTicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *t
	r.tickets[t.ID] = &copied
	return nil
}

func (r *memTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, apperrors.ErrTicketNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *memTicketRepo) CheckIn(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, apperrors.ErrTicketNotFound
	}
	t.CheckedIn = true
	copied := *t
	return &copied, nil
}

func (r *memTicketRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tickets)
}

func seedFlight(t *testing.T, repo *memFlightRepo, capacity int) uuid.UUID {
	t.Helper()
	flight := &domain.Flight{
		ID:             uuid.New(),
		From:           "Istanbul",
		To:             "Ankara",
		AvailableDates: []string{"2024-12-01", "2024-12-05"},
		Days:           []string{"Monday", "Friday"},
		Capacity:       capacity,
	}
	assert.NoError(t, repo.Create(context.Background(), flight))
	return flight.ID
}

// 50 buyers race for a single remaining seat: exactly one wins, everyone
// else sees no available seats, and exactly one ticket exists afterwards.
func TestPurchaseTicket_LastSeat_NoOversell(t *testing.T) {
	flightRepo := newMemFlightRepo()
	ticketRepo := newMemTicketRepo()
	service := NewBookingService(ticketRepo, flightRepo, nil, nil, "")

	flightID := seedFlight(t, flightRepo, 1)

	const buyers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0
	soldOutCount := 0

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := service.PurchaseTicket(context.Background(), validInput())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successCount++
			case errors.Is(err, apperrors.ErrNoAvailableSeats):
				soldOutCount++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successCount, "exactly one buyer should win the last seat")
	assert.Equal(t, buyers-1, soldOutCount)
	assert.Equal(t, 1, ticketRepo.count())
	assert.Equal(t, 0, flightRepo.capacity(flightID))
}

func TestPurchaseTicket_ConcurrentBuyers_CapacityAccounting(t *testing.T) {
	flightRepo := newMemFlightRepo()
	ticketRepo := newMemTicketRepo()
	service := NewBookingService(ticketRepo, flightRepo, nil, nil, "")

	const capacity = 10
	const buyers = 100
	flightID := seedFlight(t, flightRepo, capacity)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := service.PurchaseTicket(context.Background(), validInput()); err == nil {
				mu.Lock()
				successCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, capacity, successCount)
	assert.Equal(t, 0, flightRepo.capacity(flightID))
	// sold tickets and spent capacity stay in balance
	assert.Equal(t, capacity, ticketRepo.count())
}

func TestPurchaseTicket_CapacityRoundTrip(t *testing.T) {
	flightRepo := newMemFlightRepo()
	ticketRepo := newMemTicketRepo()
	service := NewBookingService(ticketRepo, flightRepo, nil, nil, "")

	flightID := seedFlight(t, flightRepo, 3)

	_, err := service.PurchaseTicket(context.Background(), validInput())
	assert.NoError(t, err)
	assert.Equal(t, 2, flightRepo.capacity(flightID))
}

func TestPurchaseTicket_DateNotOffered(t *testing.T) {
	flightRepo := newMemFlightRepo()
	service := NewBookingService(newMemTicketRepo(), flightRepo, nil, nil, "")

	seedFlight(t, flightRepo, 5)

	input := validInput()
	input.Date = "2024-12-24"

	_, err := service.PurchaseTicket(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrFlightNotFound)
}

func TestCheckIn_Idempotent(t *testing.T) {
	flightRepo := newMemFlightRepo()
	ticketRepo := newMemTicketRepo()
	service := NewBookingService(ticketRepo, flightRepo, nil, nil, "")

	seedFlight(t, flightRepo, 1)

	ticket, err := service.PurchaseTicket(context.Background(), validInput())
	assert.NoError(t, err)
	assert.False(t, ticket.CheckedIn)

	first, err := service.CheckIn(context.Background(), ticket.ID.String())
	assert.NoError(t, err)
	assert.True(t, first.CheckedIn)

	// re-applying check-in succeeds and observes the same state
	second, err := service.CheckIn(context.Background(), ticket.ID.String())
	assert.NoError(t, err)
	assert.True(t, second.CheckedIn)
}

func TestCheckIn_ConcurrentSameTicket(t *testing.T) {
	flightRepo := newMemFlightRepo()
	ticketRepo := newMemTicketRepo()
	service := NewBookingService(ticketRepo, flightRepo, nil, nil, "")

	seedFlight(t, flightRepo, 1)

	ticket, err := service.PurchaseTicket(context.Background(), validInput())
	assert.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := service.CheckIn(context.Background(), ticket.ID.String())
			assert.NoError(t, err)
			assert.True(t, got.CheckedIn)
		}()
	}
	wg.Wait()

	stored, err := ticketRepo.GetByID(context.Background(), ticket.ID)
	assert.NoError(t, err)
	assert.True(t, stored.CheckedIn)
}
