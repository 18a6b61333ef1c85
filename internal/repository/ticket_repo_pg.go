package repository

import (
	"context"
	"errors"

	"github.com/aviora/airline-api/internal/apperrors"
	"github.com/aviora/airline-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	CheckIn(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

func (r *PGTicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	err := r.db.QueryRow(ctx, `INSERT INTO tickets (id, flight_id, passenger_name, travel_date, checked_in)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		t.ID, t.FlightID, t.PassengerName, t.Date, t.CheckedIn).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return storeError(err)
	}
	return nil
}

func (r *PGTicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	row := r.db.QueryRow(ctx, `SELECT id, flight_id, passenger_name, travel_date, checked_in, created_at, updated_at FROM tickets WHERE id = $1`, id)
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.FlightID, &t.PassengerName, &t.Date, &t.CheckedIn, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, storeError(err)
	}
	return &t, nil
}

// CheckIn flips the checked_in flag. The target value is the constant TRUE,
// so re-applying the update on an already checked-in ticket observes the
// same state; the transition is never reversed.
func (r *PGTicketRepository) CheckIn(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	row := r.db.QueryRow(ctx, `UPDATE tickets SET checked_in = TRUE, updated_at = now() WHERE id = $1
		RETURNING id, flight_id, passenger_name, travel_date, checked_in, created_at, updated_at`, id)
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.FlightID, &t.PassengerName, &t.Date, &t.CheckedIn, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, storeError(err)
	}
	return &t, nil
}

var _ TicketRepository = (*PGTicketRepository)(nil)
