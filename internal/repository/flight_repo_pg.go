package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aviora/airline-api/internal/apperrors"
	"github.com/aviora/airline-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlightFilter narrows flight lookups. Empty fields are ignored; Date
// matches membership in the flight's available_dates list.
type FlightFilter struct {
	From string
	To   string
	Date string
}

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	Find(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
	FindForRoute(ctx context.Context, from, to, date string) (*domain.Flight, error)
	DecrementCapacity(ctx context.Context, flightID uuid.UUID) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (id, from_city, to_city, available_dates, days, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		f.ID, f.From, f.To, f.AvailableDates, f.Days, f.Capacity).
		Scan(&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return storeError(err)
	}
	return nil
}

func (r *PGFlightRepository) Find(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	query := `SELECT id, from_city, to_city, available_dates, days, capacity, created_at, updated_at FROM flights`
	clauses := []string{}
	args := []interface{}{}
	if filter.From != "" {
		args = append(args, filter.From)
		clauses = append(clauses, fmt.Sprintf("from_city = $%d", len(args)))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		clauses = append(clauses, fmt.Sprintf("to_city = $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(available_dates)", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	rows, err := r.db.Query(ctx, query+" ORDER BY created_at", args...)
	if err != nil {
		return nil, storeError(err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.From, &f.To, &f.AvailableDates, &f.Days, &f.Capacity, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, storeError(err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err)
	}
	return flights, nil
}

func (r *PGFlightRepository) FindForRoute(ctx context.Context, from, to, date string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT id, from_city, to_city, available_dates, days, capacity, created_at, updated_at
		FROM flights
		WHERE from_city = $1 AND to_city = $2 AND $3 = ANY(available_dates)
		ORDER BY created_at
		LIMIT 1`, from, to, date)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.From, &f.To, &f.AvailableDates, &f.Days, &f.Capacity, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFlightNotFound
		}
		return nil, storeError(err)
	}
	return &f, nil
}

// DecrementCapacity takes one seat off the flight as a single conditional
// update. The capacity > 0 guard in the WHERE clause is what keeps
// concurrent purchases from overselling: two racing requests cannot both
// pass the check, because the check and the write are one statement.
func (r *PGFlightRepository) DecrementCapacity(ctx context.Context, flightID uuid.UUID) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET capacity = capacity - 1, updated_at = now() WHERE id = $1 AND capacity > 0`, flightID)
	if err != nil {
		return storeError(err)
	}
	if res.RowsAffected() == 0 {
		return apperrors.ErrInsufficientCapacity
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
