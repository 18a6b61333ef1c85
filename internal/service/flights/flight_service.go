package flights

import (
	"context"
	"fmt"

	"github.com/aviora/airline-api/internal/apperrors"
	"github.com/aviora/airline-api/internal/domain"
	"github.com/aviora/airline-api/internal/logger"
	"github.com/aviora/airline-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	CreateFlight(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Find(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error)
}

// FlightCache is the slice of the redis cache the catalog needs.
type FlightCache interface {
	GetFlights(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error)
	SetFlights(ctx context.Context, filter repository.FlightFilter, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
}

type CreateFlightInput struct {
	From           string   `json:"from"`
	To             string   `json:"to"`
	AvailableDates []string `json:"availableDates"`
	Days           []string `json:"days"`
	Capacity       int      `json:"capacity"`
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) CreateFlight(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if input.From == "" {
		return nil, fmt.Errorf("%w: from is required", apperrors.ErrValidation)
	}
	if input.To == "" {
		return nil, fmt.Errorf("%w: to is required", apperrors.ErrValidation)
	}
	if len(input.AvailableDates) == 0 {
		return nil, fmt.Errorf("%w: availableDates must not be empty", apperrors.ErrValidation)
	}
	if input.Days == nil {
		return nil, fmt.Errorf("%w: days is required", apperrors.ErrValidation)
	}
	if input.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", apperrors.ErrValidation)
	}

	flight := &domain.Flight{
		ID:             uuid.New(),
		From:           input.From,
		To:             input.To,
		AvailableDates: input.AvailableDates,
		Days:           input.Days,
		Capacity:       input.Capacity,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			logger.WithComponent("flights").Warn("failed to invalidate flight cache", zap.Error(err))
		}
	}
	return flight, nil
}

func (s *FlightService) Find(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx, filter); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, filter, flights)
	}
	return flights, nil
}

var _ FlightUseCase = (*FlightService)(nil)
