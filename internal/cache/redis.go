package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aviora/airline-api/config"
	"github.com/aviora/airline-api/internal/domain"
	"github.com/aviora/airline-api/internal/repository"
	"github.com/redis/go-redis/v9"
)

const flightsKeyPrefix = "cache:flights"

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey(filter)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, filter repository.FlightFilter, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(filter), payload, c.flightsTTL).Err()
}

// InvalidateFlights drops every cached flight listing. Called after any
// capacity or catalog mutation so stale listings expire immediately rather
// than at TTL.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, flightsKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func flightsKey(filter repository.FlightFilter) string {
	return fmt.Sprintf("%s:%s:%s:%s", flightsKeyPrefix, filter.From, filter.To, filter.Date)
}
