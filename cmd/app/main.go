package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aviora/airline-api/api"
	"github.com/aviora/airline-api/config"
	"github.com/aviora/airline-api/internal/auth"
	"github.com/aviora/airline-api/internal/bootstrap"
	"github.com/aviora/airline-api/internal/cache"
	"github.com/aviora/airline-api/internal/kafka"
	"github.com/aviora/airline-api/internal/logger"
	"github.com/aviora/airline-api/internal/repository"
	"github.com/aviora/airline-api/internal/service/booking"
	"github.com/aviora/airline-api/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	log := logger.WithComponent("app")

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.FlightsCacheTTLSeconds)*time.Second)
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		ticketRepo,
		flightRepo,
		redisCache,
		producer,
		cfg.Kafka.TicketEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	manager := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	handlers := bootstrap.Handlers{
		Auth:    api.NewAuthHandler(manager, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword),
		Flights: api.NewFlightHandler(flightService),
		Tickets: api.NewTicketHandler(bookingService),
	}

	if err := bootstrap.Run(ctx, cfg, manager, handlers); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
