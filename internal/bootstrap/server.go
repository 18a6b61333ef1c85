package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aviora/airline-api/api"
	"github.com/aviora/airline-api/config"
	"github.com/aviora/airline-api/internal/auth"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth    *api.AuthHandler
	Flights *api.FlightHandler
	Tickets *api.TicketHandler
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, manager *auth.Manager, h Handlers) error {
	engine := newEngine(cfg, manager, h)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newEngine(cfg *config.Config, manager *auth.Manager, h Handlers) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the Airline API")
	})

	admin := engine.Group("/api/v1/admin")
	h.Auth.Register(admin)

	guarded := admin.Group("", manager.RequireAdmin())
	h.Flights.RegisterAdmin(guarded)

	client := engine.Group("/api/v1/client")
	h.Flights.RegisterClient(client)
	h.Tickets.Register(client)

	if cfg.HTTP.SwaggerDir != "" {
		engine.StaticFile("/docs/swagger.json", filepath.Join(cfg.HTTP.SwaggerDir, "swagger.json"))
		engine.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/docs/swagger.json"),
		)))
	}

	return engine
}
