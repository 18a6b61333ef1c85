package api

import (
	"errors"
	"net/http"

	"github.com/aviora/airline-api/internal/apperrors"
	"github.com/aviora/airline-api/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps the error taxonomy onto HTTP statuses. Every branch is a
// distinct caller-visible outcome; nothing falls through silently.
func writeError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("api").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		log.Warn("validation error")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrFlightNotFound):
		log.Warn("flight not found")
		c.JSON(http.StatusNotFound, gin.H{"status": "Error", "message": "Flight not found"})
	case errors.Is(err, apperrors.ErrNoAvailableSeats):
		log.Warn("no available seats")
		c.JSON(http.StatusConflict, gin.H{"status": "Error", "message": "No available seats"})
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("ticket not found")
		c.JSON(http.StatusNotFound, gin.H{"status": "Error", "message": "Ticket not found"})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		log.Warn("invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		log.Error("store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
	default:
		log.Error("unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
