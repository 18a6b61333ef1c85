package api

import (
	"net/http"

	"github.com/aviora/airline-api/internal/domain"
	"github.com/aviora/airline-api/internal/repository"
	"github.com/aviora/airline-api/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type insertFlightRequest struct {
	From           string   `json:"from"`
	To             string   `json:"to"`
	AvailableDates []string `json:"availableDates"`
	Days           []string `json:"days"`
	Capacity       *int     `json:"capacity"`
}

// adminFlightResponse is the report projection: capacity and id included.
type adminFlightResponse struct {
	ID             string   `json:"id"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	AvailableDates []string `json:"availableDates"`
	Days           []string `json:"days"`
	Capacity       int      `json:"capacity"`
}

// clientFlightResponse is the public projection: no id, no capacity.
type clientFlightResponse struct {
	From           string   `json:"from"`
	To             string   `json:"to"`
	AvailableDates []string `json:"availableDates"`
	Days           []string `json:"days"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("/insert-flight", h.insertFlight)
	router.GET("/report-flights", h.reportFlights)
}

func (h *FlightHandler) RegisterClient(router *gin.RouterGroup) {
	router.GET("/query-flights", h.queryFlights)
}

func (h *FlightHandler) insertFlight(c *gin.Context) {
	var req insertFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Capacity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	flight, err := h.service.CreateFlight(c.Request.Context(), flights.CreateFlightInput{
		From:           req.From,
		To:             req.To,
		AvailableDates: req.AvailableDates,
		Days:           req.Days,
		Capacity:       *req.Capacity,
	})
	if err != nil {
		writeError(c, err, "insertFlight")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "Successful", "flight_id": flight.ID.String()})
}

func (h *FlightHandler) reportFlights(c *gin.Context) {
	result, err := h.service.Find(c.Request.Context(), repository.FlightFilter{
		From: c.Query("from"),
		To:   c.Query("to"),
	})
	if err != nil {
		writeError(c, err, "reportFlights")
		return
	}

	report := make([]adminFlightResponse, 0, len(result))
	for _, f := range result {
		report = append(report, toAdminFlight(f))
	}
	c.JSON(http.StatusOK, gin.H{"flights": report})
}

func (h *FlightHandler) queryFlights(c *gin.Context) {
	result, err := h.service.Find(c.Request.Context(), repository.FlightFilter{
		From: c.Query("from"),
		To:   c.Query("to"),
		Date: c.Query("date"),
	})
	if err != nil {
		writeError(c, err, "queryFlights")
		return
	}

	listing := make([]clientFlightResponse, 0, len(result))
	for _, f := range result {
		listing = append(listing, toClientFlight(f))
	}
	c.JSON(http.StatusOK, gin.H{"flights": listing})
}

func toAdminFlight(f domain.Flight) adminFlightResponse {
	return adminFlightResponse{
		ID:             f.ID.String(),
		From:           f.From,
		To:             f.To,
		AvailableDates: f.AvailableDates,
		Days:           f.Days,
		Capacity:       f.Capacity,
	}
}

func toClientFlight(f domain.Flight) clientFlightResponse {
	return clientFlightResponse{
		From:           f.From,
		To:             f.To,
		AvailableDates: f.AvailableDates,
		Days:           f.Days,
	}
}
