package api

import (
	"net/http"

	"github.com/aviora/airline-api/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service booking.BookingUseCase
}

type buyTicketRequest struct {
	Date          string `json:"date"`
	From          string `json:"from"`
	To            string `json:"to"`
	PassengerName string `json:"passengerName"`
}

type checkInRequest struct {
	TicketID string `json:"ticketId"`
}

func NewTicketHandler(service booking.BookingUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.POST("/buy-ticket", h.buyTicket)
	router.POST("/check-in", h.checkIn)
}

func (h *TicketHandler) buyTicket(c *gin.Context) {
	var req buyTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ticket, err := h.service.PurchaseTicket(c.Request.Context(), booking.PurchaseTicketInput{
		Date:          req.Date,
		From:          req.From,
		To:            req.To,
		PassengerName: req.PassengerName,
	})
	if err != nil {
		writeError(c, err, "buyTicket")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "Successful", "ticket_id": ticket.ID.String()})
}

func (h *TicketHandler) checkIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if _, err := h.service.CheckIn(c.Request.Context(), req.TicketID); err != nil {
		writeError(c, err, "checkIn")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Successful"})
}
