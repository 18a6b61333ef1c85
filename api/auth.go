package api

import (
	"net/http"

	"github.com/aviora/airline-api/internal/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	manager  *auth.Manager
	username string
	password string
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(manager *auth.Manager, username, password string) *AuthHandler {
	return &AuthHandler{manager: manager, username: username, password: password}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/login", h.login)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Username != h.username || req.Password != h.password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.manager.IssueToken(req.Username)
	if err != nil {
		writeError(c, err, "login")
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}
