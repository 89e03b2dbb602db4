package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uaplabs/minidapps/service"
)

// AuthHandlers exposes the nonce and sign-in endpoints.
type AuthHandlers struct {
	auth       *service.AuthService
	log        *zap.Logger
	production bool
}

// NewAuthHandlers creates the auth handler set.
func NewAuthHandlers(auth *service.AuthService, log *zap.Logger, production bool) *AuthHandlers {
	return &AuthHandlers{auth: auth, log: log, production: production}
}

// MessageRequest asks for a sign-in message for an address.
type MessageRequest struct {
	Address string `json:"address" binding:"required"`
}

// SignInRequest exchanges a signed message for a bearer token.
type SignInRequest struct {
	Message   string `json:"message" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// Message handles POST /auth/message.
func (h *AuthHandlers) Message(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "field": "address", "detail": "is required"})
		return
	}

	message, nonce, err := h.auth.IssueMessage(c.Request.Context(), req.Address)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "nonce": nonce})
}

// SignIn handles POST /auth/signin.
func (h *AuthHandlers) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "detail": "message and signature are required"})
		return
	}

	result, err := h.auth.SignIn(c.Request.Context(), req.Message, req.Signature)
	if err != nil {
		respondError(c, h.log, h.production, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": result.Token, "address": result.Address})
}
