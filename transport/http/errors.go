package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uaplabs/minidapps/core"
)

// respondError maps domain errors onto HTTP responses. Upstream causes are
// logged but only echoed to the client outside production mode.
func respondError(c *gin.Context, log *zap.Logger, production bool, err error) {
	var validationErr *core.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid request",
			"field":  validationErr.Field,
			"detail": validationErr.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, core.ErrInvalidMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sign-in message"})
	case errors.Is(err, core.ErrInvalidSignature):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
	case errors.Is(err, core.ErrNonceMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired nonce"})
	case errors.Is(err, core.ErrInvalidToken), errors.Is(err, core.ErrTokenExpired):
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
	case errors.Is(err, core.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, core.ErrAlreadyClaimed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address has already claimed tokens"})
	case errors.Is(err, core.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient token balance"})
	case errors.Is(err, core.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))

		body := gin.H{"error": "Internal server error"}
		if !production {
			body["message"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
