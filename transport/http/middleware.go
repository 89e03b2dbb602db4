package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uaplabs/minidapps/service"
)

// callerKey is the context key the auth middleware stores the wallet
// address under.
const callerKey = "userAddress"

// AuthMiddleware validates the bearer token and stores the caller's address
// in the request context.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")

		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		token := strings.TrimPrefix(auth, "Bearer ")

		session, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(callerKey, session.Address)

		c.Next()
	}
}

// callerAddress returns the authenticated wallet address set by AuthMiddleware.
func callerAddress(c *gin.Context) string {
	return c.GetString(callerKey)
}

// RequestLogger logs every request with zap.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
