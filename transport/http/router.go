package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uaplabs/minidapps/service"
)

// RouterConfig carries everything the router needs besides the services.
type RouterConfig struct {
	Log             *zap.Logger
	Production      bool
	AllowedOrigin   string
	RateLimitMax    int
	RateLimitWindow time.Duration

	// RateLimiter overrides the limiter built from RateLimitMax/Window.
	// Callers pass one in when they also schedule its idle pruning.
	RateLimiter *RateLimiter
}

// SetupRouter wires all handlers, middleware and routes into a gin engine.
func SetupRouter(
	authService *service.AuthService,
	faucetService *service.FaucetService,
	chatService *service.ChatService,
	reviewService *service.ReviewService,
	cfg RouterConfig,
) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.RateLimitMax == 0 {
		cfg.RateLimitMax = 100
		cfg.RateLimitWindow = 15 * time.Minute
	}
	if cfg.RateLimiter == nil {
		cfg.RateLimiter = NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(cfg.Log))
	router.Use(CORSMiddleware(cfg.AllowedOrigin))
	router.Use(cfg.RateLimiter.Handler())

	authHandlers := NewAuthHandlers(authService, cfg.Log, cfg.Production)
	faucetHandlers := NewFaucetHandlers(faucetService, cfg.Log, cfg.Production)
	chatHandlers := NewChatHandlers(chatService, cfg.Log, cfg.Production)
	reviewHandlers := NewReviewHandlers(reviewService, cfg.Log, cfg.Production)

	startedAt := time.Now()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(startedAt).Seconds(),
		})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/message", authHandlers.Message)
		auth.POST("/signin", authHandlers.SignIn)
	}

	faucet := router.Group("/faucet")
	{
		faucet.GET("/info", faucetHandlers.Info)

		protected := faucet.Group("", AuthMiddleware(authService))
		{
			protected.GET("/status/:address", faucetHandlers.Status)
			protected.POST("/claim", faucetHandlers.Claim)
			protected.POST("/transfer", faucetHandlers.Transfer)
			protected.POST("/approve", faucetHandlers.Approve)
			protected.GET("/history", faucetHandlers.History)
			protected.GET("/history/:address", faucetHandlers.History)
			protected.GET("/transaction/:hash", faucetHandlers.TransactionDetails)
		}
	}

	api := router.Group("/api")
	{
		api.POST("/chat", chatHandlers.Relay)

		books := api.Group("/books/:bookId")
		{
			books.GET("/reviews", reviewHandlers.List)
			books.POST("/reviews", reviewHandlers.Save)
			books.POST("/reviews/:reviewId/vote", reviewHandlers.Vote)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}
