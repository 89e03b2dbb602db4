package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/uaplabs/minidapps/adapters/chain"
	"github.com/uaplabs/minidapps/adapters/events"
	"github.com/uaplabs/minidapps/adapters/llm"
	"github.com/uaplabs/minidapps/adapters/reviews"
	"github.com/uaplabs/minidapps/adapters/store"
	"github.com/uaplabs/minidapps/adapters/tokenizer"
	"github.com/uaplabs/minidapps/internal/config"
	"github.com/uaplabs/minidapps/internal/logger"
	"github.com/uaplabs/minidapps/ports"
	"github.com/uaplabs/minidapps/service"
	transport "github.com/uaplabs/minidapps/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Nonce store and event publisher share the Redis client when one is
	// configured; otherwise both fall back to in-process implementations.
	var nonceStore ports.NonceStore = store.NewMemoryStore()
	var eventPub ports.EventPublisher = events.NopPublisher{}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zlog.Fatal("failed to parse redis url", zap.Error(err))
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()

		nonceStore = store.NewRedisStore(redisClient)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			zlog.Fatal("failed to create event publisher", zap.Error(err))
		}
		eventPub = events.NewWatermillPublisher(publisher)
	}

	faucetClient, err := chain.NewFaucetClient(cfg.RPCURL, cfg.ContractAddress, cfg.PrivateKey, cfg.ChainID)
	if err != nil {
		zlog.Fatal("failed to create faucet client", zap.Error(err))
	}
	defer faucetClient.Close()

	reviewStore := reviews.NewMongoStore(cfg.MongoURI, cfg.MongoDB)
	defer reviewStore.Close(context.Background())

	jwtTokenizer := tokenizer.NewJWTTokenizer([]byte(cfg.JWTSecret))
	completionClient := llm.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.OpenRouterModel)

	authService := service.NewAuthService(nonceStore, jwtTokenizer, eventPub, zlog, cfg.SIWEDomain, cfg.SIWEURI, cfg.ChainID)
	faucetService := service.NewFaucetService(faucetClient, faucetClient, eventPub, zlog, cfg.ContractAddress, cfg.ChainID)
	chatService := service.NewChatService(completionClient)
	reviewService := service.NewReviewService(reviewStore)

	rateLimitWindow := 15 * time.Minute
	rateLimiter := transport.NewRateLimiter(100, rateLimitWindow)

	// Periodic maintenance belongs to process lifecycle management, not
	// request handling.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 10m", func() {
		authService.SweepNonces(context.Background())
	}); err != nil {
		zlog.Fatal("failed to schedule nonce sweep", zap.Error(err))
	}
	if _, err := scheduler.AddFunc("@every 30m", func() {
		rateLimiter.PruneIdle(rateLimitWindow)
	}); err != nil {
		zlog.Fatal("failed to schedule rate limiter prune", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := transport.SetupRouter(authService, faucetService, chatService, reviewService, transport.RouterConfig{
		Log:           zlog,
		Production:    cfg.IsProduction(),
		AllowedOrigin: cfg.FrontendURL,
		RateLimiter:   rateLimiter,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zlog.Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("contract", cfg.ContractAddress),
			zap.String("frontend", cfg.FrontendURL),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
