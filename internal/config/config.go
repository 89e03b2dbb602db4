// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment-configured value the server needs.
type Config struct {
	Port        string
	Env         string
	FrontendURL string

	// Faucet gateway
	RPCURL          string
	PrivateKey      string
	ContractAddress string
	ChainID         int64

	// Auth
	JWTSecret  string
	SIWEDomain string
	SIWEURI    string

	// Optional external nonce store / event broker
	RedisURL string

	// Review store
	MongoURI string
	MongoDB  string

	// Chat relay
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "3001"),
		Env:               getEnv("APP_ENV", "development"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
		RPCURL:            os.Getenv("RPC_URL"),
		PrivateKey:        os.Getenv("PRIVATE_KEY"),
		ContractAddress:   os.Getenv("CONTRACT_ADDRESS"),
		ChainID:           11155111, // Sepolia
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SIWEDomain:        getEnv("SIWE_DOMAIN", "localhost:3001"),
		SIWEURI:           getEnv("SIWE_URI", "http://localhost:3000"),
		RedisURL:          os.Getenv("REDIS_URL"),
		MongoURI:          os.Getenv("MONGODB_URI"),
		MongoDB:           getEnv("MONGODB_DB", "libro-resenas"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: os.Getenv("OPENROUTER_BASE_URL"),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "meta-llama/llama-3.2-3b-instruct:free"),
	}

	if raw := os.Getenv("CHAIN_ID"); raw != "" {
		chainID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CHAIN_ID %q: %w", raw, err)
		}
		cfg.ChainID = chainID
	}

	for name, value := range map[string]string{
		"JWT_SECRET":       cfg.JWTSecret,
		"RPC_URL":          cfg.RPCURL,
		"PRIVATE_KEY":      cfg.PrivateKey,
		"CONTRACT_ADDRESS": cfg.ContractAddress,
	} {
		if value == "" {
			return nil, fmt.Errorf("required environment variable %s is not set", name)
		}
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode. Internal
// error detail is withheld from clients when it does.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
