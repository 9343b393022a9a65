package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Identity IdentityConfig
	Payment  PaymentConfig
	Tokens   TokenConfig
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN, default=postgres://localhost:5432/devconnect?sslmode=disable"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=devconnect"`
}

// IdentityConfig configures the external identity provider. Session tokens
// signed with JWTSecret are verified locally; opaque tokens fall back to
// the introspection endpoint.
type IdentityConfig struct {
	Issuer        string `env:"IDENTITY_ISSUER"`
	JWTSecret     string `env:"IDENTITY_JWT_SECRET"`
	IntrospectURL string `env:"IDENTITY_INTROSPECT_URL"`
	APIKey        string `env:"IDENTITY_API_KEY"`
}

// PaymentConfig configures the payment gateway client and the HMAC secrets
// used to verify checkout confirmations and webhook deliveries.
type PaymentConfig struct {
	KeyID         string `env:"PAYMENT_KEY_ID"`
	KeySecret     string `env:"PAYMENT_KEY_SECRET"`
	WebhookSecret string `env:"PAYMENT_WEBHOOK_SECRET"`
	BaseURL       string `env:"PAYMENT_BASE_URL, default=https://api.razorpay.com"`
}

// TokenConfig sets the token cost of gated actions.
type TokenConfig struct {
	BidCost     int `env:"BID_TOKEN_COST,     default=1"`
	ProjectCost int `env:"PROJECT_TOKEN_COST, default=1"`
}

// Load reads configuration from a .env file (when present) and the
// environment using go-envconfig.
func Load() *Config {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsDevelopment reports whether the process runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
