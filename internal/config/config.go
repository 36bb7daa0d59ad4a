// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Defaults applied by [StructuredConfig.applyDefaults] to fields left empty
// by every source.
const (
	DefaultHTTPAddress    = "127.0.0.1:8080"
	DefaultTokenIssuer    = "go-pass-vault"
	DefaultBcryptCost     = 10
	DefaultRateLimitRPS   = 10
	DefaultRateLimitBurst = 20
	DefaultRequestTimeout = 30 * time.Second
	DefaultVersion        = "dev"
	DefaultCORSMaxAge     = 3600
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds secrets, token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and request timeout.
	Server Server `envPrefix:"SERVER_"`

	// RateLimit configures per-client request throttling.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// Adapter holds the server endpoint used by the command-line client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Client holds client-only settings.
	Client Client `envPrefix:"CLIENT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// EncryptionKey is the operator secret from which the vault encryption
	// key is derived. At least 32 bytes.
	// Env: APP_ENCRYPTION_KEY
	EncryptionKey string `env:"ENCRYPTION_KEY"`

	// TokenSignKey is the operator secret from which the token signing key
	// is derived. At least 32 bytes.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// BcryptCost is the work factor for account password hashes.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// Version is exposed via GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the backend: a postgres:// or postgresql:// URL opens
	// PostgreSQL, sqlite://<path> or file:<path> opens SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the HTTP server.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP.
	// Enable only behind a reverse proxy that overwrites those headers.
	// Env: SERVER_TRUST_PROXY_HEADERS
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS"`

	// CORSAllowedOrigins lists the origins allowed by CORS; "*" allows any.
	// Env: SERVER_CORS_ALLOWED_ORIGINS (comma separated)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// RateLimit configures the request limiter.
type RateLimit struct {
	// RPS is the sustained number of requests per second per client.
	// Env: RATE_LIMIT_RPS
	RPS float64 `env:"RPS"`

	// Burst is the number of requests a client may issue at once.
	// Env: RATE_LIMIT_BURST
	Burst int `env:"BURST"`

	// RedisAddress switches the limiter to a shared Redis counter when set.
	// Env: RATE_LIMIT_REDIS_ADDRESS
	RedisAddress string `env:"REDIS_ADDRESS"`

	// Env: RATE_LIMIT_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Env: RATE_LIMIT_REDIS_DB
	RedisDB int `env:"REDIS_DB"`
}

// Adapter holds the server endpoint used by the client.
type Adapter struct {
	// HTTPAddress is the server base address, with or without scheme.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Client holds client-only settings.
type Client struct {
	// TokenFile is where the client persists the last issued token.
	// Env: CLIENT_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE"`
}

// GetStructuredConfig loads, merges, defaults and validates the server
// configuration from all available sources.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder(commandLineArgs()).
		withEnv().
		withFlags().
		withJSON().
		build()
}
