package models

import "time"

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	JWT       JWTConfig
	APIKey    APIKeyConfig
	Pricing   PricingConfig
	Matching  MatchingConfig
	Lifecycle LifecycleConfig
	Payment   PaymentConfig
	Storage   StorageConfig
	Push      PushConfig
	RateLimit RateLimitConfig
	WebSocket WebSocketConfig
	Logger    LoggerConfig
	NewRelic  NewRelicConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
	NodeID      string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
	// RelayRooms mirrors room emits to other nodes
	RelayRooms bool
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// APIKeyConfig holds keys accepted on internal endpoints
type APIKeyConfig struct {
	Internal string
}

// PricingConfig drives the distance fee applied to estimates
type PricingConfig struct {
	Currency        string
	DefaultPerKmFee float64
	MinDistanceFee  float64
	FreeDistanceKm  float64
}

// MatchingConfig contains provider search configuration
type MatchingConfig struct {
	SearchRadiusKm   float64
	MaxCandidates    int
	LocationTTL      time.Duration
	GeohashPrecision uint
	// DistanceURL points at an OSRM compatible routing service; empty uses haversine
	DistanceURL     string
	DistanceTimeout time.Duration
}

// LifecycleConfig contains request lifecycle policies
type LifecycleConfig struct {
	// PendingTimeout auto-cancels unaccepted requests; zero disables it
	PendingTimeout time.Duration
	OTPLength      int
	// ExpiryQueue is the asynq queue pending expiry tasks run on
	ExpiryQueue       string
	ExpiryConcurrency int
}

// PaymentConfig selects and configures the payment gateway
type PaymentConfig struct {
	Provider string // cashfree | stripe
	Timeout  time.Duration
	Currency string

	CashfreeBaseURL   string
	CashfreeAppID     string
	CashfreeSecretKey string
	CashfreeVersion   string

	StripeSecretKey string
}

// StorageConfig configures problem photo uploads
type StorageConfig struct {
	CloudinaryURL string
	Folder        string
}

// PushConfig configures the push notification fallback
type PushConfig struct {
	Enabled         bool
	CredentialsFile string
}

// RateLimitConfig configures Redis backed request limiting
type RateLimitConfig struct {
	OTPRequests int
	OTPWindow   time.Duration
}

// WebSocketConfig configures the realtime transport
type WebSocketConfig struct {
	SendBuffer        int
	WriteTimeout      time.Duration
	PingInterval      time.Duration
	LocationPerSecond float64
	LocationBurst     int
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string
	Format   string // json | console
}

// NewRelicConfig contains APM configuration
type NewRelicConfig struct {
	Enabled     bool
	LicenseKey  string
	AppName     string
	LogsEnabled bool
	ForwardLogs bool
}
