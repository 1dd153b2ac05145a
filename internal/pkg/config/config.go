package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/spf13/viper"
)

// InitConfig loads the .env file for local runs, then reads configuration
// from an optional config file and the environment.
func InitConfig(configPath string) *models.Config {
	v := newViper()
	if v.GetString("app.env") == "local" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Println("error reading config file", err)
		}
	}

	return loadConfig(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "roadassist-dispatch")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "dev")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 9990)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.shutdown_timeout", 15)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.max_conns", 10)
	v.SetDefault("db.idle_conns", 2)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.relay_rooms", false)

	v.SetDefault("jwt.expiration", 60)
	v.SetDefault("jwt.issuer", "roadassist")

	v.SetDefault("pricing.currency", "INR")
	v.SetDefault("pricing.default_per_km_fee", 10.0)
	v.SetDefault("pricing.min_distance_fee", 0.0)
	v.SetDefault("pricing.free_distance_km", 0.0)

	v.SetDefault("matching.search_radius_km", 10.0)
	v.SetDefault("matching.max_candidates", 20)
	v.SetDefault("matching.location_ttl", 5*time.Minute)
	v.SetDefault("matching.geohash_precision", 7)
	v.SetDefault("matching.distance_timeout", 2*time.Second)

	v.SetDefault("request.pending_timeout", time.Duration(0))
	v.SetDefault("request.otp_length", 4)
	v.SetDefault("request.expiry_queue", "expiry")
	v.SetDefault("request.expiry_concurrency", 4)

	v.SetDefault("payment.provider", "cashfree")
	v.SetDefault("payment.timeout", 10*time.Second)
	v.SetDefault("payment.currency", "INR")
	v.SetDefault("payment.cashfree_base_url", "https://sandbox.cashfree.com")
	v.SetDefault("payment.cashfree_version", "2023-08-01")

	v.SetDefault("storage.folder", "roadassist/problems")

	v.SetDefault("push.enabled", false)

	v.SetDefault("rate_limit.otp_requests", 5)
	v.SetDefault("rate_limit.otp_window", time.Minute)

	v.SetDefault("ws.send_buffer", 64)
	v.SetDefault("ws.write_timeout", 10*time.Second)
	v.SetDefault("ws.ping_interval", 30*time.Second)
	v.SetDefault("ws.location_per_second", 2.0)
	v.SetDefault("ws.location_burst", 4)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("new_relic.enabled", false)
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = v.GetString("app.name")
	configs.App.Environment = v.GetString("app.env")
	configs.App.Debug = v.GetBool("app.debug")
	configs.App.Version = v.GetString("app.version")
	configs.App.NodeID = v.GetString("app.node_id")

	// Server config
	configs.Server.Host = v.GetString("server.host")
	configs.Server.Port = v.GetInt("server.port")
	configs.Server.ReadTimeout = v.GetInt("server.read_timeout")
	configs.Server.WriteTimeout = v.GetInt("server.write_timeout")
	configs.Server.ShutdownTimeout = v.GetInt("server.shutdown_timeout")

	// Database config
	configs.Database.Driver = v.GetString("db.driver")
	configs.Database.Host = v.GetString("db.host")
	configs.Database.Port = v.GetInt("db.port")
	configs.Database.Username = v.GetString("db.username")
	configs.Database.Password = v.GetString("db.password")
	configs.Database.Database = v.GetString("db.database")
	configs.Database.SSLMode = v.GetString("db.ssl_mode")
	configs.Database.MaxConns = v.GetInt("db.max_conns")
	configs.Database.IdleConns = v.GetInt("db.idle_conns")

	// Redis config
	configs.Redis.Host = v.GetString("redis.host")
	configs.Redis.Port = v.GetInt("redis.port")
	configs.Redis.Password = v.GetString("redis.password")
	configs.Redis.DB = v.GetInt("redis.db")
	configs.Redis.PoolSize = v.GetInt("redis.pool_size")

	// NATS config
	configs.NATS.URL = v.GetString("nats.url")
	configs.NATS.RelayRooms = v.GetBool("nats.relay_rooms")

	// JWT config
	configs.JWT.Secret = v.GetString("jwt.secret")
	configs.JWT.Expiration = v.GetInt("jwt.expiration")
	configs.JWT.Issuer = v.GetString("jwt.issuer")

	configs.APIKey.Internal = v.GetString("api_key.internal")

	// Pricing config
	configs.Pricing.Currency = v.GetString("pricing.currency")
	configs.Pricing.DefaultPerKmFee = v.GetFloat64("pricing.default_per_km_fee")
	configs.Pricing.MinDistanceFee = v.GetFloat64("pricing.min_distance_fee")
	configs.Pricing.FreeDistanceKm = v.GetFloat64("pricing.free_distance_km")

	// Matching config
	configs.Matching.SearchRadiusKm = v.GetFloat64("matching.search_radius_km")
	configs.Matching.MaxCandidates = v.GetInt("matching.max_candidates")
	configs.Matching.LocationTTL = v.GetDuration("matching.location_ttl")
	configs.Matching.GeohashPrecision = v.GetUint("matching.geohash_precision")
	configs.Matching.DistanceURL = v.GetString("matching.distance_url")
	configs.Matching.DistanceTimeout = v.GetDuration("matching.distance_timeout")

	// Lifecycle config
	configs.Lifecycle.PendingTimeout = v.GetDuration("request.pending_timeout")
	configs.Lifecycle.OTPLength = v.GetInt("request.otp_length")
	configs.Lifecycle.ExpiryQueue = v.GetString("request.expiry_queue")
	configs.Lifecycle.ExpiryConcurrency = v.GetInt("request.expiry_concurrency")

	// Payment config
	configs.Payment.Provider = strings.ToLower(v.GetString("payment.provider"))
	configs.Payment.Timeout = v.GetDuration("payment.timeout")
	configs.Payment.Currency = v.GetString("payment.currency")
	configs.Payment.CashfreeBaseURL = v.GetString("payment.cashfree_base_url")
	configs.Payment.CashfreeAppID = v.GetString("payment.cashfree_app_id")
	configs.Payment.CashfreeSecretKey = v.GetString("payment.cashfree_secret_key")
	configs.Payment.CashfreeVersion = v.GetString("payment.cashfree_version")
	configs.Payment.StripeSecretKey = v.GetString("payment.stripe_secret_key")

	// Storage and push
	configs.Storage.CloudinaryURL = v.GetString("cloudinary.url")
	configs.Storage.Folder = v.GetString("storage.folder")
	configs.Push.Enabled = v.GetBool("push.enabled")
	configs.Push.CredentialsFile = v.GetString("push.credentials_file")

	// Rate limit config
	configs.RateLimit.OTPRequests = v.GetInt("rate_limit.otp_requests")
	configs.RateLimit.OTPWindow = v.GetDuration("rate_limit.otp_window")

	// WebSocket config
	configs.WebSocket.SendBuffer = v.GetInt("ws.send_buffer")
	configs.WebSocket.WriteTimeout = v.GetDuration("ws.write_timeout")
	configs.WebSocket.PingInterval = v.GetDuration("ws.ping_interval")
	configs.WebSocket.LocationPerSecond = v.GetFloat64("ws.location_per_second")
	configs.WebSocket.LocationBurst = v.GetInt("ws.location_burst")

	// Logger config
	configs.Logger.Level = v.GetString("log.level")
	configs.Logger.FilePath = v.GetString("log.file_path")
	configs.Logger.Format = v.GetString("log.format")

	// NewRelic config
	configs.NewRelic.Enabled = v.GetBool("new_relic.enabled")
	configs.NewRelic.LicenseKey = v.GetString("new_relic.license_key")
	configs.NewRelic.AppName = v.GetString("new_relic.app_name")
	configs.NewRelic.LogsEnabled = v.GetBool("new_relic.logs_enabled")
	configs.NewRelic.ForwardLogs = v.GetBool("new_relic.forward_logs")

	return configs
}
