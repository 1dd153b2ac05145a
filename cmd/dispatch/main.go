package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/piresc/roadassist/internal/pkg/config"
	"github.com/piresc/roadassist/internal/pkg/database"
	"github.com/piresc/roadassist/internal/pkg/health"
	"github.com/piresc/roadassist/internal/pkg/lifecycle"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/middleware"
	"github.com/piresc/roadassist/internal/pkg/models"
	natspkg "github.com/piresc/roadassist/internal/pkg/nats"
	nrpkg "github.com/piresc/roadassist/internal/pkg/newrelic"
	"github.com/piresc/roadassist/internal/pkg/server"
	wspkg "github.com/piresc/roadassist/internal/pkg/websocket"
	"github.com/piresc/roadassist/services/billing"
	billingGW "github.com/piresc/roadassist/services/billing/gateway"
	billingHandler "github.com/piresc/roadassist/services/billing/handler"
	billingUC "github.com/piresc/roadassist/services/billing/usecase"
	"github.com/piresc/roadassist/services/matching"
	matchingGW "github.com/piresc/roadassist/services/matching/gateway"
	matchingHandler "github.com/piresc/roadassist/services/matching/handler"
	matchingRepo "github.com/piresc/roadassist/services/matching/repository"
	matchingUC "github.com/piresc/roadassist/services/matching/usecase"
	"github.com/piresc/roadassist/services/requests"
	requestsGW "github.com/piresc/roadassist/services/requests/gateway"
	requestsHandler "github.com/piresc/roadassist/services/requests/handler"
	requestsRepo "github.com/piresc/roadassist/services/requests/repository"
	requestsUC "github.com/piresc/roadassist/services/requests/usecase"
	"go.uber.org/zap"
)

func main() {
	appName := "dispatch-service"
	configPath := "config/dispatch.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
		zap.String("node_id", configs.App.NodeID),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize NATS and the request event stream
	natsClient, err := natspkg.NewClient(configs.NATS.URL, appName)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	streamCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := natsClient.EnsureStreams(streamCtx, natspkg.DefaultStreams()...); err != nil {
		zapLogger.Fatal("Failed to ensure JetStream streams", zap.Error(err))
	}
	cancel()

	// Realtime router, mirrored across nodes when configured
	router := wspkg.NewRouter()
	var relay *wspkg.NATSRelay
	if configs.NATS.RelayRooms {
		relay = wspkg.NewNATSRelay(natsClient, configs.App.NodeID)
		if err := relay.Start(router); err != nil {
			zapLogger.Fatal("Failed to start room relay", zap.Error(err))
		}
		router.SetPresence(wspkg.NewRedisPresence(redisClient, 3*pingInterval(configs.WebSocket)))
	}
	wsManager := wspkg.NewManager(router, configs.JWT, configs.WebSocket)

	// Background task client and worker for pending request expiry
	redisOpt := asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", configs.Redis.Host, configs.Redis.Port),
		Password: configs.Redis.Password,
		DB:       configs.Redis.DB,
	}
	taskClient := asynq.NewClient(redisOpt)
	taskServer := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: configs.Lifecycle.ExpiryConcurrency,
		Queues:      map[string]int{configs.Lifecycle.ExpiryQueue: 1},
	})

	// Initialize repositories
	providers := matchingRepo.NewMatchingRepository(configs, postgresClient.GetDB(), redisClient)
	requestRepo := requestsRepo.NewRequestRepository(configs, postgresClient.GetDB(), redisClient)

	// One lifecycle machine over the request store serves every transition
	machine := lifecycle.NewMachine(requestRepo, lifecycle.WithCodeLength(configs.Lifecycle.OTPLength))

	// Initialize gateways
	var distance matching.DistanceProvider
	if configs.Matching.DistanceURL != "" {
		distance = matchingGW.NewOSRMDistance(configs.Matching, zapLogger)
	}
	events := requestsGW.NewEventGW(natsClient)
	expiry := requestsGW.NewExpiryGW(taskClient, configs.Lifecycle.ExpiryQueue)

	var notifier requests.Notifier
	if configs.Push.Enabled {
		fcm, err := requestsGW.NewFCMClient(context.Background(), configs.Push.CredentialsFile)
		if err != nil {
			zapLogger.Fatal("Failed to initialize push notifications", zap.Error(err))
		}
		notifier = requestsGW.NewPushGW(fcm)
	}

	var photos requests.PhotoStore
	if configs.Storage.CloudinaryURL != "" {
		cld, err := requestsGW.NewCloudinary(configs.Storage.CloudinaryURL)
		if err != nil {
			zapLogger.Fatal("Failed to initialize photo storage", zap.Error(err))
		}
		photos = requestsGW.NewPhotoGW(&cld.Upload, configs.Storage.Folder)
	}

	payments := newPaymentGateway(configs.Payment, zapLogger)

	// Initialize usecases
	matcher := matchingUC.NewMatchingUC(configs, providers, distance)
	requestUC := requestsUC.NewRequestUC(configs, requestRepo, machine, matcher, router, events, expiry, notifier, photos)
	paymentUC := billingUC.NewBillingUC(configs, machine, payments, router, events)

	// Initialize handlers
	matchingH := matchingHandler.NewHandler(matcher)
	requestsH := requestsHandler.NewHandler(requestUC, router, router, configs, redisClient)
	billingH := billingHandler.NewHandler(paymentUC)
	wsManager.SetHandler(requestsH.MessageHandler())

	mux := asynq.NewServeMux()
	requestsH.ExpiryHandler().Register(mux)
	if err := taskServer.Start(mux); err != nil {
		zapLogger.Fatal("Failed to start task worker", zap.Error(err))
	}

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(echomw.CORS())

	// Register health endpoints
	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	health.RegisterEnhancedHealthEndpoints(e, appName, configs.App.Version, healthService)
	e.GET("/ping", health.NewPingHandler(appName, configs.App.Version, configs.App.NodeID))

	// Register service routes
	e.GET("/ws", wsManager.HandleConnection)
	requestsH.RegisterInternalRoutes(e)

	api := e.Group("/api/v1", middleware.JWTAuthMiddleware(configs.JWT))
	matchingH.RegisterRoutes(api)
	requestsH.RegisterRoutes(api)
	billingH.RegisterRoutes(api)

	// Start server with graceful shutdown
	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Host, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	srv.OnShutdown("postgres", func(context.Context) error { return postgresClient.Close() })
	srv.OnShutdown("redis", func(context.Context) error { return redisClient.Close() })
	srv.OnShutdown("nats", func(context.Context) error { natsClient.Close(); return nil })
	srv.OnShutdown("task-client", func(context.Context) error { return taskClient.Close() })
	srv.OnShutdown("task-worker", func(context.Context) error { taskServer.Shutdown(); return nil })
	if relay != nil {
		srv.OnShutdown("room-relay", func(context.Context) error { return relay.Stop() })
	}
	if nrApp != nil {
		srv.OnShutdown("newrelic", func(context.Context) error { nrApp.Shutdown(10 * time.Second); return nil })
	}

	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server stopped with error", zap.String("app", appName), zap.Error(err))
	}
	zapLogger.Info("Server stopped", zap.String("app", appName))
}

// newPaymentGateway picks the configured payment provider
func newPaymentGateway(cfg models.PaymentConfig, zapLogger *logger.ZapLogger) billing.PaymentGateway {
	switch cfg.Provider {
	case "stripe":
		return billingGW.NewStripeGateway(cfg)
	default:
		return billingGW.NewCashfreeGateway(cfg, zapLogger)
	}
}

// pingInterval is how often clients are pinged, and so how often presence is refreshed
func pingInterval(cfg models.WebSocketConfig) time.Duration {
	if cfg.PingInterval > 0 {
		return cfg.PingInterval
	}
	return wspkg.DefaultPingInterval
}
