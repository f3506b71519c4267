package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ugc-service/internal/handler"
	"ugc-service/internal/jobs"
	"ugc-service/internal/mailer"
	"ugc-service/internal/middleware"
	"ugc-service/internal/model"
	"ugc-service/internal/repository"
	"ugc-service/internal/service"
	"ugc-service/internal/session"
	"ugc-service/internal/storage"
	"ugc-service/pkg/config"
	"ugc-service/pkg/database"
	"ugc-service/pkg/jwtutil"
	"ugc-service/pkg/logger"
	"ugc-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	defer log.Sync()
	log.Info("Starting UGC service...", cfg.LogConfig()...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Open(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(db, model.All()...); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Token revocation: Redis when configured, in-memory otherwise
	var (
		revoker     session.Revoker
		redisClient *redis.Client
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = session.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		revoker = session.NewRedisRevoker(redisClient)
		log.Info("Redis revocation store connected", zap.String("addr", cfg.Redis.Addr))
	} else {
		revoker = session.NewMemoryRevoker()
		log.Warn("REDIS_ADDR not set, revoked tokens are kept in memory")
	}

	// Media storage: MinIO when configured, static URLs otherwise
	var store storage.Storage
	if cfg.Storage.Endpoint != "" {
		store, err = storage.NewMinioStorage(ctx, cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		log.Info("MinIO storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		store = storage.NewStaticStorage("https://storage.example.com")
		log.Warn("MINIO_ENDPOINT not set, upload URLs are placeholders")
	}

	mail := mailer.New(cfg.Mail, log)

	// Initialize JWT utility
	tokens := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
	})

	users := repository.NewUserRepository(db)
	orgs := repository.NewOrganizationRepository(db)
	clients := repository.NewClientRepository(db)
	campaigns := repository.NewCampaignRepository(db)
	orders := repository.NewOrderRepository(db)
	media := repository.NewMediaRepository(db)
	messages := repository.NewMessageRepository(db)
	settings := repository.NewSettingRepository(db)
	dashboard := repository.NewDashboardRepository(db)

	production := cfg.Server.IsProduction()
	authService := service.NewAuthService(users, orgs, tokens, revoker)
	orgService := service.NewOrganizationService(orgs, users)

	handlers := handler.Handlers{
		Auth:          handler.NewAuthHandler(authService, production),
		Dashboard:     handler.NewDashboardHandler(service.NewDashboardService(dashboard), orgService),
		Campaigns:     handler.NewCampaignHandler(service.NewCampaignService(campaigns, clients, orders, users)),
		Clients:       handler.NewClientHandler(service.NewClientService(clients, users)),
		Creators:      handler.NewCreatorHandler(service.NewCreatorService(users, orders, media)),
		Media:         handler.NewMediaHandler(service.NewMediaService(media, campaigns, orders, store, cfg.Storage.UploadTTL)),
		Messages:      handler.NewMessageHandler(service.NewMessageService(messages, campaigns)),
		Email:         handler.NewEmailHandler(service.NewEmailService(settings, campaigns, clients, orgs, messages, mail)),
		Drive:         handler.NewDriveHandler(service.NewDriveService(settings, campaigns, clients, cfg.Google)),
		Organizations: handler.NewOrganizationHandler(orgService),
		Users:         handler.NewUserHandler(service.NewUserService(users, !production)),
	}

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler(production)

	// Apply global middleware - order matters
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, middleware.OrganizationHeader, logger.RequestIDKey,
		},
	}))
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	handler.RegisterRoutes(e, handlers, authService, orgService)

	scheduler := jobs.NewScheduler(log)
	if production && cfg.Keepalive.URL != "" {
		keepalive := jobs.NewKeepalive(cfg.Keepalive.URL, log)
		if err := scheduler.Add("keepalive", cfg.Keepalive.Schedule, keepalive.Run); err != nil {
			log.Error("Failed to schedule keepalive", zap.Error(err))
		}
	}
	if scheduler.HasJobs() {
		scheduler.Start()
	}

	// Start server
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	if scheduler.HasJobs() {
		scheduler.Stop(shutdownCtx)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}
	if err := database.Close(db); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}
	log.Info("Server stopped")
}
