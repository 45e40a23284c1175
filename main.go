// Package main provides the main entry point for the Voxlane console service
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/voxlane/console/app/handlers"
	"github.com/voxlane/console/app/middleware"
	"github.com/voxlane/console/app/router"
	"github.com/voxlane/console/app/services"
	businessflow "github.com/voxlane/console/business_flow"
	"github.com/voxlane/console/config"
	"github.com/voxlane/console/platform"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting Voxlane console...")

	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger through a size-rotated file when one
// is configured, mirroring everything to stderr.
func setupLogging(cfg config.LoggingConfig) {
	if cfg.FilePath == "" {
		return
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}

// initializeRedis initializes the redis client and verifies connectivity
func initializeRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s:%d (db=%d)", cfg.Host, cfg.Port, cfg.DB)
	return rc, nil
}

// startRedisHealthMonitor starts a background goroutine that periodically pings
// redis to detect connectivity issues. The returned cancel function stops it.
func startRedisHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	rc, err := initializeRedis(cfg.Redis)
	if err != nil {
		return nil, err
	}

	cancel := startRedisHealthMonitor(context.Background(), rc, 30*time.Second)
	stopFuncs = append(stopFuncs, cancel)

	// Initialize stores
	sessionStore := services.NewRedisSessionStore(rc, cfg.Redis.SessionTTL)
	draftStore := services.NewRedisDraftStore(rc, cfg.Redis.DraftTTL)

	// Initialize token service
	tokenService, err := services.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	log.Printf("Token service initialized with issuer: %s", cfg.JWT.Issuer)

	// Initialize platform client; a 401 from the platform purges the local
	// session so every later request fails fast.
	accessor := &services.SessionAccessor{Store: sessionStore}
	client := platform.NewClient(cfg.Platform.BaseURL, cfg.Platform.RequestTimeout, accessor)
	client.OnRequest = middleware.CountPlatformRequest
	client.OnPurge = middleware.CountSessionPurge

	// Initialize platform repositories
	authAPI := platform.NewAuthAPI(client)
	campaignRepo := platform.NewCampaignRepository(client)
	callRepo := platform.NewCallRepository(client)
	orgRepo := platform.NewOrganizationRepository(client)
	userRepo := platform.NewUserRepository(client)
	roleRepo := platform.NewRoleRepository(client)
	voiceRepo := platform.NewVoiceRepository(client)

	// Initialize flows
	sessionFlow := businessflow.NewSessionFlow(authAPI, sessionStore, tokenService)
	wizardFlow := businessflow.NewWizardFlow(campaignRepo, orgRepo, voiceRepo, draftStore)
	campaignFlow := businessflow.NewCampaignFlow(campaignRepo)
	callFlow := businessflow.NewCallHistoryFlow(callRepo, campaignRepo, cfg.Platform.CallPageSize)
	exportFlow := businessflow.NewExportFlow(
		callRepo,
		campaignRepo,
		cfg.Platform.ExportPageSize,
		cfg.Platform.ArtifactWorkers,
		cfg.Export.MaxReportCalls,
	)
	orgFlow := businessflow.NewOrganizationFlow(orgRepo)
	userFlow := businessflow.NewUserFlow(userRepo)
	roleFlow := businessflow.NewRoleFlow(roleRepo)

	// Initialize handlers
	h := router.Handlers{
		Auth:         handlers.NewAuthHandler(sessionFlow),
		Campaign:     handlers.NewCampaignHandler(campaignFlow, exportFlow),
		Wizard:       handlers.NewWizardHandler(wizardFlow),
		Call:         handlers.NewCallHandler(callFlow, exportFlow),
		Organization: handlers.NewOrganizationHandler(orgFlow),
		User:         handlers.NewUserHandler(userFlow),
		Role:         handlers.NewRoleHandler(roleFlow),
	}

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService, sessionStore)

	appRouter := router.NewFiberRouter(cfg, h, authMiddleware)

	application := &Application{
		router:    appRouter,
		config:    cfg,
		server:    appRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
