package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/clientwatch-team/clientwatch/pkg/validator"

	"github.com/clientwatch-team/clientwatch/internal/adapter/handler"
	"github.com/clientwatch-team/clientwatch/internal/adapter/repository"
	"github.com/clientwatch-team/clientwatch/internal/infrastructure/cache"
	"github.com/clientwatch-team/clientwatch/internal/infrastructure/database"
	"github.com/clientwatch-team/clientwatch/internal/infrastructure/external/fathom"
	"github.com/clientwatch-team/clientwatch/internal/infrastructure/external/notify"
	"github.com/clientwatch-team/clientwatch/internal/infrastructure/storage"
	analysisUsecase "github.com/clientwatch-team/clientwatch/internal/usecase/analysis"
	clientUsecase "github.com/clientwatch-team/clientwatch/internal/usecase/client"
	historyUsecase "github.com/clientwatch-team/clientwatch/internal/usecase/history"
	ingestUsecase "github.com/clientwatch-team/clientwatch/internal/usecase/ingest"
	podLeaderUsecase "github.com/clientwatch-team/clientwatch/internal/usecase/podleader"
	queueUsecase "github.com/clientwatch-team/clientwatch/internal/usecase/queue"
	pkgai "github.com/clientwatch-team/clientwatch/pkg/ai"
	"github.com/clientwatch-team/clientwatch/pkg/background"
	"github.com/clientwatch-team/clientwatch/pkg/config"
	"github.com/clientwatch-team/clientwatch/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(echomw.LoggerWithConfig(echomw.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(echomw.Recover())

	// CORS middleware
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	cacheStore := cache.NewStore(redisClient)

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	clientRepo := repository.NewClientRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	queueRepo := repository.NewQueueRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	mappingRepo := repository.NewMappingRepository(db)
	prefsRepo := repository.NewNotificationRepository(db)
	podLeaderRepo := repository.NewPodLeaderRepository(db)

	// Initialize webhook archive
	log.Println("🗄️  Initializing webhook archive...")
	var archive ingestUsecase.Archive
	if webhookArchive, err := storage.NewWebhookArchive(&cfg.Storage); err != nil {
		// Archival is best effort; the pipeline runs without it.
		log.Printf("⚠️  Webhook archive unavailable, payloads will not be archived: %v", err)
	} else {
		archive = webhookArchive
	}

	// Initialize Gemini analyzer
	log.Println("🤖 Initializing analyzer...")
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)
	analyzer := analysisUsecase.NewGeminiAnalyzer(geminiClient)
	if !geminiClient.IsConfigured() {
		log.Println("⚠️  Gemini API key not configured; analysis endpoints will return 412")
	}

	// Initialize Fathom client
	log.Println("📞 Initializing Fathom client...")
	fathomClient := fathom.NewClient(&cfg.Fathom)

	// Initialize notifier
	log.Println("🔔 Initializing notifier...")
	notifier := notify.NewService(notify.NewSlackSender(), notify.NewEmailSender(&cfg.Notify), logger)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)

	// Initialize services
	log.Println("✨ Initializing services...")
	runner := background.NewRunner(logger)
	queueService := queueUsecase.NewService(queueRepo, logger)
	historyService := historyUsecase.NewService(historyRepo, analyzer, logger)
	analysisService := analysisUsecase.NewService(
		analysisRepo, clientRepo, queueRepo, podLeaderRepo, prefsRepo,
		historyService, analyzer, notifier, runner,
		cfg.Server.DashboardURL, logger,
	)
	clientService := clientUsecase.NewService(clientRepo, mappingRepo, prefsRepo, cacheStore, logger)
	podLeaderService := podLeaderUsecase.NewService(podLeaderRepo, logger)
	ingestService := ingestUsecase.NewService(
		mappingRepo, prefsRepo, clientRepo, queueService, analysisService,
		fathomClient, archive, cacheStore, notifier, runner,
		cfg.Fathom.WebhookSecret, logger,
	)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	webhookHandler := handler.NewFathomWebhookHandler(ingestService, logger)
	clientHandler := handler.NewClientHandler(clientService, queueService, logger)
	analysisHandler := handler.NewAnalysisHandler(analysisService, historyService, logger)
	podLeaderHandler := handler.NewPodLeaderHandler(podLeaderService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, jwtManager, webhookHandler, clientHandler, analysisHandler, podLeaderHandler)
	router.Setup(e)

	// Scheduled Fathom backfill catches meetings whose webhook never arrived
	syncStop := make(chan struct{})
	if fathomClient.IsConfigured() && cfg.Fathom.SyncInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Fathom.SyncInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
					if err := ingestService.RunScheduledSync(ctx); err != nil {
						logger.Error("scheduled fathom sync failed", zap.Error(err))
					}
					cancel()
				case <-syncStop:
					return
				}
			}
		}()
		log.Printf("⏰ Scheduled Fathom sync every %s", cfg.Fathom.SyncInterval)
	} else {
		log.Println("⏰ Scheduled Fathom sync disabled")
	}

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	close(syncStop)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
