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
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/dbmarquetti/notas-magicas/pkg/validator"

	"github.com/dbmarquetti/notas-magicas/internal/adapter/handler"
	"github.com/dbmarquetti/notas-magicas/internal/adapter/repository"
	"github.com/dbmarquetti/notas-magicas/internal/infrastructure/cache"
	"github.com/dbmarquetti/notas-magicas/internal/infrastructure/storage"
	"github.com/dbmarquetti/notas-magicas/internal/usecase/analysis"
	pkgai "github.com/dbmarquetti/notas-magicas/pkg/ai"
	"github.com/dbmarquetti/notas-magicas/pkg/config"
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
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisStore, err := cache.NewRedisStore(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisStore.Close()

	// Initialize object storage (optional)
	var objectStore *storage.MinIOStore
	if cfg.Storage.Endpoint != "" {
		log.Println("🗄️  Connecting to object storage...")
		objectStore, err = storage.NewMinIOStore(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
	} else {
		log.Println("⚠️  Object storage not configured; recordings and exports stay in memory only")
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	historyRepo := repository.NewHistoryRepository(redisStore, cfg.History.Key, logger)
	prefsRepo := repository.NewPreferencesRepository(redisStore, logger)

	// Initialize AI components
	log.Println("🤖 Initializing AI components...")
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)
	parser := analysis.NewParser()
	poller := analysis.NewPoller(geminiClient, cfg.Gemini.PollInterval, cfg.Gemini.MaxPollAttempts, logger)

	var archiver analysis.MediaArchiver
	if objectStore != nil {
		archiver = objectStore
	}
	analysisService := analysis.NewService(geminiClient, parser, poller, historyRepo, archiver, cfg.Gemini.InlineLimitBytes, logger).
		WithConnectivityProbe(geminiClient.Reachable)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	analysisHandler := handler.NewAnalysis(analysisService, logger)

	var exportStore handler.ExportStore
	if objectStore != nil {
		exportStore = objectStore
	}
	historyHandler := handler.NewHistory(historyRepo, exportStore, logger)
	prefsHandler := handler.NewPreferences(prefsRepo, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, analysisHandler, historyHandler, prefsHandler)
	router.Setup(e)

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

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
