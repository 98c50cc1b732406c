package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	estimateapp "github.com/aeaevo/loopjet-bridge/internal/application/estimate"
	syncapp "github.com/aeaevo/loopjet-bridge/internal/application/sync"
	"github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared/valueobject"
	"github.com/aeaevo/loopjet-bridge/internal/infrastructure/bus"
	"github.com/aeaevo/loopjet-bridge/internal/infrastructure/config"
	"github.com/aeaevo/loopjet-bridge/internal/infrastructure/logger"
	ljclient "github.com/aeaevo/loopjet-bridge/internal/infrastructure/loopjet"
	"github.com/aeaevo/loopjet-bridge/internal/infrastructure/persistence"
	"github.com/aeaevo/loopjet-bridge/internal/infrastructure/telemetry"
	"github.com/aeaevo/loopjet-bridge/internal/interfaces/http/handler"
	"github.com/aeaevo/loopjet-bridge/internal/interfaces/http/router"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Loopjet bridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	taxRepo := persistence.NewGormTaxRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	sessionRepo := persistence.NewGormSessionRepository(db.DB)

	// Initialize the Loopjet API client
	gateway, err := ljclient.NewClient(&ljclient.Config{
		APIKey:                 cfg.Loopjet.APIKey,
		BaseURL:                cfg.Loopjet.BaseURL,
		BasePath:               cfg.Loopjet.BasePath,
		TimeoutSeconds:         cfg.Loopjet.TimeoutSeconds,
		BatchTimeoutSeconds:    cfg.Loopjet.BatchTimeoutSeconds,
		GenerateTimeoutSeconds: cfg.Loopjet.GenerateTimeoutSeconds,
		DefaultLanguage:        cfg.Loopjet.DefaultLanguage,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize Loopjet client", zap.Error(err))
	}
	if cfg.Loopjet.APIKey == "" {
		log.Warn("Loopjet API key is not configured; sync and generation calls will fail until it is set")
	}

	// Initialize the user notifier. Redis gives in-app notifications on
	// the web client; without it notifications only reach the log.
	var notifier shared.Notifier
	redisNotifier, err := bus.NewRedisNotifier(cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, notifications will be logged only", zap.Error(err))
		notifier = bus.NewLogNotifier(log)
	} else {
		notifier = redisNotifier
		defer func() {
			if err := redisNotifier.Close(); err != nil {
				log.Error("Error closing Redis notifier", zap.Error(err))
			}
		}()
	}

	// Initialize application services
	features := loopjet.Features{
		StrictPreconditions: cfg.Loopjet.StrictPreconditions,
		AllowNewItemsToggle: cfg.Loopjet.AllowNewItemsToggle,
		AutoSyncProducts:    cfg.Loopjet.AutoSyncProducts,
		UnitFallback:        cfg.Loopjet.UnitFallback,
	}
	syncService := syncapp.NewService(
		productRepo, contactRepo, invoiceRepo, salesOrderRepo,
		gateway, log,
		valueobject.Currency(cfg.Company.Currency), cfg.Loopjet.UnitFallback,
	)
	contextBuilder := estimateapp.NewContextBuilder(leadRepo, contactRepo)
	var productSyncer estimateapp.ProductSyncer
	if features.AutoSyncProducts {
		productSyncer = syncService
	}
	reconciler := estimateapp.NewReconciler(productRepo, salesOrderRepo, taxRepo, productSyncer, log)
	orchestrator := estimateapp.NewOrchestrator(
		sessionRepo, leadRepo, contactRepo, productRepo,
		contextBuilder, reconciler,
		gateway, syncService, notifier, log, features,
	)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		System:   handler.NewSystemHandler(db, version),
		Sync:     handler.NewSyncHandler(syncService),
		Estimate: handler.NewEstimateHandler(orchestrator, sessionRepo),
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
	}, log, handlers)

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Create HTTP server with config. The write timeout must cover the
	// generation call, which regularly runs for minutes.
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
