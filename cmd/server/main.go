package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pilot-career-service/internal/domain/repository"
	"pilot-career-service/internal/infrastructure/cache"
	"pilot-career-service/internal/infrastructure/config"
	"pilot-career-service/internal/infrastructure/persistence"
	"pilot-career-service/internal/infrastructure/router"
	"pilot-career-service/internal/interface/httpapi"
	gormRepo "pilot-career-service/internal/interface/repository"
	"pilot-career-service/internal/usecase"
	"pilot-career-service/pkg/logger"
	"pilot-career-service/pkg/metrics"
	"pilot-career-service/templates"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Pilot Career Service", "version", cfg.AppVersion, "env", cfg.AppEnv)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up the catalog database
	log.Info("Connecting to catalog database", "backend", cfg.DBBackend)
	gormDB, err := persistence.NewGormDB(cfg.DBBackend, cfg.DBDSN, cfg.LogLevel == "debug")
	if err != nil {
		log.Fatal("Failed to connect to catalog database", "error", err)
	}
	if err := gormRepo.AutoMigrate(gormDB); err != nil {
		log.Fatal("Failed to migrate catalog database", "error", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(cfg.MetricsNamespace, registry)

	// Set up catalog repositories
	airlineRepository := gormRepo.NewGormAirlineRepository(gormDB)
	airportRepository := gormRepo.NewGormAirportRepository(gormDB)
	var catalog repository.RouteCatalog = gormRepo.NewGormRouteCatalog(gormDB)

	var routeCache *cache.CachedRouteCatalog
	if cfg.RedisAddr != "" {
		routeCache = cache.NewCachedRouteCatalog(catalog, cache.Config{
			RedisAddr:     cfg.RedisAddr,
			RedisPassword: cfg.RedisPassword,
			RedisDB:       cfg.RedisDB,
			RouteTTL:      cfg.RouteCacheTTL,
		}, log, m)
		catalog = routeCache
	}

	// Set up schedule storage
	var scheduleRepository repository.ScheduleRepository
	var mongoClient *mongo.Client
	switch cfg.ScheduleStore {
	case config.StoreMongo:
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = client
		scheduleRepository, err = gormRepo.NewMongoScheduleRepository(ctx, db)
		if err != nil {
			log.Fatal("Failed to prepare schedule collection", "error", err)
		}
	default:
		scheduleRepository = gormRepo.NewGormScheduleRepository(gormDB)
	}

	generator := usecase.NewScheduleGenerator(
		usecase.WithTurnaround(cfg.Turnaround),
		usecase.WithClosingWindow(cfg.ClosingWindow),
	)
	scheduler := usecase.NewCareerScheduler(
		catalog,
		airlineRepository,
		scheduleRepository,
		router.NewDefaultPolicyRouter(log),
		generator,
		m,
		log,
		cfg.DefaultPolicy,
	)

	handler := httpapi.NewHandler(scheduler, templates.NewItineraryRenderer(airportRepository, log), log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(handler, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	if routeCache != nil {
		if err := routeCache.Close(); err != nil {
			log.Error("Redis close error", "error", err)
		}
	}

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	if err := persistence.CloseGormDB(gormDB); err != nil {
		log.Error("Database close error", "error", err)
	}

	log.Info("Pilot Career Service stopped")
}
