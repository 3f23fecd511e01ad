package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/internal/repositories/interaction"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/logging"
	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/redis"
	analyticsroutes "github.com/Ramsey-B/fern/pkg/routes/analytics"
	churnroutes "github.com/Ramsey-B/fern/pkg/routes/churn"
	"github.com/Ramsey-B/fern/pkg/routes/health"
	interactionroutes "github.com/Ramsey-B/fern/pkg/routes/interactions"
	orderroutes "github.com/Ramsey-B/fern/pkg/routes/orders"
	pipelineroutes "github.com/Ramsey-B/fern/pkg/routes/pipeline"
	refreshroutes "github.com/Ramsey-B/fern/pkg/routes/refresh"
	"github.com/Ramsey-B/fern/pkg/sheets"
	"github.com/Ramsey-B/fern/pkg/snapshot"
	"github.com/Ramsey-B/fern/pkg/startup"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

func main() {
	_ = godotenv.Load()

	cfg := &config.Config{}
	if err := ectoenv.BindEnv(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.AppName, cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cfg.TracingEnabled {
		shutdownTracing, err := tracing.Init(ctx, cfg.AppName, cfg.TracingEndpoint)
		if err != nil {
			logger.WithError(err).Error("Failed to initialize tracing")
			os.Exit(1)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(flushCtx)
		}()
	}

	var (
		db              *database.DatabaseInstance
		redisClient     *redis.Client
		producer        *kafka.Producer
		emitter         *events.Emitter
		interactionRepo *interaction.Repository
		refresher       *snapshot.Refresher
	)

	sheetsClient := sheets.NewClient(sheets.Config{
		BaseURL:       cfg.SheetsBaseURL,
		APIKey:        cfg.SheetsAPIKey,
		SpreadsheetID: cfg.SheetsSpreadsheetID,
	}, logger)
	mirror := sheets.NewInteractionMirror(sheetsClient, cfg.SheetsInteractionsRange, logger)
	snapshots := snapshot.NewService()

	refreshCtx, stopRefreshing := context.WithCancel(ctx)
	defer stopRefreshing()

	boot := startup.NewStartup(logger, cfg.StartupMaxAttempts)

	boot.AddDependency(&startup.Dependency{
		Name: "database",
		StartFunc: func(ctx context.Context) error {
			var err error
			db, err = database.Connect(database.Config{
				Host:            cfg.DatabaseHost,
				Port:            cfg.DatabasePort,
				Username:        cfg.DatabaseUserName,
				Password:        cfg.DatabasePassword,
				Name:            cfg.DatabaseName,
				SSLMode:         cfg.DatabaseSSLMode,
				MaxOpenConns:    cfg.DatabaseMaxOpenConns,
				MaxIdleConns:    cfg.DatabaseMaxIdleConns,
				ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
			}, logger)
			if err != nil {
				return err
			}
			interactionRepo = interaction.NewRepository(db, logger)
			return nil
		},
		StopFunc: func(ctx context.Context) error {
			if db == nil {
				return nil
			}
			return db.Close()
		},
	})

	boot.AddDependency(&startup.Dependency{
		Name:  "migrations",
		Needs: []string{"database"},
		StartFunc: func(ctx context.Context) error {
			ms := database.NewMigrationService(logger, &database.MigrationConfig{
				MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
				AutoRollback:        cfg.DatabaseMigrationAutoRollback,
			})
			return ms.Migrate(cfg.DatabaseName, db)
		},
	})

	boot.AddDependency(&startup.Dependency{
		Name: "redis",
		StartFunc: func(ctx context.Context) error {
			if !cfg.RedisEnabled {
				return nil
			}
			var err error
			redisClient, err = redis.NewClient(redis.Config{
				Host:     cfg.RedisHost,
				Port:     cfg.RedisPort,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			}, logger)
			return err
		},
		StopFunc: func(ctx context.Context) error {
			if redisClient == nil {
				return nil
			}
			return redisClient.Close()
		},
	})

	boot.AddDependency(&startup.Dependency{
		Name: "kafka",
		StartFunc: func(ctx context.Context) error {
			if !cfg.KafkaEnabled {
				return nil
			}
			producer = kafka.NewProducer(kafka.ProducerConfig{
				Brokers:      cfg.KafkaBrokers,
				BatchSize:    cfg.KafkaBatchSize,
				BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
				RequiredAcks: cfg.KafkaRequiredAcks,
				Compression:  cfg.KafkaCompression,
			}, logger)
			emitter = events.NewEmitter(producer, logger, cfg.KafkaSnapshotTopic, cfg.KafkaChurnTopic)
			return nil
		},
		StopFunc: func(ctx context.Context) error {
			if producer == nil {
				return nil
			}
			return producer.Close()
		},
	})

	boot.AddDependency(&startup.Dependency{
		Name:  "snapshot",
		Needs: []string{"database", "migrations", "redis", "kafka"},
		StartFunc: func(ctx context.Context) error {
			refresher = snapshot.NewRefresher(snapshot.RefresherConfig{
				OrdersRange: cfg.SheetsOrdersRange,
				Interval:    cfg.RefreshInterval,
				CacheTTL:    cfg.RedisCacheTTL,
			}, sheetsClient, interactionRepo, snapshots, emitter, redisClient, logger)
			go refresher.Run(refreshCtx)
			return nil
		},
		StopFunc: func(ctx context.Context) error {
			stopRefreshing()
			return nil
		},
	})

	if err := boot.Start(ctx); err != nil {
		logger.WithError(err).Error("Startup failed")
		os.Exit(1)
	}

	container, err := ectoinject.NewDIDefaultContainer()
	if err != nil {
		logger.WithError(err).Error("Failed to create DI container")
		os.Exit(1)
	}
	mustRegister(logger, ectoinject.RegisterInstance[ectologger.Logger](container, logger))
	mustRegister(logger, ectoinject.RegisterInstance[*interaction.Repository](container, interactionRepo))
	mustRegister(logger, ectoinject.RegisterInstance[*snapshot.Service](container, snapshots))
	mustRegister(logger, ectoinject.RegisterInstance[*snapshot.Refresher](container, refresher))
	mustRegister(logger, ectoinject.RegisterInstance[*sheets.InteractionMirror](container, mirror))
	if redisClient != nil {
		mustRegister(logger, ectoinject.RegisterInstance[*redis.Client](container, redisClient))
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second

	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.HTTPErrorHandler = middleware.Error(logger)

	api := e.Group("/api/v1")
	orderroutes.Register(api.Group("/orders"))
	analyticsroutes.Register(api.Group("/analytics"))
	pipelineroutes.Register(api.Group("/pipeline"))
	churnroutes.Register(api.Group("/churn"))
	interactionroutes.Register(api.Group("/interactions"))
	refreshroutes.Register(api.Group("/refresh"))

	checker := health.NewChecker(db, redisClient, snapshots, cfg.Version)
	checker.RegisterRoutes(e)

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: promhttp.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Metrics server stopped")
		}
	}()

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("HTTP server stopped")
		}
	}()
	checker.SetReady(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	checker.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown failed")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Metrics server shutdown failed")
	}
	if err := boot.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Dependency shutdown failed")
	}
}

func mustRegister(logger ectologger.Logger, err error) {
	if err != nil {
		logger.WithError(err).Error("Failed to register dependency")
		os.Exit(1)
	}
}
