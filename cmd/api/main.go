package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/rtgs"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/settlement"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/upi"

	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/event"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/memory"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/rail"
	timeProvider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const eventBuffer = 1024

// storage is the unit of work chosen by database.driver
type storage interface {
	persistence.UnitOfWork
	usecase.HealthChecker
	SettlementLocks() persistence.SettlementLockRepository
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}
	warnProduction(cfg)

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production || cfg.Logger.Format == "json", logger.ParseLevel(cfg.Logger.Level))
	defer appLogger.Flush()
	appLogger.Info("Logger initialised", map[string]any{
		"level": appLogger.GetLevel().String(),
		"env":   cfg.Environment,
	})

	tp := timeProvider.NewRealTimeProvider()
	ctx := context.Background()

	store, closeStore, err := openStorage(ctx, cfg, tp, appLogger)
	if err != nil {
		appLogger.Error("Failed to open storage", map[string]any{
			"driver": cfg.Database.Driver,
			"error":  err.Error(),
		})
		os.Exit(1)
	}
	defer closeStore()

	if err := migration.SeedAccounts(ctx, store, cfg.Database.Accounts, tp, appLogger); err != nil {
		appLogger.Error("Failed to seed accounts", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	rtgsPolicy, err := cfg.RTGS.Policy()
	if err != nil {
		log.Fatalf("Invalid RTGS policy: %v", err)
	}
	upiPolicy, err := cfg.UPI.Policy()
	if err != nil {
		log.Fatalf("Invalid UPI policy: %v", err)
	}

	// Settlement executor, optionally serialised across instances through leases
	opts := settlement.Options{
		Workers:            cfg.Settlement.Workers,
		RetainFor:          coreport.Duration(cfg.Settlement.RetainJobsFor),
		JanitorInterval:    coreport.Duration(cfg.Settlement.JanitorInterval),
		DefaultMaxAttempts: cfg.Settlement.DefaultMaxAttempts,
		Retry: settlement.RetryPolicy{
			BaseInterval: cfg.Settlement.RetryInterval,
			MaxInterval:  cfg.Settlement.MaxRetryInterval,
			JitterFactor: 0.2,
		},
	}
	var leases *settlement.LeaseLocker
	if cfg.Settlement.DistributedLocks {
		owner := instanceName()
		leases = settlement.NewLeaseLocker(store.SettlementLocks(), owner, cfg.Settlement.LockTTL, tp, appLogger)
		opts.Locker = leases
		appLogger.Info("Distributed settlement locks enabled", map[string]any{
			"owner": owner,
			"ttl":   cfg.Settlement.LockTTL.String(),
		})
	}
	executor := settlement.NewExecutor(opts, tp, appLogger)
	executor.Start()

	stopSweep := func() {}
	if leases != nil && cfg.Settlement.LockSweepInterval > 0 {
		stopSweep = sweepLeases(leases, coreport.Duration(cfg.Settlement.LockSweepInterval), tp, appLogger)
	}

	// Status changes go to the audit log off the request path
	audit := event.NewAsyncPublisher(event.NewAuditLogPublisher(appLogger), eventBuffer, appLogger)
	publisher := event.NewFanOut(appLogger, audit)

	connector := rail.NewSandbox(cfg.Rail.Latency, tp, appLogger)
	customers := transaction.NewTransactionManager(appLogger)

	ledger := transaction.NewService(store, publisher, tp, appLogger)
	rtgsService := rtgs.NewService(store, ledger, executor, connector, customers, publisher, rtgs.Config{
		Policy:          rtgsPolicy,
		Priority:        cfg.RTGS.Priority,
		RailTimeout:     coreport.Duration(cfg.Settlement.RailTimeout),
		EnquiryInterval: coreport.Duration(cfg.RTGS.EnquiryInterval),
		MaxEnquiries:    cfg.RTGS.MaxEnquiries,
	}, tp, appLogger)
	upiService := upi.NewService(store, ledger, executor, connector, publisher, upi.Config{
		Policy:             upiPolicy,
		Priority:           cfg.UPI.Priority,
		RailTimeout:        coreport.Duration(cfg.Settlement.RailTimeout),
		StatusPollInterval: coreport.Duration(cfg.UPI.StatusPollInterval),
	}, tp, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router,
		handler.NewHealthHandler(store, executor, tp, appLogger),
		handler.NewLedgerHandler(ledger, rtgsService, upiService, appLogger),
		handler.NewJobHandler(executor, appLogger),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":   server.Addr,
			"env":    cfg.Environment,
			"driver": cfg.Database.Driver,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	// in-flight settlement jobs finish before their events are flushed
	stopSweep()
	execCtx, execCancel := context.WithTimeout(context.Background(), cfg.Settlement.ShutdownTimeout)
	defer execCancel()
	if err := executor.Shutdown(execCtx); err != nil {
		appLogger.Warn("Settlement executor did not drain", map[string]any{
			"error":        err.Error(),
			"queue_length": executor.QueueLength(),
		})
	}

	customers.Shutdown()

	if err := audit.Close(ctx); err != nil {
		appLogger.Warn("Dropped undelivered status changes", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// openStorage builds the unit of work for database.driver and returns a
// function that releases it
func openStorage(ctx context.Context, cfg *config.Config, tp coreport.TimeProvider, appLogger coreport.Logger) (storage, func(), error) {
	if cfg.Database.Driver == "memory" {
		appLogger.Warn("Using in-memory storage, state is lost on exit", nil)
		return memory.NewStore(tp, appLogger), func() {}, nil
	}

	dbConfig, err := database.FromAppConfig(cfg.Database, cfg.Logger.Level)
	if err != nil {
		return nil, nil, err
	}

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := dbManager.Close(); err != nil {
			appLogger.Error("Failed to close database", map[string]any{
				"error": err.Error(),
			})
		}
	}

	if cfg.Database.AutoMigrate {
		if err := dbManager.Migrate(ctx); err != nil {
			closeDB()
			return nil, nil, err
		}
	}

	return &postgresStorage{UnitOfWork: dbManager.CreateUnitOfWork(), manager: dbManager}, closeDB, nil
}

// postgresStorage pairs the GORM unit of work with its connection manager
type postgresStorage struct {
	*database.UnitOfWork
	manager *database.Manager
}

func (s *postgresStorage) Ping(ctx context.Context) error {
	return s.manager.Ping(ctx)
}

// sweepLeases periodically removes expired settlement leases until the
// returned function is called
func sweepLeases(leases *settlement.LeaseLocker, every coreport.Duration, tp coreport.TimeProvider, appLogger coreport.Logger) func() {
	done := make(chan struct{})
	var schedule func()
	schedule = func() {
		tp.AfterFunc(every, func() {
			select {
			case <-done:
				return
			default:
			}
			ctx, cancel := tp.WithTimeout(context.Background(), every)
			if _, err := leases.Sweep(ctx); err != nil {
				appLogger.Warn("Lease sweep failed", map[string]any{
					"error": err.Error(),
				})
			}
			cancel()
			schedule()
		})
	}
	schedule()
	return func() { close(done) }
}

// instanceName identifies this process as a lease owner
func instanceName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "payment-ledger"
	}
	return host + "-" + uuid.NewString()[:8]
}

// warnProduction logs settings that are legal but unwise in production
func warnProduction(cfg *config.Config) {
	if cfg.Environment != config.Production {
		return
	}

	var warnings []string

	sslMode := strings.ToLower(cfg.Database.SSLMode)
	if cfg.Database.Driver == "postgres" && sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
		warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
	}
	if cfg.Database.Driver == "memory" {
		warnings = append(warnings, "database.driver is memory, balances will not survive a restart")
	}

	if cfg.Server.ReadTimeout < 5*time.Second {
		warnings = append(warnings, "server.readTimeout is too low for production")
	}
	if cfg.Server.WriteTimeout < 5*time.Second {
		warnings = append(warnings, "server.writeTimeout is too low for production")
	}

	if len(warnings) > 0 {
		log.Printf("Warning: potential issues in production configuration: %v", warnings)
	}
}
