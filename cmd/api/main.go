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

	"github.com/straye-as/crm-portal/docs"
	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/backend"
	"github.com/straye-as/crm-portal/internal/config"
	"github.com/straye-as/crm-portal/internal/database"
	"github.com/straye-as/crm-portal/internal/http/handler"
	"github.com/straye-as/crm-portal/internal/http/middleware"
	"github.com/straye-as/crm-portal/internal/http/router"
	"github.com/straye-as/crm-portal/internal/jobs"
	"github.com/straye-as/crm-portal/internal/logger"
	"github.com/straye-as/crm-portal/internal/metrics"
	"github.com/straye-as/crm-portal/internal/repository"
	"github.com/straye-as/crm-portal/internal/service"
	"github.com/straye-as/crm-portal/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title Straye CRM Portal API
// @version 1.0
// @description CRM portal and project dashboard over the headless content backend
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@straye.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if basicCfg.App.Environment == "development" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	} else if host := os.Getenv("PUBLIC_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	}

	// Secrets come from the environment locally and from Key Vault in staging/production
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	collector := metrics.New()

	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.APIToken, log.Named("backend"),
		backend.WithTimeout(cfg.Backend.TimeoutDuration()),
		backend.WithRateLimit(cfg.Backend.RequestsPerSecond, cfg.Backend.Burst),
		backend.WithRetry(retryConfig(cfg.Backend.MaxRetries)),
		backend.WithObserver(collector),
	)

	// The local database is optional; without it stage history, audit logs and snapshots are off
	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.NewDatabase(&cfg.Database, log)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	} else {
		log.Info("Local database disabled, stage history, audit log and snapshots are off")
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Record fetchers
	repoOpts := repository.Options{
		TenantField:    cfg.Backend.TenantField,
		FanoutPageSize: cfg.Backend.PageSize,
		Fallbacks:      collector,
	}
	leadRepo := repository.NewLeadCompanyRepository(backendClient, repoOpts, log)
	accountRepo := repository.NewClientAccountRepository(backendClient, repoOpts, log)
	contactRepo := repository.NewContactRepository(backendClient, repoOpts, log)
	dealRepo := repository.NewDealRepository(backendClient, repoOpts, log)
	activityRepo := repository.NewActivityRepository(backendClient, repoOpts, log)
	projectRepo := repository.NewProjectRepository(backendClient, repoOpts, log)
	taskRepo := repository.NewTaskRepository(backendClient, repoOpts, log)

	// Local stores stay nil interfaces when the database is disabled
	var (
		historyStore  service.StageHistoryStore
		snapshotStore service.SnapshotStore
		auditStore    service.AuditLogStore
	)
	if db != nil {
		historyStore = repository.NewDealStageHistoryRepository(db)
		snapshotStore = repository.NewDashboardSnapshotRepository(db)
		auditStore = repository.NewAuditLogRepository(db)
	}

	// Services
	leadService := service.NewLeadCompanyService(leadRepo, accountRepo, contactRepo, log)
	accountService := service.NewClientAccountService(accountRepo, log)
	contactService := service.NewContactService(contactRepo, leadRepo, accountRepo, activityRepo, log)
	dealService := service.NewDealService(dealRepo, historyStore, log)
	activityService := service.NewActivityService(activityRepo, log)
	projectService := service.NewProjectService(projectRepo, taskRepo, log)
	taskService := service.NewTaskService(taskRepo, log)
	importService := service.NewImportService(leadRepo, fileStorage, cfg.Import.MaxRows, log)
	dashboardService := service.NewDashboardService(leadRepo, dealRepo, contactRepo, activityRepo, snapshotStore, log)

	var (
		auditService    *service.AuditLogService
		snapshotService *service.SnapshotService
		auditLogger     middleware.AuditLogger
		auditHandler    *handler.AuditHandler
	)
	if db != nil {
		auditService = service.NewAuditLogService(auditStore, log)
		snapshotService = service.NewSnapshotService(dashboardService, snapshotStore, log)
		auditLogger = auditService
		auditHandler = handler.NewAuditHandler(auditService, log)
	}

	// Middleware
	jwtValidator := auth.NewJWTValidator(cfg.Auth.JWTSecret, cfg.Auth.TenantClaim)
	authMiddleware := auth.NewMiddleware(jwtValidator, cfg.Auth.APIKey, log)
	tenantFilterMiddleware := middleware.NewTenantFilterMiddleware(log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	auditMiddleware := middleware.NewAuditMiddleware(auditLogger, nil, log)

	maxUploadBytes := cfg.Storage.MaxUploadSizeMB << 20
	handlers := router.Handlers{
		LeadCompany:   handler.NewLeadCompanyHandler(leadService, contactService, dealService, activityService, importService, maxUploadBytes, log),
		ClientAccount: handler.NewClientAccountHandler(accountService, contactService, dealService, log),
		Contact:       handler.NewContactHandler(contactService, dealService, activityService, log),
		Deal:          handler.NewDealHandler(dealService, activityService, log),
		Activity:      handler.NewActivityHandler(activityService, log),
		Project:       handler.NewProjectHandler(projectService, log),
		Task:          handler.NewTaskHandler(taskService, log),
		Dashboard:     handler.NewDashboardHandler(dashboardService, log),
		Audit:         auditHandler,
	}

	rt := router.NewRouter(
		cfg,
		log,
		db,
		backendClient,
		collector,
		collector.Handler(),
		authMiddleware,
		tenantFilterMiddleware,
		rateLimiter,
		auditMiddleware,
		handlers,
	)

	// Snapshots need the local database
	var scheduler *jobs.Scheduler
	if cfg.Jobs.SnapshotEnabled && snapshotService != nil {
		scheduler = jobs.NewScheduler(log)
		job := jobs.NewDashboardSnapshotJob(jobs.SnapshotJobConfig{
			Snapshots:     snapshotService,
			Audit:         auditService,
			Recorder:      collector,
			Tenants:       cfg.Jobs.SnapshotTenants,
			RetentionDays: cfg.Jobs.AuditRetentionDays,
			Timeout:       cfg.Jobs.SnapshotTimeoutDuration(),
		}, log)
		if err := jobs.RegisterSnapshotJob(scheduler, job, cfg.Jobs.SnapshotCron); err != nil {
			log.Error("Failed to register snapshot job", zap.Error(err))
			scheduler = nil
		} else {
			scheduler.Start()
		}
	} else {
		log.Info("Dashboard snapshot job disabled",
			zap.Bool("snapshot_enabled", cfg.Jobs.SnapshotEnabled),
			zap.Bool("database_enabled", db != nil),
		)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Flush audit writes queued by the last requests
		auditMiddleware.Wait()

		if db != nil {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

// retryConfig turns the configured retry count into the client's attempt budget
func retryConfig(maxRetries int) backend.RetryConfig {
	cfg := backend.DefaultRetryConfig()
	cfg.MaxAttempts = maxRetries + 1
	return cfg
}
