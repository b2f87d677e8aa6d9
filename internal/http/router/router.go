package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/config"
	"github.com/straye-as/crm-portal/internal/database"
	"github.com/straye-as/crm-portal/internal/http/handler"
	"github.com/straye-as/crm-portal/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/straye-as/crm-portal/docs" // Import generated swagger docs
)

// Pinger reports whether the content backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the API handlers. Audit may be nil when the local database is disabled.
type Handlers struct {
	LeadCompany   *handler.LeadCompanyHandler
	ClientAccount *handler.ClientAccountHandler
	Contact       *handler.ContactHandler
	Deal          *handler.DealHandler
	Activity      *handler.ActivityHandler
	Project       *handler.ProjectHandler
	Task          *handler.TaskHandler
	Dashboard     *handler.DashboardHandler
	Audit         *handler.AuditHandler
}

type Router struct {
	cfg                    *config.Config
	logger                 *zap.Logger
	db                     *gorm.DB
	backend                Pinger
	observer               middleware.RequestObserver
	metricsHandler         http.Handler
	authMiddleware         *auth.Middleware
	tenantFilterMiddleware *middleware.TenantFilterMiddleware
	rateLimiter            *middleware.RateLimiter
	auditMiddleware        *middleware.AuditMiddleware
	handlers               Handlers
}

// NewRouter wires the HTTP surface. db, observer and metricsHandler may be nil.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	backend Pinger,
	observer middleware.RequestObserver,
	metricsHandler http.Handler,
	authMiddleware *auth.Middleware,
	tenantFilterMiddleware *middleware.TenantFilterMiddleware,
	rateLimiter *middleware.RateLimiter,
	auditMiddleware *middleware.AuditMiddleware,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:                    cfg,
		logger:                 logger,
		db:                     db,
		backend:                backend,
		observer:               observer,
		metricsHandler:         metricsHandler,
		authMiddleware:         authMiddleware,
		tenantFilterMiddleware: tenantFilterMiddleware,
		rateLimiter:            rateLimiter,
		auditMiddleware:        auditMiddleware,
		handlers:               handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger, rt.observer))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Readiness probe: the backend must answer, the local database only when enabled
	r.Get("/health/ready", rt.ready)

	if rt.cfg.Server.EnableMetrics && rt.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", rt.metricsHandler)
	}

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	h := rt.handlers

	r.Route("/api/v1", func(r chi.Router) {
		if timeout := rt.cfg.Server.RequestTimeoutDuration(); timeout > 0 {
			r.Use(chimiddleware.Timeout(timeout))
		}
		r.Use(rt.authMiddleware.Authenticate)
		r.Use(rt.tenantFilterMiddleware.Filter)
		r.Use(rt.authMiddleware.RequireWrite)
		r.Use(rt.rateLimiter.Limit)
		r.Use(rt.auditMiddleware.Audit) // Audit all modifications

		// Dashboard
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", h.Dashboard.GetStats)
			r.Get("/weekly-leads", h.Dashboard.GetWeeklyLeads)
			r.Get("/pipeline", h.Dashboard.GetPipeline)
			r.Get("/snapshots", h.Dashboard.GetSnapshots)
		})

		// Lead companies
		r.Route("/lead-companies", func(r chi.Router) {
			r.Get("/", h.LeadCompany.List)
			r.Post("/", h.LeadCompany.Create)
			r.Get("/stats", h.LeadCompany.GetStats)
			r.Post("/import", h.LeadCompany.Import)
			r.Post("/bulk-status", h.LeadCompany.BulkUpdateStatus)
			r.Get("/{id}", h.LeadCompany.GetByID)
			r.Put("/{id}", h.LeadCompany.Update)
			r.Delete("/{id}", h.LeadCompany.Delete)
			r.Patch("/{id}/status", h.LeadCompany.UpdateStatus)
			r.Post("/{id}/convert", h.LeadCompany.Convert)
			r.Get("/{id}/contacts", h.LeadCompany.GetContacts)
			r.Get("/{id}/deals", h.LeadCompany.GetDeals)
			r.Get("/{id}/activities", h.LeadCompany.GetActivities)
		})

		// Client accounts
		r.Route("/client-accounts", func(r chi.Router) {
			r.Get("/", h.ClientAccount.List)
			r.Post("/", h.ClientAccount.Create)
			r.Get("/stats", h.ClientAccount.GetStats)
			r.Get("/{id}", h.ClientAccount.GetByID)
			r.Put("/{id}", h.ClientAccount.Update)
			r.Delete("/{id}", h.ClientAccount.Delete)
			r.Get("/{id}/contacts", h.ClientAccount.GetContacts)
			r.Get("/{id}/deals", h.ClientAccount.GetDeals)
		})

		// Contacts
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.Contact.List)
			r.Post("/", h.Contact.Create)
			r.Get("/stats", h.Contact.GetStats)
			r.Get("/duplicates", h.Contact.FindDuplicates)
			r.Post("/bulk-status", h.Contact.BulkUpdateStatus)
			r.Get("/{id}", h.Contact.GetByID)
			r.Put("/{id}", h.Contact.Update)
			r.Delete("/{id}", h.Contact.Delete)
			r.Post("/{id}/primary", h.Contact.SetPrimary)
			r.Post("/{id}/transfer", h.Contact.Transfer)
			r.Get("/{id}/engagement", h.Contact.GetEngagement)
			r.Get("/{id}/deals", h.Contact.GetDeals)
			r.Get("/{id}/activities", h.Contact.GetActivities)
		})

		// Deals
		r.Route("/deals", func(r chi.Router) {
			r.Get("/", h.Deal.List)
			r.Post("/", h.Deal.Create)
			r.Get("/pipeline", h.Deal.GetPipeline)
			r.Get("/forecast", h.Deal.GetForecast)
			r.Get("/stats", h.Deal.GetStats)
			r.Get("/{id}", h.Deal.GetByID)
			r.Put("/{id}", h.Deal.Update)
			r.Delete("/{id}", h.Deal.Delete)
			r.Post("/{id}/advance", h.Deal.Advance)
			r.Post("/{id}/close", h.Deal.Close)
			r.Get("/{id}/history", h.Deal.GetHistory)
			r.Get("/{id}/activities", h.Deal.GetActivities)
		})

		// Activities
		r.Route("/activities", func(r chi.Router) {
			r.Get("/", h.Activity.List)
			r.Post("/", h.Activity.Create)
			r.Get("/upcoming", h.Activity.GetUpcoming)
			r.Get("/stats", h.Activity.GetStats)
			r.Get("/{id}", h.Activity.GetByID)
			r.Put("/{id}", h.Activity.Update)
			r.Delete("/{id}", h.Activity.Delete)
			r.Post("/{id}/complete", h.Activity.Complete)
		})

		// Projects and the task board
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.Project.List)
			r.Post("/", h.Project.Create)
			r.Get("/progress", h.Project.GetProgress)
			r.Get("/{id}", h.Project.GetByID)
			r.Put("/{id}", h.Project.Update)
			r.Delete("/{id}", h.Project.Delete)
			r.Get("/{id}/tasks", h.Project.GetTasks)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.Task.List)
			r.Post("/", h.Task.Create)
			r.Get("/stats", h.Task.GetStats)
			r.Get("/{id}", h.Task.GetByID)
			r.Put("/{id}", h.Task.Update)
			r.Delete("/{id}", h.Task.Delete)
		})

		// Audit logs need the local database
		if h.Audit != nil {
			r.Route("/audit-logs", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireRole(auth.RoleAdmin, auth.RoleManager, auth.RoleSystem))
				r.Get("/", h.Audit.List)
				r.Get("/stats", h.Audit.GetStats)
			})
		}
	})

	return r
}

func (rt *Router) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]interface{})
	allHealthy := true

	if err := rt.backend.Ping(ctx); err != nil {
		rt.logger.Error("Backend health check failed", zap.Error(err))
		checks["backend"] = map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
		allHealthy = false
	} else {
		checks["backend"] = map[string]interface{}{
			"status": "healthy",
		}
	}

	stats, err := database.HealthCheckWithStats(ctx, rt.db)
	switch {
	case errors.Is(err, database.ErrDisabled):
		checks["database"] = map[string]interface{}{
			"status": "disabled",
		}
	case err != nil:
		rt.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
		allHealthy = false
	default:
		checks["database"] = map[string]interface{}{
			"status":           "healthy",
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"wait_count":       stats.WaitCount,
			"wait_duration_ms": stats.WaitDuration.Milliseconds(),
		}
	}

	status, code := "healthy", http.StatusOK
	if !allHealthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
