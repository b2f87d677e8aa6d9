package middleware

import (
	"context"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"go.uber.org/zap"
)

// AuditConfig holds configuration for audit middleware
type AuditConfig struct {
	// SkipPaths contains path prefixes that should not be audited
	SkipPaths []string
}

// DefaultAuditConfig returns default audit configuration
func DefaultAuditConfig() *AuditConfig {
	return &AuditConfig{
		SkipPaths: []string{
			"/health",
			"/metrics",
			"/swagger",
		},
	}
}

// AuditLogger stores one audit row
type AuditLogger interface {
	Log(ctx context.Context, r *http.Request, entry service.LogEntry) error
}

// AuditMiddleware records successful mutating requests in the local audit log
type AuditMiddleware struct {
	auditService AuditLogger
	config       *AuditConfig
	logger       *zap.Logger
	pending      sync.WaitGroup
}

// NewAuditMiddleware creates a new audit middleware. A nil service disables auditing.
func NewAuditMiddleware(auditService AuditLogger, config *AuditConfig, logger *zap.Logger) *AuditMiddleware {
	if config == nil {
		config = DefaultAuditConfig()
	}
	return &AuditMiddleware{
		auditService: auditService,
		config:       config,
		logger:       logger,
	}
}

// Audit returns middleware that logs modifications to the audit log after the response is written
func (m *AuditMiddleware) Audit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.auditService == nil || !m.shouldAudit(r) {
			next.ServeHTTP(w, r)
			return
		}

		rw := &responseCapture{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		if rw.statusCode < 200 || rw.statusCode >= 300 {
			return
		}

		entityType, entityID := extractEntityInfo(r)
		entry := service.LogEntry{
			Action:     methodToAction(r.Method),
			EntityType: entityType,
			EntityID:   entityID,
			StatusCode: rw.statusCode,
		}
		if loc := rw.Header().Get("Location"); entityID == "" && loc != "" {
			entry.EntityID = path.Base(loc)
		}

		ctx := context.WithoutCancel(r.Context())
		m.pending.Add(1)
		go func() {
			defer m.pending.Done()
			if err := m.auditService.Log(ctx, r, entry); err != nil {
				m.logger.Warn("failed to create audit log entry",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.Error(err))
			}
		}()
	})
}

// Wait blocks until queued audit writes have finished
func (m *AuditMiddleware) Wait() {
	m.pending.Wait()
}

func (m *AuditMiddleware) shouldAudit(r *http.Request) bool {
	if methodToAction(r.Method) == "" {
		return false
	}
	for _, skipPath := range m.config.SkipPaths {
		if strings.HasPrefix(r.URL.Path, skipPath) {
			return false
		}
	}
	return true
}

func methodToAction(method string) domain.AuditAction {
	switch method {
	case http.MethodPost:
		return domain.AuditActionCreate
	case http.MethodPut, http.MethodPatch:
		return domain.AuditActionUpdate
	case http.MethodDelete:
		return domain.AuditActionDelete
	default:
		return ""
	}
}

// extractEntityInfo reads the entity type from the matched route and the id from its {id} param
func extractEntityInfo(r *http.Request) (string, string) {
	routeCtx := chi.RouteContext(r.Context())
	if routeCtx == nil {
		return entityFromPath(r.URL.Path), ""
	}
	return entityFromPath(routeCtx.RoutePattern()), routeCtx.URLParam("id")
}

var entityTypes = map[string]string{
	"lead-companies":  "LeadCompany",
	"client-accounts": "ClientAccount",
	"contacts":        "Contact",
	"deals":           "Deal",
	"activities":      "Activity",
	"projects":        "Project",
	"tasks":           "Task",
}

func entityFromPath(route string) string {
	for _, part := range strings.Split(strings.Trim(route, "/"), "/") {
		if entityType, ok := entityTypes[part]; ok {
			return entityType
		}
	}
	return "Unknown"
}

// responseCapture wraps ResponseWriter to capture the status code
type responseCapture struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseCapture) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
