package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/repository"
	"go.uber.org/zap"
)

// AuditLogService records mutating API requests in the local database
type AuditLogService struct {
	auditRepo AuditLogStore
	now       Clock
	logger    *zap.Logger
}

// NewAuditLogService creates a new audit log service
func NewAuditLogService(auditRepo AuditLogStore, logger *zap.Logger) *AuditLogService {
	return &AuditLogService{
		auditRepo: auditRepo,
		now:       systemClock,
		logger:    logger,
	}
}

// WithClock replaces the clock used for timestamps and retention
func (s *AuditLogService) WithClock(now Clock) *AuditLogService {
	s.now = now
	return s
}

// LogEntry is the input for one audit row
type LogEntry struct {
	Action     domain.AuditAction
	EntityType string
	EntityID   string
	StatusCode int
}

// Log stores entry together with the caller and request details
func (s *AuditLogService) Log(ctx context.Context, r *http.Request, entry LogEntry) error {
	auditLog := &domain.AuditLog{
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		StatusCode:  entry.StatusCode,
		Tenant:      auth.EffectiveTenant(ctx),
		PerformedAt: s.now(),
	}

	if userCtx, ok := auth.FromContext(ctx); ok && userCtx != nil {
		auditLog.UserID = userCtx.UserID
		auditLog.UserEmail = userCtx.Email
	}

	if r != nil {
		auditLog.Method = r.Method
		auditLog.Path = r.URL.Path
		auditLog.IPAddress = clientIP(r)
		auditLog.UserAgent = r.UserAgent()
		auditLog.RequestID = r.Header.Get("X-Request-ID")
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.logger.Error("failed to create audit log",
			zap.String("action", string(entry.Action)),
			zap.String("entity_type", entry.EntityType),
			zap.Error(err))
		return err
	}
	return nil
}

// AuditLogQueryParams represents query parameters for listing audit logs
type AuditLogQueryParams struct {
	UserID     string
	Action     *domain.AuditAction
	EntityType string
	EntityID   string
	StartTime  *time.Time
	EndTime    *time.Time
	Page       int
	PageSize   int
}

// List returns audit rows newest first. Tenant users only see their own tenant.
func (s *AuditLogService) List(ctx context.Context, params AuditLogQueryParams) ([]domain.AuditLog, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 200 {
		params.PageSize = 50
	}

	filter := &repository.AuditLogFilter{
		UserID:     params.UserID,
		Tenant:     auth.EffectiveTenant(ctx),
		Action:     params.Action,
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		StartTime:  params.StartTime,
		EndTime:    params.EndTime,
	}
	return s.auditRepo.List(ctx, filter, params.Page, params.PageSize)
}

// GetStats counts audit rows by action within a time range
func (s *AuditLogService) GetStats(ctx context.Context, start, end time.Time) (map[domain.AuditAction]int64, error) {
	if end.Before(start) {
		return nil, ErrInvalidInput
	}
	return s.auditRepo.CountByAction(ctx, start, end)
}

// CleanupOldLogs removes logs older than the retention period
func (s *AuditLogService) CleanupOldLogs(ctx context.Context, retentionDays int) (int64, error) {
	before := s.now().AddDate(0, 0, -retentionDays)
	count, err := s.auditRepo.DeleteOlderThan(ctx, before)
	if err != nil {
		s.logger.Error("failed to cleanup old audit logs",
			zap.Int("retention_days", retentionDays),
			zap.Error(err))
		return 0, err
	}

	if count > 0 {
		s.logger.Info("cleaned up old audit logs",
			zap.Int64("deleted_count", count),
			zap.Int("retention_days", retentionDays))
	}
	return count, nil
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
