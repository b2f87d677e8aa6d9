package handler

import (
	"net/http"
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"go.uber.org/zap"
)

// AuditHandler serves the audit log of mutating requests
type AuditHandler struct {
	auditService *service.AuditLogService
	logger       *zap.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditLogService, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// AuditLogListResponse represents a paginated list of audit logs
type AuditLogListResponse struct {
	Data       []domain.AuditLog `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// AuditStatsResponse represents audit log statistics
type AuditStatsResponse struct {
	ActionCounts map[string]int64 `json:"actionCounts"`
	StartTime    string           `json:"startTime"`
	EndTime      string           `json:"endTime"`
}

// List godoc
// @Summary List audit logs
// @Description Returns audit log entries newest first. Tenant users only see their own tenant.
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size (max 200)" default(50)
// @Param userId query string false "Filter by user ID"
// @Param action query string false "Filter by action (create, update, delete)"
// @Param entityType query string false "Filter by entity type (LeadCompany, Deal, ...)"
// @Param entityId query string false "Filter by entity ID"
// @Param startTime query string false "Filter by start time (RFC3339)"
// @Param endTime query string false "Filter by end time (RFC3339)"
// @Success 200 {object} AuditLogListResponse
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /audit-logs [get]
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := service.AuditLogQueryParams{
		UserID:     q.Get("userId"),
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "pageSize", 50),
	}

	if actionStr := q.Get("action"); actionStr != "" {
		action := domain.AuditAction(actionStr)
		params.Action = &action
	}

	var err error
	if params.StartTime, err = parseTimeQuery(r, "startTime"); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid startTime format")
		return
	}
	if params.EndTime, err = parseTimeQuery(r, "endTime"); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid endTime format")
		return
	}

	logs, total, err := h.auditService.List(r.Context(), params)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "list audit logs", err)
		return
	}

	// List applies the same defaults, mirror them for the response
	page, pageSize := params.Page, params.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	respondJSON(w, http.StatusOK, AuditLogListResponse{
		Data:       logs,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// GetStats godoc
// @Summary Get audit log statistics
// @Description Counts audit rows by action. The range defaults to the last 30 days.
// @Tags Audit
// @Produce json
// @Param startTime query string false "Start time (RFC3339)"
// @Param endTime query string false "End time (RFC3339)"
// @Success 200 {object} AuditStatsResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /audit-logs/stats [get]
func (h *AuditHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	endTime := time.Now().UTC()
	startTime := endTime.AddDate(0, 0, -30)

	if t, err := parseTimeQuery(r, "startTime"); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid startTime format")
		return
	} else if t != nil {
		startTime = *t
	}
	if t, err := parseTimeQuery(r, "endTime"); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid endTime format")
		return
	} else if t != nil {
		endTime = *t
	}

	stats, err := h.auditService.GetStats(r.Context(), startTime, endTime)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "get audit stats", err)
		return
	}

	actionCounts := make(map[string]int64, len(stats))
	for action, count := range stats {
		actionCounts[string(action)] = count
	}

	respondJSON(w, http.StatusOK, AuditStatsResponse{
		ActionCounts: actionCounts,
		StartTime:    startTime.Format(time.RFC3339),
		EndTime:      endTime.Format(time.RFC3339),
	})
}

func parseTimeQuery(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
