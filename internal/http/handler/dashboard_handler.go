package handler

import (
	"net/http"

	"github.com/straye-as/crm-portal/internal/service"
	"go.uber.org/zap"
)

const maxSnapshotDays = 366

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// @Summary Dashboard KPIs
// @Description Headline numbers for the CRM dashboard.
// @Description
// @Description - `conversionRate`: share of leads with status CONVERTED, rounded to a whole percent
// @Description - `pipelineValue`: value of open deals (not CLOSED_WON or CLOSED_LOST)
// @Description - `wonRevenue`: value of CLOSED_WON deals
// @Description - `changes`: percent change of this calendar month against the previous one, by created date
// @Description
// @Description Backend failures degrade to zeros instead of an error.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboardService.GetStats(r.Context()))
}

// @Summary Weekly leads chart
// @Description Created and qualified leads in seven rolling 7-day windows ending now, oldest first.
// @Tags Dashboard
// @Produce json
// @Success 200 {array} domain.WeeklyLeads
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/weekly-leads [get]
func (h *DashboardHandler) GetWeeklyLeads(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboardService.GetWeeklyLeadsData(r.Context()))
}

// @Summary Pipeline funnel
// @Description Lead and deal cards for the leads, qualified, proposal and negotiation columns.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.PipelineStages
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/pipeline [get]
func (h *DashboardHandler) GetPipeline(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboardService.GetPipelineStages(r.Context()))
}

// @Summary Dashboard history
// @Description Daily KPI snapshots of the caller's tenant, oldest first. Empty when the local database is disabled.
// @Tags Dashboard
// @Produce json
// @Param days query int false "Number of days to look back (max 366)" default(30)
// @Success 200 {array} domain.DashboardSnapshot
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/snapshots [get]
func (h *DashboardHandler) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	days := parseIntQuery(r, "days", 30)
	if days < 1 {
		days = 30
	}
	if days > maxSnapshotDays {
		days = maxSnapshotDays
	}
	respondJSON(w, http.StatusOK, h.dashboardService.GetSnapshots(r.Context(), days))
}
