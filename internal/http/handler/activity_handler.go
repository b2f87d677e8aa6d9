package handler

import (
	"net/http"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"go.uber.org/zap"
)

const maxUpcoming = 50

type ActivityHandler struct {
	activityService *service.ActivityService
	logger          *zap.Logger
}

func NewActivityHandler(activityService *service.ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// @Summary List activities
// @Tags Activities
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(25)
// @Param sortBy query string false "Sort field (subject, activityType, status, scheduledDate, completedDate, createdAt)"
// @Param sortOrder query string false "asc or desc" default(desc)
// @Param q query string false "Search subject"
// @Param clientAccount query string false "Filter by client account id"
// @Param from query string false "Scheduled on or after (YYYY-MM-DD or RFC 3339)"
// @Param to query string false "Scheduled on or before (YYYY-MM-DD or RFC 3339)"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities [get]
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	if accountID := r.URL.Query().Get("clientAccount"); accountID != "" {
		respondJSON(w, http.StatusOK, paginated(h.activityService.GetByClientAccount(r.Context(), accountID, params)))
		return
	}

	from, hasFrom, err := parseDateQuery(r, "from")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, hasTo, err := parseDateQuery(r, "to")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if hasFrom || hasTo {
		result, err := h.activityService.GetByDateRange(r.Context(), from, to, params)
		if err != nil {
			handleServiceError(w, requestLogger(r, h.logger), "list activities", err)
			return
		}
		respondJSON(w, http.StatusOK, paginated(result))
		return
	}

	respondJSON(w, http.StatusOK, paginated(h.activityService.List(r.Context(), params)))
}

// @Summary Create activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param request body domain.CreateActivityRequest true "Activity data"
// @Success 201 {object} domain.Activity
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities [post]
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateActivityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	activity, err := h.activityService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "create activity", err)
		return
	}

	w.Header().Set("Location", "/api/v1/activities/"+activity.ID)
	respondJSON(w, http.StatusCreated, activity)
}

// @Summary Get activity
// @Tags Activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} domain.Activity
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities/{id} [get]
func (h *ActivityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	activity, err := h.activityService.GetByID(r.Context(), urlID(r))
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "get activity", err)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// @Summary Update activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body domain.UpdateActivityRequest true "Changed fields"
// @Success 200 {object} domain.Activity
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities/{id} [put]
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateActivityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	activity, err := h.activityService.Update(r.Context(), urlID(r), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "update activity", err)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// @Summary Delete activity
// @Tags Activities
// @Param id path string true "Activity ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities/{id} [delete]
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.activityService.Delete(r.Context(), urlID(r)); err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "delete activity", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Complete activity
// @Description Marks the activity COMPLETED and stamps the completion time. Completing twice keeps the first timestamp.
// @Tags Activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} domain.Activity
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities/{id}/complete [post]
func (h *ActivityHandler) Complete(w http.ResponseWriter, r *http.Request) {
	activity, err := h.activityService.Complete(r.Context(), urlID(r))
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "complete activity", err)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// @Summary Upcoming activities
// @Description Planned activities scheduled from now on, soonest first.
// @Tags Activities
// @Produce json
// @Param limit query int false "Maximum number of activities (max 50)" default(10)
// @Success 200 {array} domain.Activity
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities/upcoming [get]
func (h *ActivityHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > maxUpcoming {
		limit = maxUpcoming
	}
	respondJSON(w, http.StatusOK, h.activityService.GetUpcoming(r.Context(), limit))
}

// @Summary Activity statistics
// @Tags Activities
// @Produce json
// @Success 200 {object} domain.ActivityStats
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities/stats [get]
func (h *ActivityHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.activityService.GetStats(r.Context()))
}
