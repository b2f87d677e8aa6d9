package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"go.uber.org/zap"
)

type DealHandler struct {
	dealService     *service.DealService
	activityService *service.ActivityService
	logger          *zap.Logger
}

func NewDealHandler(dealService *service.DealService, activityService *service.ActivityService, logger *zap.Logger) *DealHandler {
	return &DealHandler{
		dealService:     dealService,
		activityService: activityService,
		logger:          logger,
	}
}

// @Summary List deals
// @Tags Deals
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(25)
// @Param sortBy query string false "Sort field (name, stage, value, probability, closeDate, createdAt)"
// @Param sortOrder query string false "asc or desc" default(desc)
// @Param q query string false "Search deal name"
// @Param stage query string false "Filter by stage (DISCOVERY, PROPOSAL, NEGOTIATION, CLOSED_WON, CLOSED_LOST)"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deals [get]
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	if stage := r.URL.Query().Get("stage"); stage != "" {
		result, err := h.dealService.GetByStage(r.Context(), domain.DealStage(stage), params)
		if err != nil {
			handleServiceError(w, requestLogger(r, h.logger), "list deals", err)
			return
		}
		respondJSON(w, http.StatusOK, paginated(result))
		return
	}
	respondJSON(w, http.StatusOK, paginated(h.dealService.List(r.Context(), params)))
}

// @Summary Create deal
// @Description Creates a deal in the pipeline. Without an explicit probability the stage default applies.
// @Tags Deals
// @Accept json
// @Produce json
// @Param request body domain.CreateDealRequest true "Deal data"
// @Success 201 {object} domain.Deal
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deals [post]
func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDealRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deal, err := h.dealService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "create deal", err)
		return
	}

	w.Header().Set("Location", "/api/v1/deals/"+deal.ID)
	respondJSON(w, http.StatusCreated, deal)
}

// @Summary Get deal
// @Tags Deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} domain.Deal
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deals/{id} [get]
func (h *DealHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	deal, err := h.dealService.GetByID(r.Context(), urlID(r))
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "get deal", err)
		return
	}
	respondJSON(w, http.StatusOK, deal)
}

// @Summary Update deal
// @Description Changes deal fields. The stage moves through /advance and /close.
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param request body domain.UpdateDealRequest true "Changed fields"
// @Success 200 {object} domain.Deal
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deals/{id} [put]
func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateDealRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deal, err := h.dealService.Update(r.Context(), urlID(r), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "update deal", err)
		return
	}
	respondJSON(w, http.StatusOK, deal)
}

// @Summary Delete deal
// @Tags Deals
// @Param id path string true "Deal ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deals/{id} [delete]
func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.dealService.Delete(r.Context(), urlID(r)); err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "delete deal", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Advance deal
// @Description Moves the deal to the next stage: DISCOVERY to PROPOSAL to NEGOTIATION to CLOSED_WON.
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param request body domain.AdvanceDealRequest false "Optional notes for the stage history"
// @Success 200 {object} domain.Deal
// @Failure 422 {object} domain.APIError "Deal is closed"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deals/{id}/advance [post]
func (h *DealHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var req domain.AdvanceDealRequest
	if !decodeOptional(w, r, &req) {
		return
	}

	deal, err := h.dealService.MoveToNextStage(r.Context(), urlID(r), req.Notes)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "advance deal", err)
		return
	}
	respondJSON(w, http.StatusOK, deal)
}

// @Summary Close deal
// @Description Closes the deal as won (probability 100) or lost (probability 0).
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param request body domain.CloseDealRequest true "Outcome"
// @Success 200 {object} domain.Deal
// @Failure 422 {object} domain.APIError "Deal is already closed"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deals/{id}/close [post]
func (h *DealHandler) Close(w http.ResponseWriter, r *http.Request) {
	var req domain.CloseDealRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deal, err := h.dealService.CloseDeal(r.Context(), urlID(r), req.Won, req.Notes)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "close deal", err)
		return
	}
	respondJSON(w, http.StatusOK, deal)
}

// @Summary Deal stage history
// @Tags Deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {array} domain.DealStageHistory
// @Failure 503 {object} domain.APIError "Local database disabled"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deals/{id}/history [get]
func (h *DealHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.dealService.GetHistory(r.Context(), urlID(r))
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "get deal history", err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

// @Summary Pipeline overview
// @Description Deal count and value per stage with the average deal size.
// @Tags Deals
// @Produce json
// @Success 200 {object} domain.PipelineData
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deals/pipeline [get]
func (h *DealHandler) GetPipeline(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dealService.GetPipelineData(r.Context()))
}

// @Summary Revenue forecast
// @Description Open deals closing in the current month, quarter or year, weighted by probability.
// @Tags Deals
// @Produce json
// @Param period query string false "month, quarter or year" default(month)
// @Success 200 {object} domain.Forecast
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deals/forecast [get]
func (h *DealHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	period := domain.ForecastPeriod(r.URL.Query().Get("period"))
	forecast, err := h.dealService.GetForecast(r.Context(), period)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "get forecast", err)
		return
	}
	respondJSON(w, http.StatusOK, forecast)
}

// @Summary Deal statistics
// @Tags Deals
// @Produce json
// @Success 200 {object} domain.DealStats
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deals/stats [get]
func (h *DealHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dealService.GetStats(r.Context()))
}

// @Summary Activities of a deal
// @Tags Deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /deals/{id}/activities [get]
func (h *DealHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, paginated(h.activityService.GetByDeal(r.Context(), urlID(r), parseListParams(r))))
}

// decodeOptional is decodeAndValidate for endpoints whose body may be empty
func decodeOptional(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return false
	}
	if err := validate.StructCtx(r.Context(), dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}
