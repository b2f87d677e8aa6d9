package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"go.uber.org/zap"
)

type LeadCompanyHandler struct {
	leadService     *service.LeadCompanyService
	contactService  *service.ContactService
	dealService     *service.DealService
	activityService *service.ActivityService
	importService   *service.ImportService
	maxUploadBytes  int64
	logger          *zap.Logger
}

func NewLeadCompanyHandler(
	leadService *service.LeadCompanyService,
	contactService *service.ContactService,
	dealService *service.DealService,
	activityService *service.ActivityService,
	importService *service.ImportService,
	maxUploadBytes int64,
	logger *zap.Logger,
) *LeadCompanyHandler {
	return &LeadCompanyHandler{
		leadService:     leadService,
		contactService:  contactService,
		dealService:     dealService,
		activityService: activityService,
		importService:   importService,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// @Summary List lead companies
// @Description Lists leads of the caller's tenant. At most one of status, segment, assignedTo or a date range applies, in that order.
// @Tags LeadCompanies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(25)
// @Param sortBy query string false "Sort field (companyName, createdAt, updatedAt, dealValue, score)"
// @Param sortOrder query string false "asc or desc" default(desc)
// @Param q query string false "Search company name, email or industry"
// @Param status query string false "Filter by status (NEW, CONTACTED, QUALIFIED, PROPOSAL_SENT, NEGOTIATION, CONVERTED, LOST)"
// @Param segment query string false "Filter by segment"
// @Param assignedTo query string false "Filter by assigned user id"
// @Param from query string false "Created on or after (YYYY-MM-DD)"
// @Param to query string false "Created on or before (YYYY-MM-DD)"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies [get]
func (h *LeadCompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	q := r.URL.Query()

	if status := q.Get("status"); status != "" {
		result, err := h.leadService.GetByStatus(r.Context(), domain.LeadStatus(status), params)
		if err != nil {
			handleServiceError(w, requestLogger(r, h.logger), "list lead companies", err)
			return
		}
		respondJSON(w, http.StatusOK, paginated(result))
		return
	}
	if segment := q.Get("segment"); segment != "" {
		respondJSON(w, http.StatusOK, paginated(h.leadService.GetBySegment(r.Context(), segment, params)))
		return
	}
	if assignee := q.Get("assignedTo"); assignee != "" {
		respondJSON(w, http.StatusOK, paginated(h.leadService.GetByAssignee(r.Context(), assignee, params)))
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
		respondJSON(w, http.StatusOK, paginated(h.leadService.GetByDateRange(r.Context(), from, to, params)))
		return
	}

	respondJSON(w, http.StatusOK, paginated(h.leadService.List(r.Context(), params)))
}

// @Summary Create lead company
// @Tags LeadCompanies
// @Accept json
// @Produce json
// @Param request body domain.CreateLeadCompanyRequest true "Lead data"
// @Success 201 {object} domain.LeadCompany
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies [post]
func (h *LeadCompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLeadCompanyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	lead, err := h.leadService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "create lead company", err)
		return
	}

	w.Header().Set("Location", "/api/v1/lead-companies/"+lead.ID)
	respondJSON(w, http.StatusCreated, lead)
}

// @Summary Get lead company
// @Tags LeadCompanies
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} domain.LeadCompany
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies/{id} [get]
func (h *LeadCompanyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	lead, err := h.leadService.GetByID(r.Context(), urlID(r))
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "get lead company", err)
		return
	}
	respondJSON(w, http.StatusOK, lead)
}

// @Summary Update lead company
// @Description Changes lead fields. Status changes go through PATCH /lead-companies/{id}/status.
// @Tags LeadCompanies
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.UpdateLeadCompanyRequest true "Changed fields"
// @Success 200 {object} domain.LeadCompany
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies/{id} [put]
func (h *LeadCompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateLeadCompanyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	lead, err := h.leadService.Update(r.Context(), urlID(r), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "update lead company", err)
		return
	}
	respondJSON(w, http.StatusOK, lead)
}

// @Summary Delete lead company
// @Tags LeadCompanies
// @Param id path string true "Lead ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies/{id} [delete]
func (h *LeadCompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.leadService.Delete(r.Context(), urlID(r)); err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "delete lead company", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Change lead status
// @Description Moves a lead forward in its lifecycle or to LOST. CONVERTED is reached through /convert.
// @Tags LeadCompanies
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.UpdateLeadStatusRequest true "New status"
// @Success 200 {object} domain.LeadCompany
// @Failure 422 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies/{id}/status [patch]
func (h *LeadCompanyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateLeadStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	lead, err := h.leadService.UpdateStatus(r.Context(), urlID(r), req.Status)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "update lead status", err)
		return
	}
	respondJSON(w, http.StatusOK, lead)
}

// @Summary Bulk change lead status
// @Description Applies one status to many leads in order, stopping at the first failure. Earlier writes stay committed.
// @Tags LeadCompanies
// @Accept json
// @Produce json
// @Param request body domain.BulkLeadStatusRequest true "Lead ids and status"
// @Success 200 {object} domain.BulkResult
// @Success 207 {object} domain.BulkResult "Stopped at failedId"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies/bulk-status [post]
func (h *LeadCompanyHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.BulkLeadStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	respondBulk(w, h.leadService.BulkUpdateStatus(r.Context(), &req))
}

// @Summary Convert lead to client account
// @Description Creates (or reuses) the client account, moves the lead's contacts to it and marks the lead CONVERTED. Safe to repeat after a partial failure.
// @Tags LeadCompanies
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} domain.ConversionResult
// @Failure 409 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies/{id}/convert [post]
func (h *LeadCompanyHandler) Convert(w http.ResponseWriter, r *http.Request) {
	result, err := h.leadService.Convert(r.Context(), urlID(r))
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "convert lead company", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// @Summary Lead statistics
// @Tags LeadCompanies
// @Produce json
// @Success 200 {object} domain.LeadCompanyStats
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies/stats [get]
func (h *LeadCompanyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.leadService.GetStats(r.Context()))
}

// @Summary Import leads
// @Description Imports leads from a CSV or XLSX file. The first row is the header; companyName is required. Rows are created one by one and failures are reported per row.
// @Tags LeadCompanies
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} domain.ImportResult
// @Failure 400 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies/import [post]
func (h *LeadCompanyHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "File exceeds the upload size limit")
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	result, err := h.importService.ImportLeads(r.Context(), header.Filename, data)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "import leads", err)
		return
	}

	h.logger.Info("Lead import finished",
		zap.String("filename", header.Filename),
		zap.Int("rows", result.Rows),
		zap.Int("created", len(result.Created)),
		zap.Int("errors", len(result.Errors)),
	)
	respondJSON(w, http.StatusOK, result)
}

// @Summary Contacts of a lead
// @Tags LeadCompanies
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies/{id}/contacts [get]
func (h *LeadCompanyHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, paginated(h.contactService.GetByLeadCompany(r.Context(), urlID(r), parseListParams(r))))
}

// @Summary Deals of a lead
// @Tags LeadCompanies
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies/{id}/deals [get]
func (h *LeadCompanyHandler) GetDeals(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, paginated(h.dealService.GetByLeadCompany(r.Context(), urlID(r), parseListParams(r))))
}

// @Summary Activities of a lead
// @Tags LeadCompanies
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lead-companies/{id}/activities [get]
func (h *LeadCompanyHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, paginated(h.activityService.GetByLeadCompany(r.Context(), urlID(r), parseListParams(r))))
}

// respondBulk answers 200 when every write succeeded and 207 when the run stopped early
func respondBulk(w http.ResponseWriter, result *domain.BulkResult) {
	status := http.StatusOK
	if result.FailedID != "" {
		status = http.StatusMultiStatus
	}
	respondJSON(w, status, result)
}
