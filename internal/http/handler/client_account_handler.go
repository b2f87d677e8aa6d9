package handler

import (
	"net/http"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"go.uber.org/zap"
)

type ClientAccountHandler struct {
	accountService *service.ClientAccountService
	contactService *service.ContactService
	dealService    *service.DealService
	logger         *zap.Logger
}

func NewClientAccountHandler(
	accountService *service.ClientAccountService,
	contactService *service.ContactService,
	dealService *service.DealService,
	logger *zap.Logger,
) *ClientAccountHandler {
	return &ClientAccountHandler{
		accountService: accountService,
		contactService: contactService,
		dealService:    dealService,
		logger:         logger,
	}
}

// @Summary List client accounts
// @Tags ClientAccounts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(25)
// @Param sortBy query string false "Sort field (companyName, createdAt, healthScore, accountValue)"
// @Param sortOrder query string false "asc or desc" default(desc)
// @Param q query string false "Search company name or email"
// @Param assignedTo query string false "Filter by assigned user id"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /client-accounts [get]
func (h *ClientAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	if assignee := r.URL.Query().Get("assignedTo"); assignee != "" {
		respondJSON(w, http.StatusOK, paginated(h.accountService.GetByAssignee(r.Context(), assignee, params)))
		return
	}
	respondJSON(w, http.StatusOK, paginated(h.accountService.List(r.Context(), params)))
}

// @Summary Create client account
// @Tags ClientAccounts
// @Accept json
// @Produce json
// @Param request body domain.CreateClientAccountRequest true "Account data"
// @Success 201 {object} domain.ClientAccount
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /client-accounts [post]
func (h *ClientAccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "create client account", err)
		return
	}

	w.Header().Set("Location", "/api/v1/client-accounts/"+account.ID)
	respondJSON(w, http.StatusCreated, account)
}

// @Summary Get client account
// @Tags ClientAccounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} domain.ClientAccount
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /client-accounts/{id} [get]
func (h *ClientAccountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountService.GetByID(r.Context(), urlID(r))
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "get client account", err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// @Summary Update client account
// @Tags ClientAccounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body domain.UpdateClientAccountRequest true "Changed fields"
// @Success 200 {object} domain.ClientAccount
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /client-accounts/{id} [put]
func (h *ClientAccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateClientAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountService.Update(r.Context(), urlID(r), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "update client account", err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// @Summary Delete client account
// @Tags ClientAccounts
// @Param id path string true "Account ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /client-accounts/{id} [delete]
func (h *ClientAccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accountService.Delete(r.Context(), urlID(r)); err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "delete client account", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Client account statistics
// @Description Health summary: average health score and accounts at risk (health below 50).
// @Tags ClientAccounts
// @Produce json
// @Success 200 {object} domain.ClientAccountStats
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /client-accounts/stats [get]
func (h *ClientAccountHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.accountService.GetStats(r.Context()))
}

// @Summary Contacts of a client account
// @Tags ClientAccounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /client-accounts/{id}/contacts [get]
func (h *ClientAccountHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, paginated(h.contactService.GetByClientAccount(r.Context(), urlID(r), parseListParams(r))))
}

// @Summary Deals of a client account
// @Tags ClientAccounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /client-accounts/{id}/deals [get]
func (h *ClientAccountHandler) GetDeals(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, paginated(h.dealService.GetByClientAccount(r.Context(), urlID(r), parseListParams(r))))
}
