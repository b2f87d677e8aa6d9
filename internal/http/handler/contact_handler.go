package handler

import (
	"net/http"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"go.uber.org/zap"
)

type ContactHandler struct {
	contactService  *service.ContactService
	dealService     *service.DealService
	activityService *service.ActivityService
	logger          *zap.Logger
}

func NewContactHandler(
	contactService *service.ContactService,
	dealService *service.DealService,
	activityService *service.ActivityService,
	logger *zap.Logger,
) *ContactHandler {
	return &ContactHandler{
		contactService:  contactService,
		dealService:     dealService,
		activityService: activityService,
		logger:          logger,
	}
}

// @Summary List contacts
// @Tags Contacts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(25)
// @Param sortBy query string false "Sort field (firstName, lastName, createdAt)"
// @Param sortOrder query string false "asc or desc" default(desc)
// @Param q query string false "Search name or email"
// @Param role query string false "Filter by role (PRIMARY_CONTACT, DECISION_MAKER, INFLUENCER, TECHNICAL_CONTACT, GATEKEEPER)"
// @Param email query string false "Exact email match (case-insensitive)"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts [get]
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	q := r.URL.Query()

	if email := q.Get("email"); email != "" {
		respondJSON(w, http.StatusOK, paginated(h.contactService.GetByEmail(r.Context(), email)))
		return
	}
	if role := q.Get("role"); role != "" {
		respondJSON(w, http.StatusOK, paginated(h.contactService.GetByRole(r.Context(), domain.ContactRole(role), params)))
		return
	}
	respondJSON(w, http.StatusOK, paginated(h.contactService.List(r.Context(), params)))
}

// @Summary Create contact
// @Description A contact belongs to at most one lead company or client account. A new primary contact demotes the previous one.
// @Tags Contacts
// @Accept json
// @Produce json
// @Param request body domain.CreateContactRequest true "Contact data"
// @Success 201 {object} domain.Contact
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts [post]
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.contactService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "create contact", err)
		return
	}

	w.Header().Set("Location", "/api/v1/contacts/"+contact.ID)
	respondJSON(w, http.StatusCreated, contact)
}

// @Summary Get contact
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} domain.Contact
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts/{id} [get]
func (h *ContactHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	contact, err := h.contactService.GetByID(r.Context(), urlID(r))
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "get contact", err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

// @Summary Update contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body domain.UpdateContactRequest true "Changed fields"
// @Success 200 {object} domain.Contact
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts/{id} [put]
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.contactService.Update(r.Context(), urlID(r), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "update contact", err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

// @Summary Delete contact
// @Tags Contacts
// @Param id path string true "Contact ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.contactService.Delete(r.Context(), urlID(r)); err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "delete contact", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Make contact primary
// @Description Makes the contact the only PRIMARY_CONTACT of its company. Other primaries of the same company are demoted first.
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} domain.Contact
// @Failure 400 {object} domain.APIError "Contact has no company"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts/{id}/primary [post]
func (h *ContactHandler) SetPrimary(w http.ResponseWriter, r *http.Request) {
	contact, err := h.contactService.SetPrimary(r.Context(), urlID(r))
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "set primary contact", err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

// @Summary Transfer contact
// @Description Moves a contact to another lead company or client account. Exactly one target is required.
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body domain.TransferContactRequest true "Target company"
// @Success 200 {object} domain.Contact
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts/{id}/transfer [post]
func (h *ContactHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req domain.TransferContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.contactService.Transfer(r.Context(), urlID(r), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "transfer contact", err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

// @Summary Contact engagement score
// @Description Scores activity with the contact over the last 30 days, capped at 100.
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} domain.EngagementScore
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts/{id}/engagement [get]
func (h *ContactHandler) GetEngagement(w http.ResponseWriter, r *http.Request) {
	score, err := h.contactService.GetEngagementScore(r.Context(), urlID(r))
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "get engagement score", err)
		return
	}
	respondJSON(w, http.StatusOK, score)
}

// @Summary Bulk change contact status
// @Tags Contacts
// @Accept json
// @Produce json
// @Param request body domain.BulkContactStatusRequest true "Contact ids and status"
// @Success 200 {object} domain.BulkResult
// @Success 207 {object} domain.BulkResult "Stopped at failedId"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts/bulk-status [post]
func (h *ContactHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.BulkContactStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	respondBulk(w, h.contactService.BulkUpdateStatus(r.Context(), &req))
}

// @Summary Find duplicate contacts
// @Description Pairs contacts sharing an email address (case-insensitive) with the earliest contact using it.
// @Tags Contacts
// @Produce json
// @Success 200 {array} domain.DuplicatePair
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts/duplicates [get]
func (h *ContactHandler) FindDuplicates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.contactService.FindDuplicates(r.Context()))
}

// @Summary Contact statistics
// @Tags Contacts
// @Produce json
// @Success 200 {object} domain.ContactStats
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts/stats [get]
func (h *ContactHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.contactService.GetStats(r.Context()))
}

// @Summary Deals of a contact
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts/{id}/deals [get]
func (h *ContactHandler) GetDeals(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, paginated(h.dealService.GetByContact(r.Context(), urlID(r), parseListParams(r))))
}

// @Summary Activities of a contact
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contacts/{id}/activities [get]
func (h *ContactHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, paginated(h.activityService.GetByContact(r.Context(), urlID(r), parseListParams(r))))
}
