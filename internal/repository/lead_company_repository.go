package repository

import (
	"context"
	"time"

	"github.com/straye-as/crm-portal/internal/backend"
	"github.com/straye-as/crm-portal/internal/domain"
	"go.uber.org/zap"
)

const leadCompanyCollection = "lead-companies"

var leadCompanySortable = map[string]bool{
	"companyName": true, "status": true, "dealValue": true, "score": true,
	"healthScore": true, "createdAt": true, "updatedAt": true,
}

type LeadCompanyRepository struct {
	f *fetcher[domain.LeadCompany]
}

func NewLeadCompanyRepository(client *backend.Client, opts Options, logger *zap.Logger) *LeadCompanyRepository {
	return &LeadCompanyRepository{
		f: newFetcher[domain.LeadCompany](client, leadCompanyCollection, []string{"assignedTo", "convertedAccount"}, opts, logger),
	}
}

func (r *LeadCompanyRepository) List(ctx context.Context, params ListParams) *domain.ListResult[domain.LeadCompany] {
	return r.f.list(ctx, params.query(leadCompanySortable, "createdAt", "companyName", "email", "industry"))
}

// All returns up to one fan-out page of leads
func (r *LeadCompanyRepository) All(ctx context.Context) []domain.LeadCompany {
	return r.f.all(ctx, nil)
}

func (r *LeadCompanyRepository) GetByID(ctx context.Context, id string) (*domain.LeadCompany, error) {
	return r.f.get(ctx, id)
}

func (r *LeadCompanyRepository) Create(ctx context.Context, payload any) (*domain.LeadCompany, error) {
	return r.f.create(ctx, payload)
}

func (r *LeadCompanyRepository) Update(ctx context.Context, id string, payload any) (*domain.LeadCompany, error) {
	return r.f.update(ctx, id, payload)
}

func (r *LeadCompanyRepository) Delete(ctx context.Context, id string) error {
	return r.f.delete(ctx, id)
}

func (r *LeadCompanyRepository) GetByStatus(ctx context.Context, status domain.LeadStatus, params ListParams) *domain.ListResult[domain.LeadCompany] {
	q := params.query(leadCompanySortable, "createdAt").Where(string(status), "status")
	return r.f.list(ctx, q)
}

func (r *LeadCompanyRepository) GetByAssignee(ctx context.Context, userID string, params ListParams) *domain.ListResult[domain.LeadCompany] {
	q := params.query(leadCompanySortable, "createdAt").Where(userID, "assignedTo", "id")
	return r.f.list(ctx, q)
}

func (r *LeadCompanyRepository) GetBySegment(ctx context.Context, segment string, params ListParams) *domain.ListResult[domain.LeadCompany] {
	q := params.query(leadCompanySortable, "createdAt").Where(segment, "segment")
	return r.f.list(ctx, q)
}

// GetByDateRange lists leads created within [from, to]
func (r *LeadCompanyRepository) GetByDateRange(ctx context.Context, from, to time.Time, params ListParams) *domain.ListResult[domain.LeadCompany] {
	q := params.query(leadCompanySortable, "createdAt").Between("createdAt", from, to)
	return r.f.list(ctx, q)
}

func (r *LeadCompanyRepository) Search(ctx context.Context, term string, params ListParams) *domain.ListResult[domain.LeadCompany] {
	params.Search = term
	return r.List(ctx, params)
}
