package repository

import (
	"context"
	"time"

	"github.com/straye-as/crm-portal/internal/backend"
	"github.com/straye-as/crm-portal/internal/domain"
	"go.uber.org/zap"
)

const dealCollection = "deals"

var dealSortable = map[string]bool{
	"name": true, "stage": true, "value": true, "probability": true, "closeDate": true,
	"createdAt": true, "updatedAt": true,
}

type DealRepository struct {
	f *fetcher[domain.Deal]
}

func NewDealRepository(client *backend.Client, opts Options, logger *zap.Logger) *DealRepository {
	return &DealRepository{
		f: newFetcher[domain.Deal](client, dealCollection, []string{"leadCompany", "clientAccount", "contact", "assignedTo"}, opts, logger),
	}
}

func (r *DealRepository) List(ctx context.Context, params ListParams) *domain.ListResult[domain.Deal] {
	return r.f.list(ctx, params.query(dealSortable, "createdAt", "name", "description"))
}

func (r *DealRepository) All(ctx context.Context) []domain.Deal {
	return r.f.all(ctx, nil)
}

func (r *DealRepository) GetByID(ctx context.Context, id string) (*domain.Deal, error) {
	return r.f.get(ctx, id)
}

func (r *DealRepository) Create(ctx context.Context, payload any) (*domain.Deal, error) {
	return r.f.create(ctx, payload)
}

func (r *DealRepository) Update(ctx context.Context, id string, payload any) (*domain.Deal, error) {
	return r.f.update(ctx, id, payload)
}

func (r *DealRepository) Delete(ctx context.Context, id string) error {
	return r.f.delete(ctx, id)
}

func (r *DealRepository) GetByStage(ctx context.Context, stage domain.DealStage, params ListParams) *domain.ListResult[domain.Deal] {
	q := params.query(dealSortable, "createdAt").Where(string(stage), "stage")
	return r.f.list(ctx, q)
}

func (r *DealRepository) GetByLeadCompany(ctx context.Context, leadID string, params ListParams) *domain.ListResult[domain.Deal] {
	q := params.query(dealSortable, "createdAt").Where(leadID, "leadCompany", "id")
	return r.f.list(ctx, q)
}

func (r *DealRepository) GetByClientAccount(ctx context.Context, accountID string, params ListParams) *domain.ListResult[domain.Deal] {
	q := params.query(dealSortable, "createdAt").Where(accountID, "clientAccount", "id")
	return r.f.list(ctx, q)
}

func (r *DealRepository) GetByContact(ctx context.Context, contactID string, params ListParams) *domain.ListResult[domain.Deal] {
	q := params.query(dealSortable, "createdAt").Where(contactID, "contact", "id")
	return r.f.list(ctx, q)
}

// GetByCloseDateRange returns deals closing within [from, to], up to a fan-out page
func (r *DealRepository) GetByCloseDateRange(ctx context.Context, from, to time.Time) []domain.Deal {
	q := r.f.fanout().Between("closeDate", from, to).SortBy("closeDate", "asc")
	return r.f.all(ctx, q)
}
