package repository

import (
	"context"

	"github.com/straye-as/crm-portal/internal/backend"
	"github.com/straye-as/crm-portal/internal/domain"
	"go.uber.org/zap"
)

const clientAccountCollection = "client-accounts"

var clientAccountSortable = map[string]bool{
	"companyName": true, "healthScore": true, "accountValue": true, "createdAt": true, "updatedAt": true,
}

type ClientAccountRepository struct {
	f *fetcher[domain.ClientAccount]
}

func NewClientAccountRepository(client *backend.Client, opts Options, logger *zap.Logger) *ClientAccountRepository {
	return &ClientAccountRepository{
		f: newFetcher[domain.ClientAccount](client, clientAccountCollection, []string{"assignedTo", "convertedFromLead"}, opts, logger),
	}
}

func (r *ClientAccountRepository) List(ctx context.Context, params ListParams) *domain.ListResult[domain.ClientAccount] {
	return r.f.list(ctx, params.query(clientAccountSortable, "createdAt", "companyName", "email", "industry"))
}

func (r *ClientAccountRepository) All(ctx context.Context) []domain.ClientAccount {
	return r.f.all(ctx, nil)
}

func (r *ClientAccountRepository) GetByID(ctx context.Context, id string) (*domain.ClientAccount, error) {
	return r.f.get(ctx, id)
}

func (r *ClientAccountRepository) Create(ctx context.Context, payload any) (*domain.ClientAccount, error) {
	return r.f.create(ctx, payload)
}

func (r *ClientAccountRepository) Update(ctx context.Context, id string, payload any) (*domain.ClientAccount, error) {
	return r.f.update(ctx, id, payload)
}

func (r *ClientAccountRepository) Delete(ctx context.Context, id string) error {
	return r.f.delete(ctx, id)
}

func (r *ClientAccountRepository) GetByAssignee(ctx context.Context, userID string, params ListParams) *domain.ListResult[domain.ClientAccount] {
	q := params.query(clientAccountSortable, "createdAt").Where(userID, "assignedTo", "id")
	return r.f.list(ctx, q)
}

// GetConvertedFromLead returns the account created from the given lead, if any
func (r *ClientAccountRepository) GetConvertedFromLead(ctx context.Context, leadID string) *domain.ListResult[domain.ClientAccount] {
	q := backend.NewQuery(1, 1).Where(leadID, "convertedFromLead", "id")
	return r.f.list(ctx, q)
}
