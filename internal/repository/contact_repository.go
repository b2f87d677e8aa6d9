package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/straye-as/crm-portal/internal/backend"
	"github.com/straye-as/crm-portal/internal/domain"
	"go.uber.org/zap"
)

const contactCollection = "contacts"

var contactSortable = map[string]bool{
	"firstName": true, "lastName": true, "email": true, "role": true, "createdAt": true, "updatedAt": true,
}

type ContactRepository struct {
	f *fetcher[domain.Contact]
}

func NewContactRepository(client *backend.Client, opts Options, logger *zap.Logger) *ContactRepository {
	return &ContactRepository{
		f: newFetcher[domain.Contact](client, contactCollection, []string{"leadCompany", "clientAccount"}, opts, logger),
	}
}

func (r *ContactRepository) List(ctx context.Context, params ListParams) *domain.ListResult[domain.Contact] {
	return r.f.list(ctx, params.query(contactSortable, "createdAt", "firstName", "lastName", "email"))
}

func (r *ContactRepository) All(ctx context.Context) []domain.Contact {
	return r.f.all(ctx, nil)
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	return r.f.get(ctx, id)
}

func (r *ContactRepository) Create(ctx context.Context, payload any) (*domain.Contact, error) {
	return r.f.create(ctx, payload)
}

func (r *ContactRepository) Update(ctx context.Context, id string, payload any) (*domain.Contact, error) {
	return r.f.update(ctx, id, payload)
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	return r.f.delete(ctx, id)
}

// GetByLeadCompany uses the backend's custom lead-company endpoint
func (r *ContactRepository) GetByLeadCompany(ctx context.Context, leadID string, params ListParams) *domain.ListResult[domain.Contact] {
	path := fmt.Sprintf("/api/contacts/lead-company/%s", url.PathEscape(leadID))
	p := params.Normalized()
	return r.f.listPath(ctx, path, backend.NewQuery(p.Page, p.PageSize))
}

func (r *ContactRepository) GetByClientAccount(ctx context.Context, accountID string, params ListParams) *domain.ListResult[domain.Contact] {
	q := params.query(contactSortable, "createdAt").Where(accountID, "clientAccount", "id")
	return r.f.list(ctx, q)
}

func (r *ContactRepository) GetByRole(ctx context.Context, role domain.ContactRole, params ListParams) *domain.ListResult[domain.Contact] {
	q := params.query(contactSortable, "createdAt").Where(string(role), "role")
	return r.f.list(ctx, q)
}

// GetByEmail matches case-insensitively on the trimmed address
func (r *ContactRepository) GetByEmail(ctx context.Context, email string) *domain.ListResult[domain.Contact] {
	q := backend.NewQuery(1, r.f.opts.FanoutPageSize).WhereOp(backend.OpEqi, strings.TrimSpace(email), "email")
	return r.f.list(ctx, q)
}

// OwnedBy lists every contact of one owner, up to a fan-out page. It feeds
// role changes, so unlike the other reads it returns backend failures.
func (r *ContactRepository) OwnedBy(ctx context.Context, kind domain.OwnerKind, ownerID string) ([]domain.Contact, error) {
	q := r.f.fanout()
	switch kind {
	case domain.OwnerLeadCompany:
		q.Where(ownerID, "leadCompany", "id")
	case domain.OwnerClientAccount:
		q.Where(ownerID, "clientAccount", "id")
	default:
		return []domain.Contact{}, nil
	}
	return r.f.listStrict(ctx, q)
}
