package repository

import (
	"context"
	"time"

	"github.com/straye-as/crm-portal/internal/backend"
	"github.com/straye-as/crm-portal/internal/domain"
	"go.uber.org/zap"
)

const activityCollection = "activities"

var activitySortable = map[string]bool{
	"subject": true, "activityType": true, "status": true, "scheduledDate": true,
	"completedDate": true, "createdAt": true, "updatedAt": true,
}

type ActivityRepository struct {
	f *fetcher[domain.Activity]
}

func NewActivityRepository(client *backend.Client, opts Options, logger *zap.Logger) *ActivityRepository {
	return &ActivityRepository{
		f: newFetcher[domain.Activity](client, activityCollection, []string{"contact", "leadCompany", "clientAccount", "deal", "assignedTo"}, opts, logger),
	}
}

func (r *ActivityRepository) List(ctx context.Context, params ListParams) *domain.ListResult[domain.Activity] {
	return r.f.list(ctx, params.query(activitySortable, "createdAt", "subject", "description"))
}

func (r *ActivityRepository) All(ctx context.Context) []domain.Activity {
	return r.f.all(ctx, nil)
}

func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	return r.f.get(ctx, id)
}

func (r *ActivityRepository) Create(ctx context.Context, payload any) (*domain.Activity, error) {
	return r.f.create(ctx, payload)
}

func (r *ActivityRepository) Update(ctx context.Context, id string, payload any) (*domain.Activity, error) {
	return r.f.update(ctx, id, payload)
}

func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	return r.f.delete(ctx, id)
}

func (r *ActivityRepository) GetByContact(ctx context.Context, contactID string, params ListParams) *domain.ListResult[domain.Activity] {
	q := params.query(activitySortable, "createdAt").Where(contactID, "contact", "id")
	return r.f.list(ctx, q)
}

// ContactSince returns a contact's activities completed, scheduled or created
// at or after since, up to a fan-out page. Callers narrow by Activity.OccurredAt.
func (r *ActivityRepository) ContactSince(ctx context.Context, contactID string, since time.Time) []domain.Activity {
	day := since.UTC().Format("2006-01-02")
	q := r.f.fanout().Where(contactID, "contact", "id")
	q.Or = []backend.Filter{
		{Path: []string{"completedDate"}, Op: backend.OpGte, Values: []string{day}},
		{Path: []string{"scheduledDate"}, Op: backend.OpGte, Values: []string{day}},
		{Path: []string{"createdAt"}, Op: backend.OpGte, Values: []string{since.UTC().Format(time.RFC3339)}},
	}
	return r.f.all(ctx, q)
}

func (r *ActivityRepository) GetByDeal(ctx context.Context, dealID string, params ListParams) *domain.ListResult[domain.Activity] {
	q := params.query(activitySortable, "createdAt").Where(dealID, "deal", "id")
	return r.f.list(ctx, q)
}

func (r *ActivityRepository) GetByLeadCompany(ctx context.Context, leadID string, params ListParams) *domain.ListResult[domain.Activity] {
	q := params.query(activitySortable, "createdAt").Where(leadID, "leadCompany", "id")
	return r.f.list(ctx, q)
}

func (r *ActivityRepository) GetByClientAccount(ctx context.Context, accountID string, params ListParams) *domain.ListResult[domain.Activity] {
	q := params.query(activitySortable, "createdAt").Where(accountID, "clientAccount", "id")
	return r.f.list(ctx, q)
}

// GetUpcoming lists planned activities scheduled from now on, soonest first
func (r *ActivityRepository) GetUpcoming(ctx context.Context, now time.Time, limit int) []domain.Activity {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	q := backend.NewQuery(1, limit).
		Where(string(domain.ActivityStatusPlanned), "status").
		Between("scheduledDate", now, time.Time{}).
		SortBy("scheduledDate", "asc")
	return r.f.all(ctx, q)
}

// GetByDateRange lists activities scheduled within [from, to]
func (r *ActivityRepository) GetByDateRange(ctx context.Context, from, to time.Time, params ListParams) *domain.ListResult[domain.Activity] {
	q := params.query(activitySortable, "scheduledDate").Between("scheduledDate", from, to)
	return r.f.list(ctx, q)
}
