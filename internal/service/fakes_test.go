package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/repository"
)

var errBackendDown = errors.New("backend unavailable")

// memStore is an in-memory record fetcher. Writes go through a JSON merge so
// request structs and payload maps behave the way the backend treats them.
type memStore[T any] struct {
	mu         sync.Mutex
	items      []T
	idOf       func(*T) *string
	seq        int
	writes     []string
	failCreate error
	failUpdate map[string]error
}

func newMem[T any](idOf func(*T) *string, items ...T) *memStore[T] {
	return &memStore[T]{
		items:      append([]T(nil), items...),
		idOf:       idOf,
		failUpdate: map[string]error{},
	}
}

func (m *memStore[T]) snapshot() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]T{}, m.items...)
}

func (m *memStore[T]) result(items []T) *domain.ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return &domain.ListResult[T]{
		Data: items,
		Pagination: domain.Pagination{
			Page: 1, PageSize: repository.DefaultPageSize, PageCount: 1, Total: len(items),
		},
	}
}

func (m *memStore[T]) where(keep func(*T) bool) *domain.ListResult[T] {
	var out []T
	for _, item := range m.snapshot() {
		if keep(&item) {
			out = append(out, item)
		}
	}
	return m.result(out)
}

func (m *memStore[T]) List(ctx context.Context, _ repository.ListParams) *domain.ListResult[T] {
	return m.result(m.snapshot())
}

func (m *memStore[T]) All(ctx context.Context) []T {
	return m.snapshot()
}

func (m *memStore[T]) GetByID(ctx context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if *m.idOf(&m.items[i]) == id {
			item := m.items[i]
			return &item, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore[T]) Create(ctx context.Context, payload any) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return nil, m.failCreate
	}

	var item T
	if err := merge(&item, payload); err != nil {
		return nil, err
	}
	m.seq++
	*m.idOf(&item) = fmt.Sprintf("new-%d", m.seq)
	m.items = append(m.items, item)
	m.writes = append(m.writes, "create:"+*m.idOf(&item))
	return &item, nil
}

func (m *memStore[T]) Update(ctx context.Context, id string, payload any) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failUpdate[id]; err != nil {
		return nil, err
	}
	for i := range m.items {
		if *m.idOf(&m.items[i]) != id {
			continue
		}
		item := m.items[i]
		if err := merge(&item, payload); err != nil {
			return nil, err
		}
		m.items[i] = item
		m.writes = append(m.writes, "update:"+id)
		return &item, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memStore[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if *m.idOf(&m.items[i]) == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			m.writes = append(m.writes, "delete:"+id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore[T]) writeLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.writes...)
}

// merge overlays the JSON fields of payload onto dst
func merge(dst any, payload any) error {
	current, err := json.Marshal(dst)
	if err != nil {
		return err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(current, &fields); err != nil {
		return err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	changes := map[string]any{}
	if err := json.Unmarshal(raw, &changes); err != nil {
		return err
	}
	for k, v := range changes {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, dst)
}

type fakeLeads struct {
	*memStore[domain.LeadCompany]
}

func newFakeLeads(items ...domain.LeadCompany) *fakeLeads {
	return &fakeLeads{newMem(func(l *domain.LeadCompany) *string { return &l.ID }, items...)}
}

func (f *fakeLeads) GetByStatus(ctx context.Context, status domain.LeadStatus, _ repository.ListParams) *domain.ListResult[domain.LeadCompany] {
	return f.where(func(l *domain.LeadCompany) bool { return l.Status == status })
}

func (f *fakeLeads) GetByAssignee(ctx context.Context, userID string, _ repository.ListParams) *domain.ListResult[domain.LeadCompany] {
	return f.where(func(l *domain.LeadCompany) bool { return domain.RefID(l.AssignedTo) == userID })
}

func (f *fakeLeads) GetBySegment(ctx context.Context, segment string, _ repository.ListParams) *domain.ListResult[domain.LeadCompany] {
	return f.where(func(l *domain.LeadCompany) bool { return l.Segment == segment })
}

func (f *fakeLeads) GetByDateRange(ctx context.Context, from, to time.Time, _ repository.ListParams) *domain.ListResult[domain.LeadCompany] {
	return f.where(func(l *domain.LeadCompany) bool { return !l.CreatedAt.Before(from) && !l.CreatedAt.After(to) })
}

type fakeAccounts struct {
	*memStore[domain.ClientAccount]
}

func newFakeAccounts(items ...domain.ClientAccount) *fakeAccounts {
	return &fakeAccounts{newMem(func(a *domain.ClientAccount) *string { return &a.ID }, items...)}
}

func (f *fakeAccounts) GetByAssignee(ctx context.Context, userID string, _ repository.ListParams) *domain.ListResult[domain.ClientAccount] {
	return f.where(func(a *domain.ClientAccount) bool { return domain.RefID(a.AssignedTo) == userID })
}

func (f *fakeAccounts) GetConvertedFromLead(ctx context.Context, leadID string) *domain.ListResult[domain.ClientAccount] {
	return f.where(func(a *domain.ClientAccount) bool { return domain.RefID(a.ConvertedFromLead) == leadID })
}

type fakeContacts struct {
	*memStore[domain.Contact]
	failOwnedBy error
}

func newFakeContacts(items ...domain.Contact) *fakeContacts {
	return &fakeContacts{memStore: newMem(func(c *domain.Contact) *string { return &c.ID }, items...)}
}

func (f *fakeContacts) GetByLeadCompany(ctx context.Context, leadID string, _ repository.ListParams) *domain.ListResult[domain.Contact] {
	return f.where(func(c *domain.Contact) bool { return domain.RefID(c.LeadCompany) == leadID })
}

func (f *fakeContacts) GetByClientAccount(ctx context.Context, accountID string, _ repository.ListParams) *domain.ListResult[domain.Contact] {
	return f.where(func(c *domain.Contact) bool { return domain.RefID(c.ClientAccount) == accountID })
}

func (f *fakeContacts) GetByRole(ctx context.Context, role domain.ContactRole, _ repository.ListParams) *domain.ListResult[domain.Contact] {
	return f.where(func(c *domain.Contact) bool { return c.Role == role })
}

func (f *fakeContacts) GetByEmail(ctx context.Context, email string) *domain.ListResult[domain.Contact] {
	return f.where(func(c *domain.Contact) bool { return c.Email == email })
}

func (f *fakeContacts) OwnedBy(ctx context.Context, kind domain.OwnerKind, ownerID string) ([]domain.Contact, error) {
	if f.failOwnedBy != nil {
		return nil, f.failOwnedBy
	}
	return f.where(func(c *domain.Contact) bool {
		k, owner := c.Owner()
		return k == kind && owner.ID == ownerID
	}).Data, nil
}

func (f *fakeContacts) primariesOf(kind domain.OwnerKind, ownerID string) []string {
	var ids []string
	owned, _ := f.OwnedBy(context.Background(), kind, ownerID)
	for _, c := range owned {
		if c.Role == domain.ContactRolePrimary {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

type fakeDeals struct {
	*memStore[domain.Deal]
}

func newFakeDeals(items ...domain.Deal) *fakeDeals {
	return &fakeDeals{newMem(func(d *domain.Deal) *string { return &d.ID }, items...)}
}

func (f *fakeDeals) GetByStage(ctx context.Context, stage domain.DealStage, _ repository.ListParams) *domain.ListResult[domain.Deal] {
	return f.where(func(d *domain.Deal) bool { return d.Stage == stage })
}

func (f *fakeDeals) GetByLeadCompany(ctx context.Context, leadID string, _ repository.ListParams) *domain.ListResult[domain.Deal] {
	return f.where(func(d *domain.Deal) bool { return domain.RefID(d.LeadCompany) == leadID })
}

func (f *fakeDeals) GetByClientAccount(ctx context.Context, accountID string, _ repository.ListParams) *domain.ListResult[domain.Deal] {
	return f.where(func(d *domain.Deal) bool { return domain.RefID(d.ClientAccount) == accountID })
}

func (f *fakeDeals) GetByContact(ctx context.Context, contactID string, _ repository.ListParams) *domain.ListResult[domain.Deal] {
	return f.where(func(d *domain.Deal) bool { return domain.RefID(d.Contact) == contactID })
}

func (f *fakeDeals) GetByCloseDateRange(ctx context.Context, from, to time.Time) []domain.Deal {
	return f.where(func(d *domain.Deal) bool {
		return !d.CloseDate.IsZero() && !d.CloseDate.Before(from) && !d.CloseDate.After(to)
	}).Data
}

type fakeActivities struct {
	*memStore[domain.Activity]
}

func newFakeActivities(items ...domain.Activity) *fakeActivities {
	return &fakeActivities{newMem(func(a *domain.Activity) *string { return &a.ID }, items...)}
}

func (f *fakeActivities) GetByContact(ctx context.Context, contactID string, _ repository.ListParams) *domain.ListResult[domain.Activity] {
	return f.where(func(a *domain.Activity) bool { return domain.RefID(a.Contact) == contactID })
}

func (f *fakeActivities) ContactSince(ctx context.Context, contactID string, since time.Time) []domain.Activity {
	return f.where(func(a *domain.Activity) bool {
		if domain.RefID(a.Contact) != contactID {
			return false
		}
		day := since.Truncate(24 * time.Hour)
		return !a.CompletedDate.Before(day) || !a.ScheduledDate.Before(day) || !a.CreatedAt.Before(since)
	}).Data
}

func (f *fakeActivities) GetByDeal(ctx context.Context, dealID string, _ repository.ListParams) *domain.ListResult[domain.Activity] {
	return f.where(func(a *domain.Activity) bool { return domain.RefID(a.Deal) == dealID })
}

func (f *fakeActivities) GetByLeadCompany(ctx context.Context, leadID string, _ repository.ListParams) *domain.ListResult[domain.Activity] {
	return f.where(func(a *domain.Activity) bool { return domain.RefID(a.LeadCompany) == leadID })
}

func (f *fakeActivities) GetByClientAccount(ctx context.Context, accountID string, _ repository.ListParams) *domain.ListResult[domain.Activity] {
	return f.where(func(a *domain.Activity) bool { return domain.RefID(a.ClientAccount) == accountID })
}

func (f *fakeActivities) GetUpcoming(ctx context.Context, now time.Time, limit int) []domain.Activity {
	out := f.where(func(a *domain.Activity) bool {
		return a.Status == domain.ActivityStatusPlanned && !a.ScheduledDate.Before(now)
	}).Data
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeActivities) GetByDateRange(ctx context.Context, from, to time.Time, _ repository.ListParams) *domain.ListResult[domain.Activity] {
	return f.where(func(a *domain.Activity) bool {
		return !a.ScheduledDate.Before(from) && !a.ScheduledDate.After(to)
	})
}

type fakeProjects struct {
	*memStore[domain.Project]
}

func newFakeProjects(items ...domain.Project) *fakeProjects {
	return &fakeProjects{newMem(func(p *domain.Project) *string { return &p.ID }, items...)}
}

type fakeTasks struct {
	*memStore[domain.Task]
}

func newFakeTasks(items ...domain.Task) *fakeTasks {
	return &fakeTasks{newMem(func(t *domain.Task) *string { return &t.ID }, items...)}
}

func (f *fakeTasks) GetByProject(ctx context.Context, projectID string, _ repository.ListParams) *domain.ListResult[domain.Task] {
	return f.where(func(t *domain.Task) bool { return domain.RefID(t.Project) == projectID })
}

func (f *fakeTasks) GetByAssignee(ctx context.Context, userID string, _ repository.ListParams) *domain.ListResult[domain.Task] {
	return f.where(func(t *domain.Task) bool {
		for _, a := range t.AllAssignees() {
			if a.ID == userID {
				return true
			}
		}
		return false
	})
}

func (f *fakeTasks) GetByStatus(ctx context.Context, status domain.TaskStatus, _ repository.ListParams) *domain.ListResult[domain.Task] {
	return f.where(func(t *domain.Task) bool { return t.Status == status })
}

type fakeHistory struct {
	mu   sync.Mutex
	rows []domain.DealStageHistory
	fail error
}

func (f *fakeHistory) Create(ctx context.Context, h *domain.DealStageHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.rows = append(f.rows, *h)
	return nil
}

func (f *fakeHistory) GetByDealID(ctx context.Context, dealID string) ([]domain.DealStageHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.DealStageHistory
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].DealID == dealID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

func (f *fakeHistory) DeleteByDealID(ctx context.Context, dealID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.DealID != dealID {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

type fakeSnapshots struct {
	mu    sync.Mutex
	saved []domain.DashboardSnapshot
	fail  error
}

func (f *fakeSnapshots) Upsert(ctx context.Context, s *domain.DashboardSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	for i := range f.saved {
		if f.saved[i].Tenant == s.Tenant && f.saved[i].SnapshotDate.Equal(s.SnapshotDate) {
			f.saved[i] = *s
			return nil
		}
	}
	f.saved = append(f.saved, *s)
	return nil
}

func (f *fakeSnapshots) ListRange(ctx context.Context, tenant string, from, to time.Time) ([]domain.DashboardSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	out := []domain.DashboardSnapshot{}
	for _, s := range f.saved {
		if s.Tenant == tenant && !s.SnapshotDate.Before(from) && !s.SnapshotDate.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAudit struct {
	mu          sync.Mutex
	logs        []domain.AuditLog
	lastFilter  *repository.AuditLogFilter
	lastPage    int
	lastSize    int
	deleteCalls []time.Time
}

func (f *fakeAudit) Create(ctx context.Context, log *domain.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeAudit) List(ctx context.Context, filter *repository.AuditLogFilter, page, pageSize int) ([]domain.AuditLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter, f.lastPage, f.lastSize = filter, page, pageSize
	return append([]domain.AuditLog{}, f.logs...), int64(len(f.logs)), nil
}

func (f *fakeAudit) CountByAction(ctx context.Context, start, end time.Time) (map[domain.AuditAction]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[domain.AuditAction]int64{}
	for _, l := range f.logs {
		counts[l.Action]++
	}
	return counts, nil
}

func (f *fakeAudit) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, before)
	return 0, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ref(id string) *domain.Ref {
	return &domain.Ref{ID: id}
}

func defaultParams() repository.ListParams {
	return repository.ListParams{Page: 1, PageSize: repository.DefaultPageSize}
}
