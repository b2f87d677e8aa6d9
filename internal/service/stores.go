package service

import (
	"context"
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/repository"
)

// The interfaces below are satisfied by the repository package. Services take
// them instead of concrete repositories so aggregations can run against fakes.

// LeadCompanyStore is the lead company record fetcher
type LeadCompanyStore interface {
	List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.LeadCompany]
	All(ctx context.Context) []domain.LeadCompany
	GetByID(ctx context.Context, id string) (*domain.LeadCompany, error)
	Create(ctx context.Context, payload any) (*domain.LeadCompany, error)
	Update(ctx context.Context, id string, payload any) (*domain.LeadCompany, error)
	Delete(ctx context.Context, id string) error
	GetByStatus(ctx context.Context, status domain.LeadStatus, params repository.ListParams) *domain.ListResult[domain.LeadCompany]
	GetByAssignee(ctx context.Context, userID string, params repository.ListParams) *domain.ListResult[domain.LeadCompany]
	GetBySegment(ctx context.Context, segment string, params repository.ListParams) *domain.ListResult[domain.LeadCompany]
	GetByDateRange(ctx context.Context, from, to time.Time, params repository.ListParams) *domain.ListResult[domain.LeadCompany]
}

// ClientAccountStore is the client account record fetcher
type ClientAccountStore interface {
	List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.ClientAccount]
	All(ctx context.Context) []domain.ClientAccount
	GetByID(ctx context.Context, id string) (*domain.ClientAccount, error)
	Create(ctx context.Context, payload any) (*domain.ClientAccount, error)
	Update(ctx context.Context, id string, payload any) (*domain.ClientAccount, error)
	Delete(ctx context.Context, id string) error
	GetByAssignee(ctx context.Context, userID string, params repository.ListParams) *domain.ListResult[domain.ClientAccount]
	GetConvertedFromLead(ctx context.Context, leadID string) *domain.ListResult[domain.ClientAccount]
}

// ContactStore is the contact record fetcher
type ContactStore interface {
	List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.Contact]
	All(ctx context.Context) []domain.Contact
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	Create(ctx context.Context, payload any) (*domain.Contact, error)
	Update(ctx context.Context, id string, payload any) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
	GetByLeadCompany(ctx context.Context, leadID string, params repository.ListParams) *domain.ListResult[domain.Contact]
	GetByClientAccount(ctx context.Context, accountID string, params repository.ListParams) *domain.ListResult[domain.Contact]
	GetByRole(ctx context.Context, role domain.ContactRole, params repository.ListParams) *domain.ListResult[domain.Contact]
	GetByEmail(ctx context.Context, email string) *domain.ListResult[domain.Contact]
	OwnedBy(ctx context.Context, kind domain.OwnerKind, ownerID string) ([]domain.Contact, error)
}

// DealStore is the deal record fetcher
type DealStore interface {
	List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.Deal]
	All(ctx context.Context) []domain.Deal
	GetByID(ctx context.Context, id string) (*domain.Deal, error)
	Create(ctx context.Context, payload any) (*domain.Deal, error)
	Update(ctx context.Context, id string, payload any) (*domain.Deal, error)
	Delete(ctx context.Context, id string) error
	GetByStage(ctx context.Context, stage domain.DealStage, params repository.ListParams) *domain.ListResult[domain.Deal]
	GetByLeadCompany(ctx context.Context, leadID string, params repository.ListParams) *domain.ListResult[domain.Deal]
	GetByClientAccount(ctx context.Context, accountID string, params repository.ListParams) *domain.ListResult[domain.Deal]
	GetByContact(ctx context.Context, contactID string, params repository.ListParams) *domain.ListResult[domain.Deal]
	GetByCloseDateRange(ctx context.Context, from, to time.Time) []domain.Deal
}

// ActivityStore is the activity record fetcher
type ActivityStore interface {
	List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.Activity]
	All(ctx context.Context) []domain.Activity
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	Create(ctx context.Context, payload any) (*domain.Activity, error)
	Update(ctx context.Context, id string, payload any) (*domain.Activity, error)
	Delete(ctx context.Context, id string) error
	GetByContact(ctx context.Context, contactID string, params repository.ListParams) *domain.ListResult[domain.Activity]
	ContactSince(ctx context.Context, contactID string, since time.Time) []domain.Activity
	GetByDeal(ctx context.Context, dealID string, params repository.ListParams) *domain.ListResult[domain.Activity]
	GetByLeadCompany(ctx context.Context, leadID string, params repository.ListParams) *domain.ListResult[domain.Activity]
	GetByClientAccount(ctx context.Context, accountID string, params repository.ListParams) *domain.ListResult[domain.Activity]
	GetUpcoming(ctx context.Context, now time.Time, limit int) []domain.Activity
	GetByDateRange(ctx context.Context, from, to time.Time, params repository.ListParams) *domain.ListResult[domain.Activity]
}

// ProjectStore is the project record fetcher
type ProjectStore interface {
	List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.Project]
	All(ctx context.Context) []domain.Project
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, payload any) (*domain.Project, error)
	Update(ctx context.Context, id string, payload any) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// TaskStore is the task record fetcher
type TaskStore interface {
	List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.Task]
	All(ctx context.Context) []domain.Task
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, payload any) (*domain.Task, error)
	Update(ctx context.Context, id string, payload any) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	GetByProject(ctx context.Context, projectID string, params repository.ListParams) *domain.ListResult[domain.Task]
	GetByAssignee(ctx context.Context, userID string, params repository.ListParams) *domain.ListResult[domain.Task]
	GetByStatus(ctx context.Context, status domain.TaskStatus, params repository.ListParams) *domain.ListResult[domain.Task]
}

// StageHistoryStore persists deal stage changes locally
type StageHistoryStore interface {
	Create(ctx context.Context, history *domain.DealStageHistory) error
	GetByDealID(ctx context.Context, dealID string) ([]domain.DealStageHistory, error)
	DeleteByDealID(ctx context.Context, dealID string) error
}

// SnapshotStore persists daily dashboard snapshots
type SnapshotStore interface {
	Upsert(ctx context.Context, snapshot *domain.DashboardSnapshot) error
	ListRange(ctx context.Context, tenant string, from, to time.Time) ([]domain.DashboardSnapshot, error)
}

// AuditLogStore persists audit entries
type AuditLogStore interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter *repository.AuditLogFilter, page, pageSize int) ([]domain.AuditLog, int64, error)
	CountByAction(ctx context.Context, start, end time.Time) (map[domain.AuditAction]int64, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// Clock returns the current time; services take one so period math is testable
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}
