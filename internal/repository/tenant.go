package repository

import (
	"context"
	"strings"

	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/backend"
)

// MaxPageSize is the maximum page size accepted from API callers
const MaxPageSize = 200

// DefaultPageSize is used when a caller does not ask for one
const DefaultPageSize = 25

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// ParseSortOrder parses a string into SortOrder, defaulting to desc
func ParseSortOrder(s string) SortOrder {
	if strings.ToLower(s) == "asc" {
		return SortOrderAsc
	}
	return SortOrderDesc
}

// ListParams carries pagination, sorting and free-text search from the API
type ListParams struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder SortOrder
	Search    string
}

// Normalized clamps pagination to sane bounds
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.SortOrder == "" {
		p.SortOrder = SortOrderDesc
	}
	return p
}

// query builds the backend query. Unknown sort fields fall back to defaultSort.
func (p ListParams) query(sortable map[string]bool, defaultSort string, searchFields ...string) *backend.Query {
	p = p.Normalized()
	q := backend.NewQuery(p.Page, p.PageSize)

	field := p.SortBy
	if !sortable[field] {
		field = defaultSort
	}
	q.SortBy(field, string(p.SortOrder))

	if term := strings.TrimSpace(p.Search); term != "" {
		for _, f := range searchFields {
			q.Or = append(q.Or, backend.Filter{Path: []string{f}, Op: backend.OpContains, Values: []string{term}})
		}
	}
	return q
}

// ApplyTenantFilter scopes q to the request's tenant. Without a tenant q is unchanged.
func ApplyTenantFilter(ctx context.Context, q *backend.Query, tenantField string) *backend.Query {
	tenant := auth.EffectiveTenant(ctx)
	if tenant == "" || tenantField == "" {
		return q
	}
	if q == nil {
		q = &backend.Query{}
	}
	return q.Where(tenant, tenantField)
}

// MustHaveTenantAccess checks a record's tenant against the request scope
func MustHaveTenantAccess(ctx context.Context, recordTenant string) bool {
	tenant := auth.EffectiveTenant(ctx)
	return tenant == "" || strings.EqualFold(tenant, recordTenant)
}
