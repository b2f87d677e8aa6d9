package auth

import (
	"context"
	"strings"
)

// Role is a portal role carried in the token
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleSales   Role = "sales"
	RoleViewer  Role = "viewer"
	// RoleSystem is given to API key callers
	RoleSystem Role = "system"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID   string
	Username string
	Email    string
	Roles    []Role
	// Tenant is the organization the user belongs to; empty for cross-tenant users
	Tenant string
}

type contextKey string

const (
	userContextKey  contextKey = "userContext"
	tenantFilterKey contextKey = "tenantFilter"
)

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...Role) bool {
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}

// IsCrossTenant reports whether the user may see every tenant
func (u *UserContext) IsCrossTenant() bool {
	return u.HasAnyRole(RoleAdmin, RoleSystem) && u.Tenant == ""
}

// CanAccessTenant checks if user can access data for a tenant
func (u *UserContext) CanAccessTenant(tenant string) bool {
	return u.IsCrossTenant() || strings.EqualFold(u.Tenant, tenant)
}

// CanWrite reports whether the user may change records
func (u *UserContext) CanWrite() bool {
	return u.HasAnyRole(RoleAdmin, RoleManager, RoleSales, RoleSystem)
}

// RolesAsStrings returns roles for logging
func (u *UserContext) RolesAsStrings() []string {
	out := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		out[i] = string(r)
	}
	return out
}

// TenantFilter is the effective tenant scope of a request
type TenantFilter struct {
	Tenant string
}

// WithTenantFilter adds the tenant filter to the context
func WithTenantFilter(ctx context.Context, filter *TenantFilter) context.Context {
	return context.WithValue(ctx, tenantFilterKey, filter)
}

// TenantFilterFromContext extracts the tenant filter from the context
func TenantFilterFromContext(ctx context.Context) (*TenantFilter, bool) {
	filter, ok := ctx.Value(tenantFilterKey).(*TenantFilter)
	return filter, ok
}

// EffectiveTenant returns the tenant to scope queries by, or "" for no scoping.
// An explicit filter wins over the user's own tenant.
func EffectiveTenant(ctx context.Context) string {
	if filter, ok := TenantFilterFromContext(ctx); ok && filter != nil {
		return filter.Tenant
	}
	if user, ok := FromContext(ctx); ok && user != nil {
		return user.Tenant
	}
	return ""
}

// ActorFromContext returns the acting user's id and display name for history rows
func ActorFromContext(ctx context.Context) (id, name string) {
	user, ok := FromContext(ctx)
	if !ok || user == nil {
		return "", ""
	}
	name = user.Username
	if name == "" {
		name = user.Email
	}
	return user.UserID, name
}
