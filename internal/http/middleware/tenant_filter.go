package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/straye-as/crm-portal/internal/auth"
	"go.uber.org/zap"
)

var tenantSlug = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,99}$`)

// TenantFilterMiddleware sets the effective tenant scope of a request
type TenantFilterMiddleware struct {
	logger *zap.Logger
}

// NewTenantFilterMiddleware creates a new tenant filter middleware
func NewTenantFilterMiddleware(logger *zap.Logger) *TenantFilterMiddleware {
	return &TenantFilterMiddleware{logger: logger}
}

// Filter places an auth.TenantFilter in the request context.
//   - cross-tenant users see every tenant, or one tenant when they pass ?tenant=<slug>
//   - tenant users are always scoped to their own tenant; asking for another one is forbidden
func (m *TenantFilterMiddleware) Filter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := auth.FromContext(r.Context())
		if !ok || userCtx == nil {
			next.ServeHTTP(w, r)
			return
		}

		filter := &auth.TenantFilter{Tenant: userCtx.Tenant}

		if requested := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("tenant"))); requested != "" {
			if !tenantSlug.MatchString(requested) {
				http.Error(w, "Invalid tenant parameter", http.StatusBadRequest)
				return
			}
			if !userCtx.CanAccessTenant(requested) {
				m.logger.Warn("user attempted to access another tenant",
					zap.String("user_id", userCtx.UserID),
					zap.String("user_tenant", userCtx.Tenant),
					zap.String("requested_tenant", requested),
				)
				http.Error(w, "Access denied: you cannot access data for this tenant", http.StatusForbidden)
				return
			}
			filter.Tenant = requested
		}

		next.ServeHTTP(w, r.WithContext(auth.WithTenantFilter(r.Context(), filter)))
	})
}
