package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/config"
	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/http/middleware"
	"github.com/straye-as/crm-portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func withUser(r *http.Request, user *auth.UserContext) *http.Request {
	return r.WithContext(auth.WithUserContext(r.Context(), user))
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Tenant filter

func serveTenantFilter(t *testing.T, user *auth.UserContext, target string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var seen string
	h := middleware.NewTenantFilterMiddleware(zap.NewNop()).Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.EffectiveTenant(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if user != nil {
		req = withUser(req, user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestTenantFilter_DefaultsToUserTenant(t *testing.T) {
	rec, tenant := serveTenantFilter(t, &auth.UserContext{UserID: "1", Roles: []auth.Role{auth.RoleSales}, Tenant: "acme"}, "/api/v1/deals")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acme", tenant)
}

func TestTenantFilter_SameTenantParameter(t *testing.T) {
	rec, tenant := serveTenantFilter(t, &auth.UserContext{UserID: "1", Roles: []auth.Role{auth.RoleSales}, Tenant: "acme"}, "/api/v1/deals?tenant=ACME")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acme", tenant)
}

func TestTenantFilter_ForbidsOtherTenant(t *testing.T) {
	rec, _ := serveTenantFilter(t, &auth.UserContext{UserID: "1", Roles: []auth.Role{auth.RoleManager}, Tenant: "acme"}, "/api/v1/deals?tenant=globex")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTenantFilter_CrossTenantAdmin(t *testing.T) {
	admin := &auth.UserContext{UserID: "1", Roles: []auth.Role{auth.RoleAdmin}}

	rec, tenant := serveTenantFilter(t, admin, "/api/v1/deals")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, tenant)

	rec, tenant = serveTenantFilter(t, admin, "/api/v1/deals?tenant=globex")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "globex", tenant)
}

func TestTenantFilter_RejectsMalformedTenant(t *testing.T) {
	admin := &auth.UserContext{UserID: "1", Roles: []auth.Role{auth.RoleAdmin}}
	rec, _ := serveTenantFilter(t, admin, "/api/v1/deals?tenant=../etc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTenantFilter_NoUserPassesThrough(t *testing.T) {
	rec, tenant := serveTenantFilter(t, nil, "/api/v1/deals?tenant=globex")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, tenant)
}

// Audit

type recordingAuditLogger struct {
	mu      sync.Mutex
	entries []service.LogEntry
}

func (l *recordingAuditLogger) Log(ctx context.Context, r *http.Request, entry service.LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

func auditedRouter(am *middleware.AuditMiddleware) chi.Router {
	r := chi.NewRouter()
	r.Use(am.Audit)
	r.Route("/api/v1/lead-companies", func(r chi.Router) {
		r.Get("/", okHandler)
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", "/api/v1/lead-companies/42")
			w.WriteHeader(http.StatusCreated)
		})
		r.Put("/{id}", okHandler)
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		r.Patch("/{id}/status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		})
	})
	r.Post("/api/v1/deals/{id}/advance", okHandler)
	return r
}

func TestAuditMiddleware_RecordsMutations(t *testing.T) {
	logger := &recordingAuditLogger{}
	am := middleware.NewAuditMiddleware(logger, nil, zap.NewNop())
	r := auditedRouter(am)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/v1/lead-companies", nil),
		httptest.NewRequest(http.MethodPut, "/api/v1/lead-companies/7", nil),
		httptest.NewRequest(http.MethodDelete, "/api/v1/lead-companies/8", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/deals/9/advance", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	am.Wait()

	require.Len(t, logger.entries, 4)
	byID := map[string]service.LogEntry{}
	for _, e := range logger.entries {
		byID[e.EntityID] = e
	}

	assert.Equal(t, domain.AuditActionCreate, byID["42"].Action)
	assert.Equal(t, "LeadCompany", byID["42"].EntityType)
	assert.Equal(t, http.StatusCreated, byID["42"].StatusCode)
	assert.Equal(t, domain.AuditActionUpdate, byID["7"].Action)
	assert.Equal(t, domain.AuditActionDelete, byID["8"].Action)
	assert.Equal(t, "Deal", byID["9"].EntityType)
}

func TestAuditMiddleware_SkipsReadsAndFailures(t *testing.T) {
	logger := &recordingAuditLogger{}
	am := middleware.NewAuditMiddleware(logger, nil, zap.NewNop())
	r := auditedRouter(am)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/lead-companies", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPatch, "/api/v1/lead-companies/7/status", nil))
	am.Wait()

	assert.Empty(t, logger.entries)
}

func TestAuditMiddleware_SkipPaths(t *testing.T) {
	logger := &recordingAuditLogger{}
	am := middleware.NewAuditMiddleware(logger, &middleware.AuditConfig{SkipPaths: []string{"/api/v1/lead-companies"}}, zap.NewNop())
	r := auditedRouter(am)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/lead-companies", nil))
	am.Wait()

	assert.Empty(t, logger.entries)
}

func TestAuditMiddleware_NilServiceDisables(t *testing.T) {
	am := middleware.NewAuditMiddleware(nil, nil, zap.NewNop())
	r := auditedRouter(am)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/lead-companies", nil))
	am.Wait()

	assert.Equal(t, http.StatusCreated, rec.Code)
}

// Logging

type recordingObserver struct {
	mu     sync.Mutex
	routes []string
	codes  []int
}

func (o *recordingObserver) HTTPRequest(method, route string, status int, d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.routes = append(o.routes, method+" "+route)
	o.codes = append(o.codes, status)
}

func TestLogging_ReportsRoutePatternAndRequestID(t *testing.T) {
	observer := &recordingObserver{}
	r := chi.NewRouter()
	r.Use(middleware.Logging(zap.NewNop(), observer))
	r.Get("/api/v1/deals/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/deals/12", nil))

	assert.Equal(t, []string{"GET /api/v1/deals/{id}"}, observer.routes)
	assert.Equal(t, []int{http.StatusTeapot}, observer.codes)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestLogging_KeepsIncomingRequestID(t *testing.T) {
	h := middleware.Logging(zap.NewNop(), nil)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

// Recovery

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	h := middleware.Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
}

func TestRecovery_RepanicsOnAbort(t *testing.T) {
	h := middleware.Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

// Security headers

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.SecurityConfig{
		EnableHSTS:            true,
		HSTSMaxAge:            600,
		HSTSIncludeSubdomains: true,
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
	}
	h := middleware.SecurityHeaders(cfg)(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "max-age=600; includeSubDomains", rec.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestSecurityHeaders_HSTSDisabled(t *testing.T) {
	h := middleware.SecurityHeaders(&config.SecurityConfig{HSTSMaxAge: 600})(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

// CORS

func corsPreflight(t *testing.T, cfg *config.CORSConfig, env, origin string) *httptest.ResponseRecorder {
	t.Helper()
	h := middleware.CORS(cfg, env, zap.NewNop())(http.HandlerFunc(okHandler))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/deals", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"https://portal.example.com"},
		AllowedMethods: []string{http.MethodGet},
	}

	rec := corsPreflight(t, cfg, "production", "https://portal.example.com")
	assert.Equal(t, "https://portal.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = corsPreflight(t, cfg, "production", "https://evil.example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DeployedWithoutOriginsDenies(t *testing.T) {
	cfg := &config.CORSConfig{AllowedMethods: []string{http.MethodGet}}

	rec := corsPreflight(t, cfg, "production", "https://portal.example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DevelopmentAllowsAny(t *testing.T) {
	cfg := &config.CORSConfig{AllowedMethods: []string{http.MethodGet}}

	rec := corsPreflight(t, cfg, "development", "http://localhost:5173")
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

// Rate limiting

func TestRateLimiter_Disabled(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: false, RequestsPerMinute: 1}, zap.NewNop())
	h := rl.LimitByIP(http.HandlerFunc(okHandler))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_LimitsByIP(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2}, zap.NewNop())
	h := rl.LimitByIP(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_WhitelistedPathAndIP(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistIPs:      []string{"10.0.0.9"},
		WhitelistPaths:    []string{"/health", "/swagger/*"},
	}, zap.NewNop())
	h := rl.LimitByIP(http.HandlerFunc(okHandler))

	for _, tc := range []struct{ path, addr string }{
		{"/health", "10.0.0.2:1"},
		{"/health", "10.0.0.2:1"},
		{"/swagger/index.html", "10.0.0.2:1"},
		{"/api/v1/deals", "10.0.0.9:1"},
		{"/api/v1/deals", "10.0.0.9:1"},
	} {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.RemoteAddr = tc.addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, tc.path)
	}
}

func TestRateLimiter_LimitKeysByUser(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: true, RequestsPerMinuteAuth: 1}, zap.NewNop())
	h := rl.Limit(http.HandlerFunc(okHandler))

	serve := func(userID string) int {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil), &auth.UserContext{UserID: userID})
		req.RemoteAddr = "10.0.0.5:1"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve("alice"))
	assert.Equal(t, http.StatusTooManyRequests, serve("alice"))
	assert.Equal(t, http.StatusOK, serve("bob"))
}
