package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	applog "github.com/straye-as/crm-portal/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"id":       float64(42),
		"username": "ada",
		"email":    "ada@example.com",
		"role":     map[string]interface{}{"type": "Sales"},
		"tenant":   "Acme",
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
}

func TestJWTValidator_ValidToken(t *testing.T) {
	v := NewJWTValidator(testSecret, "")

	user, err := v.ValidateToken(signToken(t, validClaims(), testSecret))
	require.NoError(t, err)

	assert.Equal(t, "42", user.UserID)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "acme", user.Tenant)
	assert.Equal(t, []Role{RoleSales}, user.Roles)
}

func TestJWTValidator_RolesList(t *testing.T) {
	claims := validClaims()
	delete(claims, "role")
	claims["roles"] = []interface{}{"admin", "manager"}

	user, err := NewJWTValidator(testSecret, "tenant").ValidateToken(signToken(t, claims, testSecret))
	require.NoError(t, err)
	assert.True(t, user.HasRole(RoleAdmin))
	assert.True(t, user.HasRole(RoleManager))
}

func TestJWTValidator_DefaultsToViewer(t *testing.T) {
	claims := validClaims()
	delete(claims, "role")

	user, err := NewJWTValidator(testSecret, "").ValidateToken(signToken(t, claims, testSecret))
	require.NoError(t, err)
	assert.Equal(t, []Role{RoleViewer}, user.Roles)
	assert.False(t, user.CanWrite())
}

func TestJWTValidator_Rejects(t *testing.T) {
	v := NewJWTValidator(testSecret, "")

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	_, err := v.ValidateToken(signToken(t, expired, testSecret))
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = v.ValidateToken(signToken(t, validClaims(), "other-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExp := validClaims()
	delete(noExp, "exp")
	_, err = v.ValidateToken(signToken(t, noExp, testSecret))
	assert.ErrorIs(t, err, ErrInvalidToken)

	noID := validClaims()
	delete(noID, "id")
	_, err = v.ValidateToken(signToken(t, noID, testSecret))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewJWTValidator("", "").ValidateToken("x")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestMiddleware_Authenticate(t *testing.T) {
	m := NewMiddleware(NewJWTValidator(testSecret, ""), "api-key", zap.NewNop())

	var got *UserContext
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(), testSecret))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, got)
		assert.Equal(t, "42", got.UserID)
	})

	t.Run("api key with tenant header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("x-api-key", "api-key")
		req.Header.Set("X-Tenant", "Globex")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, SystemUserID, got.UserID)
		assert.Equal(t, "globex", got.Tenant)
	})

	for name, setup := range map[string]func(*http.Request){
		"missing header": func(*http.Request) {},
		"wrong scheme":   func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") },
		"bad token":      func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") },
		"bad api key":    func(r *http.Request) { r.Header.Set("x-api-key", "wrong") },
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			setup(req)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestMiddleware_RequireWrite(t *testing.T) {
	m := NewMiddleware(NewJWTValidator(testSecret, ""), "", zap.NewNop())
	h := m.RequireWrite(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	viewer := WithUserContext(context.Background(), &UserContext{UserID: "1", Roles: []Role{RoleViewer}})
	sales := WithUserContext(context.Background(), &UserContext{UserID: "2", Roles: []Role{RoleSales}})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(viewer))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil).WithContext(viewer))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil).WithContext(sales))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestMiddleware_RequireRole(t *testing.T) {
	m := NewMiddleware(NewJWTValidator(testSecret, ""), "", zap.NewNop())
	h := m.RequireRole(RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	admin := WithUserContext(context.Background(), &UserContext{UserID: "1", Roles: []Role{RoleAdmin}})
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(admin))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestEffectiveTenant(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", EffectiveTenant(ctx))

	ctx = WithUserContext(ctx, &UserContext{UserID: "1", Tenant: "acme"})
	assert.Equal(t, "acme", EffectiveTenant(ctx))

	ctx = WithTenantFilter(ctx, &TenantFilter{Tenant: "globex"})
	assert.Equal(t, "globex", EffectiveTenant(ctx))
}

func TestUserContext_TenantAccess(t *testing.T) {
	admin := &UserContext{Roles: []Role{RoleAdmin}}
	assert.True(t, admin.IsCrossTenant())
	assert.True(t, admin.CanAccessTenant("anything"))

	scopedAdmin := &UserContext{Roles: []Role{RoleAdmin}, Tenant: "acme"}
	assert.False(t, scopedAdmin.IsCrossTenant())
	assert.True(t, scopedAdmin.CanAccessTenant("ACME"))
	assert.False(t, scopedAdmin.CanAccessTenant("globex"))
}

func TestActorFromContext(t *testing.T) {
	id, name := ActorFromContext(context.Background())
	assert.Empty(t, id)
	assert.Empty(t, name)

	ctx := WithUserContext(context.Background(), &UserContext{UserID: "7", Email: "x@y.z"})
	id, name = ActorFromContext(ctx)
	assert.Equal(t, "7", id)
	assert.Equal(t, "x@y.z", name)
}

func TestAuthenticate_TagsRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewMiddleware(NewJWTValidator(testSecret, "tenant"), "api-key", zap.New(core))

	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		applog.FromContext(r.Context(), zap.NewNop()).Info("handled")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-api-key", "api-key")
	req.Header.Set("X-Tenant", "acme")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("handled").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, SystemUserID, fields["user_id"])
	assert.Equal(t, "acme", fields["tenant"])
}
