package service_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuditLogService_Log(t *testing.T) {
	now := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)
	store := &fakeAudit{}
	svc := service.NewAuditLogService(store, zap.NewNop()).WithClock(fixedClock(now))

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: "u1", Email: "kari@example.com", Tenant: "stalbygg"})
	r := httptest.NewRequest("POST", "/api/v1/deals/7/advance", nil)
	r.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	r.Header.Set("X-Request-ID", "req-1")

	err := svc.Log(ctx, r, service.LogEntry{
		Action: domain.AuditActionUpdate, EntityType: "Deal", EntityID: "7", StatusCode: 200,
	})
	require.NoError(t, err)

	require.Len(t, store.logs, 1)
	entry := store.logs[0]
	assert.Equal(t, "u1", entry.UserID)
	assert.Equal(t, "kari@example.com", entry.UserEmail)
	assert.Equal(t, "stalbygg", entry.Tenant)
	assert.Equal(t, "10.0.0.1", entry.IPAddress)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "/api/v1/deals/7/advance", entry.Path)
	assert.Equal(t, now, entry.PerformedAt)
}

func TestAuditLogService_List(t *testing.T) {
	store := &fakeAudit{}
	svc := service.NewAuditLogService(store, zap.NewNop())
	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: "u1", Tenant: "hybridbygg"})

	_, _, err := svc.List(ctx, service.AuditLogQueryParams{EntityType: "Contact", PageSize: 1000})
	require.NoError(t, err)

	assert.Equal(t, "hybridbygg", store.lastFilter.Tenant)
	assert.Equal(t, "Contact", store.lastFilter.EntityType)
	assert.Equal(t, 1, store.lastPage)
	assert.Equal(t, 50, store.lastSize)
}

func TestAuditLogService_CleanupOldLogs(t *testing.T) {
	now := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)
	store := &fakeAudit{}
	svc := service.NewAuditLogService(store, zap.NewNop()).WithClock(fixedClock(now))

	_, err := svc.CleanupOldLogs(context.Background(), 90)
	require.NoError(t, err)
	require.Len(t, store.deleteCalls, 1)
	assert.Equal(t, now.AddDate(0, 0, -90), store.deleteCalls[0])

	_, err = svc.GetStats(context.Background(), now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
