package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSnapshotService_Capture(t *testing.T) {
	now := time.Date(2026, time.October, 19, 23, 59, 0, 0, time.UTC)
	leads := newFakeLeads(
		domain.LeadCompany{ID: "1", Status: domain.LeadStatusQualified},
		domain.LeadCompany{ID: "2"},
	)
	deals := newFakeDeals(domain.Deal{ID: "1", Stage: domain.DealStageProposal, Value: 250})
	dashboard := newDashboard(leads, deals, newFakeContacts(), newFakeActivities(), nil)
	store := &fakeSnapshots{}
	svc := service.NewSnapshotService(dashboard, store, zap.NewNop()).WithClock(fixedClock(now))

	snap, err := svc.Capture(context.Background(), "stalbygg")
	require.NoError(t, err)

	assert.Equal(t, "stalbygg", snap.Tenant)
	assert.Equal(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), snap.SnapshotDate)
	assert.Equal(t, 2, snap.TotalLeads)
	assert.Equal(t, 50, snap.ConversionRate)
	assert.Equal(t, 250.0, snap.PipelineValue)

	var payload domain.DashboardStats
	require.NoError(t, json.Unmarshal([]byte(snap.Payload), &payload))
	assert.Equal(t, 1, payload.ActiveDeals)

	_, err = svc.Capture(context.Background(), "stalbygg")
	require.NoError(t, err)
	assert.Len(t, store.saved, 1, "same tenant and day is replaced")
}

func TestSnapshotService_CaptureAll(t *testing.T) {
	dashboard := newDashboard(newFakeLeads(), newFakeDeals(), newFakeContacts(), newFakeActivities(), nil)

	t.Run("every tenant", func(t *testing.T) {
		store := &fakeSnapshots{}
		svc := service.NewSnapshotService(dashboard, store, zap.NewNop())

		n, err := svc.CaptureAll(context.Background(), []string{"stalbygg", "hybridbygg"})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Len(t, store.saved, 2)
	})

	t.Run("no tenants captures the unscoped view", func(t *testing.T) {
		store := &fakeSnapshots{}
		svc := service.NewSnapshotService(dashboard, store, zap.NewNop())

		n, err := svc.CaptureAll(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "", store.saved[0].Tenant)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		svc := service.NewSnapshotService(dashboard, &fakeSnapshots{fail: errBackendDown}, zap.NewNop())

		n, err := svc.CaptureAll(context.Background(), []string{"a", "b"})
		assert.ErrorIs(t, err, errBackendDown)
		assert.Equal(t, 0, n)
	})
}
