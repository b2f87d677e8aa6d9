package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var dashboardNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func newDashboard(leads *fakeLeads, deals *fakeDeals, contacts *fakeContacts, activities *fakeActivities, snapshots service.SnapshotStore) *service.DashboardService {
	return service.NewDashboardService(leads, deals, contacts, activities, snapshots, zap.NewNop()).
		WithClock(fixedClock(dashboardNow))
}

func TestDashboardService_GetStats(t *testing.T) {
	leads := newFakeLeads(
		domain.LeadCompany{ID: "1", Status: domain.LeadStatusQualified},
		domain.LeadCompany{ID: "2", Status: domain.LeadStatusConverted},
		domain.LeadCompany{ID: "3", Status: domain.LeadStatusNew},
	)
	deals := newFakeDeals(
		domain.Deal{ID: "1", Stage: domain.DealStageDiscovery, Value: 100},
		domain.Deal{ID: "2", Stage: domain.DealStageNegotiation, Value: 200},
		domain.Deal{ID: "3", Stage: domain.DealStageClosedWon, Value: 500},
		domain.Deal{ID: "4", Stage: domain.DealStageClosedLost, Value: 50},
	)
	contacts := newFakeContacts(domain.Contact{ID: "1"}, domain.Contact{ID: "2"})
	activities := newFakeActivities(domain.Activity{ID: "1"})

	stats := newDashboard(leads, deals, contacts, activities, nil).GetStats(context.Background())

	assert.Equal(t, 3, stats.TotalLeads)
	assert.Equal(t, 67, stats.ConversionRate)
	assert.Equal(t, 2, stats.ActiveDeals)
	assert.Equal(t, 300.0, stats.PipelineValue, "closed deals are not pipeline")
	assert.Equal(t, 500.0, stats.WonRevenue)
	assert.Equal(t, 2, stats.TotalContacts)
	assert.Equal(t, 1, stats.TotalActivities)
	assert.Equal(t, dashboardNow, stats.GeneratedAt)
}

func TestDashboardService_GetStats_Empty(t *testing.T) {
	stats := newDashboard(newFakeLeads(), newFakeDeals(), newFakeContacts(), newFakeActivities(), nil).
		GetStats(context.Background())

	assert.Equal(t, 0, stats.TotalLeads)
	assert.Equal(t, 0, stats.ConversionRate)
	assert.Equal(t, 0.0, stats.PipelineValue)
	assert.Equal(t, domain.DashboardChanges{}, stats.Changes)
}

func TestDashboardService_MonthOverMonth(t *testing.T) {
	at := func(month time.Month, day int) time.Time {
		return time.Date(2026, month, day, 9, 0, 0, 0, time.UTC)
	}

	t.Run("compares adjacent calendar months", func(t *testing.T) {
		leads := newFakeLeads(
			domain.LeadCompany{ID: "1", Status: domain.LeadStatusQualified, CreatedAt: at(time.October, 2)},
			domain.LeadCompany{ID: "2", Status: domain.LeadStatusNew, CreatedAt: at(time.October, 10)},
			domain.LeadCompany{ID: "3", Status: domain.LeadStatusQualified, CreatedAt: at(time.September, 20)},
			domain.LeadCompany{ID: "4", Status: domain.LeadStatusNew, CreatedAt: at(time.September, 21)},
			domain.LeadCompany{ID: "5", Status: domain.LeadStatusNew, CreatedAt: at(time.August, 1)},
		)
		deals := newFakeDeals(
			domain.Deal{ID: "1", Stage: domain.DealStageDiscovery, CreatedAt: at(time.October, 3)},
			domain.Deal{ID: "2", Stage: domain.DealStageProposal, CreatedAt: at(time.October, 4)},
			domain.Deal{ID: "3", Stage: domain.DealStageClosedWon, Value: 300, CreatedAt: at(time.October, 5)},
			domain.Deal{ID: "4", Stage: domain.DealStageNegotiation, CreatedAt: at(time.September, 10)},
			domain.Deal{ID: "5", Stage: domain.DealStageClosedWon, Value: 200, CreatedAt: at(time.September, 12)},
		)

		stats := newDashboard(leads, deals, newFakeContacts(), newFakeActivities(), nil).GetStats(context.Background())

		assert.Equal(t, 0, stats.Changes.Leads)
		assert.Equal(t, 0, stats.Changes.ConversionRate)
		assert.Equal(t, 100, stats.Changes.ActiveDeals)
		assert.Equal(t, 50, stats.Changes.Revenue)
	})

	t.Run("empty previous month", func(t *testing.T) {
		leads := newFakeLeads(domain.LeadCompany{ID: "1", CreatedAt: at(time.October, 1)})

		stats := newDashboard(leads, newFakeDeals(), newFakeContacts(), newFakeActivities(), nil).GetStats(context.Background())

		assert.Equal(t, 100, stats.Changes.Leads)
		assert.Equal(t, 0, stats.Changes.Revenue)
	})
}

func TestDashboardService_GetWeeklyLeadsData(t *testing.T) {
	const day = 24 * time.Hour
	leads := newFakeLeads(
		domain.LeadCompany{ID: "now", Status: domain.LeadStatusQualified, CreatedAt: dashboardNow},
		domain.LeadCompany{ID: "week-edge", CreatedAt: dashboardNow.Add(-7 * day)},
		domain.LeadCompany{ID: "before-edge", CreatedAt: dashboardNow.Add(-7*day - time.Second)},
		domain.LeadCompany{ID: "oldest", Status: domain.LeadStatusConverted, CreatedAt: dashboardNow.Add(-49 * day)},
		domain.LeadCompany{ID: "too-old", CreatedAt: dashboardNow.Add(-49*day - time.Second)},
		domain.LeadCompany{ID: "future", CreatedAt: dashboardNow.Add(time.Hour)},
		domain.LeadCompany{ID: "no-date"},
	)

	weeks := newDashboard(leads, newFakeDeals(), newFakeContacts(), newFakeActivities(), nil).
		GetWeeklyLeadsData(context.Background())

	require.Len(t, weeks, 7)
	assert.Equal(t, "Week 1", weeks[0].Week)
	assert.Equal(t, "Week 6", weeks[5].Week)
	assert.Equal(t, "This Week", weeks[6].Week)

	assert.Equal(t, 2, weeks[6].Leads)
	assert.Equal(t, 1, weeks[6].Qualified)
	assert.Equal(t, 1, weeks[5].Leads)
	assert.Equal(t, 1, weeks[0].Leads)
	assert.Equal(t, 1, weeks[0].Qualified)

	total := 0
	for _, w := range weeks {
		total += w.Leads
	}
	assert.Equal(t, 4, total)
}

func TestDashboardService_GetPipelineStages(t *testing.T) {
	leads := newFakeLeads(
		domain.LeadCompany{ID: "1", CompanyName: "Acme Corp", Status: domain.LeadStatusNew, DealValue: 10},
		domain.LeadCompany{ID: "2", CompanyName: "Legacy", Status: domain.LeadStatusActive},
		domain.LeadCompany{ID: "3", CompanyName: "Unset"},
		domain.LeadCompany{ID: "4", CompanyName: "Qualified Co", Status: domain.LeadStatusQualified},
		domain.LeadCompany{ID: "5", CompanyName: "Contacted", Status: domain.LeadStatusContacted},
	)
	deals := newFakeDeals(
		domain.Deal{ID: "1", Name: "Roof", Stage: domain.DealStageProposal, ClientAccount: &domain.Ref{ID: "9", Name: "Nordic Steel"}},
		domain.Deal{ID: "2", Name: "Hall", Stage: domain.DealStageNegotiation},
		domain.Deal{ID: "3", Name: "Done", Stage: domain.DealStageClosedWon},
	)

	stages := newDashboard(leads, deals, newFakeContacts(), newFakeActivities(), nil).GetPipelineStages(context.Background())

	require.Len(t, stages.Leads, 3)
	assert.Equal(t, "AC", stages.Leads[0].Initials)
	assert.Equal(t, "Never", stages.Leads[0].LastActivity)
	require.Len(t, stages.Qualified, 1)
	assert.Equal(t, "4", stages.Qualified[0].ID)
	require.Len(t, stages.Proposal, 1)
	assert.Equal(t, "NS", stages.Proposal[0].Initials)
	require.Len(t, stages.Negotiation, 1)
	assert.Equal(t, "H", stages.Negotiation[0].Initials)
}

func TestDashboardService_GetSnapshots(t *testing.T) {
	t.Run("without local database", func(t *testing.T) {
		svc := newDashboard(newFakeLeads(), newFakeDeals(), newFakeContacts(), newFakeActivities(), nil)
		assert.Empty(t, svc.GetSnapshots(context.Background(), 7))
	})

	t.Run("scoped to the caller's tenant", func(t *testing.T) {
		store := &fakeSnapshots{saved: []domain.DashboardSnapshot{
			{Tenant: "stalbygg", SnapshotDate: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), TotalLeads: 4},
			{Tenant: "hybridbygg", SnapshotDate: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), TotalLeads: 9},
			{Tenant: "stalbygg", SnapshotDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), TotalLeads: 1},
		}}
		svc := newDashboard(newFakeLeads(), newFakeDeals(), newFakeContacts(), newFakeActivities(), store)
		ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: "u1", Tenant: "stalbygg"})

		got := svc.GetSnapshots(ctx, 30)
		require.Len(t, got, 1)
		assert.Equal(t, 4, got[0].TotalLeads)
	})

	t.Run("read failure degrades to empty", func(t *testing.T) {
		store := &fakeSnapshots{fail: errBackendDown}
		svc := newDashboard(newFakeLeads(), newFakeDeals(), newFakeContacts(), newFakeActivities(), store)
		assert.Empty(t, svc.GetSnapshots(context.Background(), 0))
	})
}
