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

func closeOn(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDealService_GetPipelineData(t *testing.T) {
	t.Run("no deals", func(t *testing.T) {
		svc := service.NewDealService(newFakeDeals(), nil, zap.NewNop())
		data := svc.GetPipelineData(context.Background())

		require.Len(t, data.Stages, 5)
		assert.Equal(t, domain.DealStageDiscovery, data.Stages[0].Stage)
		assert.Equal(t, domain.DealStageClosedLost, data.Stages[4].Stage)
		assert.Equal(t, 0, data.TotalDeals)
		assert.Equal(t, 0.0, data.AverageDealSize)
	})

	t.Run("groups by stage", func(t *testing.T) {
		deals := newFakeDeals(
			domain.Deal{ID: "1", Stage: domain.DealStageDiscovery, Value: 100},
			domain.Deal{ID: "2", Stage: domain.DealStageDiscovery, Value: 300},
			domain.Deal{ID: "3", Stage: domain.DealStageClosedWon, Value: 200},
		)
		data := service.NewDealService(deals, nil, zap.NewNop()).GetPipelineData(context.Background())

		assert.Equal(t, 3, data.TotalDeals)
		assert.Equal(t, 600.0, data.TotalValue)
		assert.Equal(t, 200.0, data.AverageDealSize)
		assert.Equal(t, 2, data.Stages[0].Count)
		assert.Equal(t, 400.0, data.Stages[0].Value)
		assert.Equal(t, 0, data.Stages[1].Count)
		assert.Equal(t, 1, data.Stages[3].Count)
	})
}

func TestDealService_GetStats(t *testing.T) {
	t.Run("win rate over closed deals", func(t *testing.T) {
		deals := newFakeDeals(
			domain.Deal{ID: "1", Stage: domain.DealStageClosedWon, Value: 900},
			domain.Deal{ID: "2", Stage: domain.DealStageClosedLost, Value: 100},
			domain.Deal{ID: "3", Stage: domain.DealStageClosedLost, Value: 100},
			domain.Deal{ID: "4", Stage: domain.DealStageProposal, Value: 50},
		)
		stats := service.NewDealService(deals, nil, zap.NewNop()).GetStats(context.Background())

		assert.Equal(t, 4, stats.TotalDeals)
		assert.Equal(t, 1, stats.OpenDeals)
		assert.Equal(t, 1, stats.WonDeals)
		assert.Equal(t, 2, stats.LostDeals)
		assert.Equal(t, 900.0, stats.WonValue)
		assert.Equal(t, 200.0, stats.LostValue)
		assert.Equal(t, 50.0, stats.OpenValue)
		assert.InDelta(t, 33.333, stats.WinRate, 0.001)
	})

	t.Run("no closed deals", func(t *testing.T) {
		deals := newFakeDeals(domain.Deal{ID: "1", Stage: domain.DealStageDiscovery})
		stats := service.NewDealService(deals, nil, zap.NewNop()).GetStats(context.Background())
		assert.Equal(t, 0.0, stats.WinRate)
	})
}

func TestDealService_MoveToNextStage(t *testing.T) {
	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: "u7", Username: "kari", Tenant: "stalbygg"})

	t.Run("advances and records history", func(t *testing.T) {
		deals := newFakeDeals(domain.Deal{ID: "1", Name: "Roof", Stage: domain.DealStageDiscovery, Probability: 20, Value: 1000})
		history := &fakeHistory{}
		svc := service.NewDealService(deals, history, zap.NewNop())

		deal, err := svc.MoveToNextStage(ctx, "1", "sent offer")
		require.NoError(t, err)
		assert.Equal(t, domain.DealStageProposal, deal.Stage)
		assert.Equal(t, 50.0, deal.Probability)

		require.Len(t, history.rows, 1)
		row := history.rows[0]
		require.NotNil(t, row.FromStage)
		assert.Equal(t, domain.DealStageDiscovery, *row.FromStage)
		assert.Equal(t, domain.DealStageProposal, row.ToStage)
		assert.Equal(t, "stalbygg", row.Tenant)
		assert.Equal(t, "u7", row.ChangedByID)
		assert.Equal(t, "sent offer", row.Notes)
	})

	t.Run("negotiation moves to won", func(t *testing.T) {
		deals := newFakeDeals(domain.Deal{ID: "1", Stage: domain.DealStageNegotiation})
		deal, err := service.NewDealService(deals, nil, zap.NewNop()).MoveToNextStage(ctx, "1", "")
		require.NoError(t, err)
		assert.Equal(t, domain.DealStageClosedWon, deal.Stage)
		assert.Equal(t, 100.0, deal.Probability)
	})

	for _, stage := range []domain.DealStage{domain.DealStageClosedWon, domain.DealStageClosedLost} {
		t.Run("terminal "+string(stage), func(t *testing.T) {
			deals := newFakeDeals(domain.Deal{ID: "1", Stage: stage})
			history := &fakeHistory{}
			svc := service.NewDealService(deals, history, zap.NewNop())

			_, err := svc.MoveToNextStage(ctx, "1", "")
			assert.ErrorIs(t, err, service.ErrNoNextStage)
			assert.Empty(t, deals.writeLog())
			assert.Empty(t, history.rows)
		})
	}

	t.Run("unknown deal", func(t *testing.T) {
		_, err := service.NewDealService(newFakeDeals(), nil, zap.NewNop()).MoveToNextStage(ctx, "404", "")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("history failure does not fail the stage change", func(t *testing.T) {
		deals := newFakeDeals(domain.Deal{ID: "1", Stage: domain.DealStageDiscovery})
		svc := service.NewDealService(deals, &fakeHistory{fail: errBackendDown}, zap.NewNop())

		deal, err := svc.MoveToNextStage(ctx, "1", "")
		require.NoError(t, err)
		assert.Equal(t, domain.DealStageProposal, deal.Stage)
	})
}

func TestDealService_CloseDeal(t *testing.T) {
	deals := newFakeDeals(
		domain.Deal{ID: "open", Stage: domain.DealStageProposal},
		domain.Deal{ID: "won", Stage: domain.DealStageClosedWon},
	)
	svc := service.NewDealService(deals, nil, zap.NewNop())

	deal, err := svc.CloseDeal(context.Background(), "open", false, "budget cut")
	require.NoError(t, err)
	assert.Equal(t, domain.DealStageClosedLost, deal.Stage)
	assert.Equal(t, 0.0, deal.Probability)

	_, err = svc.CloseDeal(context.Background(), "won", false, "")
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestDealService_GetForecast(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	deals := newFakeDeals(
		domain.Deal{ID: "1", Stage: domain.DealStageProposal, Value: 1000, Probability: 50, CloseDate: closeOn("2026-10-10")},
		domain.Deal{ID: "2", Stage: domain.DealStageClosedLost, Value: 9999, Probability: 0, CloseDate: closeOn("2026-10-15")},
		domain.Deal{ID: "3", Stage: domain.DealStageNegotiation, Value: 400, Probability: 75, CloseDate: closeOn("2026-11-02")},
		domain.Deal{ID: "4", Stage: domain.DealStageDiscovery, Value: 50, Probability: 20},
	)
	svc := service.NewDealService(deals, nil, zap.NewNop()).WithClock(fixedClock(now))

	t.Run("month", func(t *testing.T) {
		f, err := svc.GetForecast(context.Background(), domain.ForecastMonth)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), f.StartDate)
		assert.Equal(t, time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC), f.EndDate)
		assert.Equal(t, 1, f.DealCount)
		assert.Equal(t, 1000.0, f.TotalValue)
		assert.Equal(t, 500.0, f.WeightedValue)
		require.Len(t, f.ByStage, 1)
		assert.Equal(t, domain.DealStageProposal, f.ByStage[0].Stage)
	})

	t.Run("quarter", func(t *testing.T) {
		f, err := svc.GetForecast(context.Background(), domain.ForecastQuarter)
		require.NoError(t, err)

		assert.Equal(t, 2, f.DealCount)
		assert.Equal(t, 1400.0, f.TotalValue)
		assert.Equal(t, 800.0, f.WeightedValue)
		require.Len(t, f.ByStage, 2)
		assert.Equal(t, domain.DealStageNegotiation, f.ByStage[1].Stage)
	})

	t.Run("default period is month", func(t *testing.T) {
		f, err := svc.GetForecast(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, domain.ForecastMonth, f.Period)
	})

	t.Run("unknown period", func(t *testing.T) {
		_, err := svc.GetForecast(context.Background(), "decade")
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestDealService_Create(t *testing.T) {
	t.Run("defaults stage and probability", func(t *testing.T) {
		deals := newFakeDeals()
		history := &fakeHistory{}
		svc := service.NewDealService(deals, history, zap.NewNop())

		deal, err := svc.Create(context.Background(), &domain.CreateDealRequest{Name: "Roof", Value: 100, LeadCompany: "3"})
		require.NoError(t, err)
		assert.Equal(t, domain.DealStageDiscovery, deal.Stage)
		assert.Equal(t, 20.0, deal.Probability)
		assert.Equal(t, "3", domain.RefID(deal.LeadCompany))

		require.Len(t, history.rows, 1)
		assert.Nil(t, history.rows[0].FromStage)
	})

	t.Run("rejects two owners", func(t *testing.T) {
		deals := newFakeDeals()
		_, err := service.NewDealService(deals, nil, zap.NewNop()).Create(context.Background(),
			&domain.CreateDealRequest{Name: "x", LeadCompany: "1", ClientAccount: "2"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
		assert.Empty(t, deals.writeLog())
	})

	t.Run("backend failure is wrapped", func(t *testing.T) {
		deals := newFakeDeals()
		deals.failCreate = errBackendDown
		_, err := service.NewDealService(deals, nil, zap.NewNop()).Create(context.Background(), &domain.CreateDealRequest{Name: "x"})
		assert.ErrorIs(t, err, errBackendDown)
		assert.Contains(t, err.Error(), "failed to create deal")
	})
}

func TestDealService_History(t *testing.T) {
	t.Run("requires the local database", func(t *testing.T) {
		svc := service.NewDealService(newFakeDeals(domain.Deal{ID: "1"}), nil, zap.NewNop())
		_, err := svc.GetHistory(context.Background(), "1")
		assert.ErrorIs(t, err, service.ErrHistoryUnavailable)
	})

	t.Run("delete removes history", func(t *testing.T) {
		deals := newFakeDeals(domain.Deal{ID: "1", Stage: domain.DealStageDiscovery})
		history := &fakeHistory{}
		svc := service.NewDealService(deals, history, zap.NewNop())

		_, err := svc.MoveToNextStage(context.Background(), "1", "")
		require.NoError(t, err)
		rows, err := svc.GetHistory(context.Background(), "1")
		require.NoError(t, err)
		assert.Len(t, rows, 1)

		require.NoError(t, svc.Delete(context.Background(), "1"))
		assert.Empty(t, history.rows)

		err = svc.Delete(context.Background(), "1")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
