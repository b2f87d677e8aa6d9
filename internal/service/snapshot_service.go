package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/domain"
	"go.uber.org/zap"
)

// SnapshotService stores one copy of the dashboard stats per tenant and day
type SnapshotService struct {
	dashboard *DashboardService
	snapshots SnapshotStore
	now       Clock
	logger    *zap.Logger
}

func NewSnapshotService(dashboard *DashboardService, snapshots SnapshotStore, logger *zap.Logger) *SnapshotService {
	return &SnapshotService{
		dashboard: dashboard,
		snapshots: snapshots,
		now:       systemClock,
		logger:    logger,
	}
}

// WithClock replaces the clock used for the snapshot date
func (s *SnapshotService) WithClock(now Clock) *SnapshotService {
	s.now = now
	return s
}

// Capture computes the dashboard stats scoped to tenant and upserts today's
// snapshot. An empty tenant captures the unscoped view.
func (s *SnapshotService) Capture(ctx context.Context, tenant string) (*domain.DashboardSnapshot, error) {
	ctx = auth.WithTenantFilter(ctx, &auth.TenantFilter{Tenant: tenant})
	stats := s.dashboard.GetStats(ctx)

	payload, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("failed to encode dashboard stats: %w", err)
	}

	now := s.now().UTC()
	snapshot := &domain.DashboardSnapshot{
		Tenant:         tenant,
		SnapshotDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		TotalLeads:     stats.TotalLeads,
		ActiveDeals:    stats.ActiveDeals,
		PipelineValue:  stats.PipelineValue,
		WonRevenue:     stats.WonRevenue,
		ConversionRate: stats.ConversionRate,
		Payload:        string(payload),
	}

	if err := s.snapshots.Upsert(ctx, snapshot); err != nil {
		s.logger.Error("Failed to store dashboard snapshot",
			zap.String("tenant", tenant),
			zap.Error(err))
		return nil, fmt.Errorf("failed to store dashboard snapshot: %w", err)
	}
	return snapshot, nil
}

// CaptureAll captures every tenant in turn and returns the number stored.
// A failing tenant is logged and does not stop the others.
func (s *SnapshotService) CaptureAll(ctx context.Context, tenants []string) (int, error) {
	if len(tenants) == 0 {
		tenants = []string{""}
	}

	stored := 0
	var firstErr error
	for _, tenant := range tenants {
		if err := ctx.Err(); err != nil {
			return stored, err
		}
		if _, err := s.Capture(ctx, tenant); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		stored++
	}
	return stored, firstErr
}
