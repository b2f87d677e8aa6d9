package service

import (
	"context"
	"time"

	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/mapper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	leads      LeadCompanyStore
	deals      DealStore
	contacts   ContactStore
	activities ActivityStore
	snapshots  SnapshotStore
	now        Clock
	logger     *zap.Logger
}

// NewDashboardService creates the dashboard aggregator. snapshots may be nil
// when the local database is disabled.
func NewDashboardService(
	leads LeadCompanyStore,
	deals DealStore,
	contacts ContactStore,
	activities ActivityStore,
	snapshots SnapshotStore,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		leads:      leads,
		deals:      deals,
		contacts:   contacts,
		activities: activities,
		snapshots:  snapshots,
		now:        systemClock,
		logger:     logger,
	}
}

// WithClock replaces the time source
func (s *DashboardService) WithClock(now Clock) *DashboardService {
	s.now = now
	return s
}

// GetStats computes the headline KPIs. The four collections are fetched
// concurrently; a failed fetch contributes an empty collection.
func (s *DashboardService) GetStats(ctx context.Context) *domain.DashboardStats {
	var (
		leads      []domain.LeadCompany
		deals      []domain.Deal
		contacts   []domain.Contact
		activities []domain.Activity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { leads = s.leads.All(gctx); return nil })
	g.Go(func() error { deals = s.deals.All(gctx); return nil })
	g.Go(func() error { contacts = s.contacts.All(gctx); return nil })
	g.Go(func() error { activities = s.activities.All(gctx); return nil })
	_ = g.Wait()

	now := s.now()
	stats := &domain.DashboardStats{
		TotalLeads:      len(leads),
		ConversionRate:  conversionRate(leads),
		TotalContacts:   len(contacts),
		TotalActivities: len(activities),
		GeneratedAt:     now,
	}
	for i := range deals {
		d := &deals[i]
		if d.Stage.IsActive() {
			stats.ActiveDeals++
			stats.PipelineValue += d.Value
		}
		if d.Stage == domain.DealStageClosedWon {
			stats.WonRevenue += d.Value
		}
	}
	stats.Changes = monthOverMonth(leads, deals, now)

	s.logger.Debug("Dashboard stats computed",
		zap.String("tenant", auth.EffectiveTenant(ctx)),
		zap.Int("leads", len(leads)),
		zap.Int("deals", len(deals)),
	)
	return stats
}

// conversionRate is the share of leads with status QUALIFIED or CONVERTED
func conversionRate(leads []domain.LeadCompany) int {
	qualified := 0
	for i := range leads {
		if leads[i].Status.IsQualified() {
			qualified++
		}
	}
	return mapper.Percent(qualified, len(leads))
}

type periodTotals struct {
	leads       []domain.LeadCompany
	activeDeals int
	wonRevenue  float64
}

// monthOverMonth compares records created in the current calendar month with
// those created in the previous one
func monthOverMonth(leads []domain.LeadCompany, deals []domain.Deal, now time.Time) domain.DashboardChanges {
	curStart, curEnd := monthBounds(now)
	prevStart, prevEnd := previousMonthBounds(now)

	var cur, prev periodTotals
	for _, l := range leads {
		switch {
		case within(l.CreatedAt, curStart, curEnd):
			cur.leads = append(cur.leads, l)
		case within(l.CreatedAt, prevStart, prevEnd):
			prev.leads = append(prev.leads, l)
		}
	}
	for i := range deals {
		d := &deals[i]
		var p *periodTotals
		switch {
		case within(d.CreatedAt, curStart, curEnd):
			p = &cur
		case within(d.CreatedAt, prevStart, prevEnd):
			p = &prev
		default:
			continue
		}
		if d.Stage.IsActive() {
			p.activeDeals++
		}
		if d.Stage == domain.DealStageClosedWon {
			p.wonRevenue += d.Value
		}
	}

	return domain.DashboardChanges{
		Leads:          mapper.PercentChange(float64(len(cur.leads)), float64(len(prev.leads))),
		ActiveDeals:    mapper.PercentChange(float64(cur.activeDeals), float64(prev.activeDeals)),
		Revenue:        mapper.PercentChange(cur.wonRevenue, prev.wonRevenue),
		ConversionRate: mapper.PercentChange(float64(conversionRate(cur.leads)), float64(conversionRate(prev.leads))),
	}
}

// GetWeeklyLeadsData buckets leads by creation time into seven rolling weeks
func (s *DashboardService) GetWeeklyLeadsData(ctx context.Context) []domain.WeeklyLeads {
	leads := s.leads.All(ctx)
	buckets := weekBuckets(s.now())

	for i := range leads {
		idx := bucketIndex(buckets, leads[i].CreatedAt)
		if idx < 0 {
			continue
		}
		buckets[idx].Leads++
		if leads[i].Status.IsQualified() {
			buckets[idx].Qualified++
		}
	}
	return buckets
}

// GetPipelineStages builds the four-column funnel: new and qualified leads,
// then deals in proposal and negotiation
func (s *DashboardService) GetPipelineStages(ctx context.Context) *domain.PipelineStages {
	var (
		leads []domain.LeadCompany
		deals []domain.Deal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { leads = s.leads.All(gctx); return nil })
	g.Go(func() error { deals = s.deals.All(gctx); return nil })
	_ = g.Wait()

	now := s.now()
	out := &domain.PipelineStages{
		Leads:       []domain.PipelineCard{},
		Qualified:   []domain.PipelineCard{},
		Proposal:    []domain.PipelineCard{},
		Negotiation: []domain.PipelineCard{},
	}
	for i := range leads {
		switch leads[i].Status {
		case domain.LeadStatusNew, domain.LeadStatusActive, "":
			out.Leads = append(out.Leads, mapper.LeadToCard(&leads[i], now))
		case domain.LeadStatusQualified:
			out.Qualified = append(out.Qualified, mapper.LeadToCard(&leads[i], now))
		}
	}
	for i := range deals {
		switch deals[i].Stage {
		case domain.DealStageProposal:
			out.Proposal = append(out.Proposal, mapper.DealToCard(&deals[i], now))
		case domain.DealStageNegotiation:
			out.Negotiation = append(out.Negotiation, mapper.DealToCard(&deals[i], now))
		}
	}
	return out
}

// GetSnapshots returns the stored daily snapshots of the last days days.
// Without a local database the history is empty.
func (s *DashboardService) GetSnapshots(ctx context.Context, days int) []domain.DashboardSnapshot {
	if s.snapshots == nil {
		return []domain.DashboardSnapshot{}
	}
	if days <= 0 || days > 366 {
		days = 30
	}
	now := s.now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -days)

	snapshots, err := s.snapshots.ListRange(ctx, auth.EffectiveTenant(ctx), from, to)
	if err != nil {
		s.logger.Warn("Failed to read dashboard snapshots", zap.Error(err))
		return []domain.DashboardSnapshot{}
	}
	return snapshots
}
