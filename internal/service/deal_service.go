package service

import (
	"context"
	"fmt"
	"time"

	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/mapper"
	"github.com/straye-as/crm-portal/internal/repository"
	"go.uber.org/zap"
)

type DealService struct {
	deals   DealStore
	history StageHistoryStore
	now     Clock
	logger  *zap.Logger
}

// NewDealService creates the deal service. history may be nil when the local
// database is disabled; stage changes are then not recorded.
func NewDealService(deals DealStore, history StageHistoryStore, logger *zap.Logger) *DealService {
	return &DealService{
		deals:   deals,
		history: history,
		now:     systemClock,
		logger:  logger,
	}
}

// WithClock replaces the time source
func (s *DealService) WithClock(now Clock) *DealService {
	s.now = now
	return s
}

func (s *DealService) List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.Deal] {
	return s.deals.List(ctx, params)
}

func (s *DealService) GetByID(ctx context.Context, id string) (*domain.Deal, error) {
	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return deal, nil
}

func (s *DealService) GetByStage(ctx context.Context, stage domain.DealStage, params repository.ListParams) (*domain.ListResult[domain.Deal], error) {
	if !stage.IsValid() {
		return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, stage)
	}
	return s.deals.GetByStage(ctx, stage, params), nil
}

func (s *DealService) GetByLeadCompany(ctx context.Context, leadID string, params repository.ListParams) *domain.ListResult[domain.Deal] {
	return s.deals.GetByLeadCompany(ctx, leadID, params)
}

func (s *DealService) GetByClientAccount(ctx context.Context, accountID string, params repository.ListParams) *domain.ListResult[domain.Deal] {
	return s.deals.GetByClientAccount(ctx, accountID, params)
}

func (s *DealService) GetByContact(ctx context.Context, contactID string, params repository.ListParams) *domain.ListResult[domain.Deal] {
	return s.deals.GetByContact(ctx, contactID, params)
}

// Create stores a new deal. Stage defaults to DISCOVERY and probability to the stage default.
func (s *DealService) Create(ctx context.Context, req *domain.CreateDealRequest) (*domain.Deal, error) {
	if req.LeadCompany != "" && req.ClientAccount != "" {
		return nil, fmt.Errorf("%w: a deal belongs to a lead company or a client account, not both", ErrInvalidInput)
	}
	if req.Stage == "" {
		req.Stage = domain.DealStageDiscovery
	}
	if !req.Stage.IsValid() {
		return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, req.Stage)
	}
	if req.Probability == nil {
		p := req.Stage.DefaultProbability()
		req.Probability = &p
	}

	deal, err := s.deals.Create(ctx, req)
	if err != nil {
		return nil, mapper.FormatError("deal", "create", err)
	}
	s.recordStageChange(ctx, deal, "", "")

	s.logger.Info("Deal created",
		zap.String("deal_id", deal.ID),
		zap.String("stage", string(deal.Stage)),
		zap.Float64("value", deal.Value),
	)
	return deal, nil
}

func (s *DealService) Update(ctx context.Context, id string, req *domain.UpdateDealRequest) (*domain.Deal, error) {
	deal, err := s.deals.Update(ctx, id, req)
	if err != nil {
		return nil, mapper.FormatError("deal", "update", notFound(err))
	}
	return deal, nil
}

func (s *DealService) Delete(ctx context.Context, id string) error {
	if err := s.deals.Delete(ctx, id); err != nil {
		return mapper.FormatError("deal", "delete", notFound(err))
	}
	if s.history != nil {
		if err := s.history.DeleteByDealID(ctx, id); err != nil {
			s.logger.Warn("Failed to remove deal stage history", zap.String("deal_id", id), zap.Error(err))
		}
	}
	return nil
}

// MoveToNextStage advances DISCOVERY→PROPOSAL→NEGOTIATION→CLOSED_WON and sets
// the stage's default probability. Terminal deals return ErrNoNextStage without a write.
func (s *DealService) MoveToNextStage(ctx context.Context, id, notes string) (*domain.Deal, error) {
	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	next, ok := deal.Stage.Next()
	if !ok {
		return nil, fmt.Errorf("%w: deal %s is in stage %s", ErrNoNextStage, id, deal.Stage)
	}
	return s.changeStage(ctx, deal, next, notes)
}

// CloseDeal moves an open deal to CLOSED_WON or CLOSED_LOST
func (s *DealService) CloseDeal(ctx context.Context, id string, won bool, notes string) (*domain.Deal, error) {
	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !deal.Stage.IsActive() {
		return nil, fmt.Errorf("%w: deal %s is already %s", ErrInvalidTransition, id, deal.Stage)
	}

	target := domain.DealStageClosedLost
	if won {
		target = domain.DealStageClosedWon
	}
	return s.changeStage(ctx, deal, target, notes)
}

func (s *DealService) changeStage(ctx context.Context, deal *domain.Deal, to domain.DealStage, notes string) (*domain.Deal, error) {
	from := deal.Stage
	payload := map[string]any{
		"stage":       to,
		"probability": to.DefaultProbability(),
	}
	updated, err := s.deals.Update(ctx, deal.ID, payload)
	if err != nil {
		return nil, mapper.FormatError("deal", "update stage of", err)
	}

	s.recordStageChange(ctx, updated, from, notes)
	s.logger.Info("Deal stage changed",
		zap.String("deal_id", deal.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return updated, nil
}

// recordStageChange writes the local history row. The backend write has
// already happened, so a failure here is only logged.
func (s *DealService) recordStageChange(ctx context.Context, deal *domain.Deal, from domain.DealStage, notes string) {
	if s.history == nil || deal == nil {
		return
	}
	userID, userName := auth.ActorFromContext(ctx)
	row := mapper.DealToStageHistory(deal, from, auth.EffectiveTenant(ctx), userID, userName, notes)
	row.ChangedAt = s.now()
	if err := s.history.Create(ctx, row); err != nil {
		s.logger.Warn("Failed to record deal stage history", zap.String("deal_id", deal.ID), zap.Error(err))
	}
}

// GetHistory returns the recorded stage changes of a deal, newest first
func (s *DealService) GetHistory(ctx context.Context, id string) ([]domain.DealStageHistory, error) {
	if s.history == nil {
		return nil, ErrHistoryUnavailable
	}
	if _, err := s.deals.GetByID(ctx, id); err != nil {
		return nil, notFound(err)
	}
	history, err := s.history.GetByDealID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage history: %w", err)
	}
	return history, nil
}

// GetPipelineData groups deals by stage. Every stage is present, in pipeline order.
func (s *DealService) GetPipelineData(ctx context.Context) *domain.PipelineData {
	deals := s.deals.All(ctx)

	index := make(map[domain.DealStage]int, len(domain.DealStages))
	out := &domain.PipelineData{Stages: make([]domain.StageSummary, len(domain.DealStages))}
	for i, stage := range domain.DealStages {
		out.Stages[i].Stage = stage
		index[stage] = i
	}

	for i := range deals {
		d := &deals[i]
		out.TotalDeals++
		out.TotalValue += d.Value
		if idx, ok := index[d.Stage]; ok {
			out.Stages[idx].Count++
			out.Stages[idx].Value += d.Value
		}
	}
	if out.TotalDeals > 0 {
		out.AverageDealSize = out.TotalValue / float64(out.TotalDeals)
	}
	return out
}

// GetForecast sums deals closing in the current month, quarter or year.
// Lost deals are excluded; weighted value is Σ value·probability/100.
func (s *DealService) GetForecast(ctx context.Context, period domain.ForecastPeriod) (*domain.Forecast, error) {
	if period == "" {
		period = domain.ForecastMonth
	}
	if !period.IsValid() {
		return nil, fmt.Errorf("%w: unknown forecast period %q", ErrInvalidInput, period)
	}

	start, end := forecastBounds(period, s.now())
	deals := s.deals.GetByCloseDateRange(ctx, start, end.Add(-time.Second))

	out := &domain.Forecast{
		Period:    period,
		StartDate: start,
		EndDate:   end,
		ByStage:   []domain.ForecastStage{},
	}
	byStage := make(map[domain.DealStage]*domain.ForecastStage)
	for i := range deals {
		d := &deals[i]
		if d.Stage == domain.DealStageClosedLost || !within(d.CloseDate.Time, start, end) {
			continue
		}
		weighted := d.Value * d.Probability / 100

		out.DealCount++
		out.TotalValue += d.Value
		out.WeightedValue += weighted

		fs, ok := byStage[d.Stage]
		if !ok {
			fs = &domain.ForecastStage{Stage: d.Stage}
			byStage[d.Stage] = fs
		}
		fs.Count++
		fs.Value += d.Value
		fs.WeightedValue += weighted
	}
	for _, stage := range domain.DealStages {
		if fs, ok := byStage[stage]; ok {
			out.ByStage = append(out.ByStage, *fs)
		}
	}
	return out, nil
}

// GetStats summarizes outcomes. WinRate is won/(won+lost)·100, unrounded, and 0 without closed deals.
func (s *DealService) GetStats(ctx context.Context) *domain.DealStats {
	deals := s.deals.All(ctx)

	out := &domain.DealStats{}
	for i := range deals {
		d := &deals[i]
		out.TotalDeals++
		out.TotalValue += d.Value
		switch d.Stage {
		case domain.DealStageClosedWon:
			out.WonDeals++
			out.WonValue += d.Value
		case domain.DealStageClosedLost:
			out.LostDeals++
			out.LostValue += d.Value
		default:
			out.OpenDeals++
			out.OpenValue += d.Value
		}
	}
	if closed := out.WonDeals + out.LostDeals; closed > 0 {
		out.WinRate = float64(out.WonDeals) / float64(closed) * 100
	}
	return out
}
