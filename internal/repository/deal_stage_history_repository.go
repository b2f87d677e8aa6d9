package repository

import (
	"context"
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
	"gorm.io/gorm"
)

type DealStageHistoryRepository struct {
	db *gorm.DB
}

func NewDealStageHistoryRepository(db *gorm.DB) *DealStageHistoryRepository {
	return &DealStageHistoryRepository{db: db}
}

// Create records a new stage transition
func (r *DealStageHistoryRepository) Create(ctx context.Context, history *domain.DealStageHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// GetByDealID returns all stage history for a deal, newest first
func (r *DealStageHistoryRepository) GetByDealID(ctx context.Context, dealID string) ([]domain.DealStageHistory, error) {
	var history []domain.DealStageHistory
	err := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("changed_at DESC").
		Find(&history).Error
	return history, err
}

// CountTransitionsByStage returns the count of transitions to each stage within a date range
func (r *DealStageHistoryRepository) CountTransitionsByStage(ctx context.Context, tenant string, from, to time.Time) (map[domain.DealStage]int64, error) {
	type result struct {
		ToStage domain.DealStage
		Count   int64
	}
	var results []result

	query := r.db.WithContext(ctx).Model(&domain.DealStageHistory{}).
		Select("to_stage, COUNT(*) as count").
		Where("changed_at >= ? AND changed_at <= ?", from, to)
	if tenant != "" {
		query = query.Where("tenant = ?", tenant)
	}
	if err := query.Group("to_stage").Scan(&results).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.DealStage]int64)
	for _, r := range results {
		counts[r.ToStage] = r.Count
	}
	return counts, nil
}

// DeleteByDealID removes all history for a deal (used when deal is deleted)
func (r *DealStageHistoryRepository) DeleteByDealID(ctx context.Context, dealID string) error {
	return r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Delete(&domain.DealStageHistory{}).Error
}
