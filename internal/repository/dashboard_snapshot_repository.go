package repository

import (
	"context"
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DashboardSnapshotRepository struct {
	db *gorm.DB
}

func NewDashboardSnapshotRepository(db *gorm.DB) *DashboardSnapshotRepository {
	return &DashboardSnapshotRepository{db: db}
}

// Upsert stores the snapshot, replacing any earlier one for the same tenant and day
func (r *DashboardSnapshotRepository) Upsert(ctx context.Context, snapshot *domain.DashboardSnapshot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant"}, {Name: "snapshot_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_leads", "active_deals", "pipeline_value", "won_revenue", "conversion_rate", "payload",
			}),
		}).
		Create(snapshot).Error
}

// ListRange returns a tenant's snapshots between from and to, oldest first
func (r *DashboardSnapshotRepository) ListRange(ctx context.Context, tenant string, from, to time.Time) ([]domain.DashboardSnapshot, error) {
	var snapshots []domain.DashboardSnapshot
	err := r.db.WithContext(ctx).
		Where("tenant = ?", tenant).
		Where("snapshot_date >= ? AND snapshot_date <= ?", from, to).
		Order("snapshot_date ASC").
		Find(&snapshots).Error
	return snapshots, err
}

// Latest returns the newest snapshot for a tenant
func (r *DashboardSnapshotRepository) Latest(ctx context.Context, tenant string) (*domain.DashboardSnapshot, error) {
	var snapshot domain.DashboardSnapshot
	err := r.db.WithContext(ctx).
		Where("tenant = ?", tenant).
		Order("snapshot_date DESC").
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
