package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The models below live in the portal's own database. CRM records stay in the content backend.

// DealStageHistory tracks stage changes for audit and funnel analysis
type DealStageHistory struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DealID        string     `gorm:"type:varchar(64);not null;index;column:deal_id" json:"dealId"`
	DealName      string     `gorm:"type:varchar(200);column:deal_name" json:"dealName,omitempty"`
	Tenant        string     `gorm:"type:varchar(100);index" json:"tenant,omitempty"`
	FromStage     *DealStage `gorm:"type:varchar(50);column:from_stage" json:"fromStage,omitempty"`
	ToStage       DealStage  `gorm:"type:varchar(50);not null;column:to_stage" json:"toStage"`
	Value         float64    `gorm:"column:value" json:"value"`
	ChangedByID   string     `gorm:"type:varchar(100);column:changed_by_id" json:"changedById,omitempty"`
	ChangedByName string     `gorm:"type:varchar(200);column:changed_by_name" json:"changedByName,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	ChangedAt     time.Time  `gorm:"not null;column:changed_at" json:"changedAt"`
}

// TableName overrides the default table name to match the migration
func (DealStageHistory) TableName() string {
	return "deal_stage_history"
}

// BeforeCreate assigns an id and timestamp when missing
func (h *DealStageHistory) BeforeCreate(*gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.ChangedAt.IsZero() {
		h.ChangedAt = time.Now().UTC()
	}
	return nil
}

// AuditAction represents the type of audit action
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog is one mutating API request
type AuditLog struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string      `gorm:"type:varchar(100);column:user_id;index" json:"userId,omitempty"`
	UserEmail   string      `gorm:"type:varchar(255);column:user_email" json:"userEmail,omitempty"`
	Tenant      string      `gorm:"type:varchar(100);index" json:"tenant,omitempty"`
	Action      AuditAction `gorm:"type:varchar(20);not null" json:"action"`
	EntityType  string      `gorm:"type:varchar(50);not null;column:entity_type;index" json:"entityType"`
	EntityID    string      `gorm:"type:varchar(64);column:entity_id" json:"entityId,omitempty"`
	Method      string      `gorm:"type:varchar(10)" json:"method"`
	Path        string      `gorm:"type:text" json:"path"`
	StatusCode  int         `gorm:"column:status_code" json:"statusCode"`
	IPAddress   string      `gorm:"type:varchar(64);column:ip_address" json:"ipAddress,omitempty"`
	UserAgent   string      `gorm:"type:text;column:user_agent" json:"userAgent,omitempty"`
	RequestID   string      `gorm:"type:varchar(100);column:request_id" json:"requestId,omitempty"`
	PerformedAt time.Time   `gorm:"not null;column:performed_at;index" json:"performedAt"`
}

// BeforeCreate assigns an id and timestamp when missing
func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.PerformedAt.IsZero() {
		a.PerformedAt = time.Now().UTC()
	}
	return nil
}

// DashboardSnapshot is a daily copy of the dashboard stats for trend charts
type DashboardSnapshot struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Tenant         string    `gorm:"type:varchar(100);not null;default:'';uniqueIndex:idx_snapshot_tenant_date" json:"tenant"`
	SnapshotDate   time.Time `gorm:"type:date;not null;uniqueIndex:idx_snapshot_tenant_date;column:snapshot_date" json:"snapshotDate"`
	TotalLeads     int       `gorm:"column:total_leads" json:"totalLeads"`
	ActiveDeals    int       `gorm:"column:active_deals" json:"activeDeals"`
	PipelineValue  float64   `gorm:"column:pipeline_value" json:"pipelineValue"`
	WonRevenue     float64   `gorm:"column:won_revenue" json:"wonRevenue"`
	ConversionRate int       `gorm:"column:conversion_rate" json:"conversionRate"`
	// Payload holds the full DashboardStats JSON
	Payload   string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns an id when missing
func (s *DashboardSnapshot) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
