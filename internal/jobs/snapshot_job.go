package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SnapshotJobName is the scheduler name of the dashboard snapshot job
const SnapshotJobName = "dashboard_snapshot"

// SnapshotCapturer stores today's dashboard numbers for each tenant
type SnapshotCapturer interface {
	CaptureAll(ctx context.Context, tenants []string) (int, error)
}

// AuditPruner removes audit rows older than a retention window
type AuditPruner interface {
	CleanupOldLogs(ctx context.Context, retentionDays int) (int64, error)
}

// RunRecorder receives the outcome of each run. *metrics.Collector satisfies it.
type RunRecorder interface {
	SnapshotRun(ok bool, d time.Duration)
}

// DashboardSnapshotJob captures the daily dashboard snapshot and then prunes the audit log.
type DashboardSnapshotJob struct {
	snapshots     SnapshotCapturer
	audit         AuditPruner
	recorder      RunRecorder
	tenants       []string
	retentionDays int
	timeout       time.Duration
	logger        *zap.Logger
}

// SnapshotJobConfig configures a DashboardSnapshotJob. Audit and Recorder are optional.
type SnapshotJobConfig struct {
	Snapshots     SnapshotCapturer
	Audit         AuditPruner
	Recorder      RunRecorder
	Tenants       []string
	RetentionDays int
	Timeout       time.Duration
}

func NewDashboardSnapshotJob(cfg SnapshotJobConfig, logger *zap.Logger) *DashboardSnapshotJob {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &DashboardSnapshotJob{
		snapshots:     cfg.Snapshots,
		audit:         cfg.Audit,
		recorder:      cfg.Recorder,
		tenants:       cfg.Tenants,
		retentionDays: cfg.RetentionDays,
		timeout:       timeout,
		logger:        logger,
	}
}

// Run executes one pass. It is called by the scheduler.
func (j *DashboardSnapshotJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	stored, err := j.snapshots.CaptureAll(ctx, j.tenants)
	duration := time.Since(start)

	if j.recorder != nil {
		j.recorder.SnapshotRun(err == nil, duration)
	}
	if err != nil {
		j.logger.Error("dashboard snapshot job failed",
			zap.Int("stored", stored),
			zap.Int("tenants", max(len(j.tenants), 1)),
			zap.Duration("duration", duration),
			zap.Error(err))
	} else {
		j.logger.Info("dashboard snapshot job completed",
			zap.Int("stored", stored),
			zap.Duration("duration", duration))
	}

	if j.audit == nil || j.retentionDays <= 0 {
		return
	}
	deleted, err := j.audit.CleanupOldLogs(ctx, j.retentionDays)
	if err != nil {
		j.logger.Error("audit log cleanup failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		j.logger.Info("pruned audit log",
			zap.Int64("deleted", deleted),
			zap.Int("retention_days", j.retentionDays))
	}
}

// RegisterSnapshotJob adds the snapshot job to scheduler under SnapshotJobName
func RegisterSnapshotJob(scheduler *Scheduler, job *DashboardSnapshotJob, cronExpr string) error {
	return scheduler.AddJob(SnapshotJobName, cronExpr, job.Run)
}
