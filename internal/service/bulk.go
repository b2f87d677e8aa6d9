package service

import (
	"context"

	"github.com/straye-as/crm-portal/internal/domain"
	"go.uber.org/zap"
)

// runBulk applies step to each id in order and stops at the first error.
// Ids before the failure are committed, ids after it are returned as skipped.
func runBulk(ctx context.Context, ids []string, logger *zap.Logger, step func(context.Context, string) error) *domain.BulkResult {
	res := &domain.BulkResult{Succeeded: []string{}}
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			res.FailedID = id
			res.Error = err.Error()
			res.Skipped = append([]string(nil), ids[i+1:]...)
			return res
		}
		if err := step(ctx, id); err != nil {
			logger.Warn("Bulk update stopped",
				zap.String("failed_id", id),
				zap.Int("succeeded", len(res.Succeeded)),
				zap.Int("skipped", len(ids)-i-1),
				zap.Error(err),
			)
			res.FailedID = id
			res.Error = err.Error()
			res.Skipped = append([]string(nil), ids[i+1:]...)
			return res
		}
		res.Succeeded = append(res.Succeeded, id)
	}
	return res
}
