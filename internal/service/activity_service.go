package service

import (
	"context"
	"fmt"
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/mapper"
	"github.com/straye-as/crm-portal/internal/repository"
	"go.uber.org/zap"
)

type ActivityService struct {
	activities ActivityStore
	now        Clock
	logger     *zap.Logger
}

func NewActivityService(activities ActivityStore, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activities: activities,
		now:        systemClock,
		logger:     logger,
	}
}

// WithClock replaces the time source
func (s *ActivityService) WithClock(now Clock) *ActivityService {
	s.now = now
	return s
}

func (s *ActivityService) List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.Activity] {
	return s.activities.List(ctx, params)
}

func (s *ActivityService) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	a, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (s *ActivityService) GetByContact(ctx context.Context, contactID string, params repository.ListParams) *domain.ListResult[domain.Activity] {
	return s.activities.GetByContact(ctx, contactID, params)
}

func (s *ActivityService) GetByDeal(ctx context.Context, dealID string, params repository.ListParams) *domain.ListResult[domain.Activity] {
	return s.activities.GetByDeal(ctx, dealID, params)
}

func (s *ActivityService) GetByLeadCompany(ctx context.Context, leadID string, params repository.ListParams) *domain.ListResult[domain.Activity] {
	return s.activities.GetByLeadCompany(ctx, leadID, params)
}

func (s *ActivityService) GetByClientAccount(ctx context.Context, accountID string, params repository.ListParams) *domain.ListResult[domain.Activity] {
	return s.activities.GetByClientAccount(ctx, accountID, params)
}

func (s *ActivityService) GetByDateRange(ctx context.Context, from, to time.Time, params repository.ListParams) (*domain.ListResult[domain.Activity], error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("%w: range end is before its start", ErrInvalidInput)
	}
	return s.activities.GetByDateRange(ctx, from, to, params), nil
}

// GetUpcoming lists planned activities scheduled from now on, soonest first
func (s *ActivityService) GetUpcoming(ctx context.Context, limit int) []domain.Activity {
	return s.activities.GetUpcoming(ctx, s.now(), limit)
}

func (s *ActivityService) Create(ctx context.Context, req *domain.CreateActivityRequest) (*domain.Activity, error) {
	if req.Status == "" {
		req.Status = domain.ActivityStatusPlanned
	}
	activity, err := s.activities.Create(ctx, req)
	if err != nil {
		return nil, mapper.FormatError("activity", "create", err)
	}
	return activity, nil
}

func (s *ActivityService) Update(ctx context.Context, id string, req *domain.UpdateActivityRequest) (*domain.Activity, error) {
	activity, err := s.activities.Update(ctx, id, req)
	if err != nil {
		return nil, mapper.FormatError("activity", "update", notFound(err))
	}
	return activity, nil
}

func (s *ActivityService) Delete(ctx context.Context, id string) error {
	if err := s.activities.Delete(ctx, id); err != nil {
		return mapper.FormatError("activity", "delete", notFound(err))
	}
	return nil
}

// Complete marks a planned activity as done now. Completing twice is a no-op.
func (s *ActivityService) Complete(ctx context.Context, id string) (*domain.Activity, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	switch activity.Status {
	case domain.ActivityStatusCompleted:
		return activity, nil
	case domain.ActivityStatusCancelled:
		return nil, fmt.Errorf("%w: activity %s is cancelled", ErrInvalidTransition, id)
	}

	updated, err := s.activities.Update(ctx, id, map[string]any{
		"status":        domain.ActivityStatusCompleted,
		"completedDate": s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, mapper.FormatError("activity", "complete", err)
	}
	return updated, nil
}

// GetStats counts activities by type and status. Overdue means planned with a
// scheduled date in the past; completed this week looks back seven days.
func (s *ActivityService) GetStats(ctx context.Context) *domain.ActivityStats {
	activities := s.activities.All(ctx)
	now := s.now()
	weekAgo := now.Add(-week)

	out := &domain.ActivityStats{
		Total:    len(activities),
		ByType:   map[domain.ActivityType]int{},
		ByStatus: map[domain.ActivityStatus]int{},
	}
	for i := range activities {
		a := &activities[i]
		out.ByType[a.ActivityType]++
		status := a.Status
		if status == "" {
			status = domain.ActivityStatusPlanned
		}
		out.ByStatus[status]++

		switch status {
		case domain.ActivityStatusPlanned:
			if !a.ScheduledDate.IsZero() && a.ScheduledDate.Before(now) {
				out.Overdue++
			}
		case domain.ActivityStatusCompleted:
			if !a.CompletedDate.Before(weekAgo) && !a.CompletedDate.After(now) {
				out.CompletedThisWeek++
			}
		}
	}
	return out
}
