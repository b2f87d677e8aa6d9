package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/mapper"
	"github.com/straye-as/crm-portal/internal/repository"
	"go.uber.org/zap"
)

type TaskService struct {
	tasks  TaskStore
	now    Clock
	logger *zap.Logger
}

func NewTaskService(tasks TaskStore, logger *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, now: systemClock, logger: logger}
}

// WithClock replaces the time source
func (s *TaskService) WithClock(now Clock) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.Task] {
	return s.tasks.List(ctx, params)
}

func (s *TaskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (s *TaskService) GetByAssignee(ctx context.Context, userID string, params repository.ListParams) *domain.ListResult[domain.Task] {
	return s.tasks.GetByAssignee(ctx, userID, params)
}

func (s *TaskService) GetByStatus(ctx context.Context, status domain.TaskStatus, params repository.ListParams) (*domain.ListResult[domain.Task], error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown task status %q", ErrInvalidInput, status)
	}
	return s.tasks.GetByStatus(ctx, status, params), nil
}

// Create stores a task. Status defaults to "To Do"; a task created as Done is at 100%.
func (s *TaskService) Create(ctx context.Context, req *domain.CreateTaskRequest) (*domain.Task, error) {
	if req.Status == "" {
		req.Status = domain.TaskStatusTodo
	}
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown task status %q", ErrInvalidInput, req.Status)
	}
	if req.Status == domain.TaskStatusDone {
		req.Progress = 100
	}
	t, err := s.tasks.Create(ctx, req)
	if err != nil {
		return nil, mapper.FormatError("task", "create", err)
	}
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, id string, req *domain.UpdateTaskRequest) (*domain.Task, error) {
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown task status %q", ErrInvalidInput, *req.Status)
		}
		if *req.Status == domain.TaskStatusDone && req.Progress == nil {
			full := 100
			req.Progress = &full
		}
	}
	t, err := s.tasks.Update(ctx, id, req)
	if err != nil {
		return nil, mapper.FormatError("task", "update", notFound(err))
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return mapper.FormatError("task", "delete", notFound(err))
	}
	return nil
}

// GetStats summarizes the board. A task with several assignees counts once for each of them.
func (s *TaskService) GetStats(ctx context.Context) *domain.TaskStats {
	tasks := s.tasks.All(ctx)
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	out := &domain.TaskStats{
		Total:      len(tasks),
		ByStatus:   map[domain.TaskStatus]int{},
		ByAssignee: []domain.AssigneeLoad{},
	}
	loads := map[string]*domain.AssigneeLoad{}
	progressSum := 0
	for i := range tasks {
		t := &tasks[i]
		status := t.Status
		if status == "" {
			status = domain.TaskStatusTodo
		}
		out.ByStatus[status]++
		progressSum += clampPercent(t.Progress)
		done := status == domain.TaskStatusDone
		if !done && !t.DueDate.IsZero() && t.DueDate.Before(today) {
			out.Overdue++
		}

		for _, a := range t.AllAssignees() {
			load, ok := loads[a.ID]
			if !ok {
				load = &domain.AssigneeLoad{Assignee: a}
				loads[a.ID] = load
			}
			load.Tasks++
			if done {
				load.Done++
			}
		}
	}
	if out.Total > 0 {
		out.AverageProgress = int(math.Round(float64(progressSum) / float64(out.Total)))
	}

	for _, l := range loads {
		out.ByAssignee = append(out.ByAssignee, *l)
	}
	sort.Slice(out.ByAssignee, func(i, j int) bool {
		if out.ByAssignee[i].Tasks != out.ByAssignee[j].Tasks {
			return out.ByAssignee[i].Tasks > out.ByAssignee[j].Tasks
		}
		return out.ByAssignee[i].Assignee.ID < out.ByAssignee[j].Assignee.ID
	})
	return out
}
