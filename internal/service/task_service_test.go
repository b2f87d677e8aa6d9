package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTaskService_Create(t *testing.T) {
	tasks := newFakeTasks()
	svc := service.NewTaskService(tasks, zap.NewNop())

	got, err := svc.Create(context.Background(), &domain.CreateTaskRequest{Title: "Draft plan", Project: "p1", Assignees: []string{"u1", "u2"}})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusTodo, got.Status)
	assert.Equal(t, "p1", domain.RefID(got.Project))
	assert.Len(t, got.Assignees, 2)

	done, err := svc.Create(context.Background(), &domain.CreateTaskRequest{Title: "Kickoff", Status: domain.TaskStatusDone, Progress: 40})
	require.NoError(t, err)
	assert.Equal(t, 100, done.Progress)

	_, err = svc.Create(context.Background(), &domain.CreateTaskRequest{Title: "x", Status: "Blocked"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestTaskService_UpdateToDone(t *testing.T) {
	tasks := newFakeTasks(domain.Task{ID: "1", Status: domain.TaskStatusInReview, Progress: 80})
	svc := service.NewTaskService(tasks, zap.NewNop())

	status := domain.TaskStatusDone
	got, err := svc.Update(context.Background(), "1", &domain.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, got.Status)
	assert.Equal(t, 100, got.Progress)

	_, err = svc.Update(context.Background(), "404", &domain.UpdateTaskRequest{})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestTaskService_GetStats(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	tasks := newFakeTasks(
		domain.Task{ID: "1", Status: domain.TaskStatusDone, Progress: 100, Assignee: &domain.Ref{ID: "u1", Name: "Ola"},
			Assignees: []domain.Ref{{ID: "u1"}, {ID: "u2", Name: "Kari"}}},
		domain.Task{ID: "2", Status: domain.TaskStatusInProgress, Progress: 50, Assignees: []domain.Ref{{ID: "u2"}},
			DueDate: domain.NewDate(now.AddDate(0, 0, -2))},
		domain.Task{ID: "3", Progress: 0, DueDate: domain.NewDate(now)},
		domain.Task{ID: "4", Status: domain.TaskStatusDone, Progress: 150, DueDate: domain.NewDate(now.AddDate(0, 0, -9))},
	)
	stats := service.NewTaskService(tasks, zap.NewNop()).WithClock(fixedClock(now)).GetStats(context.Background())

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[domain.TaskStatusDone])
	assert.Equal(t, 1, stats.ByStatus[domain.TaskStatusTodo])
	assert.Equal(t, 63, stats.AverageProgress)
	assert.Equal(t, 1, stats.Overdue)

	require.Len(t, stats.ByAssignee, 2)
	assert.Equal(t, "u2", stats.ByAssignee[0].Assignee.ID)
	assert.Equal(t, 2, stats.ByAssignee[0].Tasks)
	assert.Equal(t, 1, stats.ByAssignee[0].Done)
	assert.Equal(t, "u1", stats.ByAssignee[1].Assignee.ID)
	assert.Equal(t, 1, stats.ByAssignee[1].Tasks)
}
