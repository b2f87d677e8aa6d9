package service_test

import (
	"context"
	"testing"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProjectService_GetProgress(t *testing.T) {
	projects := newFakeProjects(
		domain.Project{ID: "p1", Name: "Warehouse"},
		domain.Project{ID: "p2", Name: "Office"},
	)
	tasks := newFakeTasks(
		domain.Task{ID: "1", Project: ref("p1"), Status: domain.TaskStatusDone, Progress: 100},
		domain.Task{ID: "2", Project: ref("p1"), Status: domain.TaskStatusInProgress, Progress: 30},
		domain.Task{ID: "3", Project: ref("p1"), Status: domain.TaskStatusTodo, Progress: 0},
		domain.Task{ID: "4", Status: domain.TaskStatusDone, Progress: 100},
	)
	svc := service.NewProjectService(projects, tasks, zap.NewNop())

	rows := svc.GetProgress(context.Background())

	require.Len(t, rows, 2)
	assert.Equal(t, "Warehouse", rows[0].Project.Name)
	assert.Equal(t, 3, rows[0].TaskCount)
	assert.Equal(t, 1, rows[0].DoneCount)
	assert.Equal(t, 43, rows[0].Progress)
	assert.Equal(t, 33, rows[0].PercentDone)

	assert.Equal(t, 0, rows[1].TaskCount)
	assert.Equal(t, 0, rows[1].Progress)
}

func TestProjectService_Create(t *testing.T) {
	svc := service.NewProjectService(newFakeProjects(), newFakeTasks(), zap.NewNop())

	p, err := svc.Create(context.Background(), &domain.CreateProjectRequest{Name: "Warehouse", ClientAccount: "A1", DueDate: "2026-12-01"})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusPlanning, p.Status)
	assert.Equal(t, "A1", domain.RefID(p.ClientAccount))
	assert.Equal(t, "2026-12-01", p.DueDate.DateString())

	tasks := svc.GetTasks(context.Background(), p.ID, defaultParams())
	assert.Empty(t, tasks.Data)
}
