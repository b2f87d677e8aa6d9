package repository

import (
	"context"

	"github.com/straye-as/crm-portal/internal/backend"
	"github.com/straye-as/crm-portal/internal/domain"
	"go.uber.org/zap"
)

const taskCollection = "tasks"

var taskSortable = map[string]bool{
	"title": true, "status": true, "progress": true, "priority": true, "dueDate": true,
	"createdAt": true, "updatedAt": true,
}

type TaskRepository struct {
	f *fetcher[domain.Task]
}

func NewTaskRepository(client *backend.Client, opts Options, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{
		f: newFetcher[domain.Task](client, taskCollection, []string{"project", "assignee", "assignees"}, opts, logger),
	}
}

func (r *TaskRepository) List(ctx context.Context, params ListParams) *domain.ListResult[domain.Task] {
	return r.f.list(ctx, params.query(taskSortable, "createdAt", "title"))
}

func (r *TaskRepository) All(ctx context.Context) []domain.Task {
	return r.f.all(ctx, nil)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.f.get(ctx, id)
}

func (r *TaskRepository) Create(ctx context.Context, payload any) (*domain.Task, error) {
	return r.f.create(ctx, payload)
}

func (r *TaskRepository) Update(ctx context.Context, id string, payload any) (*domain.Task, error) {
	return r.f.update(ctx, id, payload)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.f.delete(ctx, id)
}

func (r *TaskRepository) GetByProject(ctx context.Context, projectID string, params ListParams) *domain.ListResult[domain.Task] {
	q := params.query(taskSortable, "createdAt").Where(projectID, "project", "id")
	return r.f.list(ctx, q)
}

// GetByAssignee matches either the single assignee or any of the multi assignees
func (r *TaskRepository) GetByAssignee(ctx context.Context, userID string, params ListParams) *domain.ListResult[domain.Task] {
	params.Search = ""
	q := params.query(taskSortable, "createdAt")
	q.Or = append(q.Or,
		backend.Filter{Path: []string{"assignee", "id"}, Op: backend.OpEq, Values: []string{userID}},
		backend.Filter{Path: []string{"assignees", "id"}, Op: backend.OpEq, Values: []string{userID}},
	)
	return r.f.list(ctx, q)
}

func (r *TaskRepository) GetByStatus(ctx context.Context, status domain.TaskStatus, params ListParams) *domain.ListResult[domain.Task] {
	q := params.query(taskSortable, "createdAt").Where(string(status), "status")
	return r.f.list(ctx, q)
}
