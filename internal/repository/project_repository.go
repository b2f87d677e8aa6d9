package repository

import (
	"context"

	"github.com/straye-as/crm-portal/internal/backend"
	"github.com/straye-as/crm-portal/internal/domain"
	"go.uber.org/zap"
)

const projectCollection = "projects"

var projectSortable = map[string]bool{
	"name": true, "status": true, "startDate": true, "dueDate": true, "createdAt": true, "updatedAt": true,
}

type ProjectRepository struct {
	f *fetcher[domain.Project]
}

func NewProjectRepository(client *backend.Client, opts Options, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		f: newFetcher[domain.Project](client, projectCollection, []string{"clientAccount", "owner"}, opts, logger),
	}
}

func (r *ProjectRepository) List(ctx context.Context, params ListParams) *domain.ListResult[domain.Project] {
	return r.f.list(ctx, params.query(projectSortable, "createdAt", "name", "description"))
}

func (r *ProjectRepository) All(ctx context.Context) []domain.Project {
	return r.f.all(ctx, nil)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return r.f.get(ctx, id)
}

func (r *ProjectRepository) Create(ctx context.Context, payload any) (*domain.Project, error) {
	return r.f.create(ctx, payload)
}

func (r *ProjectRepository) Update(ctx context.Context, id string, payload any) (*domain.Project, error) {
	return r.f.update(ctx, id, payload)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.f.delete(ctx, id)
}
