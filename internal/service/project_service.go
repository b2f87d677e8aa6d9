package service

import (
	"context"
	"math"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/mapper"
	"github.com/straye-as/crm-portal/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ProjectService struct {
	projects ProjectStore
	tasks    TaskStore
	logger   *zap.Logger
}

func NewProjectService(projects ProjectStore, tasks TaskStore, logger *zap.Logger) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, logger: logger}
}

func (s *ProjectService) List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.Project] {
	return s.projects.List(ctx, params)
}

func (s *ProjectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *ProjectService) GetTasks(ctx context.Context, projectID string, params repository.ListParams) *domain.ListResult[domain.Task] {
	return s.tasks.GetByProject(ctx, projectID, params)
}

func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.Project, error) {
	if req.Status == "" {
		req.Status = domain.ProjectStatusPlanning
	}
	p, err := s.projects.Create(ctx, req)
	if err != nil {
		return nil, mapper.FormatError("project", "create", err)
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, req *domain.UpdateProjectRequest) (*domain.Project, error) {
	p, err := s.projects.Update(ctx, id, req)
	if err != nil {
		return nil, mapper.FormatError("project", "update", notFound(err))
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return mapper.FormatError("project", "delete", notFound(err))
	}
	return nil
}

// GetProgress rolls task progress up to every project: the average task
// progress and the share of tasks that are Done. Projects without tasks report 0.
func (s *ProjectService) GetProgress(ctx context.Context) []domain.ProjectProgress {
	var (
		projects []domain.Project
		tasks    []domain.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { projects = s.projects.All(gctx); return nil })
	g.Go(func() error { tasks = s.tasks.All(gctx); return nil })
	_ = g.Wait()

	type acc struct {
		count, done, progress int
	}
	byProject := make(map[string]*acc, len(projects))
	for i := range tasks {
		id := domain.RefID(tasks[i].Project)
		if id == "" {
			continue
		}
		a, ok := byProject[id]
		if !ok {
			a = &acc{}
			byProject[id] = a
		}
		a.count++
		a.progress += clampPercent(tasks[i].Progress)
		if tasks[i].Status == domain.TaskStatusDone {
			a.done++
		}
	}

	out := make([]domain.ProjectProgress, 0, len(projects))
	for _, p := range projects {
		row := domain.ProjectProgress{Project: domain.Ref{ID: p.ID, Name: p.Name}}
		if a, ok := byProject[p.ID]; ok {
			row.TaskCount = a.count
			row.DoneCount = a.done
			row.Progress = int(math.Round(float64(a.progress) / float64(a.count)))
			row.PercentDone = mapper.Percent(a.done, a.count)
		}
		out = append(out, row)
	}
	return out
}

func clampPercent(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
