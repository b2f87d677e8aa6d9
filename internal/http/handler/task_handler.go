package handler

import (
	"net/http"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/service"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService *service.TaskService
	logger      *zap.Logger
}

func NewTaskHandler(taskService *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(25)
// @Param sortBy query string false "Sort field (title, status, progress, priority, dueDate, createdAt)"
// @Param sortOrder query string false "asc or desc" default(desc)
// @Param q query string false "Search title"
// @Param status query string false "Filter by board column (Backlog, To Do, In Progress, In Review, Done)"
// @Param assignee query string false "Filter by assigned user id"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tasks [get]
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	q := r.URL.Query()

	if status := q.Get("status"); status != "" {
		result, err := h.taskService.GetByStatus(r.Context(), domain.TaskStatus(status), params)
		if err != nil {
			handleServiceError(w, requestLogger(r, h.logger), "list tasks", err)
			return
		}
		respondJSON(w, http.StatusOK, paginated(result))
		return
	}
	if assignee := q.Get("assignee"); assignee != "" {
		respondJSON(w, http.StatusOK, paginated(h.taskService.GetByAssignee(r.Context(), assignee, params)))
		return
	}
	respondJSON(w, http.StatusOK, paginated(h.taskService.List(r.Context(), params)))
}

// @Summary Create task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param request body domain.CreateTaskRequest true "Task data"
// @Success 201 {object} domain.Task
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tasks [post]
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "create task", err)
		return
	}

	w.Header().Set("Location", "/api/v1/tasks/"+task.ID)
	respondJSON(w, http.StatusCreated, task)
}

// @Summary Get task
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} domain.Task
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.GetByID(r.Context(), urlID(r))
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "get task", err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// @Summary Update task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body domain.UpdateTaskRequest true "Changed fields"
// @Success 200 {object} domain.Task
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.Update(r.Context(), urlID(r), &req)
	if err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "update task", err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// @Summary Delete task
// @Tags Tasks
// @Param id path string true "Task ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.Delete(r.Context(), urlID(r)); err != nil {
		handleServiceError(w, requestLogger(r, h.logger), "delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Task board statistics
// @Tags Tasks
// @Produce json
// @Success 200 {object} domain.TaskStats
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tasks/stats [get]
func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.taskService.GetStats(r.Context()))
}
