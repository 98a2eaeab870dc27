package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/savithru/pms-backend/internal/adapters/primary/validation"
	"github.com/savithru/pms-backend/internal/core/domain"
	"github.com/savithru/pms-backend/internal/core/ports"
)

// TaskHandler handles HTTP requests for task pages
type TaskHandler struct {
	taskService  ports.TaskService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(
	taskService ports.TaskService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *TaskHandler {
	return &TaskHandler{
		taskService:  taskService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "task"),
	}
}

// RegisterRoutes sets up the standalone task endpoints. Project-scoped task
// routes are registered by the project handler.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListMyTasks)
	r.Patch("/{taskID}/status", h.HandleSetTaskStatus)
}

// --- Request/Response DTOs ---

// AssignTaskRequest defines the expected JSON body for assigning a task page
type AssignTaskRequest struct {
	UserID   int64  `json:"userId"`
	PageName string `json:"pageName"`
}

// Validate validates the assign task request
func (r *AssignTaskRequest) Validate() error {
	v := validation.NewValidator()

	v.Custom("userId", r.UserID > 0, "Must be a positive integer")
	v.Required("pageName", r.PageName)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// SetTaskStatusRequest defines the expected JSON body for toggling completion
type SetTaskStatusRequest struct {
	IsComplete bool `json:"isComplete"`
}

// TaskDTO defines the JSON response for task pages.
type TaskDTO struct {
	ID         int64  `json:"id"`
	ProjectID  int64  `json:"projectId"`
	AssignedTo int64  `json:"assignedTo"`
	PageName   string `json:"pageName"`
	IsComplete bool   `json:"isComplete"`
	CreatedAt  string `json:"createdAt"`
}

func toTaskDTO(task *domain.TaskPage) TaskDTO {
	return TaskDTO{
		ID:         task.ID,
		ProjectID:  task.ProjectID,
		AssignedTo: task.AssignedTo,
		PageName:   task.PageName,
		IsComplete: task.IsComplete,
		CreatedAt:  task.CreatedAt.Format(time.RFC3339),
	}
}

func toTaskDTOs(tasks []*domain.TaskPage) []TaskDTO {
	response := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, toTaskDTO(task))
	}
	return response
}

// --- Handlers ---

// HandleListMyTasks handles GET /tasks
func (h *TaskHandler) HandleListMyTasks(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasksForUser(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toTaskDTOs(tasks))
}

// HandleListProjectTasks handles GET /projects/{projectID}/tasks
func (h *TaskHandler) HandleListProjectTasks(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	tasks, err := h.taskService.ListTasksForProject(r.Context(), projectID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toTaskDTOs(tasks))
}

// HandleAssignTask handles POST /projects/{projectID}/tasks
func (h *TaskHandler) HandleAssignTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[AssignTaskRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	task, err := h.taskService.AssignTaskPage(r.Context(), projectID, req.UserID, req.PageName, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("task assigned",
		"task_id", task.ID,
		"project_id", projectID,
		"assigned_to", req.UserID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toTaskDTO(task))
}

// HandleSetTaskStatus handles PATCH /tasks/{taskID}/status
func (h *TaskHandler) HandleSetTaskStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	taskID, err := validation.ParseIDParam("taskID", chi.URLParam(r, "taskID"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[SetTaskStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	task, err := h.taskService.SetTaskStatus(r.Context(), taskID, req.IsComplete, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("task status updated",
		"task_id", taskID,
		"is_complete", req.IsComplete,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toTaskDTO(task))
}
