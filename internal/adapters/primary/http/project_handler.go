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

// ProjectHandler handles HTTP requests for projects
type ProjectHandler struct {
	projectService ports.ProjectService
	updateHandler  *UpdateHandler
	taskHandler    *TaskHandler
	errorHandler   *ErrorHandler
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(
	projectService ports.ProjectService,
	updateHandler *UpdateHandler,
	taskHandler *TaskHandler,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		updateHandler:  updateHandler,
		taskHandler:    taskHandler,
		errorHandler:   errorHandler,
		logger:         logger.With("handler", "project"),
	}
}

// Router sets up a new chi Router for all project-related routes.
func (h *ProjectHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all project endpoints.
func (h *ProjectHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListProjects)
	r.Post("/", h.HandleCreateProject)

	// Routes for a specific project
	r.Route("/{projectID}", func(r chi.Router) {
		r.Get("/", h.HandleGetProject)
		r.Get("/members", h.HandleListMembers)
		r.Post("/members", h.HandleAddMember)
		r.Delete("/members/{memberID}", h.HandleRemoveMember)
		r.Put("/meeting", h.HandleSetMeetingLink)
		r.Delete("/meeting", h.HandleEndMeeting)
		r.Get("/work-status", h.HandleListWorkStatuses)
		r.Post("/work-status", h.HandleSubmitWorkStatus)
		r.Put("/status", h.HandleSetProjectStatus)

		if h.updateHandler != nil {
			h.updateHandler.RegisterRoutes(r)
		}
		if h.taskHandler != nil {
			r.Get("/tasks", h.taskHandler.HandleListProjectTasks)
			r.Post("/tasks", h.taskHandler.HandleAssignTask)
		}
	})
}

// --- Request/Response DTOs ---

// CreateProjectRequest defines the expected JSON body for creating a project
type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	ClientName  *string `json:"clientName"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	TeamHeadID  *int64  `json:"teamHeadId"`
}

// Validate validates the create project request
func (r *CreateProjectRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("name", r.Name)

	if r.Priority != "" {
		v.OneOf("priority", r.Priority, []string{"LOW", "MEDIUM", "HIGH"})
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// AddMemberRequest defines the expected JSON body for adding a team member
type AddMemberRequest struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// Validate validates the add member request
func (r *AddMemberRequest) Validate() error {
	v := validation.NewValidator()

	v.Custom("userId", r.UserID > 0, "Must be a positive integer")
	v.Required("role", r.Role).
		OneOf("role", r.Role, []string{"UI_UX", "DEVELOPER", "TESTER"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// SetMeetingLinkRequest defines the expected JSON body for attaching a
// meeting link
type SetMeetingLinkRequest struct {
	Link string `json:"link"`
}

// Validate validates the set meeting link request
func (r *SetMeetingLinkRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("link", r.Link)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// SubmitWorkStatusRequest defines the expected JSON body for a member's
// work update
type SubmitWorkStatusRequest struct {
	Status  string  `json:"status"`
	Remarks *string `json:"remarks"`
}

// Validate validates the submit work status request
func (r *SubmitWorkStatusRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("status", r.Status).
		OneOf("status", r.Status, []string{"INCOMPLETE", "PARTIALLY_DONE", "COMPLETE"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// SetProjectStatusRequest defines the expected JSON body for the team
// head's project status report
type SetProjectStatusRequest struct {
	Status      string  `json:"status"`
	Description *string `json:"description"`
}

// Validate validates the set project status request
func (r *SetProjectStatusRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("status", r.Status).
		OneOf("status", r.Status, []string{"INCOMPLETE", "PARTIALLY_DONE", "COMPLETE"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// ProjectDTO defines the JSON response for projects.
type ProjectDTO struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Status            string  `json:"status"`
	Priority          string  `json:"priority"`
	ClientName        *string `json:"clientName"`
	StartDate         *string `json:"startDate"`
	EndDate           *string `json:"endDate"`
	LogoURL           *string `json:"logoUrl"`
	GoogleMeetLink    *string `json:"googleMeetLink"`
	TeamHeadID        *int64  `json:"teamHeadId"`
	StatusReport      string  `json:"statusReport"`
	StatusDescription *string `json:"statusDescription"`
	CreatedAt         string  `json:"createdAt"`
}

func toProjectDTO(project *domain.Project) ProjectDTO {
	formatDate := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		value := t.Format("2006-01-02")
		return &value
	}

	return ProjectDTO{
		ID:                project.ID,
		Name:              project.Name,
		Description:       project.Description,
		Status:            string(project.Status),
		Priority:          string(project.Priority),
		ClientName:        project.ClientName,
		StartDate:         formatDate(project.StartDate),
		EndDate:           formatDate(project.EndDate),
		LogoURL:           project.LogoURL,
		GoogleMeetLink:    project.GoogleMeetLink,
		TeamHeadID:        project.TeamHeadID,
		StatusReport:      string(project.StatusReport),
		StatusDescription: project.StatusDescription,
		CreatedAt:         project.CreatedAt.Format(time.RFC3339),
	}
}

func toProjectDTOs(projects []*domain.Project) []ProjectDTO {
	response := make([]ProjectDTO, 0, len(projects))
	for _, project := range projects {
		response = append(response, toProjectDTO(project))
	}
	return response
}

// WorkUpdateDTO defines the JSON response for member work updates.
type WorkUpdateDTO struct {
	ID        int64   `json:"id"`
	ProjectID int64   `json:"projectId"`
	MemberID  int64   `json:"memberId"`
	Username  string  `json:"username"`
	Status    string  `json:"status"`
	Remarks   *string `json:"remarks"`
	UpdatedAt string  `json:"updatedAt"`
}

func toWorkUpdateDTO(update *domain.WorkUpdate) WorkUpdateDTO {
	return WorkUpdateDTO{
		ID:        update.ID,
		ProjectID: update.ProjectID,
		MemberID:  update.MemberID,
		Username:  update.Username,
		Status:    string(update.Status),
		Remarks:   update.Remarks,
		UpdatedAt: update.UpdatedAt.Format(time.RFC3339),
	}
}

// MemberDTO defines the JSON response for project members.
type MemberDTO struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toMemberDTO(member *domain.ProjectMember) MemberDTO {
	return MemberDTO{
		ID:       member.ID,
		UserID:   member.UserID,
		Role:     string(member.Role),
		Username: member.Username,
		Email:    member.Email,
	}
}

// --- Handlers ---

// HandleListProjects handles GET /projects
func (h *ProjectHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toProjectDTOs(projects))
}

// HandleCreateProject handles POST /projects
func (h *ProjectHandler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[CreateProjectRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	startDate, err := parseOptionalDate("startDate", req.StartDate)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	endDate, err := parseOptionalDate("endDate", req.EndDate)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.CreateProjectParams{
		Name:        req.Name,
		Description: req.Description,
		Priority:    domain.ProjectPriority(req.Priority),
		ClientName:  req.ClientName,
		StartDate:   startDate,
		EndDate:     endDate,
		TeamHeadID:  req.TeamHeadID,
		ActorID:     claims.UserID,
	}

	project, err := h.projectService.CreateProject(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("project created",
		"project_id", project.ID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toProjectDTO(project))
}

// HandleGetProject handles GET /projects/{projectID}
func (h *ProjectHandler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	project, err := h.projectService.GetProject(r.Context(), projectID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toProjectDTO(project))
}

// HandleListMembers handles GET /projects/{projectID}/members
func (h *ProjectHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	if _, ok := getClaims(w, r); !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	members, err := h.projectService.ListMembers(r.Context(), projectID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]MemberDTO, 0, len(members))
	for _, member := range members {
		response = append(response, toMemberDTO(member))
	}

	WriteList(w, response)
}

// HandleAddMember handles POST /projects/{projectID}/members
func (h *ProjectHandler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[AddMemberRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.AddMemberParams{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      domain.ProjectRole(req.Role),
		ActorID:   claims.UserID,
	}

	member, err := h.projectService.AddMember(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("member added",
		"project_id", projectID,
		"member_user_id", req.UserID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toMemberDTO(member))
}

// HandleRemoveMember handles DELETE /projects/{projectID}/members/{memberID}
func (h *ProjectHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	memberID, err := validation.ParseIDParam("memberID", chi.URLParam(r, "memberID"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.projectService.RemoveMember(r.Context(), projectID, memberID, claims.UserID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}

// HandleSetMeetingLink handles PUT /projects/{projectID}/meeting
func (h *ProjectHandler) HandleSetMeetingLink(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[SetMeetingLinkRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.SetMeetingLinkParams{
		ProjectID: projectID,
		Link:      req.Link,
		ActorID:   claims.UserID,
	}

	if err := h.projectService.SetMeetingLink(r.Context(), params); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("meeting link set",
		"project_id", projectID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, SuccessResponse{Message: "Meeting link added"})
}

// HandleSubmitWorkStatus handles POST /projects/{projectID}/work-status
func (h *ProjectHandler) HandleSubmitWorkStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[SubmitWorkStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.SubmitWorkStatusParams{
		ProjectID: projectID,
		ActorID:   claims.UserID,
		Status:    domain.WorkStatus(req.Status),
		Remarks:   req.Remarks,
	}

	update, err := h.projectService.SubmitWorkStatus(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toWorkUpdateDTO(update))
}

// HandleListWorkStatuses handles GET /projects/{projectID}/work-status
func (h *ProjectHandler) HandleListWorkStatuses(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	updates, err := h.projectService.ListWorkStatuses(r.Context(), projectID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]WorkUpdateDTO, 0, len(updates))
	for _, update := range updates {
		response = append(response, toWorkUpdateDTO(update))
	}

	WriteList(w, response)
}

// HandleSetProjectStatus handles PUT /projects/{projectID}/status
func (h *ProjectHandler) HandleSetProjectStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[SetProjectStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.SetProjectStatusParams{
		ProjectID:   projectID,
		ActorID:     claims.UserID,
		Status:      domain.WorkStatus(req.Status),
		Description: req.Description,
	}

	project, err := h.projectService.SetProjectStatus(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("project status updated",
		"project_id", projectID,
		"status", req.Status,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toProjectDTO(project))
}

// HandleEndMeeting handles DELETE /projects/{projectID}/meeting
func (h *ProjectHandler) HandleEndMeeting(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.projectService.EndMeeting(r.Context(), projectID, claims.UserID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}

// --- Helper functions ---

// parseProjectID extracts and validates the project ID from the URL
func parseProjectID(r *http.Request) (int64, error) {
	return validation.ParseIDParam("projectID", chi.URLParam(r, "projectID"))
}

// parseOptionalDate parses an optional YYYY-MM-DD string from a request body
func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		v := validation.NewValidator()
		v.Custom(field, false, "Must be a date in YYYY-MM-DD format")
		return nil, v.Errors()
	}
	return &parsed, nil
}
