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

// IssueHandler handles HTTP requests for employee issues
type IssueHandler struct {
	issueService ports.IssueService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewIssueHandler creates a new issue handler
func NewIssueHandler(
	issueService ports.IssueService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "issue"),
	}
}

// RegisterRoutes sets up the routing for all issue endpoints.
func (h *IssueHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListIssues)
	r.Post("/", h.HandleSubmitIssue)

	r.Route("/{issueID}", func(r chi.Router) {
		r.Get("/", h.HandleGetIssue)
		r.Patch("/status", h.HandleSetIssueStatus)
	})
}

// --- Request/Response DTOs ---

// SubmitIssueRequest defines the expected JSON body for submitting an issue
type SubmitIssueRequest struct {
	Subject       string  `json:"subject"`
	Description   string  `json:"description"`
	AttachmentURL *string `json:"attachmentUrl"`
}

// Validate validates the submit issue request
func (r *SubmitIssueRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("subject", r.Subject).
		OneOf("subject", r.Subject, []string{
			"LEAVE", "WFH", "PROJECT_ISSUE", "HARRASSMENT",
			"TECHNICAL_ISSUE", "PAYROLL", "OTHER",
		})
	v.Required("description", r.Description)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// SetIssueStatusRequest defines the expected JSON body for issue decisions
type SetIssueStatusRequest struct {
	Status string `json:"status"`
}

// Validate validates the set issue status request
func (r *SetIssueStatusRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("status", r.Status).
		OneOf("status", r.Status, []string{"PENDING", "ACCEPTED", "DECLINED", "WFH_APPROVED"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// IssueDTO defines the JSON response for issues.
type IssueDTO struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	Subject       string  `json:"subject"`
	Description   string  `json:"description"`
	AttachmentURL *string `json:"attachmentUrl"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

func toIssueDTO(issue *domain.Issue) IssueDTO {
	return IssueDTO{
		ID:            issue.ID,
		UserID:        issue.UserID,
		Subject:       string(issue.Subject),
		Description:   issue.Description,
		AttachmentURL: issue.AttachmentURL,
		Status:        string(issue.Status),
		CreatedAt:     issue.CreatedAt.Format(time.RFC3339),
	}
}

// --- Handlers ---

// HandleListIssues handles GET /issues
func (h *IssueHandler) HandleListIssues(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	issues, err := h.issueService.ListIssues(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]IssueDTO, 0, len(issues))
	for _, issue := range issues {
		response = append(response, toIssueDTO(issue))
	}

	WriteList(w, response)
}

// HandleSubmitIssue handles POST /issues
func (h *IssueHandler) HandleSubmitIssue(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[SubmitIssueRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	issue, err := h.issueService.SubmitIssue(
		r.Context(),
		claims.UserID,
		domain.IssueSubject(req.Subject),
		req.Description,
		req.AttachmentURL,
	)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("issue submitted",
		"issue_id", issue.ID,
		"subject", issue.Subject,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toIssueDTO(issue))
}

// HandleGetIssue handles GET /issues/{issueID}
func (h *IssueHandler) HandleGetIssue(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	issueID, err := validation.ParseIDParam("issueID", chi.URLParam(r, "issueID"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	issue, err := h.issueService.GetIssue(r.Context(), issueID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toIssueDTO(issue))
}

// HandleSetIssueStatus handles PATCH /issues/{issueID}/status
func (h *IssueHandler) HandleSetIssueStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	issueID, err := validation.ParseIDParam("issueID", chi.URLParam(r, "issueID"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[SetIssueStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	issue, err := h.issueService.SetIssueStatus(r.Context(), issueID, domain.IssueStatus(req.Status), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("issue status updated",
		"issue_id", issueID,
		"new_status", req.Status,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toIssueDTO(issue))
}
