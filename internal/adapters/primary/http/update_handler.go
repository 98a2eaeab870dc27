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

// UpdateHandler handles HTTP requests for project chat and timeline updates
type UpdateHandler struct {
	updateService ports.UpdateService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(
	updateService ports.UpdateService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *UpdateHandler {
	return &UpdateHandler{
		updateService: updateService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "update"),
	}
}

// RegisterRoutes sets up the chat and update endpoints. The routes nest
// under /projects/{projectID}.
func (h *UpdateHandler) RegisterRoutes(r chi.Router) {
	r.Get("/chat", h.HandleListChatMessages)
	r.Post("/chat", h.HandlePostChatMessage)
	r.Get("/updates", h.HandleListUpdates)
	r.Post("/updates", h.HandlePostUpdate)
}

// --- Request/Response DTOs ---

// PostChatMessageRequest defines the expected JSON body for chat messages
type PostChatMessageRequest struct {
	Message  *string `json:"message"`
	ImageURL *string `json:"imageUrl"`
	FileURL  *string `json:"fileUrl"`
	FileName *string `json:"fileName"`
}

// PostUpdateRequest defines the expected JSON body for timeline updates
type PostUpdateRequest struct {
	Title          string   `json:"title"`
	Remarks        *string  `json:"remarks"`
	Priority       *string  `json:"priority"`
	AttachmentURLs []string `json:"attachmentUrls"`
}

// Validate validates the post update request
func (r *PostUpdateRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("title", r.Title)

	if r.Priority != nil {
		v.OneOf("priority", *r.Priority, []string{"LOW", "MEDIUM", "HIGH"})
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateDTO defines the JSON response for project updates.
type UpdateDTO struct {
	ID        int64    `json:"id"`
	ProjectID int64    `json:"projectId"`
	UserID    int64    `json:"userId"`
	Category  string   `json:"category"`
	Title     *string  `json:"title"`
	Remarks   *string  `json:"remarks"`
	ImageURL  *string  `json:"imageUrl"`
	FileURL   *string  `json:"fileUrl"`
	FileName  *string  `json:"fileName"`
	CreatedAt string   `json:"createdAt"`
	Files     []string `json:"files,omitempty"`
}

func toUpdateDTO(update *domain.ProjectUpdate) UpdateDTO {
	dto := UpdateDTO{
		ID:        update.ID,
		ProjectID: update.ProjectID,
		UserID:    update.UserID,
		Category:  string(update.Category),
		Title:     update.Title,
		Remarks:   update.Remarks,
		ImageURL:  update.ImageURL,
		FileURL:   update.FileURL,
		FileName:  update.FileName,
		CreatedAt: update.CreatedAt.Format(time.RFC3339),
	}
	for _, attachment := range update.Attachments {
		dto.Files = append(dto.Files, attachment.FileURL)
	}
	return dto
}

func toUpdateDTOs(updates []*domain.ProjectUpdate) []UpdateDTO {
	response := make([]UpdateDTO, 0, len(updates))
	for _, update := range updates {
		response = append(response, toUpdateDTO(update))
	}
	return response
}

// --- Handlers ---

// HandleListChatMessages handles GET /projects/{projectID}/chat
func (h *UpdateHandler) HandleListChatMessages(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	messages, err := h.updateService.ListChatMessages(r.Context(), projectID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toUpdateDTOs(messages))
}

// HandlePostChatMessage handles POST /projects/{projectID}/chat
func (h *UpdateHandler) HandlePostChatMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[PostChatMessageRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.PostUpdateParams{
		ProjectID: projectID,
		ActorID:   claims.UserID,
		Remarks:   req.Message,
		ImageURL:  req.ImageURL,
		FileURL:   req.FileURL,
		FileName:  req.FileName,
	}

	message, err := h.updateService.PostChatMessage(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("chat message posted",
		"project_id", projectID,
		"update_id", message.ID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toUpdateDTO(message))
}

// HandleListUpdates handles GET /projects/{projectID}/updates
func (h *UpdateHandler) HandleListUpdates(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	updates, err := h.updateService.ListUpdates(r.Context(), projectID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toUpdateDTOs(updates))
}

// HandlePostUpdate handles POST /projects/{projectID}/updates
func (h *UpdateHandler) HandlePostUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	projectID, err := parseProjectID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[PostUpdateRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var priority *domain.ProjectPriority
	if req.Priority != nil {
		p := domain.ProjectPriority(*req.Priority)
		priority = &p
	}

	title := req.Title
	params := ports.PostUpdateParams{
		ProjectID:      projectID,
		ActorID:        claims.UserID,
		Title:          &title,
		Remarks:        req.Remarks,
		Priority:       priority,
		AttachmentURLs: req.AttachmentURLs,
	}

	update, err := h.updateService.PostUpdate(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("project update posted",
		"project_id", projectID,
		"update_id", update.ID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toUpdateDTO(update))
}
