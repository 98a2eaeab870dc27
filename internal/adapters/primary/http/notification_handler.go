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

// NotificationHandler handles HTTP requests for persisted notifications
type NotificationHandler struct {
	notificationService ports.NotificationService
	errorHandler        *ErrorHandler
	logger              *slog.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(
	notificationService ports.NotificationService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		errorHandler:        errorHandler,
		logger:              logger.With("handler", "notification"),
	}
}

// RegisterRoutes sets up the routing for the notification endpoints.
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListNotifications)
	r.Post("/read-all", h.HandleMarkAllRead)
	r.Post("/{notificationID}/read", h.HandleMarkRead)
}

// NotificationDTO defines the JSON response for notifications.
type NotificationDTO struct {
	ID        int64   `json:"id"`
	Message   string  `json:"message"`
	Link      *string `json:"link"`
	IsRead    bool    `json:"isRead"`
	CreatedAt string  `json:"createdAt"`
}

func toNotificationDTO(n *domain.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

// HandleListNotifications handles GET /notifications
func (h *NotificationHandler) HandleListNotifications(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, toNotificationDTO(n))
	}

	WriteList(w, response)
}

// HandleMarkRead handles POST /notifications/{notificationID}/read
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	notificationID, err := validation.ParseIDParam("notificationID", chi.URLParam(r, "notificationID"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), notificationID, claims.UserID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}

// HandleMarkAllRead handles POST /notifications/read-all
func (h *NotificationHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), claims.UserID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}
