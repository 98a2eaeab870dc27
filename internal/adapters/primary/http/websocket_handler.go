package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	wsAdapter "github.com/savithru/pms-backend/internal/adapters/primary/websocket"
	"github.com/savithru/pms-backend/internal/adapters/primary/validation"
	"github.com/savithru/pms-backend/internal/auth"
	"github.com/savithru/pms-backend/internal/config"
	"github.com/savithru/pms-backend/internal/core/domain"
)

// ProjectAccessChecker reports whether a user may view a project's live
// update stream. Wired to the project service in production, nil disables
// the check and leaves the stream open.
type ProjectAccessChecker interface {
	CanAccess(ctx context.Context, projectID, userID int64) (bool, error)
}

// WebSocketHandler upgrades connections onto the notification and project
// update streams and binds each one to its room.
type WebSocketHandler struct {
	registry      *wsAdapter.Registry
	tm            *auth.TokenManager
	accessChecker ProjectAccessChecker
	upgrader      websocket.Upgrader
	logger        *slog.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	registry *wsAdapter.Registry,
	tm *auth.TokenManager,
	accessChecker ProjectAccessChecker,
	cfg *config.Config,
	logger *slog.Logger,
) *WebSocketHandler {
	handler := &WebSocketHandler{
		registry:      registry,
		tm:            tm,
		accessChecker: accessChecker,
		logger:        logger,
	}

	handler.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		CheckOrigin:     handler.makeOriginChecker(cfg),
	}

	return handler
}

// RegisterRoutes sets up the websocket endpoints.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/notifications", h.HandleNotifications)
	r.Get("/projects/{projectID}/updates", h.HandleProjectUpdates)
}

// makeOriginChecker creates an origin checking function based on configuration
func (h *WebSocketHandler) makeOriginChecker(cfg *config.Config) func(r *http.Request) bool {
	allowedOrigins := cfg.WebSocket.AllowedOrigins

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// In development mode, allow all origins (but log a warning)
		if cfg.IsDevelopment() {
			if origin != "" {
				h.logger.Warn("allowing websocket connection in development mode",
					"origin", origin,
					"remote_addr", r.RemoteAddr,
				)
			}
			return true
		}

		// No origin header (same-origin request or non-browser client)
		if origin == "" {
			return true
		}

		// Check against allowed origins
		parsedOrigin, err := url.Parse(origin)
		if err != nil {
			h.logger.Warn("failed to parse websocket origin",
				"origin", origin,
				"error", err,
			)
			return false
		}

		originHost := parsedOrigin.Host

		for _, allowed := range allowedOrigins {
			// Support wildcard subdomains like "*.example.com"
			if strings.HasPrefix(allowed, "*.") {
				suffix := allowed[1:] // Remove the "*", keep ".example.com"
				if strings.HasSuffix(originHost, suffix) || originHost == allowed[2:] {
					return true
				}
			} else if originHost == allowed {
				return true
			}
		}

		h.logger.Warn("websocket connection rejected due to origin",
			"origin", origin,
			"remote_addr", r.RemoteAddr,
			"allowed_origins", allowedOrigins,
		)
		return false
	}
}

// HandleNotifications handles GET /ws/notifications. The connection is bound
// to the caller's private notification room; unauthenticated requests are
// rejected before any room state is touched.
func (h *WebSocketHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	// Authenticate the connection via query parameter
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		h.logger.Warn("websocket connection rejected: missing token",
			"request_id", requestID,
			"remote_addr", r.RemoteAddr,
		)
		http.Error(w, "Missing authentication token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tm.ValidateToken(tokenString)
	if err != nil {
		h.logger.Warn("websocket connection rejected: invalid token",
			"request_id", requestID,
			"remote_addr", r.RemoteAddr,
			"error", err,
		)
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	room := domain.NotificationRoom(claims.UserID)
	h.serve(w, r, claims.UserID, room, requestID)
}

// HandleProjectUpdates handles GET /ws/projects/{projectID}/updates. The
// stream itself carries no credentials; when an access checker is wired and
// the client presents a token, project membership is enforced.
func (h *WebSocketHandler) HandleProjectUpdates(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	projectID, err := validation.ParseIDParam("projectID", chi.URLParam(r, "projectID"))
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	var userID int64
	if tokenString := r.URL.Query().Get("token"); tokenString != "" {
		claims, err := h.tm.ValidateToken(tokenString)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}
		userID = claims.UserID

		if h.accessChecker != nil {
			allowed, err := h.accessChecker.CanAccess(r.Context(), projectID, userID)
			if err != nil {
				h.logger.Error("project access check failed",
					"request_id", requestID,
					"project_id", projectID,
					"user_id", userID,
					"error", err,
				)
				http.Error(w, "Project not found", http.StatusNotFound)
				return
			}
			if !allowed {
				http.Error(w, "You do not have access to this project", http.StatusForbidden)
				return
			}
		}
	}

	room := domain.ProjectUpdatesRoom(projectID)
	h.serve(w, r, userID, room, requestID)
}

// serve upgrades the connection, joins the room, and starts the pumps.
func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, userID int64, room, requestID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade websocket connection",
			"request_id", requestID,
			"room", room,
			"error", err,
		)
		return
	}

	session := wsAdapter.NewSession(h.registry, conn, userID, room, h.logger)
	if err := h.registry.Join(room, session); err != nil {
		h.logger.Error("failed to join room",
			"request_id", requestID,
			"session_id", session.ID,
			"room", room,
			"error", err,
		)
		_ = conn.Close()
		return
	}

	h.logger.Info("websocket connection established",
		"request_id", requestID,
		"session_id", session.ID,
		"user_id", userID,
		"room", room,
		"remote_addr", r.RemoteAddr,
	)

	go session.WritePump()
	go session.ReadPump()
}
