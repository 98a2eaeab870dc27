package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/savithru/pms-backend/internal/adapters/primary/validation"
	"github.com/savithru/pms-backend/internal/auth"
	"github.com/savithru/pms-backend/internal/core/domain"
	"github.com/savithru/pms-backend/internal/core/ports"
)

// AuthHandler handles login and account registration.
type AuthHandler struct {
	authService  ports.AuthService
	tokenManager *auth.TokenManager
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService ports.AuthService,
	tokenManager *auth.TokenManager,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenManager: tokenManager,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "auth"),
	}
}

// RegisterPublicRoutes sets up the unauthenticated auth endpoints. The
// routes carry their full path because the public and protected halves
// live on different middleware groups of the same router.
func (h *AuthHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

// RegisterProtectedRoutes sets up auth endpoints that require a token.
func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/auth/register", h.HandleRegister)
}

// --- Request/Response DTOs ---

// LoginRequest defines the expected JSON body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate validates the login request
func (r *LoginRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("username", r.Username)
	v.Required("password", r.Password)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// RegisterRequest defines the expected JSON body for registering a user
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate validates the register request
func (r *RegisterRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("username", r.Username).
		MaxLength("username", r.Username, domain.MaxUsernameLength)

	v.Required("email", r.Email)
	v.Required("password", r.Password)

	v.Required("role", r.Role).
		OneOf("role", r.Role, []string{"MANAGEMENT", "EMPLOYEE"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// TokenResponse defines the JSON response for a successful login
type TokenResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// UserDTO defines the JSON response for user accounts.
type UserDTO struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	ProfilePhotoURL *string `json:"profilePhotoUrl"`
	CreatedAt       string  `json:"createdAt"`
}

func toUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		Role:            string(user.Role),
		ProfilePhotoURL: user.ProfilePhotoURL,
		CreatedAt:       user.CreatedAt.Format(time.RFC3339),
	}
}

// --- Handlers ---

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[LoginRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	token, err := h.tokenManager.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID)

	WriteJSON(w, http.StatusOK, TokenResponse{
		Token: token,
		User:  toUserDTO(user),
	})
}

// HandleRegister handles POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[RegisterRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := domain.UserRegistrationParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.UserRole(req.Role),
	}

	user, err := h.authService.Register(r.Context(), claims.UserID, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("user registered",
		"user_id", user.ID,
		"role", user.Role,
		"registered_by", claims.UserID,
	)

	WriteCreated(w, toUserDTO(user))
}
