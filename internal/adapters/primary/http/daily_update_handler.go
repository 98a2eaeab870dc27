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

// DailyUpdateHandler handles HTTP requests for daily time logs
type DailyUpdateHandler struct {
	dailyUpdateService ports.DailyUpdateService
	errorHandler       *ErrorHandler
	logger             *slog.Logger
}

// NewDailyUpdateHandler creates a new daily update handler
func NewDailyUpdateHandler(
	dailyUpdateService ports.DailyUpdateService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *DailyUpdateHandler {
	return &DailyUpdateHandler{
		dailyUpdateService: dailyUpdateService,
		errorHandler:       errorHandler,
		logger:             logger.With("handler", "daily_update"),
	}
}

// RegisterRoutes sets up the routing for the daily log endpoints.
func (h *DailyUpdateHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListMyLogs)
	r.Post("/", h.HandleSubmitLog)
	r.Get("/team", h.HandleListTeamLogs)
}

// --- Request/Response DTOs ---

// LineItemRequest is one task entry in a daily log submission
type LineItemRequest struct {
	ProjectID  int64  `json:"projectId"`
	TaskPageID int64  `json:"taskPageId"`
	TimeSpent  string `json:"timeSpent"`
}

// SubmitDailyUpdateRequest defines the expected JSON body for a daily log
type SubmitDailyUpdateRequest struct {
	Date        *string           `json:"date"`
	Description string            `json:"description"`
	LineItems   []LineItemRequest `json:"lineItems"`
}

// Validate validates the submit daily update request
func (r *SubmitDailyUpdateRequest) Validate() error {
	v := validation.NewValidator()

	v.Custom("lineItems", len(r.LineItems) > 0, "At least one line item is required")
	for _, item := range r.LineItems {
		if item.TimeSpent == "" {
			v.Custom("lineItems", false, "Every line item needs a timeSpent value")
			break
		}
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// LineItemDTO is one task entry in a daily log response
type LineItemDTO struct {
	ID         int64  `json:"id"`
	ProjectID  int64  `json:"projectId"`
	TaskPageID int64  `json:"taskPageId"`
	TimeSpent  string `json:"timeSpent"`
}

// DailyUpdateDTO defines the JSON response for daily logs.
type DailyUpdateDTO struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"userId"`
	Date        string        `json:"date"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"createdAt"`
	LineItems   []LineItemDTO `json:"lineItems"`
}

func toDailyUpdateDTO(update *domain.DailyUpdate) DailyUpdateDTO {
	dto := DailyUpdateDTO{
		ID:          update.ID,
		UserID:      update.UserID,
		Date:        update.Date.Format("2006-01-02"),
		Description: update.Description,
		CreatedAt:   update.CreatedAt.Format(time.RFC3339),
		LineItems:   make([]LineItemDTO, 0, len(update.LineItems)),
	}
	for _, item := range update.LineItems {
		dto.LineItems = append(dto.LineItems, LineItemDTO{
			ID:         item.ID,
			ProjectID:  item.ProjectID,
			TaskPageID: item.TaskPageID,
			TimeSpent:  item.TimeSpent,
		})
	}
	return dto
}

func toDailyUpdateDTOs(updates []*domain.DailyUpdate) []DailyUpdateDTO {
	response := make([]DailyUpdateDTO, 0, len(updates))
	for _, update := range updates {
		response = append(response, toDailyUpdateDTO(update))
	}
	return response
}

// --- Handlers ---

// HandleListMyLogs handles GET /daily-updates
func (h *DailyUpdateHandler) HandleListMyLogs(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	now := time.Now().UTC()
	from, err := validation.ParseDateQueryParam(r, "from", now.AddDate(0, -1, 0))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	to, err := validation.ParseDateQueryParam(r, "to", now)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	logs, err := h.dailyUpdateService.ListForUser(r.Context(), claims.UserID, from, to)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toDailyUpdateDTOs(logs))
}

// HandleSubmitLog handles POST /daily-updates
func (h *DailyUpdateHandler) HandleSubmitLog(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[SubmitDailyUpdateRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	date, err := parseOptionalDate("date", req.Date)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := domain.DailyUpdateParams{
		UserID:      claims.UserID,
		Description: req.Description,
	}
	if date != nil {
		params.Date = *date
	}
	for _, item := range req.LineItems {
		params.LineItems = append(params.LineItems, domain.DailyUpdateLineItem{
			ProjectID:  item.ProjectID,
			TaskPageID: item.TaskPageID,
			TimeSpent:  item.TimeSpent,
		})
	}

	log, err := h.dailyUpdateService.SubmitDailyUpdate(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("daily log submitted",
		"daily_update_id", log.ID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toDailyUpdateDTO(log))
}

// HandleListTeamLogs handles GET /daily-updates/team
func (h *DailyUpdateHandler) HandleListTeamLogs(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	day, err := validation.ParseDateQueryParam(r, "date", time.Now().UTC())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	logs, err := h.dailyUpdateService.ListForDay(r.Context(), day, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toDailyUpdateDTOs(logs))
}
