package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/selfinvest-backend/internal/services"
)

type ReminderHandler struct {
	reminderService services.ReminderService
}

func NewReminderHandler(reminderService services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

type reminderRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	TriggerTime    time.Time  `json:"trigger_time"`
	RepeatPattern  string     `json:"repeat_pattern"`
	RelatedGoalID  *uuid.UUID `json:"related_goal_id"`
	RelatedHabitID *uuid.UUID `json:"related_habit_id"`
	IsActive       *bool      `json:"is_active"`
}

func (r reminderRequest) toInput() services.ReminderInput {
	return services.ReminderInput{
		Title:          r.Title,
		Description:    r.Description,
		TriggerTime:    r.TriggerTime,
		RepeatPattern:  r.RepeatPattern,
		RelatedGoalID:  r.RelatedGoalID,
		RelatedHabitID: r.RelatedHabitID,
		IsActive:       r.IsActive,
	}
}

func (h *ReminderHandler) Create(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	reminder, err := h.reminderService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, reminder)
}

func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.reminderService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reminders)
}

func (h *ReminderHandler) Upcoming(c *gin.Context) {
	window := 24 * time.Hour
	if raw := c.Query("hours"); raw != "" {
		if parsed, err := time.ParseDuration(raw + "h"); err == nil && parsed > 0 {
			window = parsed
		}
	}
	reminders, err := h.reminderService.Upcoming(c.Request.Context(), time.Now(), window)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reminders)
}

func (h *ReminderHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	reminder, err := h.reminderService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reminder)
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.reminderService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (h *ReminderHandler) RandomQuote(c *gin.Context) {
	quote, err := h.reminderService.RandomQuote(c.Request.Context(), c.Query("category"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, quote)
}

func (h *ReminderHandler) Quotes(c *gin.Context) {
	quotes, err := h.reminderService.Quotes(c.Request.Context(), c.Query("category"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, quotes)
}

type quoteRequest struct {
	Content  string `json:"content"`
	Author   string `json:"author"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

func (h *ReminderHandler) CreateQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	quote, err := h.reminderService.CreateQuote(c.Request.Context(), services.QuoteInput{
		Content:  req.Content,
		Author:   req.Author,
		Source:   req.Source,
		Category: req.Category,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, quote)
}
