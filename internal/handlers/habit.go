package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/selfinvest-backend/internal/services"
)

type HabitHandler struct {
	habitService       services.HabitService
	achievementService services.AchievementService
}

func NewHabitHandler(habitService services.HabitService, achievementService services.AchievementService) *HabitHandler {
	return &HabitHandler{habitService: habitService, achievementService: achievementService}
}

type habitRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	TargetValue   float64 `json:"target_value"`
	UnitOfMeasure string  `json:"unit_of_measure"`
	IsActive      *bool   `json:"is_active"`
}

func (r habitRequest) toInput() services.HabitInput {
	return services.HabitInput{
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		TargetValue:   r.TargetValue,
		UnitOfMeasure: r.UnitOfMeasure,
		IsActive:      r.IsActive,
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	habit, err := h.habitService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	habits, err := h.habitService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, habits)
}

func (h *HabitHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	habit, err := h.habitService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, habit)
}

func (h *HabitHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	habit, err := h.habitService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.habitService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

type logProgressRequest struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Notes string  `json:"notes"`
}

func (h *HabitHandler) LogProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req logProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.habitService.LogProgress(c.Request.Context(), id, req.Date, req.Value, req.Notes, time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *HabitHandler) Logs(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	logs, err := h.habitService.Logs(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, logs)
}

func (h *HabitHandler) Streak(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	streak, err := h.achievementService.CurrentStreak(c.Request.Context(), id, time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"streak": streak})
}

func (h *HabitHandler) Summary(c *gin.Context) {
	summary, err := h.habitService.Summary(c.Request.Context(), time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, summary)
}
