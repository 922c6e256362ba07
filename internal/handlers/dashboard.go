package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/yungbote/selfinvest-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

type dashboardSettingRequest struct {
	Theme            string         `json:"theme"`
	DefaultView      string         `json:"default_view"`
	WidgetLayout     datatypes.JSON `json:"widget_layout"`
	ShowStreakCounts *bool          `json:"show_streak_counts"`
	ShowGoalProgress *bool          `json:"show_goal_progress"`
	ShowHabitSummary *bool          `json:"show_habit_summary"`
	ShowReadingStats *bool          `json:"show_reading_stats"`
}

func (h *DashboardHandler) GetSetting(c *gin.Context) {
	setting, err := h.dashboardService.GetSetting(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, setting)
}

func (h *DashboardHandler) UpdateSetting(c *gin.Context) {
	var req dashboardSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	setting, err := h.dashboardService.UpdateSetting(c.Request.Context(), services.DashboardSettingInput{
		Theme:            req.Theme,
		DefaultView:      req.DefaultView,
		WidgetLayout:     req.WidgetLayout,
		ShowStreakCounts: req.ShowStreakCounts,
		ShowGoalProgress: req.ShowGoalProgress,
		ShowHabitSummary: req.ShowHabitSummary,
		ShowReadingStats: req.ShowReadingStats,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, setting)
}

type widgetRequest struct {
	WidgetType string         `json:"widget_type"`
	Title      string         `json:"title"`
	IsEnabled  *bool          `json:"is_enabled"`
	Position   int            `json:"position"`
	Settings   datatypes.JSON `json:"settings"`
}

func (r widgetRequest) toInput() services.WidgetInput {
	return services.WidgetInput{
		WidgetType: r.WidgetType,
		Title:      r.Title,
		IsEnabled:  r.IsEnabled,
		Position:   r.Position,
		Settings:   r.Settings,
	}
}

func (h *DashboardHandler) AddWidget(c *gin.Context) {
	var req widgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	widget, err := h.dashboardService.AddWidget(c.Request.Context(), req.toInput())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, widget)
}

func (h *DashboardHandler) Widgets(c *gin.Context) {
	widgets, err := h.dashboardService.Widgets(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, widgets)
}

func (h *DashboardHandler) UpdateWidget(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req widgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	widget, err := h.dashboardService.UpdateWidget(c.Request.Context(), id, req.toInput())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, widget)
}

func (h *DashboardHandler) DeleteWidget(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.dashboardService.DeleteWidget(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
