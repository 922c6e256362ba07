package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/apierr"
	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/repos"
	"github.com/yungbote/selfinvest-backend/internal/requestdata"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type DashboardSettingInput struct {
	Theme            string
	DefaultView      string
	WidgetLayout     datatypes.JSON
	ShowStreakCounts *bool
	ShowGoalProgress *bool
	ShowHabitSummary *bool
	ShowReadingStats *bool
}

type WidgetInput struct {
	WidgetType string
	Title      string
	IsEnabled  *bool
	Position   int
	Settings   datatypes.JSON
}

type DashboardService interface {
	GetSetting(ctx context.Context) (*types.DashboardSetting, error)
	UpdateSetting(ctx context.Context, input DashboardSettingInput) (*types.DashboardSetting, error)

	AddWidget(ctx context.Context, input WidgetInput) (*types.Widget, error)
	Widgets(ctx context.Context) ([]*types.Widget, error)
	UpdateWidget(ctx context.Context, id uuid.UUID, input WidgetInput) (*types.Widget, error)
	DeleteWidget(ctx context.Context, id uuid.UUID) error
}

type dashboardService struct {
	db            *gorm.DB
	log           *logger.Logger
	dashboardRepo repos.DashboardRepo
}

func NewDashboardService(db *gorm.DB, log *logger.Logger, dashboardRepo repos.DashboardRepo) DashboardService {
	return &dashboardService{db: db, log: log.With("service", "DashboardService"), dashboardRepo: dashboardRepo}
}

func (s *dashboardService) requireUser(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	return rd.UserID, nil
}

func (s *dashboardService) GetSetting(ctx context.Context) (*types.DashboardSetting, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	setting, err := s.dashboardRepo.GetSettingByUserID(ctx, nil, userID)
	if err != nil {
		// first read lazily creates the default settings row
		setting = &types.DashboardSetting{
			UserID:           userID,
			Theme:            "light",
			DefaultView:      "dashboard",
			ShowStreakCounts: true,
			ShowGoalProgress: true,
			ShowHabitSummary: true,
			ShowReadingStats: true,
		}
		if err := s.dashboardRepo.UpsertSetting(ctx, nil, setting); err != nil {
			return nil, fmt.Errorf("creating default settings: %w", err)
		}
	}
	return setting, nil
}

func (s *dashboardService) UpdateSetting(ctx context.Context, input DashboardSettingInput) (*types.DashboardSetting, error) {
	setting, err := s.GetSetting(ctx)
	if err != nil {
		return nil, err
	}
	if theme := strings.TrimSpace(input.Theme); theme != "" {
		setting.Theme = theme
	}
	if view := strings.TrimSpace(input.DefaultView); view != "" {
		setting.DefaultView = view
	}
	if input.WidgetLayout != nil {
		setting.WidgetLayout = input.WidgetLayout
	}
	if input.ShowStreakCounts != nil {
		setting.ShowStreakCounts = *input.ShowStreakCounts
	}
	if input.ShowGoalProgress != nil {
		setting.ShowGoalProgress = *input.ShowGoalProgress
	}
	if input.ShowHabitSummary != nil {
		setting.ShowHabitSummary = *input.ShowHabitSummary
	}
	if input.ShowReadingStats != nil {
		setting.ShowReadingStats = *input.ShowReadingStats
	}
	if err := s.dashboardRepo.UpsertSetting(ctx, nil, setting); err != nil {
		return nil, fmt.Errorf("updating settings: %w", err)
	}
	return setting, nil
}

func (s *dashboardService) AddWidget(ctx context.Context, input WidgetInput) (*types.Widget, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.WidgetType) == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_widget_type", fmt.Errorf("widget type required"))
	}
	widget := &types.Widget{
		UserID:     userID,
		WidgetType: input.WidgetType,
		Title:      input.Title,
		IsEnabled:  true,
		Position:   input.Position,
		Settings:   input.Settings,
	}
	if input.IsEnabled != nil {
		widget.IsEnabled = *input.IsEnabled
	}
	return s.dashboardRepo.CreateWidget(ctx, nil, widget)
}

func (s *dashboardService) Widgets(ctx context.Context) ([]*types.Widget, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.dashboardRepo.GetWidgetsByUserID(ctx, nil, userID)
}

func (s *dashboardService) UpdateWidget(ctx context.Context, id uuid.UUID, input WidgetInput) (*types.Widget, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	widgets, err := s.dashboardRepo.GetWidgetsByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching widgets: %w", err)
	}
	var widget *types.Widget
	for _, w := range widgets {
		if w.ID == id {
			widget = w
			break
		}
	}
	if widget == nil {
		return nil, apierr.New(http.StatusNotFound, "widget_not_found", fmt.Errorf("widget not found"))
	}
	if input.WidgetType != "" {
		widget.WidgetType = input.WidgetType
	}
	if input.Title != "" {
		widget.Title = input.Title
	}
	if input.IsEnabled != nil {
		widget.IsEnabled = *input.IsEnabled
	}
	if input.Position >= 0 {
		widget.Position = input.Position
	}
	if input.Settings != nil {
		widget.Settings = input.Settings
	}
	if err := s.dashboardRepo.UpdateWidget(ctx, nil, widget); err != nil {
		return nil, fmt.Errorf("updating widget: %w", err)
	}
	return widget, nil
}

func (s *dashboardService) DeleteWidget(ctx context.Context, id uuid.UUID) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	return s.dashboardRepo.FullDeleteWidgetByID(ctx, nil, userID, id)
}
