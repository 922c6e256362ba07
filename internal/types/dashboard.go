package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DashboardSetting struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User             *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Theme            string         `gorm:"not null;column:theme;default:'light'" json:"theme"`
	DefaultView      string         `gorm:"not null;column:default_view;default:'dashboard'" json:"default_view"`
	WidgetLayout     datatypes.JSON `gorm:"type:jsonb;column:widget_layout" json:"widget_layout"`
	ShowStreakCounts bool           `gorm:"column:show_streak_counts;not null;default:true" json:"show_streak_counts"`
	ShowGoalProgress bool           `gorm:"column:show_goal_progress;not null;default:true" json:"show_goal_progress"`
	ShowHabitSummary bool           `gorm:"column:show_habit_summary;not null;default:true" json:"show_habit_summary"`
	ShowReadingStats bool           `gorm:"column:show_reading_stats;not null;default:true" json:"show_reading_stats"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (DashboardSetting) TableName() string { return "dashboard_setting" }

type Widget struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	WidgetType string         `gorm:"not null;column:widget_type" json:"widget_type"`
	Title      string         `gorm:"not null;column:title" json:"title"`
	IsEnabled  bool           `gorm:"column:is_enabled;not null;default:true" json:"is_enabled"`
	Position   int            `gorm:"column:position;not null;default:0" json:"position"`
	Settings   datatypes.JSON `gorm:"type:jsonb;column:settings" json:"settings"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Widget) TableName() string { return "widget" }
