package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	RepeatNone     = "none"
	RepeatDaily    = "daily"
	RepeatWeekdays = "weekdays"
	RepeatWeekends = "weekends"
	RepeatWeekly   = "weekly"
	RepeatBiweekly = "biweekly"
	RepeatMonthly  = "monthly"
)

type Reminder struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title          string     `gorm:"not null;column:title" json:"title"`
	Description    string     `gorm:"column:description" json:"description"`
	TriggerTime    time.Time  `gorm:"not null;column:trigger_time;index" json:"trigger_time"`
	RepeatPattern  string     `gorm:"not null;column:repeat_pattern;default:'none'" json:"repeat_pattern"`
	EndDate        *time.Time `gorm:"type:date;column:end_date" json:"end_date,omitempty"`
	RelatedGoalID  *uuid.UUID `gorm:"type:uuid;column:related_goal_id" json:"related_goal_id,omitempty"`
	RelatedGoal    *Goal      `gorm:"constraint:OnDelete:SET NULL;foreignKey:RelatedGoalID;references:ID" json:"related_goal,omitempty"`
	RelatedHabitID *uuid.UUID `gorm:"type:uuid;column:related_habit_id" json:"related_habit_id,omitempty"`
	RelatedHabit   *Habit     `gorm:"constraint:OnDelete:SET NULL;foreignKey:RelatedHabitID;references:ID" json:"related_habit,omitempty"`
	IsActive       bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt      time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Reminder) TableName() string { return "reminder" }

type MotivationalQuote struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Content   string    `gorm:"not null;column:content" json:"content"`
	Author    string    `gorm:"not null;column:author" json:"author"`
	Source    string    `gorm:"column:source" json:"source"`
	Category  string    `gorm:"not null;column:category;default:'motivation'" json:"category"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (MotivationalQuote) TableName() string { return "motivational_quote" }
