package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	GoalStatusNotStarted = "not_started"
	GoalStatusInProgress = "in_progress"
	GoalStatusCompleted  = "completed"
	GoalStatusAbandoned  = "abandoned"
)

const (
	GoalPriorityLow    = "low"
	GoalPriorityMedium = "medium"
	GoalPriorityHigh   = "high"
)

type Goal struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User               *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ParentGoalID       *uuid.UUID `gorm:"type:uuid;column:parent_goal_id" json:"parent_goal_id,omitempty"`
	ParentGoal         *Goal      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParentGoalID;references:ID" json:"parent_goal,omitempty"`
	Title              string     `gorm:"not null;column:title" json:"title"`
	Description        string     `gorm:"column:description" json:"description"`
	StartDate          time.Time  `gorm:"type:date;not null;column:start_date" json:"start_date"`
	DueDate            *time.Time `gorm:"type:date;column:due_date" json:"due_date,omitempty"`
	Status             string     `gorm:"not null;column:status;default:'not_started'" json:"status"`
	Priority           string     `gorm:"not null;column:priority;default:'medium'" json:"priority"`
	ProgressPercentage int        `gorm:"column:progress_percentage;not null;default:0" json:"progress_percentage"`
	CreatedAt          time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Goal) TableName() string { return "goal" }

type GoalStep struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	GoalID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"goal_id"`
	Goal        *Goal      `gorm:"constraint:OnDelete:CASCADE;foreignKey:GoalID;references:ID" json:"goal,omitempty"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	Order       int        `gorm:"column:step_order;not null;default:0" json:"order"`
	IsCompleted bool       `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	DueDate     *time.Time `gorm:"type:date;column:due_date" json:"due_date,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (GoalStep) TableName() string { return "goal_step" }

type GoalProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	GoalID    uuid.UUID `gorm:"type:uuid;not null;index:idx_goal_progress_date,unique" json:"goal_id"`
	Goal      *Goal     `gorm:"constraint:OnDelete:CASCADE;foreignKey:GoalID;references:ID" json:"goal,omitempty"`
	Date      time.Time `gorm:"type:date;not null;column:date;index:idx_goal_progress_date,unique" json:"date"`
	Progress  int       `gorm:"column:progress;not null;default:0" json:"progress"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (GoalProgress) TableName() string { return "goal_progress" }
