package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// ActivitySummary is a derived record: one roll-up of a user's activity over
// a daily, weekly or monthly period. Recomputation upserts in place, keyed by
// (user, period_type, start_date).
type ActivitySummary struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID      `gorm:"type:uuid;not null;index:idx_summary_user_period_start,unique" json:"user_id"`
	User                 *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	PeriodType           string         `gorm:"not null;column:period_type;index:idx_summary_user_period_start,unique" json:"period_type"`
	StartDate            time.Time      `gorm:"type:date;not null;column:start_date;index:idx_summary_user_period_start,unique" json:"start_date"`
	EndDate              time.Time      `gorm:"type:date;not null;column:end_date" json:"end_date"`
	ActivityData         datatypes.JSON `gorm:"type:jsonb;column:activity_data" json:"activity_data"`
	TotalStudyTime       int            `gorm:"column:total_study_time;not null;default:0" json:"total_study_time"`
	AvgDailyStudyTime    float64        `gorm:"column:avg_daily_study_time;not null;default:0" json:"avg_daily_study_time"`
	TotalHabitsCompleted int            `gorm:"column:total_habits_completed;not null;default:0" json:"total_habits_completed"`
	HabitCompletionRate  float64        `gorm:"column:habit_completion_rate;not null;default:0" json:"habit_completion_rate"`
	PagesRead            int            `gorm:"column:pages_read;not null;default:0" json:"pages_read"`
	BooksCompleted       int            `gorm:"column:books_completed;not null;default:0" json:"books_completed"`
	GoalsCompleted       int            `gorm:"column:goals_completed;not null;default:0" json:"goals_completed"`
	GoalStepsCompleted   int            `gorm:"column:goal_steps_completed;not null;default:0" json:"goal_steps_completed"`
	CreatedAt            time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ActivitySummary) TableName() string { return "activity_summary" }

// ActivityData is the per-day breakdown stored in ActivitySummary.ActivityData.
type ActivityData struct {
	StudyTimeByDay       map[string]float64 `json:"study_time_by_day"`
	HabitCompletionByDay map[string]int     `json:"habit_completion_by_day"`
	PagesReadByDay       map[string]int     `json:"pages_read_by_day"`
	GoalProgressByDay    map[string]float64 `json:"goal_progress_by_day"`
}
