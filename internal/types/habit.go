package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	HabitCategoryStudy       = "study"
	HabitCategoryExercise    = "exercise"
	HabitCategoryReading     = "reading"
	HabitCategoryMeditation  = "meditation"
	HabitCategoryProgramming = "programming"
	HabitCategoryLanguage    = "language"
	HabitCategoryOther       = "other"
)

// StudyCategories are the habit categories counted as study time in
// activity summaries.
var StudyCategories = []string{HabitCategoryStudy, HabitCategoryProgramming, HabitCategoryLanguage}

// LearningCategories are the habit categories considered learning activity
// when building learning patterns.
var LearningCategories = []string{HabitCategoryStudy, HabitCategoryProgramming, HabitCategoryLanguage, HabitCategoryReading}

type Habit struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name          string    `gorm:"not null;column:name" json:"name"`
	Description   string    `gorm:"column:description" json:"description"`
	Category      string    `gorm:"not null;column:category;default:'other'" json:"category"`
	TargetValue   float64   `gorm:"column:target_value;not null;default:0" json:"target_value"`
	UnitOfMeasure string    `gorm:"column:unit_of_measure;default:'minutes'" json:"unit_of_measure"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Habit) TableName() string { return "habit" }
