package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventCategoryStudy    = "study"
	EventCategoryExercise = "exercise"
	EventCategoryMeeting  = "meeting"
	EventCategoryReading  = "reading"
	EventCategoryPersonal = "personal"
	EventCategoryOther    = "other"
)

// ActivityCategories are the event categories that count as deliberate
// activity when mining time patterns.
var ActivityCategories = []string{EventCategoryStudy, EventCategoryExercise, EventCategoryReading}

// LearningEventCategories are the event categories treated as learning
// sessions for hourly efficiency.
var LearningEventCategories = []string{EventCategoryStudy, EventCategoryReading}

type CalendarEvent struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User             *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title            string     `gorm:"not null;column:title" json:"title"`
	Description      string     `gorm:"column:description" json:"description"`
	StartTime        time.Time  `gorm:"not null;column:start_time;index" json:"start_time"`
	EndTime          time.Time  `gorm:"not null;column:end_time" json:"end_time"`
	AllDay           bool       `gorm:"column:all_day;not null;default:false" json:"all_day"`
	Category         string     `gorm:"not null;column:category;default:'other'" json:"category"`
	Location         string     `gorm:"column:location" json:"location"`
	IsRecurring      bool       `gorm:"column:is_recurring;not null;default:false" json:"is_recurring"`
	RecurringPattern string     `gorm:"column:recurring_pattern" json:"recurring_pattern"`
	RecurringEndDate *time.Time `gorm:"type:date;column:recurring_end_date" json:"recurring_end_date,omitempty"`
	CreatedAt        time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (CalendarEvent) TableName() string { return "calendar_event" }
