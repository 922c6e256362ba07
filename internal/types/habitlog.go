package types

import (
	"time"

	"github.com/google/uuid"
)

type HabitLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	HabitID   uuid.UUID `gorm:"type:uuid;not null;index:idx_habit_log_date,unique" json:"habit_id"`
	Habit     *Habit    `gorm:"constraint:OnDelete:CASCADE;foreignKey:HabitID;references:ID" json:"habit,omitempty"`
	LogDate   time.Time `gorm:"type:date;not null;column:log_date;index:idx_habit_log_date,unique" json:"log_date"`
	Value     float64   `gorm:"not null;column:value" json:"value"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (HabitLog) TableName() string { return "habit_log" }
