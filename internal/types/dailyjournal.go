package types

import (
	"time"

	"github.com/google/uuid"
)

type DailyJournal struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index:idx_journal_user_date,unique" json:"user_id"`
	User               *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date               time.Time `gorm:"type:date;not null;column:date;index:idx_journal_user_date,unique" json:"date"`
	Content            string    `gorm:"column:content" json:"content"`
	Mood               string    `gorm:"column:mood" json:"mood"`
	ProductivityRating *int      `gorm:"column:productivity_rating" json:"productivity_rating,omitempty"`
	CreatedAt          time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyJournal) TableName() string { return "daily_journal" }
