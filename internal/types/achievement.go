package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	BadgeTypeStreak     = "streak"
	BadgeTypeMilestone  = "milestone"
	BadgeTypeCompletion = "completion"
	BadgeTypeProgress   = "progress"
	BadgeTypeSpecial    = "special"
)

// Achievement identity is the typed (badge_type, badge_kind, threshold) tuple
// rather than a title substring, so a badge can be granted at most once even
// if display copy changes.
type Achievement struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_achievement_identity,unique" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	BadgeType   string    `gorm:"not null;column:badge_type;index:idx_achievement_identity,unique" json:"badge_type"`
	BadgeKind   string    `gorm:"not null;column:badge_kind;index:idx_achievement_identity,unique" json:"badge_kind"`
	Threshold   int       `gorm:"column:threshold;not null;default:0;index:idx_achievement_identity,unique" json:"threshold"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Description string    `gorm:"not null;column:description" json:"description"`
	Icon        string    `gorm:"column:icon" json:"icon"`
	AchievedAt  time.Time `gorm:"not null;default:now();column:achieved_at" json:"achieved_at"`
}

func (Achievement) TableName() string { return "achievement" }
