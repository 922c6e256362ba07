package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LearningPattern is a derived record: the singleton per-user efficiency
// profile, upserted on each recomputation.
type LearningPattern struct {
	ID                    uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID                uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User                  *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	HourlyEfficiency      datatypes.JSON `gorm:"type:jsonb;column:hourly_efficiency" json:"hourly_efficiency"`
	WeekdayEfficiency     datatypes.JSON `gorm:"type:jsonb;column:weekday_efficiency" json:"weekday_efficiency"`
	ContentTypeEfficiency datatypes.JSON `gorm:"type:jsonb;column:content_type_efficiency" json:"content_type_efficiency"`
	GeneratedAt           time.Time      `gorm:"not null;default:now();column:generated_at" json:"generated_at"`
	UpdatedAt             time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (LearningPattern) TableName() string { return "learning_pattern" }
