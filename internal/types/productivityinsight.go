package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	InsightTypeTimePattern    = "time_pattern"
	InsightTypeCorrelation    = "correlation"
	InsightTypeTrend          = "trend"
	InsightTypeRecommendation = "recommendation"
)

// ProductivityInsight is a derived record: one live insight per
// (user, insight_type), replaced wholesale on each generation.
type ProductivityInsight struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_insight_user_type,unique" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	InsightType string         `gorm:"not null;column:insight_type;index:idx_insight_user_type,unique" json:"insight_type"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Description string         `gorm:"not null;column:description" json:"description"`
	Data        datatypes.JSON `gorm:"type:jsonb;column:data" json:"data"`
	GeneratedAt time.Time      `gorm:"not null;default:now();column:generated_at" json:"generated_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ProductivityInsight) TableName() string { return "productivity_insight" }
