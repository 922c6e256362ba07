package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type AchievementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Achievement) (*types.Achievement, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Achievement, error)
	// Exists reports whether the user already holds the badge identified by
	// the typed (badge_type, badge_kind, threshold) identity.
	Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, badgeType, badgeKind string, threshold int) (bool, error)
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	return &achievementRepo{db: db, log: baseLog.With("repo", "AchievementRepo")}
}

func (r *achievementRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Achievement) (*types.Achievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *achievementRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Achievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Achievement
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("achieved_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *achievementRepo) Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, badgeType, badgeKind string, threshold int) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Achievement{}).
		Where("user_id = ? AND badge_type = ? AND badge_kind = ? AND threshold = ?", userID, badgeType, badgeKind, threshold).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
