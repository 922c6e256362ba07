package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type LearningPatternRepo interface {
	// Upsert keys on user_id; the pattern is a per-user singleton.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.LearningPattern) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.LearningPattern, error)
}

type learningPatternRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningPatternRepo(db *gorm.DB, baseLog *logger.Logger) LearningPatternRepo {
	return &learningPatternRepo{db: db, log: baseLog.With("repo", "LearningPatternRepo")}
}

func (r *learningPatternRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.LearningPattern) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", row.UserID).
		Assign(map[string]interface{}{
			"hourly_efficiency":       row.HourlyEfficiency,
			"weekday_efficiency":      row.WeekdayEfficiency,
			"content_type_efficiency": row.ContentTypeEfficiency,
		}).
		FirstOrCreate(row).Error
}

func (r *learningPatternRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.LearningPattern, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.LearningPattern
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
