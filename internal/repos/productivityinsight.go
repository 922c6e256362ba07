package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type ProductivityInsightRepo interface {
	// Upsert keys on the unique (user_id, insight_type) pair; each generation
	// replaces the prior live insight of that type.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.ProductivityInsight) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ProductivityInsight, error)
	GetByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, insightType string) (*types.ProductivityInsight, error)
}

type productivityInsightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductivityInsightRepo(db *gorm.DB, baseLog *logger.Logger) ProductivityInsightRepo {
	return &productivityInsightRepo{db: db, log: baseLog.With("repo", "ProductivityInsightRepo")}
}

func (r *productivityInsightRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.ProductivityInsight) error {
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
		Where("user_id = ? AND insight_type = ?", row.UserID, row.InsightType).
		Assign(map[string]interface{}{
			"title":       row.Title,
			"description": row.Description,
			"data":        row.Data,
		}).
		FirstOrCreate(row).Error
}

func (r *productivityInsightRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ProductivityInsight, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ProductivityInsight
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *productivityInsightRepo) GetByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, insightType string) (*types.ProductivityInsight, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.ProductivityInsight
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND insight_type = ?", userID, insightType).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
