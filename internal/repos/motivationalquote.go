package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type MotivationalQuoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.MotivationalQuote) (*types.MotivationalQuote, error)
	GetAll(ctx context.Context, tx *gorm.DB, category string) ([]*types.MotivationalQuote, error)
	Count(ctx context.Context, tx *gorm.DB, category string) (int64, error)
	GetAtOffset(ctx context.Context, tx *gorm.DB, category string, offset int) (*types.MotivationalQuote, error)
}

type motivationalQuoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMotivationalQuoteRepo(db *gorm.DB, baseLog *logger.Logger) MotivationalQuoteRepo {
	return &motivationalQuoteRepo{db: db, log: baseLog.With("repo", "MotivationalQuoteRepo")}
}

func (r *motivationalQuoteRepo) Create(ctx context.Context, tx *gorm.DB, row *types.MotivationalQuote) (*types.MotivationalQuote, error) {
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

func (r *motivationalQuoteRepo) GetAll(ctx context.Context, tx *gorm.DB, category string) ([]*types.MotivationalQuote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.MotivationalQuote
	query := transaction.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("created_at").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *motivationalQuoteRepo) Count(ctx context.Context, tx *gorm.DB, category string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	query := transaction.WithContext(ctx).Model(&types.MotivationalQuote{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *motivationalQuoteRepo) GetAtOffset(ctx context.Context, tx *gorm.DB, category string, offset int) (*types.MotivationalQuote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.MotivationalQuote
	query := transaction.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("created_at").Offset(offset).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
