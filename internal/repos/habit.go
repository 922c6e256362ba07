package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type HabitRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Habit) (*types.Habit, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Habit, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Habit, error)
	GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Habit, error)
	GetByUserAndCategories(ctx context.Context, tx *gorm.DB, userID uuid.UUID, categories []string) ([]*types.Habit, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Habit) error
	FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error
}

type habitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHabitRepo(db *gorm.DB, baseLog *logger.Logger) HabitRepo {
	return &habitRepo{db: db, log: baseLog.With("repo", "HabitRepo")}
}

func (r *habitRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Habit) (*types.Habit, error) {
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

func (r *habitRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Habit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Habit
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *habitRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Habit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Habit
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitRepo) GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Habit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Habit
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitRepo) GetByUserAndCategories(ctx context.Context, tx *gorm.DB, userID uuid.UUID, categories []string) ([]*types.Habit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Habit
	if userID == uuid.Nil || len(categories) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND category IN ?", userID, categories).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Habit) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *habitRepo) FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.Habit{}).Error
}
