package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type HabitLogRepo interface {
	// Upsert keys on the unique (habit_id, log_date) pair.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.HabitLog) error
	GetByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) ([]*types.HabitLog, error)
	GetByHabitAndRange(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, start, end time.Time) ([]*types.HabitLog, error)
	// GetByUserAndRange returns logs for all of the user's habits, with the
	// owning Habit preloaded.
	GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.HabitLog, error)
	GetByUserCategoriesAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, categories []string, start, end time.Time) ([]*types.HabitLog, error)
	FullDeleteByID(ctx context.Context, tx *gorm.DB, habitID, id uuid.UUID) error
}

type habitLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHabitLogRepo(db *gorm.DB, baseLog *logger.Logger) HabitLogRepo {
	return &habitLogRepo{db: db, log: baseLog.With("repo", "HabitLogRepo")}
}

func (r *habitLogRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.HabitLog) error {
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
		Where("habit_id = ? AND log_date = ?", row.HabitID, row.LogDate).
		Assign(map[string]interface{}{"value": row.Value, "notes": row.Notes}).
		FirstOrCreate(row).Error
}

func (r *habitLogRepo) GetByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) ([]*types.HabitLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.HabitLog
	if habitID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("log_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitLogRepo) GetByHabitAndRange(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, start, end time.Time) ([]*types.HabitLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.HabitLog
	if habitID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("habit_id = ? AND log_date >= ? AND log_date <= ?", habitID, start, end).
		Order("log_date").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitLogRepo) GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.HabitLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.HabitLog
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Habit").
		Joins("JOIN habit ON habit.id = habit_log.habit_id").
		Where("habit.user_id = ? AND habit_log.log_date >= ? AND habit_log.log_date <= ?", userID, start, end).
		Order("habit_log.log_date").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitLogRepo) GetByUserCategoriesAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, categories []string, start, end time.Time) ([]*types.HabitLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.HabitLog
	if userID == uuid.Nil || len(categories) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Habit").
		Joins("JOIN habit ON habit.id = habit_log.habit_id").
		Where("habit.user_id = ? AND habit.category IN ? AND habit_log.log_date >= ? AND habit_log.log_date <= ?", userID, categories, start, end).
		Order("habit_log.log_date").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitLogRepo) FullDeleteByID(ctx context.Context, tx *gorm.DB, habitID, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND habit_id = ?", id, habitID).
		Delete(&types.HabitLog{}).Error
}
