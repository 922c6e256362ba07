package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type GoalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Goal) (*types.Goal, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Goal, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, parentOnly bool) ([]*types.Goal, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Goal) error
	FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error
	// CountCompletedInRange counts the user's goals whose status is
	// "completed" and whose last update falls inside [start, end].
	CountCompletedInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) (int64, error)

	CreateStep(ctx context.Context, tx *gorm.DB, row *types.GoalStep) (*types.GoalStep, error)
	GetStepsByGoalID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) ([]*types.GoalStep, error)
	UpdateStep(ctx context.Context, tx *gorm.DB, row *types.GoalStep) error
	FullDeleteStepByID(ctx context.Context, tx *gorm.DB, goalID, id uuid.UUID) error
	CountCompletedStepsInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) (int64, error)

	// UpsertProgress keys on the unique (goal_id, date) pair.
	UpsertProgress(ctx context.Context, tx *gorm.DB, row *types.GoalProgress) error
	GetProgressByGoalID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) ([]*types.GoalProgress, error)
	GetProgressByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) ([]*types.GoalProgress, error)
}

type goalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoalRepo(db *gorm.DB, baseLog *logger.Logger) GoalRepo {
	return &goalRepo{db: db, log: baseLog.With("repo", "GoalRepo")}
}

func (r *goalRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Goal) (*types.Goal, error) {
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

func (r *goalRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Goal
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *goalRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, parentOnly bool) ([]*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Goal
	if userID == uuid.Nil {
		return results, nil
	}
	query := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if parentOnly {
		query = query.Where("parent_goal_id IS NULL")
	}
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *goalRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Goal) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *goalRepo) FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.Goal{}).Error
}

func (r *goalRepo) CountCompletedInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Goal{}).
		Where("user_id = ? AND status = ? AND updated_at >= ? AND updated_at <= ?", userID, types.GoalStatusCompleted, start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *goalRepo) CreateStep(ctx context.Context, tx *gorm.DB, row *types.GoalStep) (*types.GoalStep, error) {
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

func (r *goalRepo) GetStepsByGoalID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) ([]*types.GoalStep, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.GoalStep
	if goalID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("step_order").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *goalRepo) UpdateStep(ctx context.Context, tx *gorm.DB, row *types.GoalStep) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *goalRepo) FullDeleteStepByID(ctx context.Context, tx *gorm.DB, goalID, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND goal_id = ?", id, goalID).
		Delete(&types.GoalStep{}).Error
}

func (r *goalRepo) CountCompletedStepsInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.GoalStep{}).
		Joins("JOIN goal ON goal.id = goal_step.goal_id").
		Where("goal.user_id = ? AND goal_step.is_completed = ? AND goal_step.updated_at >= ? AND goal_step.updated_at <= ?", userID, true, start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *goalRepo) UpsertProgress(ctx context.Context, tx *gorm.DB, row *types.GoalProgress) error {
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
		Where("goal_id = ? AND date = ?", row.GoalID, row.Date).
		Assign(map[string]interface{}{"progress": row.Progress, "notes": row.Notes}).
		FirstOrCreate(row).Error
}

func (r *goalRepo) GetProgressByGoalID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) ([]*types.GoalProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.GoalProgress
	if goalID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *goalRepo) GetProgressByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) ([]*types.GoalProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.GoalProgress
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Joins("JOIN goal ON goal.id = goal_progress.goal_id").
		Where("goal.user_id = ? AND goal_progress.date = ?", userID, date).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
