package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type ActivitySummaryRepo interface {
	// Upsert keys on the unique (user_id, period_type, start_date) triple;
	// recomputation overwrites in place.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.ActivitySummary) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ActivitySummary, error)
	GetByKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, periodType string, startDate time.Time) (*types.ActivitySummary, error)
}

type activitySummaryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivitySummaryRepo(db *gorm.DB, baseLog *logger.Logger) ActivitySummaryRepo {
	return &activitySummaryRepo{db: db, log: baseLog.With("repo", "ActivitySummaryRepo")}
}

func (r *activitySummaryRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.ActivitySummary) error {
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
		Where("user_id = ? AND period_type = ? AND start_date = ?", row.UserID, row.PeriodType, row.StartDate).
		Assign(map[string]interface{}{
			"end_date":               row.EndDate,
			"activity_data":          row.ActivityData,
			"total_study_time":       row.TotalStudyTime,
			"avg_daily_study_time":   row.AvgDailyStudyTime,
			"total_habits_completed": row.TotalHabitsCompleted,
			"habit_completion_rate":  row.HabitCompletionRate,
			"pages_read":             row.PagesRead,
			"books_completed":        row.BooksCompleted,
			"goals_completed":        row.GoalsCompleted,
			"goal_steps_completed":   row.GoalStepsCompleted,
		}).
		FirstOrCreate(row).Error
}

func (r *activitySummaryRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ActivitySummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ActivitySummary
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *activitySummaryRepo) GetByKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, periodType string, startDate time.Time) (*types.ActivitySummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.ActivitySummary
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND period_type = ? AND start_date = ?", userID, periodType, startDate).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
