package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type DashboardRepo interface {
	GetSettingByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.DashboardSetting, error)
	// UpsertSetting keys on user_id; the setting is a per-user singleton.
	UpsertSetting(ctx context.Context, tx *gorm.DB, row *types.DashboardSetting) error

	CreateWidget(ctx context.Context, tx *gorm.DB, row *types.Widget) (*types.Widget, error)
	GetWidgetsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Widget, error)
	UpdateWidget(ctx context.Context, tx *gorm.DB, row *types.Widget) error
	FullDeleteWidgetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error
}

type dashboardRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDashboardRepo(db *gorm.DB, baseLog *logger.Logger) DashboardRepo {
	return &dashboardRepo{db: db, log: baseLog.With("repo", "DashboardRepo")}
}

func (r *dashboardRepo) GetSettingByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.DashboardSetting, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.DashboardSetting
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *dashboardRepo) UpsertSetting(ctx context.Context, tx *gorm.DB, row *types.DashboardSetting) error {
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
			"theme":              row.Theme,
			"default_view":       row.DefaultView,
			"widget_layout":      row.WidgetLayout,
			"show_streak_counts": row.ShowStreakCounts,
			"show_goal_progress": row.ShowGoalProgress,
			"show_habit_summary": row.ShowHabitSummary,
			"show_reading_stats": row.ShowReadingStats,
		}).
		FirstOrCreate(row).Error
}

func (r *dashboardRepo) CreateWidget(ctx context.Context, tx *gorm.DB, row *types.Widget) (*types.Widget, error) {
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

func (r *dashboardRepo) GetWidgetsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Widget, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Widget
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *dashboardRepo) UpdateWidget(ctx context.Context, tx *gorm.DB, row *types.Widget) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *dashboardRepo) FullDeleteWidgetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.Widget{}).Error
}
