package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type ReminderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Reminder) (*types.Reminder, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Reminder, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Reminder, error)
	// GetActiveInWindow returns active reminders whose trigger time falls in
	// [from, to].
	GetActiveInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Reminder, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Reminder) error
	FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error
}

type reminderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReminderRepo(db *gorm.DB, baseLog *logger.Logger) ReminderRepo {
	return &reminderRepo{db: db, log: baseLog.With("repo", "ReminderRepo")}
}

func (r *reminderRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Reminder) (*types.Reminder, error) {
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

func (r *reminderRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Reminder, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Reminder
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *reminderRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Reminder, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Reminder
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("trigger_time").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reminderRepo) GetActiveInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Reminder, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Reminder
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND trigger_time >= ? AND trigger_time <= ?", userID, true, from, to).
		Order("trigger_time").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reminderRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Reminder) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *reminderRepo) FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.Reminder{}).Error
}
