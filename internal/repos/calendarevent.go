package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type CalendarEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.CalendarEvent) (*types.CalendarEvent, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.CalendarEvent, error)
	GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end *time.Time) ([]*types.CalendarEvent, error)
	// GetByUserCategoriesSince returns events in the given categories whose
	// start time falls on or after the cutoff.
	GetByUserCategoriesSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, categories []string, since time.Time) ([]*types.CalendarEvent, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.CalendarEvent) error
	FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error
}

type calendarEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalendarEventRepo(db *gorm.DB, baseLog *logger.Logger) CalendarEventRepo {
	return &calendarEventRepo{db: db, log: baseLog.With("repo", "CalendarEventRepo")}
}

func (r *calendarEventRepo) Create(ctx context.Context, tx *gorm.DB, row *types.CalendarEvent) (*types.CalendarEvent, error) {
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

func (r *calendarEventRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.CalendarEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.CalendarEvent
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *calendarEventRepo) GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end *time.Time) ([]*types.CalendarEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CalendarEvent
	if userID == uuid.Nil {
		return results, nil
	}
	query := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if start != nil {
		query = query.Where("start_time >= ?", *start)
	}
	if end != nil {
		query = query.Where("end_time <= ?", *end)
	}
	if err := query.Order("start_time").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *calendarEventRepo) GetByUserCategoriesSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, categories []string, since time.Time) ([]*types.CalendarEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CalendarEvent
	if userID == uuid.Nil || len(categories) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND category IN ? AND start_time >= ?", userID, categories, since).
		Order("start_time").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *calendarEventRepo) Update(ctx context.Context, tx *gorm.DB, row *types.CalendarEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *calendarEventRepo) FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.CalendarEvent{}).Error
}
