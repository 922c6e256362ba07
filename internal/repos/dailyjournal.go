package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type DailyJournalRepo interface {
	// Upsert keys on the unique (user_id, date) pair.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.DailyJournal) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.DailyJournal, error)
	GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.DailyJournal, error)
	// GetRatedByUserSince returns journal entries with a productivity rating
	// on or after the cutoff date.
	GetRatedByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.DailyJournal, error)
	FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error
}

type dailyJournalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyJournalRepo(db *gorm.DB, baseLog *logger.Logger) DailyJournalRepo {
	return &dailyJournalRepo{db: db, log: baseLog.With("repo", "DailyJournalRepo")}
}

func (r *dailyJournalRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.DailyJournal) error {
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
		Where("user_id = ? AND date = ?", row.UserID, row.Date).
		Assign(map[string]interface{}{
			"content":             row.Content,
			"mood":                row.Mood,
			"productivity_rating": row.ProductivityRating,
		}).
		FirstOrCreate(row).Error
}

func (r *dailyJournalRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.DailyJournal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.DailyJournal
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *dailyJournalRepo) GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.DailyJournal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.DailyJournal
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *dailyJournalRepo) GetRatedByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.DailyJournal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.DailyJournal
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND productivity_rating IS NOT NULL", userID, since).
		Order("date").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *dailyJournalRepo) FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.DailyJournal{}).Error
}
