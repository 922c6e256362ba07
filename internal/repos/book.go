package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type BookRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Book) (*types.Book, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Book, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Book, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Book) error
	FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error

	CreateNote(ctx context.Context, tx *gorm.DB, row *types.BookNote) (*types.BookNote, error)
	GetNotesByBookID(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) ([]*types.BookNote, error)
	UpdateNote(ctx context.Context, tx *gorm.DB, row *types.BookNote) error
	FullDeleteNoteByID(ctx context.Context, tx *gorm.DB, bookID, id uuid.UUID) error
}

type bookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	return &bookRepo{db: db, log: baseLog.With("repo", "BookRepo")}
}

func (r *bookRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Book) (*types.Book, error) {
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

func (r *bookRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Book
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *bookRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Book
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Book) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *bookRepo) FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.Book{}).Error
}

func (r *bookRepo) CreateNote(ctx context.Context, tx *gorm.DB, row *types.BookNote) (*types.BookNote, error) {
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

func (r *bookRepo) GetNotesByBookID(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) ([]*types.BookNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.BookNote
	if bookID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("page_number, created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookRepo) UpdateNote(ctx context.Context, tx *gorm.DB, row *types.BookNote) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *bookRepo) FullDeleteNoteByID(ctx context.Context, tx *gorm.DB, bookID, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND book_id = ?", id, bookID).
		Delete(&types.BookNote{}).Error
}
