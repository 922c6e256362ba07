package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/apierr"
	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/repos"
	"github.com/yungbote/selfinvest-backend/internal/requestdata"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

var validBookStatuses = map[string]struct{}{
	types.BookStatusNotStarted: {},
	types.BookStatusInProgress: {},
	types.BookStatusCompleted:  {},
	types.BookStatusOnHold:     {},
	types.BookStatusAbandoned:  {},
}

type BookInput struct {
	Title       string
	Author      string
	ISBN        string
	Publisher   string
	PageCount   int
	Description string
	Status      string
	Rating      *int
	Review      string
}

type BookNoteInput struct {
	Content    string
	PageNumber int
	Highlight  bool
}

type BookService interface {
	Create(ctx context.Context, input BookInput) (*types.Book, error)
	List(ctx context.Context) ([]*types.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Book, error)
	Update(ctx context.Context, id uuid.UUID, input BookInput) (*types.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// UpdateProgress moves the bookmark and derives status transitions:
	// first progress starts the book, reaching the last page completes it.
	UpdateProgress(ctx context.Context, id uuid.UUID, currentPage int, now time.Time) (*types.Book, error)

	AddNote(ctx context.Context, bookID uuid.UUID, input BookNoteInput) (*types.BookNote, error)
	Notes(ctx context.Context, bookID uuid.UUID) ([]*types.BookNote, error)
	DeleteNote(ctx context.Context, bookID, noteID uuid.UUID) error

	// Summary rolls the user's shelf up into status counts, pages read
	// and the average rating over rated books.
	Summary(ctx context.Context) (*BookSummary, error)
}

type BookSummary struct {
	ByStatus       map[string]int `json:"by_status"`
	TotalPagesRead int            `json:"total_pages_read"`
	Completed      int            `json:"completed"`
	AverageRating  float64        `json:"average_rating"`
}

type bookService struct {
	db       *gorm.DB
	log      *logger.Logger
	bookRepo repos.BookRepo
}

func NewBookService(db *gorm.DB, log *logger.Logger, bookRepo repos.BookRepo) BookService {
	return &bookService{db: db, log: log.With("service", "BookService"), bookRepo: bookRepo}
}

func (s *bookService) requireUser(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	return rd.UserID, nil
}

func (s *bookService) Create(ctx context.Context, input BookInput) (*types.Book, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_title", fmt.Errorf("book title required"))
	}
	status := input.Status
	if status == "" {
		status = types.BookStatusNotStarted
	}
	if _, ok := validBookStatuses[status]; !ok {
		return nil, apierr.New(http.StatusBadRequest, "invalid_status", fmt.Errorf("invalid book status %q", status))
	}
	book := &types.Book{
		UserID:      userID,
		Title:       title,
		Author:      input.Author,
		ISBN:        input.ISBN,
		Publisher:   input.Publisher,
		PageCount:   input.PageCount,
		Description: input.Description,
		Status:      status,
	}
	return s.bookRepo.Create(ctx, nil, book)
}

func (s *bookService) List(ctx context.Context) ([]*types.Book, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.bookRepo.GetByUserID(ctx, nil, userID)
}

func (s *bookService) Get(ctx context.Context, id uuid.UUID) (*types.Book, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	book, err := s.bookRepo.GetByID(ctx, nil, userID, id)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "book_not_found", err)
	}
	return book, nil
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, input BookInput) (*types.Book, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	book, err := s.bookRepo.GetByID(ctx, nil, userID, id)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "book_not_found", err)
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		book.Title = title
	}
	if input.Author != "" {
		book.Author = input.Author
	}
	if input.ISBN != "" {
		book.ISBN = input.ISBN
	}
	if input.Publisher != "" {
		book.Publisher = input.Publisher
	}
	if input.PageCount > 0 {
		book.PageCount = input.PageCount
	}
	if input.Description != "" {
		book.Description = input.Description
	}
	if input.Status != "" {
		if _, ok := validBookStatuses[input.Status]; !ok {
			return nil, apierr.New(http.StatusBadRequest, "invalid_status", fmt.Errorf("invalid book status %q", input.Status))
		}
		book.Status = input.Status
	}
	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, apierr.New(http.StatusBadRequest, "invalid_rating", fmt.Errorf("rating must be between 1 and 5"))
		}
		book.Rating = input.Rating
	}
	if input.Review != "" {
		book.Review = input.Review
	}
	if err := s.bookRepo.Update(ctx, nil, book); err != nil {
		return nil, fmt.Errorf("updating book: %w", err)
	}
	return book, nil
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	return s.bookRepo.FullDeleteByID(ctx, nil, userID, id)
}

func (s *bookService) UpdateProgress(ctx context.Context, id uuid.UUID, currentPage int, now time.Time) (*types.Book, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if currentPage < 0 {
		return nil, apierr.New(http.StatusBadRequest, "invalid_page", fmt.Errorf("current page must not be negative"))
	}
	book, err := s.bookRepo.GetByID(ctx, nil, userID, id)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "book_not_found", err)
	}
	if book.PageCount > 0 && currentPage > book.PageCount {
		currentPage = book.PageCount
	}
	book.CurrentPage = currentPage

	today := dateOnly(now)
	if currentPage > 0 && book.Status == types.BookStatusNotStarted {
		book.Status = types.BookStatusInProgress
		if book.StartDate == nil {
			book.StartDate = &today
		}
	}
	if book.PageCount > 0 && currentPage >= book.PageCount {
		book.Status = types.BookStatusCompleted
		if book.FinishDate == nil {
			book.FinishDate = &today
		}
	}
	if err := s.bookRepo.Update(ctx, nil, book); err != nil {
		return nil, fmt.Errorf("updating book progress: %w", err)
	}
	return book, nil
}

func (s *bookService) AddNote(ctx context.Context, bookID uuid.UUID, input BookNoteInput) (*types.BookNote, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.bookRepo.GetByID(ctx, nil, userID, bookID); err != nil {
		return nil, apierr.New(http.StatusNotFound, "book_not_found", err)
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_content", fmt.Errorf("note content required"))
	}
	note := &types.BookNote{
		BookID:     bookID,
		Content:    input.Content,
		PageNumber: input.PageNumber,
		Highlight:  input.Highlight,
	}
	return s.bookRepo.CreateNote(ctx, nil, note)
}

func (s *bookService) Notes(ctx context.Context, bookID uuid.UUID) ([]*types.BookNote, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.bookRepo.GetByID(ctx, nil, userID, bookID); err != nil {
		return nil, apierr.New(http.StatusNotFound, "book_not_found", err)
	}
	return s.bookRepo.GetNotesByBookID(ctx, nil, bookID)
}

func (s *bookService) DeleteNote(ctx context.Context, bookID, noteID uuid.UUID) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	if _, err := s.bookRepo.GetByID(ctx, nil, userID, bookID); err != nil {
		return apierr.New(http.StatusNotFound, "book_not_found", err)
	}
	return s.bookRepo.FullDeleteNoteByID(ctx, nil, bookID, noteID)
}

func (s *bookService) Summary(ctx context.Context) (*BookSummary, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	books, err := s.bookRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching books: %w", err)
	}
	return summarizeBooks(books), nil
}

func summarizeBooks(books []*types.Book) *BookSummary {
	summary := &BookSummary{ByStatus: map[string]int{}}
	var ratingSum, rated int
	for _, b := range books {
		summary.ByStatus[b.Status]++
		switch b.Status {
		case types.BookStatusCompleted:
			summary.Completed++
			summary.TotalPagesRead += b.PageCount
		default:
			summary.TotalPagesRead += b.CurrentPage
		}
		if b.Rating != nil {
			ratingSum += *b.Rating
			rated++
		}
	}
	if rated > 0 {
		summary.AverageRating = float64(ratingSum) / float64(rated)
	}
	return summary
}
