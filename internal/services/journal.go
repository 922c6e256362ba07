package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/apierr"
	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/repos"
	"github.com/yungbote/selfinvest-backend/internal/requestdata"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type JournalInput struct {
	Date               string
	Content            string
	Mood               string
	ProductivityRating *int
}

type JournalService interface {
	// Upsert writes the day's entry; one entry per user per date.
	Upsert(ctx context.Context, input JournalInput, now time.Time) (*types.DailyJournal, error)
	List(ctx context.Context) ([]*types.DailyJournal, error)
	Range(ctx context.Context, start, end time.Time) ([]*types.DailyJournal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type journalService struct {
	db          *gorm.DB
	log         *logger.Logger
	journalRepo repos.DailyJournalRepo
}

func NewJournalService(db *gorm.DB, log *logger.Logger, journalRepo repos.DailyJournalRepo) JournalService {
	return &journalService{db: db, log: log.With("service", "JournalService"), journalRepo: journalRepo}
}

func (s *journalService) requireUser(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	return rd.UserID, nil
}

func (s *journalService) Upsert(ctx context.Context, input JournalInput, now time.Time) (*types.DailyJournal, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	date := dateOnly(now)
	if input.Date != "" {
		parsed, err := time.Parse(dateLayout, input.Date)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_date", fmt.Errorf("invalid journal date %q", input.Date))
		}
		date = dateOnly(parsed)
	}
	if input.ProductivityRating != nil {
		if *input.ProductivityRating < 1 || *input.ProductivityRating > 10 {
			return nil, apierr.New(http.StatusBadRequest, "invalid_rating", fmt.Errorf("productivity rating must be between 1 and 10"))
		}
	}
	row := &types.DailyJournal{
		UserID:             userID,
		Date:               date,
		Content:            input.Content,
		Mood:               input.Mood,
		ProductivityRating: input.ProductivityRating,
	}
	if err := s.journalRepo.Upsert(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("upserting journal: %w", err)
	}
	return row, nil
}

func (s *journalService) List(ctx context.Context) ([]*types.DailyJournal, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.journalRepo.GetByUserID(ctx, nil, userID)
}

func (s *journalService) Range(ctx context.Context, start, end time.Time) ([]*types.DailyJournal, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.journalRepo.GetByUserAndRange(ctx, nil, userID, dateOnly(start), dateOnly(end))
}

func (s *journalService) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	return s.journalRepo.FullDeleteByID(ctx, nil, userID, id)
}
