package services

import (
	"context"
	"fmt"
	"math/rand"
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

var validRepeatPatterns = map[string]struct{}{
	types.RepeatNone:     {},
	types.RepeatDaily:    {},
	types.RepeatWeekdays: {},
	types.RepeatWeekends: {},
	types.RepeatWeekly:   {},
	types.RepeatBiweekly: {},
	types.RepeatMonthly:  {},
}

type ReminderInput struct {
	Title          string
	Description    string
	TriggerTime    time.Time
	RepeatPattern  string
	RelatedGoalID  *uuid.UUID
	RelatedHabitID *uuid.UUID
	IsActive       *bool
}

type ReminderService interface {
	Create(ctx context.Context, input ReminderInput) (*types.Reminder, error)
	List(ctx context.Context) ([]*types.Reminder, error)
	// Upcoming returns active reminders firing within the window after now.
	Upcoming(ctx context.Context, now time.Time, window time.Duration) ([]*types.Reminder, error)
	Update(ctx context.Context, id uuid.UUID, input ReminderInput) (*types.Reminder, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// RandomQuote picks a quote uniformly, optionally within a category.
	RandomQuote(ctx context.Context, category string) (*types.MotivationalQuote, error)
	Quotes(ctx context.Context, category string) ([]*types.MotivationalQuote, error)
	CreateQuote(ctx context.Context, input QuoteInput) (*types.MotivationalQuote, error)
}

type QuoteInput struct {
	Content  string
	Author   string
	Source   string
	Category string
}

type reminderService struct {
	db           *gorm.DB
	log          *logger.Logger
	reminderRepo repos.ReminderRepo
	quoteRepo    repos.MotivationalQuoteRepo
}

func NewReminderService(db *gorm.DB, log *logger.Logger, reminderRepo repos.ReminderRepo, quoteRepo repos.MotivationalQuoteRepo) ReminderService {
	return &reminderService{
		db:           db,
		log:          log.With("service", "ReminderService"),
		reminderRepo: reminderRepo,
		quoteRepo:    quoteRepo,
	}
}

func (s *reminderService) requireUser(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	return rd.UserID, nil
}

func (s *reminderService) Create(ctx context.Context, input ReminderInput) (*types.Reminder, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_title", fmt.Errorf("reminder title required"))
	}
	if input.TriggerTime.IsZero() {
		return nil, apierr.New(http.StatusBadRequest, "missing_trigger_time", fmt.Errorf("trigger time required"))
	}
	pattern := input.RepeatPattern
	if pattern == "" {
		pattern = types.RepeatNone
	}
	if _, ok := validRepeatPatterns[pattern]; !ok {
		return nil, apierr.New(http.StatusBadRequest, "invalid_repeat_pattern", fmt.Errorf("invalid repeat pattern %q", pattern))
	}
	reminder := &types.Reminder{
		UserID:         userID,
		Title:          title,
		Description:    input.Description,
		TriggerTime:    input.TriggerTime,
		RepeatPattern:  pattern,
		RelatedGoalID:  input.RelatedGoalID,
		RelatedHabitID: input.RelatedHabitID,
		IsActive:       true,
	}
	if input.IsActive != nil {
		reminder.IsActive = *input.IsActive
	}
	return s.reminderRepo.Create(ctx, nil, reminder)
}

func (s *reminderService) List(ctx context.Context) ([]*types.Reminder, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.reminderRepo.GetByUserID(ctx, nil, userID)
}

func (s *reminderService) Upcoming(ctx context.Context, now time.Time, window time.Duration) ([]*types.Reminder, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		window = 24 * time.Hour
	}
	return s.reminderRepo.GetActiveInWindow(ctx, nil, userID, now, now.Add(window))
}

func (s *reminderService) Update(ctx context.Context, id uuid.UUID, input ReminderInput) (*types.Reminder, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	reminder, err := s.reminderRepo.GetByID(ctx, nil, userID, id)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "reminder_not_found", err)
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		reminder.Title = title
	}
	if input.Description != "" {
		reminder.Description = input.Description
	}
	if !input.TriggerTime.IsZero() {
		reminder.TriggerTime = input.TriggerTime
	}
	if input.RepeatPattern != "" {
		if _, ok := validRepeatPatterns[input.RepeatPattern]; !ok {
			return nil, apierr.New(http.StatusBadRequest, "invalid_repeat_pattern", fmt.Errorf("invalid repeat pattern %q", input.RepeatPattern))
		}
		reminder.RepeatPattern = input.RepeatPattern
	}
	if input.IsActive != nil {
		reminder.IsActive = *input.IsActive
	}
	if err := s.reminderRepo.Update(ctx, nil, reminder); err != nil {
		return nil, fmt.Errorf("updating reminder: %w", err)
	}
	return reminder, nil
}

func (s *reminderService) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	return s.reminderRepo.FullDeleteByID(ctx, nil, userID, id)
}

func (s *reminderService) RandomQuote(ctx context.Context, category string) (*types.MotivationalQuote, error) {
	count, err := s.quoteRepo.Count(ctx, nil, category)
	if err != nil {
		return nil, fmt.Errorf("counting quotes: %w", err)
	}
	if count == 0 {
		return nil, apierr.New(http.StatusNotFound, "no_quotes", fmt.Errorf("no quotes available"))
	}
	quote, err := s.quoteRepo.GetAtOffset(ctx, nil, category, rand.Intn(int(count)))
	if err != nil {
		return nil, fmt.Errorf("fetching quote: %w", err)
	}
	return quote, nil
}

func (s *reminderService) Quotes(ctx context.Context, category string) ([]*types.MotivationalQuote, error) {
	return s.quoteRepo.GetAll(ctx, nil, category)
}

func (s *reminderService) CreateQuote(ctx context.Context, input QuoteInput) (*types.MotivationalQuote, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_content", fmt.Errorf("quote content required"))
	}
	category := input.Category
	if category == "" {
		category = "motivation"
	}
	return s.quoteRepo.Create(ctx, nil, &types.MotivationalQuote{
		Content:  content,
		Author:   input.Author,
		Source:   input.Source,
		Category: category,
	})
}
