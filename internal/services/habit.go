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

var validHabitCategories = map[string]struct{}{
	types.HabitCategoryStudy:       {},
	types.HabitCategoryExercise:    {},
	types.HabitCategoryReading:     {},
	types.HabitCategoryMeditation:  {},
	types.HabitCategoryProgramming: {},
	types.HabitCategoryLanguage:    {},
	types.HabitCategoryOther:       {},
}

type HabitInput struct {
	Name          string
	Description   string
	Category      string
	TargetValue   float64
	UnitOfMeasure string
	IsActive      *bool
}

// LogResult carries the upserted log plus the streak state it produced.
type LogResult struct {
	Log       *types.HabitLog      `json:"log"`
	Streak    int                  `json:"streak"`
	NewBadges []*types.Achievement `json:"new_badges,omitempty"`
}

type HabitService interface {
	Create(ctx context.Context, input HabitInput) (*types.Habit, error)
	List(ctx context.Context) ([]*types.Habit, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Habit, error)
	Update(ctx context.Context, id uuid.UUID, input HabitInput) (*types.Habit, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// LogProgress upserts the day's log and re-checks streak badges.
	LogProgress(ctx context.Context, habitID uuid.UUID, date string, value float64, notes string, now time.Time) (*LogResult, error)
	Logs(ctx context.Context, habitID uuid.UUID) ([]*types.HabitLog, error)
	// Summary reports per-habit streaks and 30-day completion rates for
	// the user's active habits.
	Summary(ctx context.Context, now time.Time) ([]*HabitSummary, error)
}

type HabitSummary struct {
	Habit          *types.Habit `json:"habit"`
	Streak         int          `json:"streak"`
	CompletionRate float64      `json:"completion_rate"`
	LastLogged     *time.Time   `json:"last_logged,omitempty"`
}

type habitService struct {
	db           *gorm.DB
	log          *logger.Logger
	habitRepo    repos.HabitRepo
	logRepo      repos.HabitLogRepo
	achievements AchievementService
}

func NewHabitService(db *gorm.DB, log *logger.Logger, habitRepo repos.HabitRepo, logRepo repos.HabitLogRepo, achievements AchievementService) HabitService {
	return &habitService{
		db:           db,
		log:          log.With("service", "HabitService"),
		habitRepo:    habitRepo,
		logRepo:      logRepo,
		achievements: achievements,
	}
}

func (s *habitService) requireUser(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	return rd.UserID, nil
}

func (s *habitService) Create(ctx context.Context, input HabitInput) (*types.Habit, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_name", fmt.Errorf("habit name required"))
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = types.HabitCategoryOther
	}
	if _, ok := validHabitCategories[category]; !ok {
		return nil, apierr.New(http.StatusBadRequest, "invalid_category", fmt.Errorf("invalid habit category %q", category))
	}
	habit := &types.Habit{
		UserID:        userID,
		Name:          name,
		Description:   input.Description,
		Category:      category,
		TargetValue:   input.TargetValue,
		UnitOfMeasure: input.UnitOfMeasure,
		IsActive:      true,
	}
	if input.IsActive != nil {
		habit.IsActive = *input.IsActive
	}
	return s.habitRepo.Create(ctx, nil, habit)
}

func (s *habitService) List(ctx context.Context) ([]*types.Habit, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.habitRepo.GetByUserID(ctx, nil, userID)
}

func (s *habitService) Get(ctx context.Context, id uuid.UUID) (*types.Habit, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	habit, err := s.habitRepo.GetByID(ctx, nil, userID, id)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "habit_not_found", err)
	}
	return habit, nil
}

func (s *habitService) Update(ctx context.Context, id uuid.UUID, input HabitInput) (*types.Habit, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	habit, err := s.habitRepo.GetByID(ctx, nil, userID, id)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "habit_not_found", err)
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		habit.Name = name
	}
	if input.Description != "" {
		habit.Description = input.Description
	}
	if category := strings.TrimSpace(input.Category); category != "" {
		if _, ok := validHabitCategories[category]; !ok {
			return nil, apierr.New(http.StatusBadRequest, "invalid_category", fmt.Errorf("invalid habit category %q", category))
		}
		habit.Category = category
	}
	if input.TargetValue > 0 {
		habit.TargetValue = input.TargetValue
	}
	if input.UnitOfMeasure != "" {
		habit.UnitOfMeasure = input.UnitOfMeasure
	}
	if input.IsActive != nil {
		habit.IsActive = *input.IsActive
	}
	if err := s.habitRepo.Update(ctx, nil, habit); err != nil {
		return nil, fmt.Errorf("updating habit: %w", err)
	}
	return habit, nil
}

func (s *habitService) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	return s.habitRepo.FullDeleteByID(ctx, nil, userID, id)
}

func (s *habitService) LogProgress(ctx context.Context, habitID uuid.UUID, date string, value float64, notes string, now time.Time) (*LogResult, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.habitRepo.GetByID(ctx, nil, userID, habitID); err != nil {
		return nil, apierr.New(http.StatusNotFound, "habit_not_found", err)
	}
	logDate := dateOnly(now)
	if date != "" {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_date", fmt.Errorf("invalid log date %q", date))
		}
		logDate = dateOnly(parsed)
	}
	if value < 0 {
		return nil, apierr.New(http.StatusBadRequest, "invalid_value", fmt.Errorf("log value must not be negative"))
	}

	row := &types.HabitLog{HabitID: habitID, LogDate: logDate, Value: value, Notes: notes}
	if err := s.logRepo.Upsert(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("upserting habit log: %w", err)
	}
	streak, badges, err := s.achievements.CheckStreaks(ctx, habitID, now)
	if err != nil {
		return nil, err
	}
	return &LogResult{Log: row, Streak: streak, NewBadges: badges}, nil
}

func (s *habitService) Logs(ctx context.Context, habitID uuid.UUID) ([]*types.HabitLog, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.habitRepo.GetByID(ctx, nil, userID, habitID); err != nil {
		return nil, apierr.New(http.StatusNotFound, "habit_not_found", err)
	}
	return s.logRepo.GetByHabitID(ctx, nil, habitID)
}

func (s *habitService) Summary(ctx context.Context, now time.Time) ([]*HabitSummary, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	habits, err := s.habitRepo.GetActiveByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching habits: %w", err)
	}
	today := dateOnly(now)
	windowStart := today.AddDate(0, 0, -(recommendationWindowDays - 1))
	summaries := make([]*HabitSummary, 0, len(habits))
	for _, habit := range habits {
		logs, err := s.logRepo.GetByHabitID(ctx, nil, habit.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching logs for habit %s: %w", habit.ID, err)
		}
		entry := &HabitSummary{Habit: habit, Streak: currentStreak(logs, now)}
		var recent int
		for _, l := range logs {
			day := dateOnly(l.LogDate)
			if !day.Before(windowStart) && !day.After(today) {
				recent++
			}
		}
		entry.CompletionRate = float64(recent) / recommendationWindowDays * 100
		if len(logs) > 0 {
			last := dateOnly(logs[0].LogDate)
			entry.LastLogged = &last
		}
		summaries = append(summaries, entry)
	}
	return summaries, nil
}
