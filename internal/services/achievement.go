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

// streakThresholds are the streak lengths that earn a badge, ascending.
var streakThresholds = []int{7, 30, 60, 90, 180, 365}

type AchievementService interface {
	// CurrentStreak reports the habit's unbroken run of daily logs ending
	// today or yesterday.
	CurrentStreak(ctx context.Context, habitID uuid.UUID, now time.Time) (int, error)
	// CheckStreaks recomputes the streak and grants any newly crossed
	// milestone badges, returning the badges granted by this call.
	CheckStreaks(ctx context.Context, habitID uuid.UUID, now time.Time) (int, []*types.Achievement, error)
	// Earn grants a non-streak badge once per (badge_type, badge_kind,
	// threshold) identity.
	Earn(ctx context.Context, input EarnInput, now time.Time) (*types.Achievement, error)
	List(ctx context.Context) ([]*types.Achievement, error)
}

type EarnInput struct {
	BadgeType   string
	BadgeKind   string
	Threshold   int
	Title       string
	Description string
	Icon        string
}

type achievementService struct {
	db              *gorm.DB
	log             *logger.Logger
	habitRepo       repos.HabitRepo
	logRepo         repos.HabitLogRepo
	achievementRepo repos.AchievementRepo
}

func NewAchievementService(
	db *gorm.DB,
	log *logger.Logger,
	habitRepo repos.HabitRepo,
	logRepo repos.HabitLogRepo,
	achievementRepo repos.AchievementRepo,
) AchievementService {
	return &achievementService{
		db:              db,
		log:             log.With("service", "AchievementService"),
		habitRepo:       habitRepo,
		logRepo:         logRepo,
		achievementRepo: achievementRepo,
	}
}

// currentStreak walks backward one day at a time from the most recent log.
// A streak is broken when the latest log is more than one day old or when a
// day in the run has no log. Logs must be ordered by date descending.
func currentStreak(logs []*types.HabitLog, today time.Time) int {
	if len(logs) == 0 {
		return 0
	}
	day := dateOnly(today)
	latest := dateOnly(logs[0].LogDate)
	if latest.Before(day.AddDate(0, 0, -1)) {
		return 0
	}
	logged := make(map[string]bool, len(logs))
	for _, l := range logs {
		logged[dateKey(l.LogDate)] = true
	}
	streak := 0
	for cursor := latest; logged[dateKey(cursor)]; cursor = cursor.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

func (s *achievementService) CurrentStreak(ctx context.Context, habitID uuid.UUID, now time.Time) (int, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return 0, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	if _, err := s.habitRepo.GetByID(ctx, nil, rd.UserID, habitID); err != nil {
		return 0, apierr.New(http.StatusNotFound, "habit_not_found", err)
	}
	logs, err := s.logRepo.GetByHabitID(ctx, nil, habitID)
	if err != nil {
		return 0, fmt.Errorf("fetching habit logs: %w", err)
	}
	return currentStreak(logs, now), nil
}

func (s *achievementService) CheckStreaks(ctx context.Context, habitID uuid.UUID, now time.Time) (int, []*types.Achievement, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return 0, nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	userID := rd.UserID
	habit, err := s.habitRepo.GetByID(ctx, nil, userID, habitID)
	if err != nil {
		return 0, nil, apierr.New(http.StatusNotFound, "habit_not_found", err)
	}
	logs, err := s.logRepo.GetByHabitID(ctx, nil, habitID)
	if err != nil {
		return 0, nil, fmt.Errorf("fetching habit logs: %w", err)
	}
	streak := currentStreak(logs, now)

	var granted []*types.Achievement
	for _, threshold := range streakThresholds {
		if streak < threshold {
			break
		}
		exists, err := s.achievementRepo.Exists(ctx, nil, userID, types.BadgeTypeStreak, habit.Name, threshold)
		if err != nil {
			return 0, nil, fmt.Errorf("checking badge: %w", err)
		}
		if exists {
			continue
		}
		badge := &types.Achievement{
			UserID:      userID,
			BadgeType:   types.BadgeTypeStreak,
			BadgeKind:   habit.Name,
			Threshold:   threshold,
			Title:       fmt.Sprintf("%d-day streak: %s", threshold, habit.Name),
			Description: fmt.Sprintf("Logged %s for %d days in a row.", habit.Name, threshold),
			Icon:        "flame",
			AchievedAt:  now,
		}
		if _, err := s.achievementRepo.Create(ctx, nil, badge); err != nil {
			return 0, nil, fmt.Errorf("granting badge: %w", err)
		}
		granted = append(granted, badge)
	}
	if len(granted) > 0 {
		s.log.Info("streak badges granted", "user_id", userID, "habit", habit.Name, "count", len(granted))
	}
	return streak, granted, nil
}

func (s *achievementService) List(ctx context.Context) ([]*types.Achievement, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	return s.achievementRepo.GetByUserID(ctx, nil, rd.UserID)
}

var validBadgeTypes = map[string]struct{}{
	types.BadgeTypeMilestone:  {},
	types.BadgeTypeCompletion: {},
	types.BadgeTypeProgress:   {},
	types.BadgeTypeSpecial:    {},
}

func (s *achievementService) Earn(ctx context.Context, input EarnInput, now time.Time) (*types.Achievement, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	if _, ok := validBadgeTypes[input.BadgeType]; !ok {
		return nil, apierr.New(http.StatusBadRequest, "invalid_badge_type", fmt.Errorf("invalid badge type %q", input.BadgeType))
	}
	if input.BadgeKind == "" || input.Title == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_badge_fields", fmt.Errorf("badge kind and title required"))
	}
	exists, err := s.achievementRepo.Exists(ctx, nil, rd.UserID, input.BadgeType, input.BadgeKind, input.Threshold)
	if err != nil {
		return nil, fmt.Errorf("checking badge: %w", err)
	}
	if exists {
		return nil, apierr.New(http.StatusConflict, "already_earned", fmt.Errorf("badge already earned"))
	}
	badge := &types.Achievement{
		UserID:      rd.UserID,
		BadgeType:   input.BadgeType,
		BadgeKind:   input.BadgeKind,
		Threshold:   input.Threshold,
		Title:       input.Title,
		Description: input.Description,
		Icon:        input.Icon,
		AchievedAt:  now,
	}
	return s.achievementRepo.Create(ctx, nil, badge)
}
