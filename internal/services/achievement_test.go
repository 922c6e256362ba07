package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/requestdata"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

// descLogs builds logs for the given dates, newest first, matching the
// repo's descending order.
func descLogs(dates ...time.Time) []*types.HabitLog {
	logs := make([]*types.HabitLog, 0, len(dates))
	for _, d := range dates {
		logs = append(logs, &types.HabitLog{LogDate: d, Value: 1})
	}
	return logs
}

func TestCurrentStreak(t *testing.T) {
	today := day(2024, time.June, 10)
	tests := []struct {
		name string
		logs []*types.HabitLog
		want int
	}{
		{
			name: "no logs",
			logs: nil,
			want: 0,
		},
		{
			name: "latest log two days old breaks the streak",
			logs: descLogs(day(2024, time.June, 8), day(2024, time.June, 7)),
			want: 0,
		},
		{
			name: "three consecutive days ending today",
			logs: descLogs(day(2024, time.June, 10), day(2024, time.June, 9), day(2024, time.June, 8)),
			want: 3,
		},
		{
			name: "streak ending yesterday still counts",
			logs: descLogs(day(2024, time.June, 9), day(2024, time.June, 8)),
			want: 2,
		},
		{
			name: "gap stops the walk",
			logs: descLogs(day(2024, time.June, 10), day(2024, time.June, 9), day(2024, time.June, 7), day(2024, time.June, 6)),
			want: 2,
		},
		{
			name: "single log today",
			logs: descLogs(day(2024, time.June, 10)),
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := currentStreak(tt.logs, today); got != tt.want {
				t.Fatalf("currentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakThresholdsAscending(t *testing.T) {
	for i := 1; i < len(streakThresholds); i++ {
		if streakThresholds[i] <= streakThresholds[i-1] {
			t.Fatalf("thresholds out of order at %d: %v", i, streakThresholds)
		}
	}
}

type stubHabitRepo struct {
	habit *types.Habit
}

func (s *stubHabitRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Habit) (*types.Habit, error) {
	return row, nil
}

func (s *stubHabitRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Habit, error) {
	return s.habit, nil
}

func (s *stubHabitRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Habit, error) {
	return []*types.Habit{s.habit}, nil
}

func (s *stubHabitRepo) GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Habit, error) {
	return []*types.Habit{s.habit}, nil
}

func (s *stubHabitRepo) GetByUserAndCategories(ctx context.Context, tx *gorm.DB, userID uuid.UUID, categories []string) ([]*types.Habit, error) {
	return nil, nil
}

func (s *stubHabitRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Habit) error {
	return nil
}

func (s *stubHabitRepo) FullDeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error {
	return nil
}

type stubHabitLogRepo struct {
	logs []*types.HabitLog
}

func (s *stubHabitLogRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.HabitLog) error {
	return nil
}

func (s *stubHabitLogRepo) GetByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) ([]*types.HabitLog, error) {
	return s.logs, nil
}

func (s *stubHabitLogRepo) GetByHabitAndRange(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, start, end time.Time) ([]*types.HabitLog, error) {
	return s.logs, nil
}

func (s *stubHabitLogRepo) GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.HabitLog, error) {
	return s.logs, nil
}

func (s *stubHabitLogRepo) GetByUserCategoriesAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, categories []string, start, end time.Time) ([]*types.HabitLog, error) {
	return s.logs, nil
}

func (s *stubHabitLogRepo) FullDeleteByID(ctx context.Context, tx *gorm.DB, habitID, id uuid.UUID) error {
	return nil
}

type memAchievementRepo struct {
	rows []*types.Achievement
}

func (m *memAchievementRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Achievement) (*types.Achievement, error) {
	m.rows = append(m.rows, row)
	return row, nil
}

func (m *memAchievementRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Achievement, error) {
	return m.rows, nil
}

func (m *memAchievementRepo) Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, badgeType, badgeKind string, threshold int) (bool, error) {
	for _, r := range m.rows {
		if r.UserID == userID && r.BadgeType == badgeType && r.BadgeKind == badgeKind && r.Threshold == threshold {
			return true, nil
		}
	}
	return false, nil
}

func TestCheckStreaksGrantsBadgesOnce(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	userID := uuid.New()
	habitID := uuid.New()
	today := day(2024, time.June, 30)

	dates := make([]time.Time, 0, 30)
	for i := 0; i < 30; i++ {
		dates = append(dates, today.AddDate(0, 0, -i))
	}
	badges := &memAchievementRepo{}
	svc := NewAchievementService(nil, log,
		&stubHabitRepo{habit: &types.Habit{ID: habitID, UserID: userID, Name: "Reading"}},
		&stubHabitLogRepo{logs: descLogs(dates...)},
		badges,
	)
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})

	streak, granted, err := svc.CheckStreaks(ctx, habitID, today)
	if err != nil {
		t.Fatalf("CheckStreaks: %v", err)
	}
	if streak != 30 {
		t.Fatalf("streak = %d, want 30", streak)
	}
	if len(granted) != 2 {
		t.Fatalf("granted %d badges, want 2 (7-day and 30-day)", len(granted))
	}
	for _, b := range granted {
		if b.BadgeType != types.BadgeTypeStreak || b.BadgeKind != "Reading" {
			t.Fatalf("unexpected badge identity %s/%s", b.BadgeType, b.BadgeKind)
		}
	}

	// A second pass over the same streak must not duplicate the badges.
	_, granted, err = svc.CheckStreaks(ctx, habitID, today)
	if err != nil {
		t.Fatalf("CheckStreaks second pass: %v", err)
	}
	if len(granted) != 0 {
		t.Fatalf("second pass granted %d badges, want 0", len(granted))
	}
	if len(badges.rows) != 2 {
		t.Fatalf("stored %d badges, want 2", len(badges.rows))
	}
}
