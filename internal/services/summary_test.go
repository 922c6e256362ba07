package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/selfinvest-backend/internal/types"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestHabitCompletionRate(t *testing.T) {
	tests := []struct {
		name       string
		logCount   int
		habitCount int
		days       int
		want       float64
	}{
		{"half complete", 15, 1, 30, 50},
		{"two habits", 15, 2, 30, 25},
		{"zero habits", 10, 0, 30, 0},
		{"zero days", 10, 3, 0, 0},
		{"full", 30, 1, 30, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := habitCompletionRate(tt.logCount, tt.habitCount, tt.days); !almostEqual(got, tt.want) {
				t.Fatalf("habitCompletionRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateBookPagesInProgress(t *testing.T) {
	today := day(2024, time.June, 30)
	book := &types.Book{
		Status:      types.BookStatusInProgress,
		PageCount:   300,
		CurrentPage: 150,
		StartDate:   datePtr(day(2024, time.May, 31)), // 30 days before today
	}
	// 10-day overlap window at a rate of 5 pages/day.
	got := estimateBookPages(book, day(2024, time.June, 21), today, today)
	if got != 50 {
		t.Fatalf("estimateBookPages() = %d, want 50", got)
	}
}

func TestEstimateBookPages(t *testing.T) {
	today := day(2024, time.June, 30)
	tests := []struct {
		name  string
		book  *types.Book
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name: "completed in range counts full pages",
			book: &types.Book{
				Status:     types.BookStatusCompleted,
				PageCount:  220,
				FinishDate: datePtr(day(2024, time.June, 10)),
			},
			start: day(2024, time.June, 1),
			end:   day(2024, time.June, 30),
			want:  220,
		},
		{
			name: "completed outside range counts nothing",
			book: &types.Book{
				Status:     types.BookStatusCompleted,
				PageCount:  220,
				FinishDate: datePtr(day(2024, time.May, 10)),
			},
			start: day(2024, time.June, 1),
			end:   day(2024, time.June, 30),
			want:  0,
		},
		{
			name: "started after period end",
			book: &types.Book{
				Status:      types.BookStatusInProgress,
				PageCount:   300,
				CurrentPage: 40,
				StartDate:   datePtr(day(2024, time.July, 5)),
			},
			start: day(2024, time.June, 1),
			end:   day(2024, time.June, 30),
			want:  0,
		},
		{
			name: "started today has zero elapsed days",
			book: &types.Book{
				Status:      types.BookStatusInProgress,
				PageCount:   300,
				CurrentPage: 40,
				StartDate:   datePtr(today),
			},
			start: day(2024, time.June, 1),
			end:   day(2024, time.June, 30),
			want:  0,
		},
		{
			name:  "nil book",
			book:  nil,
			start: day(2024, time.June, 1),
			end:   day(2024, time.June, 30),
			want:  0,
		},
		{
			name: "not started contributes nothing",
			book: &types.Book{
				Status:    types.BookStatusNotStarted,
				PageCount: 300,
			},
			start: day(2024, time.June, 1),
			end:   day(2024, time.June, 30),
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateBookPages(tt.book, tt.start, tt.end, today); got != tt.want {
				t.Fatalf("estimateBookPages() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildActivityData(t *testing.T) {
	habitID := uuid.New()
	start := day(2024, time.June, 1)
	end := day(2024, time.June, 3)
	studyLogs := []*types.HabitLog{
		{HabitID: habitID, LogDate: day(2024, time.June, 1), Value: 30},
		{HabitID: habitID, LogDate: day(2024, time.June, 1), Value: 15},
		{HabitID: habitID, LogDate: day(2024, time.June, 3), Value: 60},
	}
	activeLogs := []*types.HabitLog{
		{HabitID: habitID, LogDate: day(2024, time.June, 1), Value: 30},
		{HabitID: habitID, LogDate: day(2024, time.June, 2), Value: 10},
	}

	data := buildActivityData(studyLogs, activeLogs, nil, start, end, end)

	if len(data.StudyTimeByDay) != 3 {
		t.Fatalf("StudyTimeByDay has %d entries, want 3", len(data.StudyTimeByDay))
	}
	if got := data.StudyTimeByDay["2024-06-01"]; !almostEqual(got, 45) {
		t.Fatalf("study time on day 1 = %v, want 45", got)
	}
	if got := data.StudyTimeByDay["2024-06-02"]; !almostEqual(got, 0) {
		t.Fatalf("study time on day 2 = %v, want 0", got)
	}
	if got := data.HabitCompletionByDay["2024-06-02"]; got != 1 {
		t.Fatalf("habit completions on day 2 = %d, want 1", got)
	}
	if got := data.HabitCompletionByDay["2024-06-03"]; got != 0 {
		t.Fatalf("habit completions on day 3 = %d, want 0", got)
	}
}

func TestMeanGoalProgress(t *testing.T) {
	if got := meanGoalProgress(nil); !almostEqual(got, 0) {
		t.Fatalf("meanGoalProgress(nil) = %v, want 0", got)
	}
	progress := []*types.GoalProgress{{Progress: 40}, {Progress: 60}}
	if got := meanGoalProgress(progress); !almostEqual(got, 50) {
		t.Fatalf("meanGoalProgress() = %v, want 50", got)
	}
}
