package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/selfinvest-backend/internal/types"
)

func TestEventHourSpan(t *testing.T) {
	base := day(2024, time.June, 3)
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []int
	}{
		{"two whole hours", base.Add(9 * time.Hour), base.Add(11 * time.Hour), []int{9, 10}},
		{"partial end hour rounds up", base.Add(9 * time.Hour), base.Add(11*time.Hour + 30*time.Minute), []int{9, 10, 11}},
		{"crosses midnight capped at 24", base.Add(22 * time.Hour), base.AddDate(0, 0, 1).Add(1 * time.Hour), []int{22, 23}},
		{"single hour", base.Add(14 * time.Hour), base.Add(15 * time.Hour), []int{14}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &types.CalendarEvent{StartTime: tt.start, EndTime: tt.end}
			got := eventHourSpan(e)
			if len(got) != len(tt.want) {
				t.Fatalf("eventHourSpan() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("eventHourSpan() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestHourlyEfficiency(t *testing.T) {
	monday := day(2024, time.June, 3)
	tuesday := day(2024, time.June, 4)
	events := []*types.CalendarEvent{
		{Category: types.EventCategoryStudy, StartTime: monday.Add(9 * time.Hour), EndTime: monday.Add(11 * time.Hour)},
		{Category: types.EventCategoryStudy, StartTime: tuesday.Add(10 * time.Hour), EndTime: tuesday.Add(11 * time.Hour)},
		// no journal rating for this day, so it contributes nothing
		{Category: types.EventCategoryStudy, StartTime: monday.AddDate(0, 0, 2).Add(10 * time.Hour), EndTime: monday.AddDate(0, 0, 2).Add(11 * time.Hour)},
	}
	ratings := map[string]int{
		"2024-06-03": 8,
		"2024-06-04": 4,
	}

	got := hourlyEfficiency(events, ratings)

	if v := got["09:00-10:00"]; !almostEqual(v, 8) {
		t.Fatalf("09:00-10:00 = %v, want 8", v)
	}
	// hour 10 is covered on both rated days: (8 + 4) / 2
	if v := got["10:00-11:00"]; !almostEqual(v, 6) {
		t.Fatalf("10:00-11:00 = %v, want 6", v)
	}
	if _, ok := got["11:00-12:00"]; ok {
		t.Fatal("hour 11 should have no entry")
	}
}

func TestWeekdayEfficiency(t *testing.T) {
	monday := day(2024, time.June, 3)
	habit := &types.Habit{ID: uuid.New(), Name: "spanish", Category: types.HabitCategoryLanguage, TargetValue: 60}
	logs := []*types.HabitLog{
		{HabitID: habit.ID, Habit: habit, LogDate: monday, Value: 30},
	}

	got := weekdayEfficiency(nil, logs)

	if len(got) != 7 {
		t.Fatalf("got %d weekdays, want 7", len(got))
	}
	// value 30 of target 60 scores floor(0.5 * 10) = 5
	if v := got["Monday"]; !almostEqual(v, 5) {
		t.Fatalf("Monday = %v, want 5", v)
	}
	if v := got["Tuesday"]; !almostEqual(v, 0) {
		t.Fatalf("Tuesday = %v, want 0", v)
	}
}

func TestWeekdayEfficiencyPoolsJournalsAndLogs(t *testing.T) {
	monday := day(2024, time.June, 3)
	rating := 9
	journals := []*types.DailyJournal{
		{Date: monday, ProductivityRating: &rating},
	}
	habit := &types.Habit{ID: uuid.New(), Name: "spanish", Category: types.HabitCategoryLanguage, TargetValue: 60}
	logs := []*types.HabitLog{
		{HabitID: habit.ID, Habit: habit, LogDate: monday, Value: 30},
	}

	got := weekdayEfficiency(journals, logs)

	// (9 + 5) / 2 observations on Monday
	if v := got["Monday"]; !almostEqual(v, 7) {
		t.Fatalf("Monday = %v, want 7", v)
	}
}

func TestWeekdayEfficiencyIgnoresZeroTargets(t *testing.T) {
	monday := day(2024, time.June, 3)
	habit := &types.Habit{ID: uuid.New(), Name: "notes", Category: types.HabitCategoryStudy, TargetValue: 0}
	logs := []*types.HabitLog{
		{HabitID: habit.ID, Habit: habit, LogDate: monday, Value: 30},
	}
	got := weekdayEfficiency(nil, logs)
	if v := got["Monday"]; !almostEqual(v, 0) {
		t.Fatalf("Monday = %v, want 0", v)
	}
}

func TestContentTypeEfficiency(t *testing.T) {
	study := &types.Habit{ID: uuid.New(), Name: "algorithms", Category: types.HabitCategoryStudy, TargetValue: 60}
	reading := &types.Habit{ID: uuid.New(), Name: "novels", Category: types.HabitCategoryReading, TargetValue: 20}
	logs := []*types.HabitLog{
		{HabitID: study.ID, Habit: study, LogDate: day(2024, time.June, 3), Value: 30},
		{HabitID: study.ID, Habit: study, LogDate: day(2024, time.June, 4), Value: 90},
		{HabitID: reading.ID, Habit: reading, LogDate: day(2024, time.June, 3), Value: 20},
	}

	got := contentTypeEfficiency(logs)

	// study: (0.5 + 1.0 clamped) / 2
	if v := got[types.HabitCategoryStudy]; !almostEqual(v, 0.75) {
		t.Fatalf("study = %v, want 0.75", v)
	}
	if v := got[types.HabitCategoryReading]; !almostEqual(v, 1) {
		t.Fatalf("reading = %v, want 1", v)
	}
}
