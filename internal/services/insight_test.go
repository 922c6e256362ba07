package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/selfinvest-backend/internal/types"
)

func logsFor(habit *types.Habit, start time.Time, values []float64) []*types.HabitLog {
	logs := make([]*types.HabitLog, 0, len(values))
	for i, v := range values {
		logs = append(logs, &types.HabitLog{
			HabitID: habit.ID,
			Habit:   habit,
			LogDate: start.AddDate(0, 0, i),
			Value:   v,
		})
	}
	return logs
}

func repeatValue(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"rising", append(repeatValue(10, 7), repeatValue(30, 7)...), trendRising},
		{"falling", append(repeatValue(30, 7), repeatValue(10, 7)...), trendFalling},
		{"flat", repeatValue(10, 14), trendFlat},
		{"small change stays flat", append(repeatValue(10, 7), repeatValue(10.5, 7)...), trendFlat},
		{"too short", repeatValue(10, 7), insufficientLabel},
		{"zero baseline", append(repeatValue(0, 13), 5), trendFlat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyTrend(tt.values); got.Direction != tt.want {
				t.Fatalf("classifyTrend().Direction = %q, want %q", got.Direction, tt.want)
			}
		})
	}
}

func TestBuildTrendInsightHeadline(t *testing.T) {
	userID := uuid.New()
	start := day(2024, time.June, 1)
	rising := &types.Habit{ID: uuid.New(), Name: "reading"}
	steady := &types.Habit{ID: uuid.New(), Name: "meditation"}
	logs := append(
		logsFor(rising, start, append(repeatValue(10, 7), repeatValue(30, 7)...)),
		logsFor(steady, start, repeatValue(10, 14))...,
	)

	insight, err := buildTrendInsight(userID, logs)
	if err != nil {
		t.Fatalf("buildTrendInsight() error = %v", err)
	}
	var data trendData
	if err := json.Unmarshal(insight.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data.Headline == nil {
		t.Fatal("expected a headline trend")
	}
	if data.Headline.Habit != "reading" || data.Headline.Direction != trendRising {
		t.Fatalf("headline = %+v, want reading rising", data.Headline)
	}
	if len(data.Trends) != 2 {
		t.Fatalf("got %d trends, want 2", len(data.Trends))
	}
}

func TestBuildCorrelationInsightPerfectPair(t *testing.T) {
	userID := uuid.New()
	start := day(2024, time.June, 1)
	a := &types.Habit{ID: uuid.New(), Name: "running"}
	b := &types.Habit{ID: uuid.New(), Name: "stretching"}
	valuesA := []float64{10, 20, 30, 40, 50, 60, 70}
	valuesB := make([]float64, len(valuesA))
	for i, v := range valuesA {
		valuesB[i] = 2 * v
	}
	logs := append(logsFor(a, start, valuesA), logsFor(b, start, valuesB)...)

	insight, err := buildCorrelationInsight(userID, logs)
	if err != nil {
		t.Fatalf("buildCorrelationInsight() error = %v", err)
	}
	var data correlationData
	if err := json.Unmarshal(insight.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(data.StrongPairs) != 1 {
		t.Fatalf("got %d strong pairs, want 1", len(data.StrongPairs))
	}
	pair := data.StrongPairs[0]
	if !almostEqual(pair.Coefficient, 1) {
		t.Fatalf("coefficient = %v, want 1.0", pair.Coefficient)
	}
	if pair.Direction != "positive" {
		t.Fatalf("direction = %q, want positive", pair.Direction)
	}
	if data.Headline == nil || data.Headline.HabitA != "running" || data.Headline.HabitB != "stretching" {
		t.Fatalf("headline = %+v, want running/stretching", data.Headline)
	}
}

func TestBuildCorrelationInsightNoData(t *testing.T) {
	insight, err := buildCorrelationInsight(uuid.New(), nil)
	if err != nil {
		t.Fatalf("buildCorrelationInsight() error = %v", err)
	}
	if insight.InsightType != types.InsightTypeCorrelation {
		t.Fatalf("insight type = %q", insight.InsightType)
	}
	var data correlationData
	if err := json.Unmarshal(insight.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(data.StrongPairs) != 0 || data.Headline != nil {
		t.Fatal("expected empty correlation payload")
	}
}

func TestBuildTimePatternInsight(t *testing.T) {
	userID := uuid.New()
	morning := day(2024, time.June, 3) // a Monday
	events := []*types.CalendarEvent{
		{
			Category:  types.EventCategoryStudy,
			StartTime: morning.Add(9 * time.Hour),
			EndTime:   morning.Add(12 * time.Hour),
		},
		{
			Category:  types.EventCategoryStudy,
			StartTime: morning.AddDate(0, 0, 1).Add(14 * time.Hour),
			EndTime:   morning.AddDate(0, 0, 1).Add(15 * time.Hour),
		},
	}

	insight := buildTimePatternInsight(userID, events)
	var data timePatternData
	if err := json.Unmarshal(insight.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data.BestHour != "09:00-10:00" {
		t.Fatalf("BestHour = %q, want 09:00-10:00", data.BestHour)
	}
	if data.BestWeekday != "Monday" {
		t.Fatalf("BestWeekday = %q, want Monday", data.BestWeekday)
	}
	if got := data.HourlyAverages["09:00-10:00"]; !almostEqual(got, 3) {
		t.Fatalf("hourly average = %v, want 3", got)
	}
}

func TestBuildTimePatternInsightNoEvents(t *testing.T) {
	insight := buildTimePatternInsight(uuid.New(), nil)
	var data timePatternData
	if err := json.Unmarshal(insight.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data.BestHour != insufficientLabel || data.BestWeekday != insufficientLabel {
		t.Fatalf("expected insufficient data sentinels, got %q / %q", data.BestHour, data.BestWeekday)
	}
}

func TestBuildRecommendationInsight(t *testing.T) {
	userID := uuid.New()
	start := day(2024, time.June, 1)
	lowHabit := &types.Habit{ID: uuid.New(), Name: "journaling", IsActive: true}
	highHabit := &types.Habit{ID: uuid.New(), Name: "walking", IsActive: true}

	lowLogs := logsFor(lowHabit, start, repeatValue(1, 10))   // 10 of 30 days
	highLogs := logsFor(highHabit, start, repeatValue(1, 30)) // every day

	t.Run("low performer wins the headline", func(t *testing.T) {
		insight := buildRecommendationInsight(userID, []*types.Habit{lowHabit, highHabit}, append(lowLogs, highLogs...))
		var data recommendationData
		if err := json.Unmarshal(insight.Data, &data); err != nil {
			t.Fatalf("unmarshal data: %v", err)
		}
		if len(data.LowPerformers) != 1 || data.LowPerformers[0].Habit != "journaling" {
			t.Fatalf("low performers = %+v, want journaling", data.LowPerformers)
		}
		if data.Headline != "journaling" {
			t.Fatalf("headline = %q, want journaling", data.Headline)
		}
		if len(data.Suggestions) == 0 {
			t.Fatal("expected remediation suggestions for a low performer")
		}
	})

	t.Run("high performer highlighted only without lows", func(t *testing.T) {
		insight := buildRecommendationInsight(userID, []*types.Habit{highHabit}, highLogs)
		var data recommendationData
		if err := json.Unmarshal(insight.Data, &data); err != nil {
			t.Fatalf("unmarshal data: %v", err)
		}
		if len(data.HighPerformers) != 1 || data.HighPerformers[0].Habit != "walking" {
			t.Fatalf("high performers = %+v, want walking", data.HighPerformers)
		}
		if data.Headline != "walking" {
			t.Fatalf("headline = %q, want walking", data.Headline)
		}
		if !almostEqual(data.HighPerformers[0].CompletionRate, 100) {
			t.Fatalf("completion rate = %v, want 100", data.HighPerformers[0].CompletionRate)
		}
	})

	t.Run("middle band gets generic encouragement", func(t *testing.T) {
		midHabit := &types.Habit{ID: uuid.New(), Name: "stretching", IsActive: true}
		midLogs := logsFor(midHabit, start, repeatValue(1, 20)) // ~67%
		insight := buildRecommendationInsight(userID, []*types.Habit{midHabit}, midLogs)
		var data recommendationData
		if err := json.Unmarshal(insight.Data, &data); err != nil {
			t.Fatalf("unmarshal data: %v", err)
		}
		if data.Headline != "" {
			t.Fatalf("headline = %q, want empty", data.Headline)
		}
		if len(data.LowPerformers) != 0 || len(data.HighPerformers) != 0 {
			t.Fatal("expected no flagged habits")
		}
	})
}

func TestHourBucket(t *testing.T) {
	if got := hourBucket(9); got != "09:00-10:00" {
		t.Fatalf("hourBucket(9) = %q", got)
	}
	if got := hourBucket(23); got != "23:00-24:00" {
		t.Fatalf("hourBucket(23) = %q", got)
	}
}
