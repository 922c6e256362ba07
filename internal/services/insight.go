package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/apierr"
	"github.com/yungbote/selfinvest-backend/internal/platform/cache"
	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/repos"
	"github.com/yungbote/selfinvest-backend/internal/requestdata"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

const (
	insightWindowDays        = 90
	minInsightLogs           = 7
	recommendationWindowDays = 30
	trendWindow              = 7
	strongCorrelation        = 0.5
	risingRatio              = 1.10
	fallingRatio             = 0.90
	lowCompletionPct         = 50.0
	highCompletionPct        = 80.0

	trendRising       = "rising"
	trendFalling      = "falling"
	trendFlat         = "flat"
	insufficientLabel = "insufficient data"
)

type InsightService interface {
	// Generate recomputes all four insight types over the trailing 90-day
	// window and returns the persisted insight ids keyed by type.
	Generate(ctx context.Context, now time.Time) (map[string]uuid.UUID, error)
	List(ctx context.Context) ([]*types.ProductivityInsight, error)
}

type insightService struct {
	db          *gorm.DB
	log         *logger.Logger
	cache       *cache.Cache
	habitRepo   repos.HabitRepo
	logRepo     repos.HabitLogRepo
	eventRepo   repos.CalendarEventRepo
	insightRepo repos.ProductivityInsightRepo
}

func NewInsightService(
	db *gorm.DB,
	log *logger.Logger,
	c *cache.Cache,
	habitRepo repos.HabitRepo,
	logRepo repos.HabitLogRepo,
	eventRepo repos.CalendarEventRepo,
	insightRepo repos.ProductivityInsightRepo,
) InsightService {
	return &insightService{
		db:          db,
		log:         log.With("service", "InsightService"),
		cache:       c,
		habitRepo:   habitRepo,
		logRepo:     logRepo,
		eventRepo:   eventRepo,
		insightRepo: insightRepo,
	}
}

func (s *insightService) Generate(ctx context.Context, now time.Time) (map[string]uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	userID := rd.UserID
	today := dateOnly(now)
	windowStart := today.AddDate(0, 0, -insightWindowDays)

	logs, err := s.logRepo.GetByUserAndRange(ctx, nil, userID, windowStart, today)
	if err != nil {
		return nil, fmt.Errorf("fetching habit logs: %w", err)
	}
	if len(logs) < minInsightLogs {
		return nil, apierr.New(http.StatusUnprocessableEntity, "insufficient_data",
			fmt.Errorf("need at least %d habit logs in the last %d days, have %d", minInsightLogs, insightWindowDays, len(logs)))
	}

	ids := map[string]uuid.UUID{}
	generators := []struct {
		insightType string
		run         func() (*types.ProductivityInsight, error)
	}{
		{types.InsightTypeTimePattern, func() (*types.ProductivityInsight, error) {
			return s.generateTimePattern(ctx, userID, windowStart)
		}},
		{types.InsightTypeCorrelation, func() (*types.ProductivityInsight, error) {
			return buildCorrelationInsight(userID, logs)
		}},
		{types.InsightTypeTrend, func() (*types.ProductivityInsight, error) {
			return buildTrendInsight(userID, logs)
		}},
		{types.InsightTypeRecommendation, func() (*types.ProductivityInsight, error) {
			return s.generateRecommendation(ctx, userID, today)
		}},
	}
	for _, g := range generators {
		insight, err := g.run()
		if err != nil {
			return nil, err
		}
		insight.GeneratedAt = now
		if err := s.insightRepo.Upsert(ctx, nil, insight); err != nil {
			return nil, fmt.Errorf("upserting %s insight: %w", g.insightType, err)
		}
		ids[g.insightType] = insight.ID
	}
	s.cache.Invalidate(ctx, "insights", userID.String())
	s.log.Info("insights generated", "user_id", userID, "count", len(ids))
	return ids, nil
}

func (s *insightService) List(ctx context.Context) ([]*types.ProductivityInsight, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	var cached []*types.ProductivityInsight
	if err := s.cache.Get(ctx, &cached, "insights", rd.UserID.String()); err == nil {
		return cached, nil
	}
	results, err := s.insightRepo.GetByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetching insights: %w", err)
	}
	s.cache.Set(ctx, results, "insights", rd.UserID.String())
	return results, nil
}

type timePatternData struct {
	HourlyAverages  map[string]float64 `json:"hourly_averages"`
	WeekdayAverages map[string]float64 `json:"weekday_averages"`
	BestHour        string             `json:"best_hour"`
	BestWeekday     string             `json:"best_weekday"`
}

func hourBucket(hour int) string {
	return fmt.Sprintf("%02d:00-%02d:00", hour, hour+1)
}

func (s *insightService) generateTimePattern(ctx context.Context, userID uuid.UUID, windowStart time.Time) (*types.ProductivityInsight, error) {
	events, err := s.eventRepo.GetByUserCategoriesSince(ctx, nil, userID, types.ActivityCategories, windowStart)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	insight := buildTimePatternInsight(userID, events)
	return insight, nil
}

// buildTimePatternInsight averages event durations per hour-of-day bucket and
// per weekday and reports the bucket with the highest average.
func buildTimePatternInsight(userID uuid.UUID, events []*types.CalendarEvent) *types.ProductivityInsight {
	hourSums := map[string]float64{}
	hourCounts := map[string]int{}
	daySums := map[string]float64{}
	dayCounts := map[string]int{}
	for _, e := range events {
		duration := e.EndTime.Sub(e.StartTime).Hours()
		if duration < 0 {
			duration = 0
		}
		hb := hourBucket(e.StartTime.Hour())
		hourSums[hb] += duration
		hourCounts[hb]++
		wd := e.StartTime.Weekday().String()
		daySums[wd] += duration
		dayCounts[wd]++
	}
	hourAvgs := map[string]float64{}
	for k, sum := range hourSums {
		hourAvgs[k] = sum / float64(hourCounts[k])
	}
	dayAvgs := map[string]float64{}
	for k, sum := range daySums {
		dayAvgs[k] = sum / float64(dayCounts[k])
	}

	data := timePatternData{
		HourlyAverages:  hourAvgs,
		WeekdayAverages: dayAvgs,
		BestHour:        insufficientLabel,
		BestWeekday:     insufficientLabel,
	}
	description := "Not enough calendar activity yet to find your most productive time."
	if best, _, ok := maxByValue(hourAvgs); ok {
		data.BestHour = best
	}
	if best, _, ok := maxByValue(dayAvgs); ok {
		data.BestWeekday = best
	}
	if data.BestHour != insufficientLabel && data.BestWeekday != insufficientLabel {
		description = fmt.Sprintf("You put in your longest focused sessions around %s, and %s is your strongest day.", data.BestHour, data.BestWeekday)
	}
	raw, _ := json.Marshal(data)
	return &types.ProductivityInsight{
		UserID:      userID,
		InsightType: types.InsightTypeTimePattern,
		Title:       "Your most productive time",
		Description: description,
		Data:        datatypes.JSON(raw),
	}
}

type correlationPair struct {
	HabitA      string  `json:"habit_a"`
	HabitB      string  `json:"habit_b"`
	Coefficient float64 `json:"coefficient"`
	Direction   string  `json:"direction"`
}

type correlationData struct {
	Matrix      map[string]map[string]float64 `json:"matrix"`
	StrongPairs []correlationPair             `json:"strong_pairs"`
	Headline    *correlationPair              `json:"headline,omitempty"`
}

// buildCorrelationInsight pivots the logs into a date-by-habit matrix with
// zero fill, computes pairwise Pearson coefficients and keeps pairs at or
// above the strong-correlation cutoff.
func buildCorrelationInsight(userID uuid.UUID, logs []*types.HabitLog) (*types.ProductivityInsight, error) {
	perHabit := map[string]map[string]float64{}
	dateSet := map[string]bool{}
	for _, l := range logs {
		if l.Habit == nil {
			continue
		}
		name := l.Habit.Name
		if perHabit[name] == nil {
			perHabit[name] = map[string]float64{}
		}
		key := dateKey(l.LogDate)
		perHabit[name][key] += l.Value
		dateSet[key] = true
	}
	if len(perHabit) == 0 {
		raw, _ := json.Marshal(correlationData{Matrix: map[string]map[string]float64{}})
		return &types.ProductivityInsight{
			UserID:      userID,
			InsightType: types.InsightTypeCorrelation,
			Title:       "Habit correlations",
			Description: "Not enough habit data yet to measure how your habits move together.",
			Data:        datatypes.JSON(raw),
		}, nil
	}

	names := make([]string, 0, len(perHabit))
	for name := range perHabit {
		names = append(names, name)
	}
	sort.Strings(names)
	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	columns := map[string][]float64{}
	for _, name := range names {
		col := make([]float64, len(dates))
		for i, d := range dates {
			col[i] = perHabit[name][d]
		}
		columns[name] = col
	}

	matrix := map[string]map[string]float64{}
	for _, a := range names {
		matrix[a] = map[string]float64{}
		for _, b := range names {
			matrix[a][b] = pearson(columns[a], columns[b])
		}
	}

	var strong []correlationPair
	headlineAbs := map[string]float64{}
	pairByLabel := map[string]correlationPair{}
	for i, a := range names {
		for _, b := range names[i+1:] {
			coef := matrix[a][b]
			if math.Abs(coef) < strongCorrelation {
				continue
			}
			direction := "positive"
			if coef < 0 {
				direction = "negative"
			}
			pair := correlationPair{HabitA: a, HabitB: b, Coefficient: coef, Direction: direction}
			strong = append(strong, pair)
			label := a + "|" + b
			headlineAbs[label] = math.Abs(coef)
			pairByLabel[label] = pair
		}
	}

	data := correlationData{Matrix: matrix, StrongPairs: strong}
	title := "Habit correlations"
	description := "No strong relationships between your habits right now."
	if label, _, ok := maxByValue(headlineAbs); ok {
		pair := pairByLabel[label]
		data.Headline = &pair
		if pair.Direction == "positive" {
			description = fmt.Sprintf("%s and %s reinforce each other: days strong in one tend to be strong in the other.", pair.HabitA, pair.HabitB)
		} else {
			description = fmt.Sprintf("%s and %s compete for your time: days strong in one tend to be weak in the other.", pair.HabitA, pair.HabitB)
		}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding correlation data: %w", err)
	}
	return &types.ProductivityInsight{
		UserID:      userID,
		InsightType: types.InsightTypeCorrelation,
		Title:       title,
		Description: description,
		Data:        datatypes.JSON(raw),
	}, nil
}

type habitTrend struct {
	Habit         string  `json:"habit"`
	Direction     string  `json:"direction"`
	FirstAvg      float64 `json:"first_window_avg"`
	LastAvg       float64 `json:"last_window_avg"`
	PercentChange float64 `json:"percent_change"`
}

type trendData struct {
	Trends   []habitTrend `json:"trends"`
	Headline *habitTrend  `json:"headline,omitempty"`
}

// classifyTrend compares the first and last 7-value windows of a trailing
// rolling mean. Ratios above 1.10 are rising, below 0.90 falling, anything
// between is flat.
func classifyTrend(values []float64) habitTrend {
	rolling := rollingMean(values, trendWindow)
	if len(rolling) < 2 {
		return habitTrend{Direction: insufficientLabel}
	}
	firstN := trendWindow
	if len(rolling) < firstN {
		firstN = len(rolling)
	}
	firstAvg := mean(rolling[:firstN])
	lastAvg := mean(rolling[len(rolling)-firstN:])
	t := habitTrend{FirstAvg: firstAvg, LastAvg: lastAvg, Direction: trendFlat}
	if firstAvg == 0 {
		return t
	}
	ratio := lastAvg / firstAvg
	t.PercentChange = (lastAvg - firstAvg) / firstAvg * 100
	switch {
	case ratio > risingRatio:
		t.Direction = trendRising
	case ratio < fallingRatio:
		t.Direction = trendFalling
	}
	return t
}

func buildTrendInsight(userID uuid.UUID, logs []*types.HabitLog) (*types.ProductivityInsight, error) {
	byHabit := map[string][]*types.HabitLog{}
	for _, l := range logs {
		if l.Habit == nil {
			continue
		}
		byHabit[l.Habit.Name] = append(byHabit[l.Habit.Name], l)
	}

	var trends []habitTrend
	changeByHabit := map[string]float64{}
	trendByHabit := map[string]habitTrend{}
	names := make([]string, 0, len(byHabit))
	for name := range byHabit {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		habitLogs := byHabit[name]
		if len(habitLogs) < minInsightLogs {
			continue
		}
		sort.Slice(habitLogs, func(i, j int) bool { return habitLogs[i].LogDate.Before(habitLogs[j].LogDate) })
		values := make([]float64, len(habitLogs))
		for i, l := range habitLogs {
			values[i] = l.Value
		}
		t := classifyTrend(values)
		t.Habit = name
		trends = append(trends, t)
		if t.Direction != insufficientLabel {
			changeByHabit[name] = math.Abs(t.PercentChange)
			trendByHabit[name] = t
		}
	}

	data := trendData{Trends: trends}
	description := "Not enough history yet to read a trend in any habit."
	if name, _, ok := maxByValue(changeByHabit); ok {
		headline := trendByHabit[name]
		data.Headline = &headline
		switch headline.Direction {
		case trendRising:
			description = fmt.Sprintf("%s is trending up, %.0f%% above where it started.", name, headline.PercentChange)
		case trendFalling:
			description = fmt.Sprintf("%s is slipping, %.0f%% below where it started.", name, -headline.PercentChange)
		default:
			description = fmt.Sprintf("%s is holding steady.", name)
		}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding trend data: %w", err)
	}
	return &types.ProductivityInsight{
		UserID:      userID,
		InsightType: types.InsightTypeTrend,
		Title:       "Habit trends",
		Description: description,
		Data:        datatypes.JSON(raw),
	}, nil
}

type habitPerformance struct {
	Habit          string  `json:"habit"`
	CompletionRate float64 `json:"completion_rate"`
}

type recommendationData struct {
	LowPerformers  []habitPerformance `json:"low_performers"`
	HighPerformers []habitPerformance `json:"high_performers"`
	Headline       string             `json:"headline"`
	Suggestions    []string           `json:"suggestions,omitempty"`
}

func (s *insightService) generateRecommendation(ctx context.Context, userID uuid.UUID, today time.Time) (*types.ProductivityInsight, error) {
	habits, err := s.habitRepo.GetActiveByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching habits: %w", err)
	}
	windowStart := today.AddDate(0, 0, -(recommendationWindowDays - 1))
	logs, err := s.logRepo.GetByUserAndRange(ctx, nil, userID, windowStart, today)
	if err != nil {
		return nil, fmt.Errorf("fetching habit logs: %w", err)
	}
	return buildRecommendationInsight(userID, habits, logs), nil
}

// buildRecommendationInsight flags habits under 50% completion over the last
// 30 days. When none qualify, habits at or above 80% get a reinforcement
// message instead.
func buildRecommendationInsight(userID uuid.UUID, habits []*types.Habit, logs []*types.HabitLog) *types.ProductivityInsight {
	countByHabit := map[uuid.UUID]int{}
	for _, l := range logs {
		countByHabit[l.HabitID]++
	}

	lowRates := map[string]float64{}
	highRates := map[string]float64{}
	var low, high []habitPerformance
	names := make([]string, 0, len(habits))
	rateByName := map[string]float64{}
	for _, h := range habits {
		rate := float64(countByHabit[h.ID]) / float64(recommendationWindowDays) * 100
		names = append(names, h.Name)
		rateByName[h.Name] = rate
	}
	sort.Strings(names)
	for _, name := range names {
		rate := rateByName[name]
		if rate < lowCompletionPct {
			low = append(low, habitPerformance{Habit: name, CompletionRate: rate})
			lowRates[name] = rate
		} else if rate >= highCompletionPct {
			high = append(high, habitPerformance{Habit: name, CompletionRate: rate})
			highRates[name] = rate
		}
	}

	data := recommendationData{LowPerformers: low, HighPerformers: high}
	description := "Keep logging: nothing stands out as needing attention right now."
	if name, rate, ok := minByValue(lowRates); ok {
		data.Headline = name
		data.Suggestions = []string{
			"Shrink the habit until it fits the worst day of your week.",
			"Anchor it to an existing routine instead of a time of day.",
			"Set a reminder for the hour you are most likely to follow through.",
		}
		description = fmt.Sprintf("%s is only happening %.0f%% of days. Try making it smaller or anchoring it to a routine you already keep.", name, rate)
	} else if name, rate, ok := maxByValue(highRates); ok {
		data.Headline = name
		description = fmt.Sprintf("%s is at %.0f%% completion over the last month. Whatever you are doing, keep doing it.", name, rate)
	}
	raw, _ := json.Marshal(data)
	return &types.ProductivityInsight{
		UserID:      userID,
		InsightType: types.InsightTypeRecommendation,
		Title:       "Where to focus next",
		Description: description,
		Data:        datatypes.JSON(raw),
	}
}
