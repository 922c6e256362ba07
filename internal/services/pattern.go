package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
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
	patternWindowDays = 90
	minPatternLogs    = 14
	weekdayScoreCeil  = 10
)

type LearningPatternService interface {
	// Compute rebuilds the user's hourly, weekday and content-type efficiency
	// maps from the trailing 90 days and upserts the singleton pattern.
	Compute(ctx context.Context, now time.Time) (*types.LearningPattern, error)
	Get(ctx context.Context) (*types.LearningPattern, error)
}

type learningPatternService struct {
	db          *gorm.DB
	log         *logger.Logger
	cache       *cache.Cache
	logRepo     repos.HabitLogRepo
	eventRepo   repos.CalendarEventRepo
	journalRepo repos.DailyJournalRepo
	patternRepo repos.LearningPatternRepo
}

func NewLearningPatternService(
	db *gorm.DB,
	log *logger.Logger,
	c *cache.Cache,
	logRepo repos.HabitLogRepo,
	eventRepo repos.CalendarEventRepo,
	journalRepo repos.DailyJournalRepo,
	patternRepo repos.LearningPatternRepo,
) LearningPatternService {
	return &learningPatternService{
		db:          db,
		log:         log.With("service", "LearningPatternService"),
		cache:       c,
		logRepo:     logRepo,
		eventRepo:   eventRepo,
		journalRepo: journalRepo,
		patternRepo: patternRepo,
	}
}

func (s *learningPatternService) Compute(ctx context.Context, now time.Time) (*types.LearningPattern, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	userID := rd.UserID
	today := dateOnly(now)
	windowStart := today.AddDate(0, 0, -patternWindowDays)

	learningLogs, err := s.logRepo.GetByUserCategoriesAndRange(ctx, nil, userID, types.LearningCategories, windowStart, today)
	if err != nil {
		return nil, fmt.Errorf("fetching learning logs: %w", err)
	}
	if len(learningLogs) < minPatternLogs {
		return nil, apierr.New(http.StatusUnprocessableEntity, "insufficient_data",
			fmt.Errorf("need at least %d learning logs in the last %d days, have %d", minPatternLogs, patternWindowDays, len(learningLogs)))
	}

	events, err := s.eventRepo.GetByUserCategoriesSince(ctx, nil, userID, types.LearningEventCategories, windowStart)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	journals, err := s.journalRepo.GetRatedByUserSince(ctx, nil, userID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("fetching journals: %w", err)
	}

	ratingByDate := map[string]int{}
	for _, j := range journals {
		if j.ProductivityRating != nil {
			ratingByDate[dateKey(j.Date)] = *j.ProductivityRating
		}
	}

	hourly := hourlyEfficiency(events, ratingByDate)
	weekday := weekdayEfficiency(journals, learningLogs)
	contentType := contentTypeEfficiency(learningLogs)

	rawHourly, err := json.Marshal(hourly)
	if err != nil {
		return nil, fmt.Errorf("encoding hourly efficiency: %w", err)
	}
	rawWeekday, err := json.Marshal(weekday)
	if err != nil {
		return nil, fmt.Errorf("encoding weekday efficiency: %w", err)
	}
	rawContentType, err := json.Marshal(contentType)
	if err != nil {
		return nil, fmt.Errorf("encoding content type efficiency: %w", err)
	}

	pattern := &types.LearningPattern{
		UserID:                userID,
		HourlyEfficiency:      datatypes.JSON(rawHourly),
		WeekdayEfficiency:     datatypes.JSON(rawWeekday),
		ContentTypeEfficiency: datatypes.JSON(rawContentType),
		GeneratedAt:           now,
	}
	if err := s.patternRepo.Upsert(ctx, nil, pattern); err != nil {
		return nil, fmt.Errorf("upserting learning pattern: %w", err)
	}
	s.cache.Invalidate(ctx, "pattern", userID.String())
	s.log.Info("learning pattern computed", "user_id", userID)
	return pattern, nil
}

func (s *learningPatternService) Get(ctx context.Context) (*types.LearningPattern, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	var cached types.LearningPattern
	if err := s.cache.Get(ctx, &cached, "pattern", rd.UserID.String()); err == nil {
		return &cached, nil
	}
	result, err := s.patternRepo.GetByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetching learning pattern: %w", err)
	}
	s.cache.Set(ctx, result, "pattern", rd.UserID.String())
	return result, nil
}

// eventHourSpan lists the whole hour buckets an event covers. Events that
// cross midnight are capped at hour 24 rather than wrapping.
func eventHourSpan(e *types.CalendarEvent) []int {
	startHour := e.StartTime.Hour()
	endHour := e.EndTime.Hour()
	if e.EndTime.Minute() > 0 || e.EndTime.Second() > 0 {
		endHour++
	}
	sameDay := dateOnly(e.StartTime).Equal(dateOnly(e.EndTime))
	if !sameDay || endHour <= startHour {
		endHour = 24
	}
	var hours []int
	for h := startHour; h < endHour && h < 24; h++ {
		hours = append(hours, h)
	}
	return hours
}

// hourlyEfficiency spreads each event day's journal rating across every hour
// the event spans, then averages per hour bucket.
func hourlyEfficiency(events []*types.CalendarEvent, ratingByDate map[string]int) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, e := range events {
		rating, ok := ratingByDate[dateKey(e.StartTime)]
		if !ok {
			continue
		}
		for _, h := range eventHourSpan(e) {
			bucket := hourBucket(h)
			sums[bucket] += float64(rating)
			counts[bucket]++
		}
	}
	out := map[string]float64{}
	for bucket, sum := range sums {
		out[bucket] = sum / float64(counts[bucket])
	}
	return out
}

// weekdayEfficiency averages journal ratings by weekday, pooled with
// habit-derived scores: floor(clamped achievement ratio x 10) per log when
// the habit has a positive target. Every weekday is present, defaulting to 0.
func weekdayEfficiency(journals []*types.DailyJournal, logs []*types.HabitLog) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, j := range journals {
		if j.ProductivityRating == nil {
			continue
		}
		wd := j.Date.Weekday().String()
		sums[wd] += float64(*j.ProductivityRating)
		counts[wd]++
	}
	for _, l := range logs {
		if l.Habit == nil || l.Habit.TargetValue <= 0 {
			continue
		}
		score := math.Floor(clampRatio(l.Value, l.Habit.TargetValue) * weekdayScoreCeil)
		wd := l.LogDate.Weekday().String()
		sums[wd] += score
		counts[wd]++
	}
	out := map[string]float64{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := d.String()
		if counts[name] > 0 {
			out[name] = sums[name] / float64(counts[name])
		} else {
			out[name] = 0
		}
	}
	return out
}

// contentTypeEfficiency averages the clamped achievement ratio per habit
// category.
func contentTypeEfficiency(logs []*types.HabitLog) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, l := range logs {
		if l.Habit == nil || l.Habit.TargetValue <= 0 {
			continue
		}
		cat := l.Habit.Category
		sums[cat] += clampRatio(l.Value, l.Habit.TargetValue)
		counts[cat]++
	}
	out := map[string]float64{}
	for cat, sum := range sums {
		out[cat] = sum / float64(counts[cat])
	}
	return out
}
