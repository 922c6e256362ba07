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

type ActivitySummaryService interface {
	// Compute aggregates the user's activity over the period containing
	// referenceDate (today when empty) and upserts the summary record.
	Compute(ctx context.Context, periodType, referenceDate string, now time.Time) (*types.ActivitySummary, error)
	List(ctx context.Context) ([]*types.ActivitySummary, error)
}

type activitySummaryService struct {
	db          *gorm.DB
	log         *logger.Logger
	cache       *cache.Cache
	habitRepo   repos.HabitRepo
	logRepo     repos.HabitLogRepo
	bookRepo    repos.BookRepo
	goalRepo    repos.GoalRepo
	summaryRepo repos.ActivitySummaryRepo
}

func NewActivitySummaryService(
	db *gorm.DB,
	log *logger.Logger,
	c *cache.Cache,
	habitRepo repos.HabitRepo,
	logRepo repos.HabitLogRepo,
	bookRepo repos.BookRepo,
	goalRepo repos.GoalRepo,
	summaryRepo repos.ActivitySummaryRepo,
) ActivitySummaryService {
	return &activitySummaryService{
		db:          db,
		log:         log.With("service", "ActivitySummaryService"),
		cache:       c,
		habitRepo:   habitRepo,
		logRepo:     logRepo,
		bookRepo:    bookRepo,
		goalRepo:    goalRepo,
		summaryRepo: summaryRepo,
	}
}

func (s *activitySummaryService) Compute(ctx context.Context, periodType, referenceDate string, now time.Time) (*types.ActivitySummary, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	userID := rd.UserID

	ref := dateOnly(now)
	if referenceDate != "" {
		parsed, err := time.Parse(dateLayout, referenceDate)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_date", fmt.Errorf("invalid reference date %q", referenceDate))
		}
		ref = dateOnly(parsed)
	}
	start, end, err := resolvePeriod(periodType, ref)
	if err != nil {
		return nil, err
	}
	days := daysInPeriod(start, end)

	studyLogs, err := s.logRepo.GetByUserCategoriesAndRange(ctx, nil, userID, types.StudyCategories, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching study logs: %w", err)
	}
	allLogs, err := s.logRepo.GetByUserAndRange(ctx, nil, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching habit logs: %w", err)
	}
	activeHabits, err := s.habitRepo.GetActiveByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching habits: %w", err)
	}
	books, err := s.bookRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching books: %w", err)
	}
	goalsCompleted, err := s.goalRepo.CountCompletedInRange(ctx, nil, userID, start, endOfDay(end))
	if err != nil {
		return nil, fmt.Errorf("counting goals: %w", err)
	}
	stepsCompleted, err := s.goalRepo.CountCompletedStepsInRange(ctx, nil, userID, start, endOfDay(end))
	if err != nil {
		return nil, fmt.Errorf("counting goal steps: %w", err)
	}

	activeIDs := make(map[uuid.UUID]bool, len(activeHabits))
	for _, h := range activeHabits {
		activeIDs[h.ID] = true
	}
	activeLogs := make([]*types.HabitLog, 0, len(allLogs))
	for _, l := range allLogs {
		if activeIDs[l.HabitID] {
			activeLogs = append(activeLogs, l)
		}
	}

	totalStudy := sumLogValues(studyLogs)
	avgStudy := 0.0
	if days > 0 {
		avgStudy = totalStudy / float64(days)
	}
	completionRate := habitCompletionRate(len(activeLogs), len(activeHabits), days)
	pagesRead, booksCompleted := aggregateReading(books, start, end, dateOnly(now))

	data := buildActivityData(studyLogs, activeLogs, books, start, end, dateOnly(now))
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		progress, err := s.goalRepo.GetProgressByUserAndDate(ctx, nil, userID, day)
		if err != nil {
			return nil, fmt.Errorf("fetching goal progress: %w", err)
		}
		data.GoalProgressByDay[dateKey(day)] = meanGoalProgress(progress)
	}
	rawData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding activity data: %w", err)
	}

	summary := &types.ActivitySummary{
		UserID:               userID,
		PeriodType:           periodType,
		StartDate:            start,
		EndDate:              end,
		ActivityData:         datatypes.JSON(rawData),
		TotalStudyTime:       int(math.Round(totalStudy)),
		AvgDailyStudyTime:    avgStudy,
		TotalHabitsCompleted: len(activeLogs),
		HabitCompletionRate:  completionRate,
		PagesRead:            pagesRead,
		BooksCompleted:       booksCompleted,
		GoalsCompleted:       int(goalsCompleted),
		GoalStepsCompleted:   int(stepsCompleted),
	}
	if err := s.summaryRepo.Upsert(ctx, nil, summary); err != nil {
		return nil, fmt.Errorf("upserting summary: %w", err)
	}
	s.cache.Invalidate(ctx, "summaries", userID.String())
	s.log.Info("activity summary computed",
		"user_id", userID,
		"period_type", periodType,
		"start_date", dateKey(start),
	)
	return summary, nil
}

func (s *activitySummaryService) List(ctx context.Context) ([]*types.ActivitySummary, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	var cached []*types.ActivitySummary
	if err := s.cache.Get(ctx, &cached, "summaries", rd.UserID.String()); err == nil {
		return cached, nil
	}
	results, err := s.summaryRepo.GetByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetching summaries: %w", err)
	}
	s.cache.Set(ctx, results, "summaries", rd.UserID.String())
	return results, nil
}

func sumLogValues(logs []*types.HabitLog) float64 {
	var total float64
	for _, l := range logs {
		total += l.Value
	}
	return total
}

// habitCompletionRate is the share of (habit, day) slots in the period that
// have a log, as a percentage. Zero denominators yield 0.
func habitCompletionRate(logCount, habitCount, days int) float64 {
	denom := habitCount * days
	if denom <= 0 {
		return 0
	}
	return float64(logCount) / float64(denom) * 100
}

// estimateBookPages reports the pages attributable to [start, end] for one
// book. Completed books contribute their full page count when finished in
// range. In-progress books contribute a linear estimate: pages per elapsed
// day since the book started, over the overlap of the period with
// [start_date, today].
func estimateBookPages(b *types.Book, start, end, today time.Time) int {
	if b == nil {
		return 0
	}
	switch b.Status {
	case types.BookStatusCompleted:
		if b.FinishDate == nil {
			return 0
		}
		finish := dateOnly(*b.FinishDate)
		if finish.Before(start) || finish.After(end) {
			return 0
		}
		return b.PageCount
	case types.BookStatusInProgress:
		if b.StartDate == nil || b.CurrentPage <= 0 {
			return 0
		}
		bookStart := dateOnly(*b.StartDate)
		if bookStart.After(end) || bookStart.After(today) {
			return 0
		}
		elapsed := int(today.Sub(bookStart).Hours() / 24)
		if elapsed <= 0 {
			return 0
		}
		rate := float64(b.CurrentPage) / float64(elapsed)
		overlapStart := start
		if bookStart.After(overlapStart) {
			overlapStart = bookStart
		}
		overlapEnd := end
		if today.Before(overlapEnd) {
			overlapEnd = today
		}
		overlap := daysInPeriod(overlapStart, overlapEnd)
		if overlap <= 0 {
			return 0
		}
		return int(math.Floor(rate * float64(overlap)))
	default:
		return 0
	}
}

func aggregateReading(books []*types.Book, start, end, today time.Time) (pages, completed int) {
	for _, b := range books {
		pages += estimateBookPages(b, start, end, today)
		if b.Status == types.BookStatusCompleted && b.FinishDate != nil {
			finish := dateOnly(*b.FinishDate)
			if !finish.Before(start) && !finish.After(end) {
				completed++
			}
		}
	}
	return pages, completed
}

// buildActivityData assembles the per-day breakdown maps. Every day in the
// period gets an entry, zero-valued when nothing happened.
func buildActivityData(studyLogs, activeLogs []*types.HabitLog, books []*types.Book, start, end, today time.Time) *types.ActivityData {
	data := &types.ActivityData{
		StudyTimeByDay:       map[string]float64{},
		HabitCompletionByDay: map[string]int{},
		PagesReadByDay:       map[string]int{},
		GoalProgressByDay:    map[string]float64{},
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := dateKey(day)
		data.StudyTimeByDay[key] = 0
		data.HabitCompletionByDay[key] = 0
		data.PagesReadByDay[key] = 0
	}
	for _, l := range studyLogs {
		data.StudyTimeByDay[dateKey(l.LogDate)] += l.Value
	}
	for _, l := range activeLogs {
		data.HabitCompletionByDay[dateKey(l.LogDate)]++
	}
	for _, b := range books {
		distributeBookPages(data.PagesReadByDay, b, start, end, today)
	}
	return data
}

func distributeBookPages(byDay map[string]int, b *types.Book, start, end, today time.Time) {
	if b == nil {
		return
	}
	switch b.Status {
	case types.BookStatusCompleted:
		if b.FinishDate == nil {
			return
		}
		finish := dateOnly(*b.FinishDate)
		if finish.Before(start) || finish.After(end) {
			return
		}
		byDay[dateKey(finish)] += b.PageCount
	case types.BookStatusInProgress:
		if b.StartDate == nil || b.CurrentPage <= 0 {
			return
		}
		bookStart := dateOnly(*b.StartDate)
		elapsed := int(today.Sub(bookStart).Hours() / 24)
		if elapsed <= 0 {
			return
		}
		rate := float64(b.CurrentPage) / float64(elapsed)
		overlapStart := start
		if bookStart.After(overlapStart) {
			overlapStart = bookStart
		}
		overlapEnd := end
		if today.Before(overlapEnd) {
			overlapEnd = today
		}
		for day := overlapStart; !day.After(overlapEnd); day = day.AddDate(0, 0, 1) {
			byDay[dateKey(day)] += int(math.Floor(rate))
		}
	}
}

func meanGoalProgress(progress []*types.GoalProgress) float64 {
	if len(progress) == 0 {
		return 0
	}
	var total float64
	for _, p := range progress {
		total += float64(p.Progress)
	}
	return total / float64(len(progress))
}
