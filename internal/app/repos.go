package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/repos"
)

type Repos struct {
	User                repos.UserRepo
	UserToken           repos.UserTokenRepo
	Habit               repos.HabitRepo
	HabitLog            repos.HabitLogRepo
	Book                repos.BookRepo
	CalendarEvent       repos.CalendarEventRepo
	DailyJournal        repos.DailyJournalRepo
	Goal                repos.GoalRepo
	ActivitySummary     repos.ActivitySummaryRepo
	ProductivityInsight repos.ProductivityInsightRepo
	LearningPattern     repos.LearningPatternRepo
	Achievement         repos.AchievementRepo
	Reminder            repos.ReminderRepo
	MotivationalQuote   repos.MotivationalQuoteRepo
	Dashboard           repos.DashboardRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:                repos.NewUserRepo(db, log),
		UserToken:           repos.NewUserTokenRepo(db, log),
		Habit:               repos.NewHabitRepo(db, log),
		HabitLog:            repos.NewHabitLogRepo(db, log),
		Book:                repos.NewBookRepo(db, log),
		CalendarEvent:       repos.NewCalendarEventRepo(db, log),
		DailyJournal:        repos.NewDailyJournalRepo(db, log),
		Goal:                repos.NewGoalRepo(db, log),
		ActivitySummary:     repos.NewActivitySummaryRepo(db, log),
		ProductivityInsight: repos.NewProductivityInsightRepo(db, log),
		LearningPattern:     repos.NewLearningPatternRepo(db, log),
		Achievement:         repos.NewAchievementRepo(db, log),
		Reminder:            repos.NewReminderRepo(db, log),
		MotivationalQuote:   repos.NewMotivationalQuoteRepo(db, log),
		Dashboard:           repos.NewDashboardRepo(db, log),
	}
}
