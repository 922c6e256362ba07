package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/cache"
	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Habit       services.HabitService
	Book        services.BookService
	Calendar    services.CalendarService
	Journal     services.JournalService
	Goal        services.GoalService
	Summary     services.ActivitySummaryService
	Insight     services.InsightService
	Pattern     services.LearningPatternService
	Achievement services.AchievementService
	Reminder    services.ReminderService
	Dashboard   services.DashboardService
}

func wireServices(db *gorm.DB, log *logger.Logger, c *cache.Cache, r Repos) Services {
	log.Info("Wiring services...")

	achievement := services.NewAchievementService(db, log, r.Habit, r.HabitLog, r.Achievement)

	return Services{
		Auth:        services.NewAuthService(db, log, r.User, r.UserToken),
		User:        services.NewUserService(db, log, r.User),
		Habit:       services.NewHabitService(db, log, r.Habit, r.HabitLog, achievement),
		Book:        services.NewBookService(db, log, r.Book),
		Calendar:    services.NewCalendarService(db, log, r.CalendarEvent),
		Journal:     services.NewJournalService(db, log, r.DailyJournal),
		Goal:        services.NewGoalService(db, log, r.Goal),
		Summary:     services.NewActivitySummaryService(db, log, c, r.Habit, r.HabitLog, r.Book, r.Goal, r.ActivitySummary),
		Insight:     services.NewInsightService(db, log, c, r.Habit, r.HabitLog, r.CalendarEvent, r.ProductivityInsight),
		Pattern:     services.NewLearningPatternService(db, log, c, r.HabitLog, r.CalendarEvent, r.DailyJournal, r.LearningPattern),
		Achievement: achievement,
		Reminder:    services.NewReminderService(db, log, r.Reminder, r.MotivationalQuote),
		Dashboard:   services.NewDashboardService(db, log, r.Dashboard),
	}
}
