package app

import (
	"github.com/yungbote/selfinvest-backend/internal/handlers"
	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
)

type Handlers struct {
	Healthcheck *handlers.HealthcheckHandler
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Habit       *handlers.HabitHandler
	Book        *handlers.BookHandler
	Calendar    *handlers.CalendarHandler
	Journal     *handlers.JournalHandler
	Goal        *handlers.GoalHandler
	Analytics   *handlers.AnalyticsHandler
	Achievement *handlers.AchievementHandler
	Reminder    *handlers.ReminderHandler
	Dashboard   *handlers.DashboardHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Healthcheck: handlers.NewHealthcheckHandler(),
		Auth:        handlers.NewAuthHandler(s.Auth),
		User:        handlers.NewUserHandler(s.User),
		Habit:       handlers.NewHabitHandler(s.Habit, s.Achievement),
		Book:        handlers.NewBookHandler(s.Book),
		Calendar:    handlers.NewCalendarHandler(s.Calendar),
		Journal:     handlers.NewJournalHandler(s.Journal),
		Goal:        handlers.NewGoalHandler(s.Goal),
		Analytics:   handlers.NewAnalyticsHandler(s.Summary, s.Insight, s.Pattern),
		Achievement: handlers.NewAchievementHandler(s.Achievement),
		Reminder:    handlers.NewReminderHandler(s.Reminder),
		Dashboard:   handlers.NewDashboardHandler(s.Dashboard),
	}
}
