package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/selfinvest-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:    "selfinvest",
		AllowedOrigins: cfg.AllowedOrigins,

		AuthMiddleware: m.Auth,

		HealthcheckHandler: h.Healthcheck,
		AuthHandler:        h.Auth,
		UserHandler:        h.User,
		HabitHandler:       h.Habit,
		BookHandler:        h.Book,
		CalendarHandler:    h.Calendar,
		JournalHandler:     h.Journal,
		GoalHandler:        h.Goal,
		AnalyticsHandler:   h.Analytics,
		AchievementHandler: h.Achievement,
		ReminderHandler:    h.Reminder,
		DashboardHandler:   h.Dashboard,
	})
}
