package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/selfinvest-backend/internal/handlers"
	"github.com/yungbote/selfinvest-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *middleware.AuthMiddleware

	HealthcheckHandler *handlers.HealthcheckHandler
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	HabitHandler       *handlers.HabitHandler
	BookHandler        *handlers.BookHandler
	CalendarHandler    *handlers.CalendarHandler
	JournalHandler     *handlers.JournalHandler
	GoalHandler        *handlers.GoalHandler
	AnalyticsHandler   *handlers.AnalyticsHandler
	AchievementHandler *handlers.AchievementHandler
	ReminderHandler    *handlers.ReminderHandler
	DashboardHandler   *handlers.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware(cfg.ServiceName))

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	if cfg.HealthcheckHandler != nil {
		r.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
			api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me", cfg.UserHandler.UpdateMe)
			protected.DELETE("/me", cfg.UserHandler.DeleteMe)
		}

		if cfg.HabitHandler != nil {
			protected.POST("/habits", cfg.HabitHandler.Create)
			protected.GET("/habits", cfg.HabitHandler.List)
			protected.GET("/habits/summary", cfg.HabitHandler.Summary)
			protected.GET("/habits/:id", cfg.HabitHandler.Get)
			protected.PATCH("/habits/:id", cfg.HabitHandler.Update)
			protected.DELETE("/habits/:id", cfg.HabitHandler.Delete)
			protected.POST("/habits/:id/logs", cfg.HabitHandler.LogProgress)
			protected.GET("/habits/:id/logs", cfg.HabitHandler.Logs)
			protected.GET("/habits/:id/streak", cfg.HabitHandler.Streak)
		}

		if cfg.BookHandler != nil {
			protected.POST("/books", cfg.BookHandler.Create)
			protected.GET("/books", cfg.BookHandler.List)
			protected.GET("/books/summary", cfg.BookHandler.Summary)
			protected.GET("/books/:id", cfg.BookHandler.Get)
			protected.PATCH("/books/:id", cfg.BookHandler.Update)
			protected.DELETE("/books/:id", cfg.BookHandler.Delete)
			protected.POST("/books/:id/progress", cfg.BookHandler.UpdateProgress)
			protected.POST("/books/:id/notes", cfg.BookHandler.AddNote)
			protected.GET("/books/:id/notes", cfg.BookHandler.Notes)
			protected.DELETE("/books/:id/notes/:noteId", cfg.BookHandler.DeleteNote)
		}

		if cfg.CalendarHandler != nil {
			protected.POST("/events", cfg.CalendarHandler.Create)
			protected.GET("/events", cfg.CalendarHandler.List)
			protected.GET("/events/:id", cfg.CalendarHandler.Get)
			protected.PATCH("/events/:id", cfg.CalendarHandler.Update)
			protected.DELETE("/events/:id", cfg.CalendarHandler.Delete)
		}

		if cfg.JournalHandler != nil {
			protected.PUT("/journal", cfg.JournalHandler.Upsert)
			protected.GET("/journal", cfg.JournalHandler.List)
			protected.DELETE("/journal/:id", cfg.JournalHandler.Delete)
		}

		if cfg.GoalHandler != nil {
			protected.POST("/goals", cfg.GoalHandler.Create)
			protected.GET("/goals", cfg.GoalHandler.List)
			protected.GET("/goals/:id", cfg.GoalHandler.Get)
			protected.PATCH("/goals/:id", cfg.GoalHandler.Update)
			protected.DELETE("/goals/:id", cfg.GoalHandler.Delete)
			protected.POST("/goals/:id/steps", cfg.GoalHandler.AddStep)
			protected.GET("/goals/:id/steps", cfg.GoalHandler.Steps)
			protected.POST("/goals/:id/steps/:stepId/complete", cfg.GoalHandler.CompleteStep)
			protected.DELETE("/goals/:id/steps/:stepId", cfg.GoalHandler.DeleteStep)
			protected.POST("/goals/:id/progress", cfg.GoalHandler.RecordProgress)
			protected.GET("/goals/:id/progress", cfg.GoalHandler.ProgressHistory)
		}

		if cfg.AnalyticsHandler != nil {
			protected.POST("/analytics/summaries", cfg.AnalyticsHandler.ComputeSummary)
			protected.GET("/analytics/summaries", cfg.AnalyticsHandler.ListSummaries)
			protected.POST("/analytics/insights", cfg.AnalyticsHandler.GenerateInsights)
			protected.GET("/analytics/insights", cfg.AnalyticsHandler.ListInsights)
			protected.POST("/analytics/pattern", cfg.AnalyticsHandler.ComputePattern)
			protected.GET("/analytics/pattern", cfg.AnalyticsHandler.GetPattern)
		}

		if cfg.AchievementHandler != nil {
			protected.GET("/achievements", cfg.AchievementHandler.List)
			protected.POST("/achievements", cfg.AchievementHandler.Earn)
		}

		if cfg.ReminderHandler != nil {
			protected.POST("/reminders", cfg.ReminderHandler.Create)
			protected.GET("/reminders", cfg.ReminderHandler.List)
			protected.GET("/reminders/upcoming", cfg.ReminderHandler.Upcoming)
			protected.PATCH("/reminders/:id", cfg.ReminderHandler.Update)
			protected.DELETE("/reminders/:id", cfg.ReminderHandler.Delete)
			protected.GET("/quotes", cfg.ReminderHandler.Quotes)
			protected.POST("/quotes", cfg.ReminderHandler.CreateQuote)
			protected.GET("/quotes/random", cfg.ReminderHandler.RandomQuote)
		}

		if cfg.DashboardHandler != nil {
			protected.GET("/dashboard/settings", cfg.DashboardHandler.GetSetting)
			protected.PATCH("/dashboard/settings", cfg.DashboardHandler.UpdateSetting)
			protected.POST("/dashboard/widgets", cfg.DashboardHandler.AddWidget)
			protected.GET("/dashboard/widgets", cfg.DashboardHandler.Widgets)
			protected.PATCH("/dashboard/widgets/:id", cfg.DashboardHandler.UpdateWidget)
			protected.DELETE("/dashboard/widgets/:id", cfg.DashboardHandler.DeleteWidget)
		}
	}

	return r
}
