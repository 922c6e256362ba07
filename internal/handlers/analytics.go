package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/selfinvest-backend/internal/services"
)

type AnalyticsHandler struct {
	summaryService services.ActivitySummaryService
	insightService services.InsightService
	patternService services.LearningPatternService
}

func NewAnalyticsHandler(
	summaryService services.ActivitySummaryService,
	insightService services.InsightService,
	patternService services.LearningPatternService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		summaryService: summaryService,
		insightService: insightService,
		patternService: patternService,
	}
}

func (h *AnalyticsHandler) ComputeSummary(c *gin.Context) {
	periodType := c.DefaultQuery("period_type", "daily")
	referenceDate := c.Query("date")
	summary, err := h.summaryService.Compute(c.Request.Context(), periodType, referenceDate, time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, summary)
}

func (h *AnalyticsHandler) ListSummaries(c *gin.Context) {
	summaries, err := h.summaryService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, summaries)
}

func (h *AnalyticsHandler) GenerateInsights(c *gin.Context) {
	ids, err := h.insightService.Generate(c.Request.Context(), time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"generated": ids})
}

func (h *AnalyticsHandler) ListInsights(c *gin.Context) {
	insights, err := h.insightService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, insights)
}

func (h *AnalyticsHandler) ComputePattern(c *gin.Context) {
	pattern, err := h.patternService.Compute(c.Request.Context(), time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, pattern)
}

func (h *AnalyticsHandler) GetPattern(c *gin.Context) {
	pattern, err := h.patternService.Get(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, pattern)
}
