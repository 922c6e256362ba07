package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/selfinvest-backend/internal/services"
)

type AchievementHandler struct {
	achievementService services.AchievementService
}

func NewAchievementHandler(achievementService services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

func (h *AchievementHandler) List(c *gin.Context) {
	achievements, err := h.achievementService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, achievements)
}

type earnRequest struct {
	BadgeType   string `json:"badge_type"`
	BadgeKind   string `json:"badge_kind"`
	Threshold   int    `json:"threshold"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (h *AchievementHandler) Earn(c *gin.Context) {
	var req earnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	badge, err := h.achievementService.Earn(c.Request.Context(), services.EarnInput{
		BadgeType:   req.BadgeType,
		BadgeKind:   req.BadgeKind,
		Threshold:   req.Threshold,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
	}, time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, badge)
}
