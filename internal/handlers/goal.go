package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/selfinvest-backend/internal/services"
)

type GoalHandler struct {
	goalService services.GoalService
}

func NewGoalHandler(goalService services.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type goalRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	StartDate    string     `json:"start_date"`
	DueDate      string     `json:"due_date"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	ParentGoalID *uuid.UUID `json:"parent_goal_id"`
}

func (r goalRequest) toInput() services.GoalInput {
	return services.GoalInput{
		Title:        r.Title,
		Description:  r.Description,
		StartDate:    r.StartDate,
		DueDate:      r.DueDate,
		Status:       r.Status,
		Priority:     r.Priority,
		ParentGoalID: r.ParentGoalID,
	}
}

func (h *GoalHandler) Create(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	goal, err := h.goalService.Create(c.Request.Context(), req.toInput(), time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, goal)
}

func (h *GoalHandler) List(c *gin.Context) {
	parentOnly := c.Query("parent_only") == "true"
	goals, err := h.goalService.List(c.Request.Context(), parentOnly)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, goals)
}

func (h *GoalHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	goal, err := h.goalService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, goal)
}

func (h *GoalHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	goal, err := h.goalService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.goalService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

type goalStepRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	DueDate     string `json:"due_date"`
}

func (h *GoalHandler) AddStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req goalStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	step, err := h.goalService.AddStep(c.Request.Context(), id, services.GoalStepInput{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
		DueDate:     req.DueDate,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, step)
}

func (h *GoalHandler) Steps(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	steps, err := h.goalService.Steps(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, steps)
}

func (h *GoalHandler) CompleteStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	stepID, ok := parseIDParam(c, "stepId")
	if !ok {
		return
	}
	step, err := h.goalService.CompleteStep(c.Request.Context(), id, stepID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, step)
}

func (h *GoalHandler) DeleteStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	stepID, ok := parseIDParam(c, "stepId")
	if !ok {
		return
	}
	if err := h.goalService.DeleteStep(c.Request.Context(), id, stepID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

type goalProgressRequest struct {
	Date     string `json:"date"`
	Progress int    `json:"progress"`
	Notes    string `json:"notes"`
}

func (h *GoalHandler) RecordProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req goalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	progress, err := h.goalService.RecordProgress(c.Request.Context(), id, req.Date, req.Progress, req.Notes, time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, progress)
}

func (h *GoalHandler) ProgressHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	history, err := h.goalService.ProgressHistory(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, history)
}
