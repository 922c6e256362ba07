package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/selfinvest-backend/internal/services"
)

type CalendarHandler struct {
	calendarService services.CalendarService
}

func NewCalendarHandler(calendarService services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

type eventRequest struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	AllDay           bool      `json:"all_day"`
	Category         string    `json:"category"`
	Location         string    `json:"location"`
	IsRecurring      bool      `json:"is_recurring"`
	RecurringPattern string    `json:"recurring_pattern"`
}

func (r eventRequest) toInput() services.EventInput {
	return services.EventInput{
		Title:            r.Title,
		Description:      r.Description,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		AllDay:           r.AllDay,
		Category:         r.Category,
		Location:         r.Location,
		IsRecurring:      r.IsRecurring,
		RecurringPattern: r.RecurringPattern,
	}
}

func (h *CalendarHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	event, err := h.calendarService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, event)
}

func (h *CalendarHandler) List(c *gin.Context) {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}
	events, err := h.calendarService.List(c.Request.Context(), from, to)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, events)
}

func (h *CalendarHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	event, err := h.calendarService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, event)
}

func (h *CalendarHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	event, err := h.calendarService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, event)
}

func (h *CalendarHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.calendarService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
