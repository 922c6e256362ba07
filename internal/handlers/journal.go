package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/selfinvest-backend/internal/services"
)

type JournalHandler struct {
	journalService services.JournalService
}

func NewJournalHandler(journalService services.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

type journalRequest struct {
	Date               string `json:"date"`
	Content            string `json:"content"`
	Mood               string `json:"mood"`
	ProductivityRating *int   `json:"productivity_rating"`
}

func (h *JournalHandler) Upsert(c *gin.Context) {
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	entry, err := h.journalService.Upsert(c.Request.Context(), services.JournalInput{
		Date:               req.Date,
		Content:            req.Content,
		Mood:               req.Mood,
		ProductivityRating: req.ProductivityRating,
	}, time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, entry)
}

func (h *JournalHandler) List(c *gin.Context) {
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
	if (from == nil) != (to == nil) {
		RespondError(c, http.StatusBadRequest, "invalid_range", fmt.Errorf("from and to must be given together"))
		return
	}
	if from != nil {
		entries, err := h.journalService.Range(c.Request.Context(), *from, *to)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, entries)
		return
	}
	entries, err := h.journalService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, entries)
}

func (h *JournalHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.journalService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
