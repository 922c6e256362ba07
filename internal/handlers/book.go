package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/selfinvest-backend/internal/services"
)

type BookHandler struct {
	bookService services.BookService
}

func NewBookHandler(bookService services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

type bookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Publisher   string `json:"publisher"`
	PageCount   int    `json:"page_count"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Rating      *int   `json:"rating"`
	Review      string `json:"review"`
}

func (r bookRequest) toInput() services.BookInput {
	return services.BookInput{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		Publisher:   r.Publisher,
		PageCount:   r.PageCount,
		Description: r.Description,
		Status:      r.Status,
		Rating:      r.Rating,
		Review:      r.Review,
	}
}

func (h *BookHandler) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	book, err := h.bookService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, book)
}

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.bookService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, books)
}

func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := h.bookService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, book)
}

func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	book, err := h.bookService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, book)
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.bookService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

type bookProgressRequest struct {
	CurrentPage int `json:"current_page"`
}

func (h *BookHandler) UpdateProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req bookProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	book, err := h.bookService.UpdateProgress(c.Request.Context(), id, req.CurrentPage, time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, book)
}

type bookNoteRequest struct {
	Content    string `json:"content"`
	PageNumber int    `json:"page_number"`
	Highlight  bool   `json:"highlight"`
}

func (h *BookHandler) AddNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req bookNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	note, err := h.bookService.AddNote(c.Request.Context(), id, services.BookNoteInput{
		Content:    req.Content,
		PageNumber: req.PageNumber,
		Highlight:  req.Highlight,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, note)
}

func (h *BookHandler) Notes(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	notes, err := h.bookService.Notes(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, notes)
}

func (h *BookHandler) DeleteNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	noteID, ok := parseIDParam(c, "noteId")
	if !ok {
		return
	}
	if err := h.bookService.DeleteNote(c.Request.Context(), id, noteID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (h *BookHandler) Summary(c *gin.Context) {
	summary, err := h.bookService.Summary(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, summary)
}
