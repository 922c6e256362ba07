package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/apierr"
	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/repos"
	"github.com/yungbote/selfinvest-backend/internal/requestdata"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

var validEventCategories = map[string]struct{}{
	types.EventCategoryStudy:    {},
	types.EventCategoryExercise: {},
	types.EventCategoryMeeting:  {},
	types.EventCategoryReading:  {},
	types.EventCategoryPersonal: {},
	types.EventCategoryOther:    {},
}

type EventInput struct {
	Title            string
	Description      string
	StartTime        time.Time
	EndTime          time.Time
	AllDay           bool
	Category         string
	Location         string
	IsRecurring      bool
	RecurringPattern string
}

type CalendarService interface {
	Create(ctx context.Context, input EventInput) (*types.CalendarEvent, error)
	List(ctx context.Context, from, to *time.Time) ([]*types.CalendarEvent, error)
	Get(ctx context.Context, id uuid.UUID) (*types.CalendarEvent, error)
	Update(ctx context.Context, id uuid.UUID, input EventInput) (*types.CalendarEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type calendarService struct {
	db        *gorm.DB
	log       *logger.Logger
	eventRepo repos.CalendarEventRepo
}

func NewCalendarService(db *gorm.DB, log *logger.Logger, eventRepo repos.CalendarEventRepo) CalendarService {
	return &calendarService{db: db, log: log.With("service", "CalendarService"), eventRepo: eventRepo}
}

func (s *calendarService) requireUser(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	return rd.UserID, nil
}

func validateEventInput(input EventInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apierr.New(http.StatusBadRequest, "missing_title", fmt.Errorf("event title required"))
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return apierr.New(http.StatusBadRequest, "missing_times", fmt.Errorf("start and end time required"))
	}
	if !input.EndTime.After(input.StartTime) {
		return apierr.New(http.StatusBadRequest, "invalid_times", fmt.Errorf("end time must be after start time"))
	}
	if input.Category != "" {
		if _, ok := validEventCategories[input.Category]; !ok {
			return apierr.New(http.StatusBadRequest, "invalid_category", fmt.Errorf("invalid event category %q", input.Category))
		}
	}
	return nil
}

func (s *calendarService) Create(ctx context.Context, input EventInput) (*types.CalendarEvent, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateEventInput(input); err != nil {
		return nil, err
	}
	category := input.Category
	if category == "" {
		category = types.EventCategoryOther
	}
	event := &types.CalendarEvent{
		UserID:           userID,
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		StartTime:        input.StartTime,
		EndTime:          input.EndTime,
		AllDay:           input.AllDay,
		Category:         category,
		Location:         input.Location,
		IsRecurring:      input.IsRecurring,
		RecurringPattern: input.RecurringPattern,
	}
	return s.eventRepo.Create(ctx, nil, event)
}

func (s *calendarService) List(ctx context.Context, from, to *time.Time) ([]*types.CalendarEvent, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.GetByUserAndRange(ctx, nil, userID, from, to)
}

func (s *calendarService) Get(ctx context.Context, id uuid.UUID) (*types.CalendarEvent, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, nil, userID, id)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "event_not_found", err)
	}
	return event, nil
}

func (s *calendarService) Update(ctx context.Context, id uuid.UUID, input EventInput) (*types.CalendarEvent, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, nil, userID, id)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "event_not_found", err)
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		event.Title = title
	}
	if input.Description != "" {
		event.Description = input.Description
	}
	if !input.StartTime.IsZero() {
		event.StartTime = input.StartTime
	}
	if !input.EndTime.IsZero() {
		event.EndTime = input.EndTime
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, apierr.New(http.StatusBadRequest, "invalid_times", fmt.Errorf("end time must be after start time"))
	}
	if input.Category != "" {
		if _, ok := validEventCategories[input.Category]; !ok {
			return nil, apierr.New(http.StatusBadRequest, "invalid_category", fmt.Errorf("invalid event category %q", input.Category))
		}
		event.Category = input.Category
	}
	if input.Location != "" {
		event.Location = input.Location
	}
	event.AllDay = input.AllDay
	if err := s.eventRepo.Update(ctx, nil, event); err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}
	return event, nil
}

func (s *calendarService) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	return s.eventRepo.FullDeleteByID(ctx, nil, userID, id)
}
