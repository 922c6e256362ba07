package services

import (
	"context"
	"fmt"
	"math"
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

var validGoalStatuses = map[string]struct{}{
	types.GoalStatusNotStarted: {},
	types.GoalStatusInProgress: {},
	types.GoalStatusCompleted:  {},
	types.GoalStatusAbandoned:  {},
}

var validGoalPriorities = map[string]struct{}{
	types.GoalPriorityLow:    {},
	types.GoalPriorityMedium: {},
	types.GoalPriorityHigh:   {},
}

type GoalInput struct {
	Title        string
	Description  string
	StartDate    string
	DueDate      string
	Status       string
	Priority     string
	ParentGoalID *uuid.UUID
}

type GoalStepInput struct {
	Title       string
	Description string
	Order       int
	DueDate     string
}

type GoalService interface {
	Create(ctx context.Context, input GoalInput, now time.Time) (*types.Goal, error)
	List(ctx context.Context, parentOnly bool) ([]*types.Goal, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Goal, error)
	Update(ctx context.Context, id uuid.UUID, input GoalInput) (*types.Goal, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddStep(ctx context.Context, goalID uuid.UUID, input GoalStepInput) (*types.GoalStep, error)
	Steps(ctx context.Context, goalID uuid.UUID) ([]*types.GoalStep, error)
	// CompleteStep marks the step done and recomputes the parent goal's
	// progress percentage from its step completion ratio.
	CompleteStep(ctx context.Context, goalID, stepID uuid.UUID) (*types.GoalStep, error)
	DeleteStep(ctx context.Context, goalID, stepID uuid.UUID) error

	// RecordProgress upserts a dated progress reading and mirrors it onto
	// the goal's progress percentage.
	RecordProgress(ctx context.Context, goalID uuid.UUID, date string, progress int, notes string, now time.Time) (*types.GoalProgress, error)
	ProgressHistory(ctx context.Context, goalID uuid.UUID) ([]*types.GoalProgress, error)
}

type goalService struct {
	db       *gorm.DB
	log      *logger.Logger
	goalRepo repos.GoalRepo
}

func NewGoalService(db *gorm.DB, log *logger.Logger, goalRepo repos.GoalRepo) GoalService {
	return &goalService{db: db, log: log.With("service", "GoalService"), goalRepo: goalRepo}
}

func (s *goalService) requireUser(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	return rd.UserID, nil
}

func (s *goalService) Create(ctx context.Context, input GoalInput, now time.Time) (*types.Goal, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_title", fmt.Errorf("goal title required"))
	}
	startDate := dateOnly(now)
	if input.StartDate != "" {
		parsed, err := time.Parse(dateLayout, input.StartDate)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_date", fmt.Errorf("invalid start date %q", input.StartDate))
		}
		startDate = dateOnly(parsed)
	}
	var dueDate *time.Time
	if input.DueDate != "" {
		parsed, err := time.Parse(dateLayout, input.DueDate)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_date", fmt.Errorf("invalid due date %q", input.DueDate))
		}
		d := dateOnly(parsed)
		dueDate = &d
	}
	status := input.Status
	if status == "" {
		status = types.GoalStatusNotStarted
	}
	if _, ok := validGoalStatuses[status]; !ok {
		return nil, apierr.New(http.StatusBadRequest, "invalid_status", fmt.Errorf("invalid goal status %q", status))
	}
	priority := input.Priority
	if priority == "" {
		priority = types.GoalPriorityMedium
	}
	if _, ok := validGoalPriorities[priority]; !ok {
		return nil, apierr.New(http.StatusBadRequest, "invalid_priority", fmt.Errorf("invalid goal priority %q", priority))
	}
	if input.ParentGoalID != nil {
		if _, err := s.goalRepo.GetByID(ctx, nil, userID, *input.ParentGoalID); err != nil {
			return nil, apierr.New(http.StatusNotFound, "parent_goal_not_found", err)
		}
	}
	goal := &types.Goal{
		UserID:       userID,
		ParentGoalID: input.ParentGoalID,
		Title:        title,
		Description:  input.Description,
		StartDate:    startDate,
		DueDate:      dueDate,
		Status:       status,
		Priority:     priority,
	}
	return s.goalRepo.Create(ctx, nil, goal)
}

func (s *goalService) List(ctx context.Context, parentOnly bool) ([]*types.Goal, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.goalRepo.GetByUserID(ctx, nil, userID, parentOnly)
}

func (s *goalService) Get(ctx context.Context, id uuid.UUID) (*types.Goal, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	goal, err := s.goalRepo.GetByID(ctx, nil, userID, id)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "goal_not_found", err)
	}
	return goal, nil
}

func (s *goalService) Update(ctx context.Context, id uuid.UUID, input GoalInput) (*types.Goal, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	goal, err := s.goalRepo.GetByID(ctx, nil, userID, id)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "goal_not_found", err)
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		goal.Title = title
	}
	if input.Description != "" {
		goal.Description = input.Description
	}
	if input.Status != "" {
		if _, ok := validGoalStatuses[input.Status]; !ok {
			return nil, apierr.New(http.StatusBadRequest, "invalid_status", fmt.Errorf("invalid goal status %q", input.Status))
		}
		goal.Status = input.Status
		if input.Status == types.GoalStatusCompleted {
			goal.ProgressPercentage = 100
		}
	}
	if input.Priority != "" {
		if _, ok := validGoalPriorities[input.Priority]; !ok {
			return nil, apierr.New(http.StatusBadRequest, "invalid_priority", fmt.Errorf("invalid goal priority %q", input.Priority))
		}
		goal.Priority = input.Priority
	}
	if input.DueDate != "" {
		parsed, err := time.Parse(dateLayout, input.DueDate)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_date", fmt.Errorf("invalid due date %q", input.DueDate))
		}
		d := dateOnly(parsed)
		goal.DueDate = &d
	}
	if err := s.goalRepo.Update(ctx, nil, goal); err != nil {
		return nil, fmt.Errorf("updating goal: %w", err)
	}
	return goal, nil
}

func (s *goalService) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	return s.goalRepo.FullDeleteByID(ctx, nil, userID, id)
}

func (s *goalService) AddStep(ctx context.Context, goalID uuid.UUID, input GoalStepInput) (*types.GoalStep, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.goalRepo.GetByID(ctx, nil, userID, goalID); err != nil {
		return nil, apierr.New(http.StatusNotFound, "goal_not_found", err)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_title", fmt.Errorf("step title required"))
	}
	var dueDate *time.Time
	if input.DueDate != "" {
		parsed, err := time.Parse(dateLayout, input.DueDate)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_date", fmt.Errorf("invalid due date %q", input.DueDate))
		}
		d := dateOnly(parsed)
		dueDate = &d
	}
	step := &types.GoalStep{
		GoalID:      goalID,
		Title:       title,
		Description: input.Description,
		Order:       input.Order,
		DueDate:     dueDate,
	}
	return s.goalRepo.CreateStep(ctx, nil, step)
}

func (s *goalService) Steps(ctx context.Context, goalID uuid.UUID) ([]*types.GoalStep, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.goalRepo.GetByID(ctx, nil, userID, goalID); err != nil {
		return nil, apierr.New(http.StatusNotFound, "goal_not_found", err)
	}
	return s.goalRepo.GetStepsByGoalID(ctx, nil, goalID)
}

func (s *goalService) CompleteStep(ctx context.Context, goalID, stepID uuid.UUID) (*types.GoalStep, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	goal, err := s.goalRepo.GetByID(ctx, nil, userID, goalID)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "goal_not_found", err)
	}

	var completed *types.GoalStep
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps, err := s.goalRepo.GetStepsByGoalID(ctx, tx, goalID)
		if err != nil {
			return fmt.Errorf("fetching steps: %w", err)
		}
		doneCount := 0
		for _, step := range steps {
			if step.ID == stepID {
				step.IsCompleted = true
				if err := s.goalRepo.UpdateStep(ctx, tx, step); err != nil {
					return fmt.Errorf("updating step: %w", err)
				}
				completed = step
			}
			if step.IsCompleted {
				doneCount++
			}
		}
		if completed == nil {
			return apierr.New(http.StatusNotFound, "step_not_found", fmt.Errorf("step not found"))
		}
		goal.ProgressPercentage = int(math.Round(float64(doneCount) / float64(len(steps)) * 100))
		if goal.ProgressPercentage >= 100 {
			goal.Status = types.GoalStatusCompleted
		} else if goal.Status == types.GoalStatusNotStarted {
			goal.Status = types.GoalStatusInProgress
		}
		return s.goalRepo.Update(ctx, tx, goal)
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

func (s *goalService) DeleteStep(ctx context.Context, goalID, stepID uuid.UUID) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	if _, err := s.goalRepo.GetByID(ctx, nil, userID, goalID); err != nil {
		return apierr.New(http.StatusNotFound, "goal_not_found", err)
	}
	return s.goalRepo.FullDeleteStepByID(ctx, nil, goalID, stepID)
}

func (s *goalService) RecordProgress(ctx context.Context, goalID uuid.UUID, date string, progress int, notes string, now time.Time) (*types.GoalProgress, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if progress < 0 || progress > 100 {
		return nil, apierr.New(http.StatusBadRequest, "invalid_progress", fmt.Errorf("progress must be between 0 and 100"))
	}
	goal, err := s.goalRepo.GetByID(ctx, nil, userID, goalID)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "goal_not_found", err)
	}
	progressDate := dateOnly(now)
	if date != "" {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_date", fmt.Errorf("invalid progress date %q", date))
		}
		progressDate = dateOnly(parsed)
	}

	row := &types.GoalProgress{GoalID: goalID, Date: progressDate, Progress: progress, Notes: notes}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.goalRepo.UpsertProgress(ctx, tx, row); err != nil {
			return fmt.Errorf("upserting progress: %w", err)
		}
		goal.ProgressPercentage = progress
		if progress >= 100 {
			goal.Status = types.GoalStatusCompleted
		} else if progress > 0 && goal.Status == types.GoalStatusNotStarted {
			goal.Status = types.GoalStatusInProgress
		}
		return s.goalRepo.Update(ctx, tx, goal)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *goalService) ProgressHistory(ctx context.Context, goalID uuid.UUID) ([]*types.GoalProgress, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.goalRepo.GetByID(ctx, nil, userID, goalID); err != nil {
		return nil, apierr.New(http.StatusNotFound, "goal_not_found", err)
	}
	return s.goalRepo.GetProgressByGoalID(ctx, nil, goalID)
}
