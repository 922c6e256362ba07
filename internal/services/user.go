package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/apierr"
	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/repos"
	"github.com/yungbote/selfinvest-backend/internal/requestdata"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error)
	// DeleteAccount removes the user and, through cascading constraints,
	// everything they own.
	DeleteAccount(ctx context.Context) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{db: db, log: log.With("service", "UserService"), userRepo: userRepo}
}

func (s *userService) requireUser(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set"))
	}
	return rd.UserID, nil
}

func (s *userService) GetMe(ctx context.Context) (*types.User, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.New(http.StatusNotFound, "user_not_found", err)
	}
	return user, nil
}

func (s *userService) UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" && lastName == "" {
		return nil, apierr.New(http.StatusBadRequest, "empty_update", fmt.Errorf("no name fields provided"))
	}

	var user *types.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return apierr.New(http.StatusNotFound, "user_not_found", err)
		}
		if firstName != "" {
			found.FirstName = firstName
		}
		if lastName != "" {
			found.LastName = lastName
		}
		if err := tx.Save(found).Error; err != nil {
			return fmt.Errorf("updating user: %w", err)
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteAccount(ctx context.Context) error {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	if err := s.userRepo.FullDeleteByID(ctx, nil, userID); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	s.log.Info("account deleted", "user_id", userID)
	return nil
}
