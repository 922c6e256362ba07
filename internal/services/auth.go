package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/selfinvest-backend/internal/platform/apierr"
	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/repos"
	"github.com/yungbote/selfinvest-backend/internal/types"
	"github.com/yungbote/selfinvest-backend/internal/utils"
)

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*types.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	// ParseAccessToken validates a bearer token and returns its subject.
	ParseAccessToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	tokenRepo  repos.UserTokenRepo
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, tokenRepo repos.UserTokenRepo) AuthService {
	serviceLog := log.With("service", "AuthService")
	secret := utils.GetEnv("JWT_SECRET", "", serviceLog)
	if secret == "" {
		serviceLog.Warn("JWT_SECRET not set, using insecure development secret")
		secret = "dev-secret-do-not-use"
	}
	accessMinutes := utils.GetEnvAsInt("JWT_ACCESS_TTL_MINUTES", 15, serviceLog)
	refreshDays := utils.GetEnvAsInt("JWT_REFRESH_TTL_DAYS", 30, serviceLog)
	return &authService{
		db:         db,
		log:        serviceLog,
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessMinutes) * time.Minute,
		refreshTTL: time.Duration(refreshDays) * 24 * time.Hour,
	}
}

func (s *authService) Register(ctx context.Context, email, password, firstName, lastName string) (*types.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, apierr.New(http.StatusBadRequest, "invalid_email", fmt.Errorf("invalid email"))
	}
	if len(password) < 8 {
		return nil, nil, apierr.New(http.StatusBadRequest, "weak_password", fmt.Errorf("password must be at least 8 characters"))
	}

	var user *types.User
	var pair *TokenPair
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.userRepo.EmailExists(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("checking email: %w", err)
		}
		if exists {
			return apierr.New(http.StatusConflict, "email_taken", fmt.Errorf("email already registered"))
		}
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return err
		}
		user, err = s.userRepo.Create(ctx, tx, &types.User{
			Email:     email,
			Password:  hashed,
			FirstName: strings.TrimSpace(firstName),
			LastName:  strings.TrimSpace(lastName),
		})
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		pair, err = s.issueTokens(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("user registered", "user_id", user.ID)
	return user, pair, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, nil, apierr.New(http.StatusUnauthorized, "invalid_credentials", fmt.Errorf("invalid credentials"))
	}
	if err := utils.CheckPassword(user.Password, password); err != nil {
		return nil, nil, apierr.New(http.StatusUnauthorized, "invalid_credentials", fmt.Errorf("invalid credentials"))
	}
	pair, err := s.issueTokens(ctx, nil, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_refresh_token", fmt.Errorf("refresh token required"))
	}
	stored, err := s.tokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return nil, apierr.New(http.StatusUnauthorized, "invalid_refresh_token", fmt.Errorf("unknown refresh token"))
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apierr.New(http.StatusUnauthorized, "refresh_token_expired", fmt.Errorf("refresh token expired"))
	}

	var pair *TokenPair
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.DeleteByUserID(ctx, tx, stored.UserID); err != nil {
			return fmt.Errorf("rotating refresh token: %w", err)
		}
		var issueErr error
		pair, issueErr = s.issueTokens(ctx, tx, stored.UserID)
		return issueErr
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("user id required"))
	}
	return s.tokenRepo.DeleteByUserID(ctx, nil, userID)
}

func (s *authService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "invalid_token", fmt.Errorf("invalid access token"))
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "invalid_token", fmt.Errorf("token missing subject"))
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "invalid_token", fmt.Errorf("malformed token subject"))
	}
	return userID, nil
}

func (s *authService) issueTokens(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*TokenPair, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessTTL)
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refresh, err := randomToken()
	if err != nil {
		return nil, err
	}
	if _, err := s.tokenRepo.Create(ctx, tx, &types.UserToken{
		UserID:       userID,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(s.refreshTTL),
	}); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: expiresAt}, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
