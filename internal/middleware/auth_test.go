package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/requestdata"
	"github.com/yungbote/selfinvest-backend/internal/services"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

type stubAuthService struct {
	validToken string
	userID     uuid.UUID
}

func (s *stubAuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*types.User, *services.TokenPair, error) {
	return nil, nil, fmt.Errorf("not implemented")
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*types.User, *services.TokenPair, error) {
	return nil, nil, fmt.Errorf("not implemented")
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubAuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return fmt.Errorf("not implemented")
}

func (s *stubAuthService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	if tokenString != s.validToken {
		return uuid.Nil, fmt.Errorf("invalid token")
	}
	return s.userID, nil
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	userID := uuid.New()
	mw := NewAuthMiddleware(log, &stubAuthService{validToken: "good-token", userID: userID})

	newRouter := func(got **requestdata.RequestData) *gin.Engine {
		r := gin.New()
		r.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
			*got = requestdata.GetRequestData(c.Request.Context())
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("valid bearer header", func(t *testing.T) {
		var got *requestdata.RequestData
		r := newRouter(&got)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got == nil || got.UserID != userID {
			t.Fatalf("request data = %+v, want user %v", got, userID)
		}
	})

	t.Run("valid query token", func(t *testing.T) {
		var got *requestdata.RequestData
		r := newRouter(&got)
		req := httptest.NewRequest(http.MethodGet, "/protected?token=good-token", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got == nil || got.UserID != userID {
			t.Fatalf("request data = %+v, want user %v", got, userID)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		var got *requestdata.RequestData
		r := newRouter(&got)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if got != nil {
			t.Fatal("handler ran without a token")
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		var got *requestdata.RequestData
		r := newRouter(&got)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if got != nil {
			t.Fatal("handler ran with an invalid token")
		}
	})
}
