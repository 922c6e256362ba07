package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestParseAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	svc := NewAuthService(nil, log, nil, nil)

	userID := uuid.New()
	now := time.Now()

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, "unit-test-secret", jwt.MapClaims{
			"sub": userID.String(),
			"iat": now.Unix(),
			"exp": now.Add(time.Hour).Unix(),
		})
		got, err := svc.ParseAccessToken(token)
		if err != nil {
			t.Fatalf("ParseAccessToken = %v, want nil error", err)
		}
		if got != userID {
			t.Fatalf("subject = %v, want %v", got, userID)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, "unit-test-secret", jwt.MapClaims{
			"sub": userID.String(),
			"iat": now.Add(-2 * time.Hour).Unix(),
			"exp": now.Add(-time.Hour).Unix(),
		})
		if _, err := svc.ParseAccessToken(token); err == nil {
			t.Fatal("expired token accepted")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "some-other-secret", jwt.MapClaims{
			"sub": userID.String(),
			"iat": now.Unix(),
			"exp": now.Add(time.Hour).Unix(),
		})
		if _, err := svc.ParseAccessToken(token); err == nil {
			t.Fatal("token signed with wrong secret accepted")
		}
	})

	t.Run("malformed subject", func(t *testing.T) {
		token := signToken(t, "unit-test-secret", jwt.MapClaims{
			"sub": "not-a-uuid",
			"iat": now.Unix(),
			"exp": now.Add(time.Hour).Unix(),
		})
		if _, err := svc.ParseAccessToken(token); err == nil {
			t.Fatal("token with malformed subject accepted")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := svc.ParseAccessToken("not.a.jwt"); err == nil {
			t.Fatal("garbage token accepted")
		}
	})
}
