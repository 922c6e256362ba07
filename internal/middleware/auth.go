package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/selfinvest-backend/internal/handlers"
	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/requestdata"
	"github.com/yungbote/selfinvest-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "auth"), authService: authService}
}

// RequireAuth validates the bearer token and attaches the caller's identity
// to the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			handlers.RespondError(c, http.StatusUnauthorized, "missing_token", fmt.Errorf("no bearer token"))
			c.Abort()
			return
		}
		userID, err := m.authService.ParseAccessToken(token)
		if err != nil {
			m.log.Debug("rejected token", "error", err)
			handlers.RespondError(c, http.StatusUnauthorized, "invalid_token", fmt.Errorf("invalid bearer token"))
			c.Abort()
			return
		}
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
			TokenString: token,
			UserID:      userID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
