package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jengzang/heart-risk-backend-go/internal/auth"
	"github.com/jengzang/heart-risk-backend-go/pkg/response"
)

// SubjectKey holds the token subject set by RequireAuth
const SubjectKey = "subject"

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization token required", nil)
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			log.Warn().Err(err).Str("ip", c.ClientIP()).Msg("Invalid token")
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
