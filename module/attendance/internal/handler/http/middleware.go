package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

const identityKey = "identity"

type tokenValidator interface {
	ValidateToken(token string) (domain.Identity, error)
}

// RequireIdentity rejects requests without a valid bearer token and stores
// the caller's identity on the gin context.
func RequireIdentity(tokens tokenValidator, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		id, err := tokens.ValidateToken(token)
		if err != nil {
			log.WarnContext(c.Request.Context(), "token validation failed", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

func identityFrom(c *gin.Context) domain.Identity {
	id, _ := c.MustGet(identityKey).(domain.Identity)
	return id
}
