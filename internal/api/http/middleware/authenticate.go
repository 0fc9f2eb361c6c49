package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mIRRONEL/4-tier-app/internal/logger"
	"github.com/mIRRONEL/4-tier-app/internal/model"
)

// Context keys under which the authenticated identity is stored.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// SessionService resolves access token claims.
type SessionService interface {
	Authenticate(ctx context.Context, accessToken string) (model.AccessClaims, error)
}

// Authenticate validates bearer tokens and injects the user identity into
// the request context.
type Authenticate struct {
	sessions SessionService
	logger   *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionService, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, logger: logger}
}

// Handle parses the Authorization header and validates the access token.
// A missing token yields a bare 401; a presented but failing token yields
// 401 with an explanatory body, the trigger condition for client refresh.
func (m *Authenticate) Handle(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	if authHeader == "" || tokenString == authHeader {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := m.sessions.Authenticate(c.Request.Context(), tokenString)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected", "error", err.Error())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired or invalid"})
		return
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	c.Next()
}
