package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mIRRONEL/4-tier-app/internal/api/http/middleware"
	"github.com/mIRRONEL/4-tier-app/internal/logger"
	"github.com/mIRRONEL/4-tier-app/internal/model"
)

// SessionService defines signup, login, refresh and logout operations.
type SessionService interface {
	Signup(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (model.Session, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	sessions SessionService
	logger   *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(sessions SessionService, logger *logger.Logger) *Auth {
	return &Auth{sessions: sessions, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup handles POST /auth/signup.
func (h *Auth) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	err := h.sessions.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		h.logger.Error("Auth handler: signup failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

// Login handles POST /auth/login. Unknown usernames and wrong passwords get
// the same response body so the endpoint cannot be used to enumerate users.
func (h *Auth) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidCredential) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username or password"})
			return
		}
		h.logger.Error("Auth handler: login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error logging in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  session.AccessToken,
		"refreshToken": session.RefreshToken,
		"username":     session.Username,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh handles POST /auth/refresh.
func (h *Auth) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token required"})
		return
	}

	accessToken, err := h.sessions.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTokenMalformed), errors.Is(err, model.ErrTokenExpired):
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid refresh token"})
		case errors.Is(err, model.ErrTokenSuperseded):
			c.JSON(http.StatusForbidden, gin.H{"error": "token revoked or expired"})
		default:
			h.logger.Error("Auth handler: token refresh failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Logout handles POST /auth/logout. Requires authentication.
func (h *Auth) Logout(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.sessions.Logout(c.Request.Context(), userID); err != nil {
		h.logger.Error("Auth handler: logout failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func subjectID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
