package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mIRRONEL/4-tier-app/internal/logger"
	"github.com/mIRRONEL/4-tier-app/internal/model"
)

// bcryptCost matches the cost the rest of the deployment's hashes were
// produced with; changing it does not invalidate existing hashes.
const bcryptCost = 10

// Session orchestrates login, refresh and logout. Access tokens are verified
// statelessly; the revocation store is the single source of truth for which
// refresh token is currently valid per user.
type Session struct {
	users       model.UserStore
	revocations model.RevocationStore
	codec       model.TokenCodec
	refreshTTL  time.Duration
	logger      *logger.Logger
}

func NewSession(
	users model.UserStore,
	revocations model.RevocationStore,
	codec model.TokenCodec,
	refreshTTL time.Duration,
	logger *logger.Logger,
) *Session {
	return &Session{
		users:       users,
		revocations: revocations,
		codec:       codec,
		refreshTTL:  refreshTTL,
		logger:      logger,
	}
}

// Signup hashes the password and creates the user.
func (s *Session) Signup(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Session service: user created", "username", username)
	return nil
}

// Login verifies credentials and issues a fresh token pair. Persisting the
// refresh token overwrites any previous entry for the user, so logging in
// supersedes every earlier session.
func (s *Session) Login(ctx context.Context, username, password string) (model.Session, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return model.Session{}, model.ErrInvalidCredential
	}

	accessToken, err := s.codec.IssueAccess(user.ID, user.Username)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.codec.IssueRefresh(user.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.revocations.Put(ctx, user.ID, refreshToken, s.refreshTTL); err != nil {
		return model.Session{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	s.logger.Info("Session service: login successful", "user_id", user.ID)

	return model.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The presented
// token must verify structurally and match the stored entry exactly: a
// well-formed token from a prior login session is rejected as superseded.
// The refresh token itself is not rotated.
func (s *Session) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.codec.ParseRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	stored, err := s.revocations.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrTokenSuperseded
		}
		return "", fmt.Errorf("failed to get stored refresh token: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		return "", model.ErrTokenSuperseded
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrTokenSuperseded
		}
		return "", fmt.Errorf("failed to get user by id: %w", err)
	}

	accessToken, err := s.codec.IssueAccess(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	s.logger.Debug("Session service: access token refreshed", "user_id", user.ID)
	return accessToken, nil
}

// Logout deletes the user's revocation entry, invalidating their refresh
// token. Already-issued access tokens stay valid until natural expiry, a
// bounded exposure accepted by the token design. Idempotent.
func (s *Session) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.revocations.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	s.logger.Info("Session service: logout", "user_id", userID)
	return nil
}

// Authenticate resolves access token claims for the HTTP middleware.
func (s *Session) Authenticate(ctx context.Context, accessToken string) (model.AccessClaims, error) {
	return s.codec.ParseAccess(accessToken)
}
