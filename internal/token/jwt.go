package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mIRRONEL/4-tier-app/internal/model"
)

// Claims represents JWT claims with token type, user ID and display name.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	TokenType string    `json:"typ"`
}

// JWT implements model.TokenCodec backed by symmetric HMAC.
type JWT struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// NewJWT creates a new JWT token codec with the provided secret key and TTLs.
func NewJWT(secretKey string, accessTTL, refreshTTL time.Duration) model.TokenCodec {
	return &JWT{secretKey: secretKey, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess creates a short-lived access token carrying the user identity.
func (j *JWT) IssueAccess(userID uuid.UUID, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		UserID:    userID,
		Username:  username,
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// IssueRefresh creates a long-lived refresh token.
func (j *JWT) IssueRefresh(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTTL)),
		},
		UserID:    userID,
		TokenType: typeRefresh,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// ParseAccess validates an access token and extracts its claims. An expired
// but otherwise well-formed token yields model.ErrTokenExpired so callers can
// trigger the refresh flow; every other failure is model.ErrTokenMalformed.
func (j *JWT) ParseAccess(tokenString string) (model.AccessClaims, error) {
	claims, err := j.parse(tokenString, typeAccess)
	if err != nil {
		return model.AccessClaims{}, err
	}
	return model.AccessClaims{UserID: claims.UserID, Username: claims.Username}, nil
}

// ParseRefresh validates a refresh token and extracts its claims.
func (j *JWT) ParseRefresh(tokenString string) (model.RefreshClaims, error) {
	claims, err := j.parse(tokenString, typeRefresh)
	if err != nil {
		return model.RefreshClaims{}, err
	}
	return model.RefreshClaims{UserID: claims.UserID}, nil
}

func (j *JWT) parse(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", model.ErrTokenMalformed, err)
	}
	if !token.Valid {
		return nil, model.ErrTokenMalformed
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("%w: token type mismatch: %s", model.ErrTokenMalformed, claims.TokenType)
	}
	return claims, nil
}
