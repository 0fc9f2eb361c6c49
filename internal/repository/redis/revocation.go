package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mIRRONEL/4-tier-app/internal/model"
)

var _ model.RevocationStore = (*RevocationRepository)(nil)

// RevocationRepository stores the currently valid refresh token per user.
// SET overwrites unconditionally, so a login supersedes any earlier session.
type RevocationRepository struct {
	client *goredis.Client
}

func NewRevocationRepository(client *goredis.Client) *RevocationRepository {
	return &RevocationRepository{
		client: client,
	}
}

func revocationKey(userID uuid.UUID) string {
	return fmt.Sprintf("refresh_token:%s", userID)
}

func (r *RevocationRepository) Put(ctx context.Context, userID uuid.UUID, refreshToken string, ttl time.Duration) error {
	if err := r.client.Set(ctx, revocationKey(userID), refreshToken, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *RevocationRepository) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	value, err := r.client.Get(ctx, revocationKey(userID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get refresh token: %w", err)
	}
	return value, nil
}

func (r *RevocationRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := r.client.Del(ctx, revocationKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
