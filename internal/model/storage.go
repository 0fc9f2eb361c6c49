package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RevocationStore is the authoritative record of which refresh token is
// currently valid per user. Put overwrites any prior entry, so at most one
// refresh token is valid per user at any time.
type RevocationStore interface {
	Put(ctx context.Context, userID uuid.UUID, refreshToken string, ttl time.Duration) error
	Get(ctx context.Context, userID uuid.UUID) (string, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Cache is the byte-level cache backend used by the cache-aside layer.
// DeleteByPrefix removes every entry whose key starts with the given prefix.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}
