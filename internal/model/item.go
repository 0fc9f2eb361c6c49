package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ItemStore defines persistence operations for items. Page queries return
// rows ordered most-recent first along with the total row count for the
// subject, so callers can derive page counts.
type ItemStore interface {
	Create(ctx context.Context, item Item) (Item, error)
	FindPage(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]Item, int, error)
	SearchPage(ctx context.Context, ownerID uuid.UUID, query string, page, pageSize int) ([]Item, int, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Item represents a stored item entity.
type Item struct {
	ID          uuid.UUID `json:"id" msgpack:"id"`
	OwnerID     uuid.UUID `json:"-" msgpack:"owner_id"`
	Title       string    `json:"title" msgpack:"title"`
	Description string    `json:"description" msgpack:"description"`
	CreatedAt   time.Time `json:"createdAt" msgpack:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" msgpack:"updated_at"`
}

// ItemPage is the paginated result snapshot served to clients and stored in
// the cache as a unit.
type ItemPage struct {
	Items []Item `json:"items" msgpack:"items"`
	Total int    `json:"total" msgpack:"total"`
	Page  int    `json:"page" msgpack:"page"`
	Pages int    `json:"pages" msgpack:"pages"`
}
