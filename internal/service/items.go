package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mIRRONEL/4-tier-app/internal/logger"
	"github.com/mIRRONEL/4-tier-app/internal/model"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Items serves paginated listings and searches through a cache-aside layer
// and invalidates the cache on mutation. The cache is an optimization only:
// any cache failure degrades to a direct store read.
type Items struct {
	store     model.ItemStore
	cache     model.Cache
	listTTL   time.Duration
	searchTTL time.Duration
	logger    *logger.Logger
}

func NewItems(
	store model.ItemStore,
	cache model.Cache,
	listTTL time.Duration,
	searchTTL time.Duration,
	logger *logger.Logger,
) *Items {
	return &Items{
		store:     store,
		cache:     cache,
		listTTL:   listTTL,
		searchTTL: searchTTL,
		logger:    logger,
	}
}

func ownerPrefix(ownerID uuid.UUID) string {
	return fmt.Sprintf("items:%s:", ownerID)
}

func listKey(ownerID uuid.UUID, page, pageSize int) string {
	return fmt.Sprintf("%slist:%d:%d", ownerPrefix(ownerID), page, pageSize)
}

func searchKey(ownerID uuid.UUID, query string, page, pageSize int) string {
	return fmt.Sprintf("%ssearch:%s:%d:%d", ownerPrefix(ownerID), query, page, pageSize)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func pageCount(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// List returns one page of the owner's items, most recent first.
func (s *Items) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (model.ItemPage, error) {
	page, pageSize = normalizePage(page, pageSize)
	key := listKey(ownerID, page, pageSize)

	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	items, total, err := s.store.FindPage(ctx, ownerID, page, pageSize)
	if err != nil {
		return model.ItemPage{}, fmt.Errorf("failed to fetch items page: %w", err)
	}

	result := model.ItemPage{
		Items: items,
		Total: total,
		Page:  page,
		Pages: pageCount(total, pageSize),
	}
	s.cacheSet(ctx, key, result, s.listTTL)

	return result, nil
}

// Search returns one page of the owner's items matching the query against
// title or description.
func (s *Items) Search(ctx context.Context, ownerID uuid.UUID, query string, page, pageSize int) (model.ItemPage, error) {
	page, pageSize = normalizePage(page, pageSize)
	key := searchKey(ownerID, query, page, pageSize)

	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	items, total, err := s.store.SearchPage(ctx, ownerID, query, page, pageSize)
	if err != nil {
		return model.ItemPage{}, fmt.Errorf("failed to search items: %w", err)
	}

	result := model.ItemPage{
		Items: items,
		Total: total,
		Page:  page,
		Pages: pageCount(total, pageSize),
	}
	s.cacheSet(ctx, key, result, s.searchTTL)

	return result, nil
}

// Create inserts the item and then invalidates every cached page and search
// result for the owner. The mutation commits before any invalidation; if it
// fails the cache is left untouched and stays correct.
func (s *Items) Create(ctx context.Context, ownerID uuid.UUID, title, description string) (model.Item, error) {
	item, err := s.store.Create(ctx, model.Item{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	s.invalidate(ctx, ownerID)
	return item, nil
}

// Delete removes the owner's item and invalidates their cached pages.
// Returns model.ErrNotFound when the item is absent or owned by someone else.
func (s *Items) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.invalidate(ctx, ownerID)
	return nil
}

func (s *Items) cacheGet(ctx context.Context, key string) (model.ItemPage, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Warn("Items service: cache read failed, falling through to store",
				"key", key,
				"error", err.Error())
		}
		return model.ItemPage{}, false
	}

	var page model.ItemPage
	if err := msgpack.Unmarshal(raw, &page); err != nil {
		s.logger.Warn("Items service: corrupt cache entry, falling through to store",
			"key", key,
			"error", err.Error())
		return model.ItemPage{}, false
	}

	return page, true
}

func (s *Items) cacheSet(ctx context.Context, key string, page model.ItemPage, ttl time.Duration) {
	raw, err := msgpack.Marshal(page)
	if err != nil {
		s.logger.Warn("Items service: failed to encode cache entry",
			"key", key,
			"error", err.Error())
		return
	}
	if err := s.cache.Set(ctx, key, raw, ttl); err != nil {
		s.logger.Warn("Items service: cache write failed",
			"key", key,
			"error", err.Error())
	}
}

// invalidate deletes every cache entry under the owner's prefix. One insert
// or delete shifts which rows belong on which page for every page size and
// every search query, so a single-key delete would leave stale variants.
func (s *Items) invalidate(ctx context.Context, ownerID uuid.UUID) {
	if err := s.cache.DeleteByPrefix(ctx, ownerPrefix(ownerID)); err != nil {
		s.logger.Error("Items service: cache invalidation failed",
			"owner_id", ownerID,
			"error", err.Error())
	}
}
