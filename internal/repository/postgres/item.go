package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mIRRONEL/4-tier-app/internal/model"
)

var _ model.ItemStore = (*ItemRepository)(nil)

type ItemRepository struct {
	db *Connection
}

func NewItemRepository(db *Connection) *ItemRepository {
	return &ItemRepository{
		db: db,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item model.Item) (model.Item, error) {
	query := `INSERT INTO items (id, owner_id, title, description)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, owner_id, title, description, created_at, updated_at`

	var saved model.Item
	err := r.db.QueryRow(ctx, query, item.ID, item.OwnerID, item.Title, item.Description).Scan(
		&saved.ID, &saved.OwnerID, &saved.Title, &saved.Description, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	return saved, nil
}

func (r *ItemRepository) FindPage(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]model.Item, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM items WHERE owner_id = $1`
	if err := r.db.QueryRow(ctx, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	query := `SELECT id, owner_id, title, description, created_at, updated_at
			  FROM items
			  WHERE owner_id = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query items page: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *ItemRepository) SearchPage(ctx context.Context, ownerID uuid.UUID, search string, page, pageSize int) ([]model.Item, int, error) {
	pattern := "%" + search + "%"

	var total int
	countQuery := `SELECT COUNT(*) FROM items
				   WHERE owner_id = $1 AND (title ILIKE $2 OR description ILIKE $2)`
	if err := r.db.QueryRow(ctx, countQuery, ownerID, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	query := `SELECT id, owner_id, title, description, created_at, updated_at
			  FROM items
			  WHERE owner_id = $1 AND (title ILIKE $2 OR description ILIKE $2)
			  ORDER BY created_at DESC
			  LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, ownerID, pattern, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query search page: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *ItemRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	// Ownership is part of the predicate so users cannot delete each other's rows.
	query := `DELETE FROM items WHERE id = $1 AND owner_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanItems(rows pgx.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Title, &item.Description, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}
