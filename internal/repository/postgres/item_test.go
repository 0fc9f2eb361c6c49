package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewItemRepository(t *testing.T) {
	db := &Connection{}
	repo := NewItemRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}
