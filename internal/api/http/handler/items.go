package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mIRRONEL/4-tier-app/internal/logger"
	"github.com/mIRRONEL/4-tier-app/internal/model"
)

// ItemService defines paginated item queries and mutations.
type ItemService interface {
	List(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (model.ItemPage, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string, page, pageSize int) (model.ItemPage, error)
	Create(ctx context.Context, ownerID uuid.UUID, title, description string) (model.Item, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Items handles HTTP endpoints for item CRUD and search.
type Items struct {
	items  ItemService
	logger *logger.Logger
}

// NewItems creates a new Items handler.
func NewItems(items ItemService, logger *logger.Logger) *Items {
	return &Items{items: items, logger: logger}
}

// List handles GET /items?page=&limit=.
func (h *Items) List(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := pagination(c)

	result, err := h.items.List(c.Request.Context(), userID, page, limit)
	if err != nil {
		h.logger.Error("Items handler: list failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, pageResponse(result))
}

// Search handles GET /items/search?q=&page=&limit=.
func (h *Items) Search(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := pagination(c)
	query := c.Query("q")

	result, err := h.items.Search(c.Request.Context(), userID, query, page, limit)
	if err != nil {
		h.logger.Error("Items handler: search failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, pageResponse(result))
}

type createItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create handles POST /items.
func (h *Items) Create(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	item, err := h.items.Create(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		h.logger.Error("Items handler: create failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Delete handles DELETE /items/:id.
func (h *Items) Delete(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	if err := h.items.Delete(c.Request.Context(), userID, itemID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		h.logger.Error("Items handler: delete failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

func pageResponse(page model.ItemPage) gin.H {
	items := page.Items
	if items == nil {
		items = []model.Item{}
	}
	return gin.H{
		"items": items,
		"total": page.Total,
		"page":  page.Page,
		"pages": page.Pages,
	}
}
