package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mIRRONEL/4-tier-app/internal/api/http/middleware"
	"github.com/mIRRONEL/4-tier-app/internal/mocks"
	"github.com/mIRRONEL/4-tier-app/internal/model"
	"github.com/mIRRONEL/4-tier-app/internal/testutil"
)

func withIdentity(userID uuid.UUID) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUsername, "alice")
	}
}

func TestItems_List_DefaultsAndPassthrough(t *testing.T) {
	userID := uuid.New()

	items := &mocks.ItemService{}
	items.On("List", mock.Anything, userID, 1, 10).Return(model.ItemPage{
		Items: []model.Item{{ID: uuid.New(), Title: "one"}},
		Total: 1,
		Page:  1,
		Pages: 1,
	}, nil).Once()
	h := NewItems(items, testutil.MakeNoopLogger())

	w := performJSON(t, h.List, http.MethodGet, "/items", nil, withIdentity(userID))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(1), body["pages"])
	items.AssertExpectations(t)
}

func TestItems_List_ForwardsPagination(t *testing.T) {
	userID := uuid.New()

	items := &mocks.ItemService{}
	items.On("List", mock.Anything, userID, 3, 25).Return(model.ItemPage{Page: 3}, nil).Once()
	h := NewItems(items, testutil.MakeNoopLogger())

	w := performJSON(t, h.List, http.MethodGet, "/items?page=3&limit=25", nil, withIdentity(userID))

	assert.Equal(t, http.StatusOK, w.Code)
	items.AssertExpectations(t)
}

// An empty page must serialize "items" as [], never null.
func TestItems_List_EmptyPageSerializesArray(t *testing.T) {
	userID := uuid.New()

	items := &mocks.ItemService{}
	items.On("List", mock.Anything, userID, 1, 10).Return(model.ItemPage{Page: 1}, nil).Once()
	h := NewItems(items, testutil.MakeNoopLogger())

	w := performJSON(t, h.List, http.MethodGet, "/items", nil, withIdentity(userID))

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Items json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "[]", string(body.Items))
}

func TestItems_Search_ForwardsQuery(t *testing.T) {
	userID := uuid.New()

	items := &mocks.ItemService{}
	items.On("Search", mock.Anything, userID, "report", 1, 10).Return(model.ItemPage{Page: 1}, nil).Once()
	h := NewItems(items, testutil.MakeNoopLogger())

	w := performJSON(t, h.Search, http.MethodGet, "/items/search?q=report", nil, withIdentity(userID))

	assert.Equal(t, http.StatusOK, w.Code)
	items.AssertExpectations(t)
}

func TestItems_Create(t *testing.T) {
	userID := uuid.New()
	created := model.Item{ID: uuid.New(), OwnerID: userID, Title: "fresh"}

	items := &mocks.ItemService{}
	items.On("Create", mock.Anything, userID, "fresh", "notes").Return(created, nil).Once()
	h := NewItems(items, testutil.MakeNoopLogger())

	w := performJSON(t, h.Create, http.MethodPost, "/items", gin.H{"title": "fresh", "description": "notes"}, withIdentity(userID))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "fresh", decodeBody(t, w)["title"])
	items.AssertExpectations(t)
}

func TestItems_Create_MissingTitle(t *testing.T) {
	userID := uuid.New()

	items := &mocks.ItemService{}
	h := NewItems(items, testutil.MakeNoopLogger())

	w := performJSON(t, h.Create, http.MethodPost, "/items", gin.H{"description": "notes"}, withIdentity(userID))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "title is required", decodeBody(t, w)["error"])
	items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestItems_Delete(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()

	tests := []struct {
		name       string
		param      string
		setupMock  func(*mocks.ItemService)
		wantStatus int
	}{
		{
			name:  "deleted",
			param: itemID.String(),
			setupMock: func(m *mocks.ItemService) {
				m.On("Delete", mock.Anything, userID, itemID).Return(nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "not found",
			param: itemID.String(),
			setupMock: func(m *mocks.ItemService) {
				m.On("Delete", mock.Anything, userID, itemID).Return(model.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "bad id",
			param:      "not-a-uuid",
			setupMock:  func(m *mocks.ItemService) {},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := &mocks.ItemService{}
			tt.setupMock(items)
			h := NewItems(items, testutil.MakeNoopLogger())

			w := performJSON(t, h.Delete, http.MethodDelete, "/items/"+tt.param, nil, func(c *gin.Context) {
				withIdentity(userID)(c)
				c.Params = gin.Params{{Key: "id", Value: tt.param}}
			})

			assert.Equal(t, tt.wantStatus, w.Code)
			items.AssertExpectations(t)
		})
	}
}

func TestItems_Unauthenticated(t *testing.T) {
	items := &mocks.ItemService{}
	h := NewItems(items, testutil.MakeNoopLogger())

	w := performJSON(t, h.List, http.MethodGet, "/items", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	items.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
