package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mIRRONEL/4-tier-app/internal/mocks"
	"github.com/mIRRONEL/4-tier-app/internal/model"
	redisrepo "github.com/mIRRONEL/4-tier-app/internal/repository/redis"
	"github.com/mIRRONEL/4-tier-app/internal/service"
	"github.com/mIRRONEL/4-tier-app/internal/testutil"
	"github.com/mIRRONEL/4-tier-app/internal/token"
)

// newTestRouter assembles real services over miniredis and mocked stores so
// requests exercise the full middleware and handler chain.
func newTestRouter(t *testing.T, users model.UserStore, items model.ItemStore) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := testutil.MakeNoopLogger()
	codec := token.NewJWT("test-secret", 15*time.Minute, 7*24*time.Hour)
	sessions := service.NewSession(users, redisrepo.NewRevocationRepository(rdb), codec, 7*24*time.Hour, log)
	itemSvc := service.NewItems(items, redisrepo.NewCacheRepository(rdb), time.Hour, 5*time.Minute, log)

	return New(sessions, itemSvc, "http://localhost:3000", log).Register()
}

func doJSON(t *testing.T, h http.Handler, method, target, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t, &mocks.UserStore{}, &mocks.ItemStore{})

	w := doJSON(t, h, http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Backend is running!"}`, w.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t, &mocks.UserStore{}, &mocks.ItemStore{})

	w := doJSON(t, h, http.MethodOptions, "/items", "", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_ItemsRequireAuthentication(t *testing.T) {
	h := newTestRouter(t, &mocks.UserStore{}, &mocks.ItemStore{})

	for _, target := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/items"},
		{http.MethodGet, "/items/search?q=x"},
		{http.MethodPost, "/items"},
		{http.MethodDelete, "/items/" + uuid.NewString()},
	} {
		w := doJSON(t, h, target.method, target.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", target.method, target.path)
	}
}

// Full session lifecycle: login, authenticated list, refresh, logout, and a
// rejected refresh after logout.
func TestRouter_SessionLifecycle(t *testing.T) {
	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := model.User{ID: userID, Username: "alice", PasswordHash: hash}

	users := &mocks.UserStore{}
	users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
	users.On("GetByID", mock.Anything, userID).Return(user, nil)

	items := &mocks.ItemStore{}
	items.On("FindPage", mock.Anything, userID, 1, 10).Return([]model.Item{}, 0, nil)

	h := newTestRouter(t, users, items)

	w := doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)
	var session struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		Username     string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.AccessToken)
	require.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, "alice", session.Username)

	w = doJSON(t, h, http.MethodGet, "/items", session.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": session.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshed))
	require.NotEmpty(t, refreshed.AccessToken)

	w = doJSON(t, h, http.MethodGet, "/items", refreshed.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodPost, "/auth/logout", session.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": session.RefreshToken})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_GarbageBearerToken(t *testing.T) {
	h := newTestRouter(t, &mocks.UserStore{}, &mocks.ItemStore{})

	w := doJSON(t, h, http.MethodGet, "/items", "not-a-jwt", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Token expired or invalid"}`, w.Body.String())
}
