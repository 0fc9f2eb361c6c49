package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mIRRONEL/4-tier-app/internal/mocks"
	"github.com/mIRRONEL/4-tier-app/internal/model"
	"github.com/mIRRONEL/4-tier-app/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performAuthenticated(t *testing.T, m *Authenticate, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/items", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	m.Handle(c)
	return w, c
}

func TestAuthenticate_ValidToken(t *testing.T) {
	userID := uuid.New()

	sessions := &mocks.SessionService{}
	sessions.On("Authenticate", mock.Anything, "good-token").Return(model.AccessClaims{
		UserID:   userID,
		Username: "alice",
	}, nil).Once()

	m := NewAuthenticate(sessions, testutil.MakeNoopLogger())
	w, c := performAuthenticated(t, m, "Bearer good-token")

	require.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)

	gotID, exists := c.Get(ContextUserID)
	require.True(t, exists)
	assert.Equal(t, userID, gotID)

	gotName, exists := c.Get(ContextUsername)
	require.True(t, exists)
	assert.Equal(t, "alice", gotName)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	sessions := &mocks.SessionService{}
	m := NewAuthenticate(sessions, testutil.MakeNoopLogger())

	w, c := performAuthenticated(t, m, "")

	require.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())
	sessions.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestAuthenticate_NotBearer(t *testing.T) {
	sessions := &mocks.SessionService{}
	m := NewAuthenticate(sessions, testutil.MakeNoopLogger())

	w, c := performAuthenticated(t, m, "Basic dXNlcjpwYXNz")

	require.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	sessions.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

// A presented but failing token gets the body the client refresh logic keys on.
func TestAuthenticate_RejectedToken(t *testing.T) {
	for name, serviceErr := range map[string]error{
		"expired":   model.ErrTokenExpired,
		"malformed": model.ErrTokenMalformed,
	} {
		t.Run(name, func(t *testing.T) {
			sessions := &mocks.SessionService{}
			sessions.On("Authenticate", mock.Anything, "bad-token").Return(model.AccessClaims{}, serviceErr).Once()

			m := NewAuthenticate(sessions, testutil.MakeNoopLogger())
			w, c := performAuthenticated(t, m, "Bearer bad-token")

			require.True(t, c.IsAborted())
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Token expired or invalid"}`, w.Body.String())
		})
	}
}
