package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/pkg/jwt"
	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func TestSessionMiddleware_ValidCookie(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "mentorconnect", 1)
	token, err := tm.GenerateToken("profile-1", "ada@example.com", "Ada Lovelace", "alumni")
	require.NoError(t, err)

	var captured *models.Session
	router := gin.New()
	router.Use(SessionMiddleware(tm, "", false))
	router.GET("/test", func(c *gin.Context) {
		session, getErr := GetSession(c)
		require.NoError(t, getErr)
		captured = session
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", http.NoBody)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "profile-1", captured.ProfileID)
	assert.Equal(t, "ada@example.com", captured.Email)
	assert.Equal(t, models.RoleAlumni, captured.Role)
}

func TestSessionMiddleware_MissingCookie(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "mentorconnect", 1)

	handlerCalled := false
	router := gin.New()
	router.Use(SessionMiddleware(tm, "", false))
	router.GET("/test", func(c *gin.Context) {
		handlerCalled = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", http.NoBody)
	router.ServeHTTP(w, req)

	assert.False(t, handlerCalled, "Handler should not be called without a session cookie")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddleware_InvalidToken(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "mentorconnect", 1)

	handlerCalled := false
	router := gin.New()
	router.Use(SessionMiddleware(tm, "", false))
	router.GET("/test", func(c *gin.Context) {
		handlerCalled = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", http.NoBody)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-jwt"})
	router.ServeHTTP(w, req)

	assert.False(t, handlerCalled, "Handler should not be called for an invalid token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Invalid cookies are cleared so the client stops presenting them
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}

func TestSessionMiddleware_WrongSigningKey(t *testing.T) {
	other := jwt.NewTokenManager("other-secret", "mentorconnect", 1)
	token, err := other.GenerateToken("profile-1", "ada@example.com", "Ada Lovelace", "alumni")
	require.NoError(t, err)

	tm := jwt.NewTokenManager("test-secret", "mentorconnect", 1)
	router := gin.New()
	router.Use(SessionMiddleware(tm, "", false))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", http.NoBody)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
