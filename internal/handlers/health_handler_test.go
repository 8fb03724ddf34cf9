package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

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

func healthRouter(pingErr error, directoryReady bool) *gin.Engine {
	handler := NewHealthHandler(
		func(ctx context.Context) error { return pingErr },
		func() bool { return directoryReady },
	)
	router := gin.New()
	router.GET("/healthcheck", handler.Healthcheck)
	return router
}

func TestHealthHandler_Healthy(t *testing.T) {
	router := healthRouter(nil, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/healthcheck", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache, no-store, max-age=0, must-revalidate", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	router := healthRouter(errors.New("connection refused"), true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/healthcheck", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable","reason":"database unreachable"}`, w.Body.String())
}

func TestHealthHandler_DirectoryNotReady(t *testing.T) {
	router := healthRouter(nil, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/healthcheck", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable","reason":"directory cache not initialized"}`, w.Body.String())
}
