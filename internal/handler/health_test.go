package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/go-cms/internal/config"
	"github.com/deppfellow/go-cms/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthHandler(checks map[string]healthCheck, enabled ...string) *HealthHandler {
	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{Primary: config.Primary{Env: "test"}},
		Logger: &logger,
	}
	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
		enabled: enabled,
		timeout: time.Second,
	}
}

func ok(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("connection refused") }

func runHealth(t *testing.T, h *HealthHandler) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)

	require.NoError(t, h.CheckHealth(c))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthAllChecksPass(t *testing.T) {
	h := newHealthHandler(map[string]healthCheck{
		"database": {ping: ok, critical: true},
		"redis":    {ping: ok},
	}, "database", "redis")

	code, body := runHealth(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["environment"])

	checks := body["checks"].(map[string]any)
	assert.Len(t, checks, 2)
}

func TestHealthCriticalFailure(t *testing.T) {
	h := newHealthHandler(map[string]healthCheck{
		"database": {ping: failing, critical: true},
	}, "database")

	code, body := runHealth(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", body["status"])

	db := body["checks"].(map[string]any)["database"].(map[string]any)
	assert.Equal(t, "connection refused", db["error"])
}

func TestHealthNonCriticalFailureIsReported(t *testing.T) {
	h := newHealthHandler(map[string]healthCheck{
		"database": {ping: ok, critical: true},
		"redis":    {ping: failing},
	}, "database", "redis")

	code, body := runHealth(t, h)
	assert.Equal(t, http.StatusOK, code)

	redis := body["checks"].(map[string]any)["redis"].(map[string]any)
	assert.Equal(t, "unhealthy", redis["status"])
}

func TestHealthOnlyRunsEnabledChecks(t *testing.T) {
	h := newHealthHandler(map[string]healthCheck{
		"database": {ping: failing, critical: true},
	}, "redis")

	code, body := runHealth(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["checks"])
}
