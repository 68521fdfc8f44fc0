package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerStub struct {
	err error
}

func (p pingerStub) PingContext(ctx context.Context) error {
	return p.err
}

func TestHealthHandlerReportsDatabase(t *testing.T) {
	handler := NewHealthHandler(pingerStub{}, nil, "EduQuest Admin API", "1.0.0")
	c, w := newGinContext(http.MethodGet, "/health", nil)

	handler.Health(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "UP", body["status"])
	assert.Equal(t, "Connected", body["database"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestHealthHandlerDatabaseDown(t *testing.T) {
	handler := NewHealthHandler(pingerStub{err: errors.New("refused")}, nil, "EduQuest Admin API", "1.0.0")

	c, w := newGinContext(http.MethodGet, "/health", nil)
	handler.Health(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Disconnected")

	c, w = newGinContext(http.MethodGet, "/ready", nil)
	handler.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthHandlerMetricsUnavailable(t *testing.T) {
	handler := NewHealthHandler(nil, nil, "EduQuest Admin API", "1.0.0")
	c, w := newGinContext(http.MethodGet, "/metrics", nil)

	handler.Metrics(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
