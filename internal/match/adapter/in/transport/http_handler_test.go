package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vismithaN/advertisement/internal/match/adapter/out/repo"
	"github.com/vismithaN/advertisement/internal/shared/logger"
	"github.com/vismithaN/advertisement/internal/shared/ws"
)

func newTestHandler(t *testing.T) *HTTPHandler {
	t.Helper()
	log := logger.NewLogger("transport-test")
	hub := ws.NewHub(func(token string) (string, string, error) {
		return "ops", "OPS", nil
	}, log)
	return NewHTTPHandler(repo.NewMemoryProfileStore(), repo.NewMemoryCatalogStore(), hub, log)
}

func TestHealthReportsWSClientCount(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Status    string `json:"status"`
		Service   string `json:"service"`
		WSClients int    `json:"ws_clients"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "match", body.Service)
	assert.Equal(t, 0, body.WSClients)
}
