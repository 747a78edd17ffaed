package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Flags(t *testing.T) {
	for _, name := range []string{"addr", "max-upload", "validate"} {
		assert.NotNil(t, serveCmd.Flags().Lookup(name), name)
	}
}

func TestNewAPIServer(t *testing.T) {
	ts := setupTestServices(t)
	ingestContent(t, ts, "a.md", "# A")

	server, err := newAPIServer()
	require.NoError(t, err)

	srv := httptest.NewServer(server.Handler())
	defer srv.Close()

	for _, path := range []string{"/healthz", "/metrics", "/api/data/documents"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err, path)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestNewAPIServer_WithoutMetrics(t *testing.T) {
	setupTestServices(t)
	ingestMetrics = nil

	server, err := newAPIServer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeCmd_ServiceNotConfigured(t *testing.T) {
	setupTestServices(t)
	ingestService = nil

	_, err := executeCommand("serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}
