package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgingest/internal/adapters/driving/mcp"
)

func TestMCPCmd_HasServe(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range mcpCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "serve")

	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)
}

func TestNewMCPServer(t *testing.T) {
	setupTestServices(t)

	server, err := newMCPServer()

	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestNewMCPServer_MissingIngest(t *testing.T) {
	setupTestServices(t)
	ingestService = nil

	_, err := newMCPServer()

	assert.ErrorIs(t, err, mcp.ErrMissingIngestService)
}
