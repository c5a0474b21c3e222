package notion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longkey1/notion-presence/internal/notion/api"
	"github.com/longkey1/notion-presence/internal/notion/sdk"
	"github.com/longkey1/notion-presence/internal/presence/config"
)

func TestNewClient(t *testing.T) {
	c, err := NewClient(config.BackendAPI, "secret")
	require.NoError(t, err)
	assert.IsType(t, &api.Client{}, c)

	c, err = NewClient("", "secret")
	require.NoError(t, err)
	assert.IsType(t, &api.Client{}, c)

	c, err = NewClient(config.BackendNotionAPI, "secret")
	require.NoError(t, err)
	assert.IsType(t, &sdk.Client{}, c)
}

func TestNewClientErrors(t *testing.T) {
	_, err := NewClient(config.BackendAPI, "")
	assert.EqualError(t, err, "token is required")

	_, err = NewClient("mcp", "secret")
	assert.EqualError(t, err, "unknown backend: mcp")
}
