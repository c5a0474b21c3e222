package notion

import (
	"fmt"

	"github.com/longkey1/notion-presence/internal/notion/api"
	"github.com/longkey1/notion-presence/internal/notion/sdk"
	"github.com/longkey1/notion-presence/internal/notion/types"
	"github.com/longkey1/notion-presence/internal/presence/config"
)

// Re-export types for convenience
type Client = types.Client
type PageRef = types.PageRef

// NewClient creates a new Notion client for the configured backend
func NewClient(backend config.Backend, token string) (Client, error) {
	if token == "" {
		return nil, fmt.Errorf("token is required")
	}

	switch backend {
	case config.BackendNotionAPI:
		return sdk.NewClient(token), nil
	case config.BackendAPI, "":
		return api.NewClient(token), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
}
