package service

import (
	"context"

	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/transfer"
)

// PlatformAdapter is the per-platform capability surface. Any platform
// implementing it can be registered without touching orchestrator or
// registry logic. Adapters translate a rejected credential into
// ErrAuthExpired so the registry can flip the connection state.
type PlatformAdapter interface {
	Platform() string
	CharacterLimit() int
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*transfer.PlatformToken, *transfer.PlatformAccount, error)
	ListTargets(ctx context.Context, accessToken string) ([]models.Target, error)
	Post(ctx context.Context, accessToken string, target models.Target, body string, imageURLs []string) (string, error)
	PostURL(externalPostID string) string
	ValidateConnection(ctx context.Context, accessToken string) error
	Engagement(ctx context.Context, accessToken, externalPostID string) (*transfer.EngagementSnapshot, error)
}

// AdapterRegistry maps platform names to their adapters.
type AdapterRegistry map[string]PlatformAdapter

func NewAdapterRegistry(adapters ...PlatformAdapter) AdapterRegistry {
	reg := make(AdapterRegistry, len(adapters))
	for _, a := range adapters {
		reg[a.Platform()] = a
	}
	return reg
}
