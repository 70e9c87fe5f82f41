package driven

import (
	"context"

	"github.com/agentauth/agentauth/internal/domain/model"
)

// AgentStore defines the driven port for agent identity persistence. The
// registry is a separate store from the vault and is never touched by the
// vault's encryption key.
type AgentStore interface {
	// Create persists a new identity. Returns model.ErrDuplicateAgentName
	// if the name is already registered.
	Create(ctx context.Context, agent *model.AgentIdentity) error

	// GetByName returns the identity with the given name, or
	// model.ErrAgentNotFound.
	GetByName(ctx context.Context, name string) (*model.AgentIdentity, error)

	// ListNames returns the names of all registered agents.
	ListNames(ctx context.Context) ([]string, error)
}
