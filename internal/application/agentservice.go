package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agentauth/agentauth/internal/domain/model"
	"github.com/agentauth/agentauth/internal/domain/port/driven"
)

// AgentService is the agent identity registry. It assigns IDs, enforces the
// non-empty-string policy on names and scope entries, and leaves scope
// semantics to model.ScopeAllows. The registry is independent of the vault
// and never sees key material.
type AgentService struct {
	store driven.AgentStore
	now   func() time.Time
}

// NewAgentService creates an AgentService over the given store.
func NewAgentService(store driven.AgentStore) *AgentService {
	return &AgentService{store: store, now: time.Now}
}

// Create registers a new agent identity with a fresh unique ID. Scope
// entries are recorded verbatim beyond trimming; no domain validation is
// applied, since scope syntax is policy interpreted at match time.
func (s *AgentService) Create(ctx context.Context, name string, scopes []string) (*model.AgentIdentity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", model.ErrInvalidAgent)
	}

	cleaned := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" {
			return nil, fmt.Errorf("%w: scope entries must not be empty", model.ErrInvalidAgent)
		}
		cleaned = append(cleaned, scope)
	}

	agent := &model.AgentIdentity{
		ID:        uuid.New(),
		Name:      name,
		Scopes:    cleaned,
		CreatedAt: s.now(),
	}
	if err := s.store.Create(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

// Load returns the agent identity with the given name.
func (s *AgentService) Load(ctx context.Context, name string) (*model.AgentIdentity, error) {
	return s.store.GetByName(ctx, name)
}

// ListNames returns the names of all registered agents.
func (s *AgentService) ListNames(ctx context.Context) ([]string, error) {
	return s.store.ListNames(ctx)
}
