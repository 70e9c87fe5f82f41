package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agentauth/agentauth/internal/domain/model"
	"github.com/agentauth/agentauth/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AgentStore = (*AgentRepo)(nil)

// AgentRepo is the SQLite implementation of the AgentStore port. Scopes are
// stored as a JSON array in a TEXT column; per-name uniqueness is enforced by
// a UNIQUE constraint so it holds across processes.
type AgentRepo struct {
	db *DB
}

// NewAgentRepo creates a new AgentRepo on the given database.
func NewAgentRepo(db *DB) *AgentRepo {
	return &AgentRepo{db: db}
}

// Create persists a new agent identity.
func (r *AgentRepo) Create(ctx context.Context, agent *model.AgentIdentity) error {
	scopes, err := json.Marshal(agent.Scopes)
	if err != nil {
		return fmt.Errorf("marshal scopes for %q: %w", agent.Name, err)
	}

	const query = `INSERT INTO agents (id, name, scopes, created_at) VALUES (?, ?, ?, ?)`
	_, err = r.db.Writer.ExecContext(ctx, query,
		agent.ID.String(), agent.Name, string(scopes), formatTime(agent.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", model.ErrDuplicateAgentName, agent.Name)
		}
		return fmt.Errorf("create agent %q: %w", agent.Name, err)
	}
	return nil
}

// GetByName returns the agent identity with the given name.
func (r *AgentRepo) GetByName(ctx context.Context, name string) (*model.AgentIdentity, error) {
	const query = `SELECT id, name, scopes, created_at FROM agents WHERE name = ?`

	var agent model.AgentIdentity
	var id, scopes, createdAt string
	err := r.db.Reader.QueryRowContext(ctx, query, name).Scan(&id, &agent.Name, &scopes, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", model.ErrAgentNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get agent %q: %w", name, err)
	}

	if agent.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse id for agent %q: %w", name, err)
	}
	if err := json.Unmarshal([]byte(scopes), &agent.Scopes); err != nil {
		return nil, fmt.Errorf("unmarshal scopes for agent %q: %w", name, err)
	}
	if agent.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at for agent %q: %w", name, err)
	}
	return &agent, nil
}

// ListNames returns the names of all registered agents.
func (r *AgentRepo) ListNames(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM agents ORDER BY name`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan agent name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agents: %w", err)
	}

	return names, nil
}

// isUniqueViolation recognizes SQLite unique/primary-key constraint failures.
// modernc.org/sqlite surfaces them as plain errors, so match on the message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
