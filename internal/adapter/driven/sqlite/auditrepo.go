package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agentauth/agentauth/internal/domain/model"
	"github.com/agentauth/agentauth/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AuditStore = (*AuditRepo)(nil)

// AuditRepo is the SQLite implementation of the AuditStore port: an
// append-only table of disclosure decisions. Rows are inserted, never
// updated or deleted.
type AuditRepo struct {
	db *DB
}

// NewAuditRepo creates a new AuditRepo on the given database.
func NewAuditRepo(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Record appends one access-log entry.
func (r *AuditRepo) Record(ctx context.Context, entry *model.AccessLogEntry) error {
	const query = `INSERT INTO access_log (agent_id, agent_name, domain, outcome, timestamp)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query,
		entry.AgentID.String(), entry.AgentName, entry.Domain,
		string(entry.Outcome), formatTime(entry.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("record access log entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *AuditRepo) Recent(ctx context.Context, limit int) ([]model.AccessLogEntry, error) {
	const query = `SELECT id, agent_id, agent_name, domain, outcome, timestamp
		FROM access_log ORDER BY id DESC LIMIT ?`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list access log: %w", err)
	}
	defer rows.Close()

	var entries []model.AccessLogEntry
	for rows.Next() {
		var entry model.AccessLogEntry
		var agentID, outcome, timestamp string
		if err := rows.Scan(&entry.ID, &agentID, &entry.AgentName, &entry.Domain, &outcome, &timestamp); err != nil {
			return nil, fmt.Errorf("scan access log entry: %w", err)
		}
		if entry.AgentID, err = uuid.Parse(agentID); err != nil {
			return nil, fmt.Errorf("parse agent id in access log entry %d: %w", entry.ID, err)
		}
		entry.Outcome = model.Outcome(outcome)
		if entry.Timestamp, err = parseTime(timestamp); err != nil {
			return nil, fmt.Errorf("parse timestamp in access log entry %d: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate access log: %w", err)
	}

	return entries, nil
}
