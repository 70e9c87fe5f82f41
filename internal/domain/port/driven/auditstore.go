package driven

import (
	"context"

	"github.com/agentauth/agentauth/internal/domain/model"
)

// AuditStore defines the driven port for the append-only disclosure audit
// log. Entries are only ever inserted; there is no update or delete.
type AuditStore interface {
	// Record appends one access-log entry.
	Record(ctx context.Context, entry *model.AccessLogEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]model.AccessLogEntry, error)
}
