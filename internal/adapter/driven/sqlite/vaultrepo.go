package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agentauth/agentauth/internal/domain/model"
	"github.com/agentauth/agentauth/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.VaultStore = (*VaultRepo)(nil)

// VaultRepo is the SQLite implementation of the VaultStore port. It persists
// the metadata singleton and encrypted session records; every payload it
// touches is ciphertext.
type VaultRepo struct {
	db *DB
}

// NewVaultRepo creates a new VaultRepo on the given database.
func NewVaultRepo(db *DB) *VaultRepo {
	return &VaultRepo{db: db}
}

// Meta returns the vault metadata singleton.
func (r *VaultRepo) Meta(ctx context.Context) (*model.VaultMeta, error) {
	const query = `SELECT salt, verifier, created_at FROM vault_meta WHERE id = 1`

	var meta model.VaultMeta
	var createdAt string
	err := r.db.Reader.QueryRowContext(ctx, query).Scan(&meta.Salt, &meta.Verifier, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrVaultNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("get vault meta: %w", err)
	}

	meta.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse vault meta created_at: %w", err)
	}
	return &meta, nil
}

// SaveMeta writes the metadata singleton. The fixed primary key makes a
// second initialization attempt a constraint violation rather than a
// silent overwrite.
func (r *VaultRepo) SaveMeta(ctx context.Context, meta *model.VaultMeta) error {
	const query = `INSERT INTO vault_meta (id, salt, verifier, created_at) VALUES (1, ?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query, meta.Salt, meta.Verifier, formatTime(meta.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrVaultAlreadyInitialized
		}
		return fmt.Errorf("save vault meta: %w", err)
	}
	return nil
}

// PutRecord inserts or fully replaces the session record for rec.Domain.
// INSERT OR REPLACE is a single statement, so the nonce+ciphertext pair is
// visible atomically and no reader can observe a half-written record.
func (r *VaultRepo) PutRecord(ctx context.Context, rec *model.SessionRecord) error {
	const query = `INSERT OR REPLACE INTO sessions (domain, nonce, ciphertext, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query,
		rec.Domain, rec.Nonce, rec.Ciphertext,
		formatTime(rec.CreatedAt), formatTime(rec.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("put session record %q: %w", rec.Domain, err)
	}
	return nil
}

// GetRecord returns the session record for the given normalized domain.
func (r *VaultRepo) GetRecord(ctx context.Context, domain string) (*model.SessionRecord, error) {
	const query = `SELECT domain, nonce, ciphertext, created_at, expires_at FROM sessions WHERE domain = ?`

	var rec model.SessionRecord
	var createdAt, expiresAt string
	err := r.db.Reader.QueryRowContext(ctx, query, domain).
		Scan(&rec.Domain, &rec.Nonce, &rec.Ciphertext, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session record %q: %w", domain, err)
	}

	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at for %q: %w", domain, err)
	}
	if rec.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, fmt.Errorf("parse expires_at for %q: %w", domain, err)
	}
	return &rec, nil
}

// ListRecords returns lifecycle metadata for all stored sessions. The query
// never selects the nonce or ciphertext columns, so listing works even when
// a payload is corrupted and discloses nothing.
func (r *VaultRepo) ListRecords(ctx context.Context) ([]model.SessionInfo, error) {
	const query = `SELECT domain, created_at, expires_at FROM sessions ORDER BY domain`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list session records: %w", err)
	}
	defer rows.Close()

	var infos []model.SessionInfo
	for rows.Next() {
		var info model.SessionInfo
		var createdAt, expiresAt string
		if err := rows.Scan(&info.Domain, &createdAt, &expiresAt); err != nil {
			return nil, fmt.Errorf("scan session record: %w", err)
		}
		if info.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at for %q: %w", info.Domain, err)
		}
		if info.ExpiresAt, err = parseTime(expiresAt); err != nil {
			return nil, fmt.Errorf("parse expires_at for %q: %w", info.Domain, err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session records: %w", err)
	}

	return infos, nil
}

// formatTime serializes timestamps as RFC 3339 UTC strings for TEXT columns.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
