package driven

import (
	"context"

	"github.com/agentauth/agentauth/internal/domain/model"
)

// VaultStore defines the driven port for vault persistence. The adapter
// operates strictly on ciphertext and metadata; key derivation and
// encryption live above this boundary, so the store can never disclose
// payload content on its own.
type VaultStore interface {
	// Meta returns the vault metadata singleton, or
	// model.ErrVaultNotInitialized if it has not been written yet.
	Meta(ctx context.Context) (*model.VaultMeta, error)

	// SaveMeta writes the metadata singleton exactly once. Returns
	// model.ErrVaultAlreadyInitialized if metadata already exists.
	SaveMeta(ctx context.Context, meta *model.VaultMeta) error

	// PutRecord inserts or fully replaces the session record for
	// rec.Domain. The nonce+ciphertext pair is written atomically.
	PutRecord(ctx context.Context, rec *model.SessionRecord) error

	// GetRecord returns the session record for the normalized domain, or
	// model.ErrSessionNotFound.
	GetRecord(ctx context.Context, domain string) (*model.SessionRecord, error)

	// ListRecords returns lifecycle metadata for every stored session
	// without reading payload columns into decryptable form. Expired
	// entries are included.
	ListRecords(ctx context.Context) ([]model.SessionInfo, error)
}
