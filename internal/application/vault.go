// Package application contains the vault's domain services: encrypted
// storage, session lifecycle, the agent registry, and the disclosure gate.
// Services depend only on port interfaces and vaultcrypto; persistence and
// user interaction live outside.
package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agentauth/agentauth/internal/domain/model"
	"github.com/agentauth/agentauth/internal/domain/port/driven"
	"github.com/agentauth/agentauth/internal/vaultcrypto"
)

// Vault implements the encrypted session store: it owns all encryption and
// decryption of cookie payloads and the password lifecycle around them. The
// derived key exists only inside the *vaultcrypto.Handle returned by Unlock
// and is threaded explicitly into Put and Get.
type Vault struct {
	store driven.VaultStore
	now   func() time.Time
}

// NewVault creates a Vault service over the given store.
func NewVault(store driven.VaultStore) *Vault {
	return &Vault{store: store, now: time.Now}
}

// Initialized reports whether vault metadata exists.
func (v *Vault) Initialized(ctx context.Context) (bool, error) {
	_, err := v.store.Meta(ctx)
	if errors.Is(err, model.ErrVaultNotInitialized) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Initialize derives a fresh salt, verifier, and key from the master
// password and persists the metadata singleton. The derived key is zeroed
// before returning: initialization and first use are distinct operations,
// and callers must Unlock separately.
func (v *Vault) Initialize(ctx context.Context, password string) error {
	if initialized, err := v.Initialized(ctx); err != nil {
		return err
	} else if initialized {
		return model.ErrVaultAlreadyInitialized
	}

	salt, verifier, key, err := vaultcrypto.Initialize(password)
	if err != nil {
		return fmt.Errorf("initialize vault: %w", err)
	}
	vaultcrypto.Zero(key)

	meta := &model.VaultMeta{Salt: salt, Verifier: verifier, CreatedAt: v.now()}
	if err := v.store.SaveMeta(ctx, meta); err != nil {
		return err
	}
	return nil
}

// Unlock re-derives the key from the master password and the stored salt and
// returns a handle holding it. Returns model.ErrVaultNotInitialized when no
// metadata exists and model.ErrVaultAuthentication on a wrong password. The
// caller owns the handle and must Zero it when done.
func (v *Vault) Unlock(ctx context.Context, password string) (*vaultcrypto.Handle, error) {
	meta, err := v.store.Meta(ctx)
	if err != nil {
		return nil, err
	}

	key, err := vaultcrypto.Unlock(password, meta.Salt, meta.Verifier)
	if err != nil {
		return nil, err
	}
	return vaultcrypto.NewHandle(key), nil
}

// Put serializes the cookie mapping, encrypts it under the handle's key with
// a fresh nonce, and upserts the record for the normalized domain. An
// existing record for the domain is fully replaced.
func (v *Vault) Put(ctx context.Context, handle *vaultcrypto.Handle, domain string, cookies model.Cookies, expiresAt time.Time) error {
	if err := cookies.Validate(); err != nil {
		return err
	}

	plaintext, err := json.Marshal(cookies)
	if err != nil {
		return fmt.Errorf("serialize cookies: %w", err)
	}

	nonce, ciphertext, err := vaultcrypto.Seal(handle.Key(), plaintext)
	if err != nil {
		return fmt.Errorf("encrypt session: %w", err)
	}

	rec := &model.SessionRecord{
		Domain:     model.NormalizeDomain(domain),
		Nonce:      nonce,
		Ciphertext: ciphertext,
		CreatedAt:  v.now(),
		ExpiresAt:  expiresAt,
	}
	return v.store.PutRecord(ctx, rec)
}

// Get fetches, decrypts, and authenticates the session for the normalized
// domain. A record whose ciphertext fails authentication surfaces as
// model.ErrVaultIntegrity, never as an authentication error.
func (v *Vault) Get(ctx context.Context, handle *vaultcrypto.Handle, domain string) (*model.Session, error) {
	d := model.NormalizeDomain(domain)
	rec, err := v.store.GetRecord(ctx, d)
	if err != nil {
		return nil, err
	}

	plaintext, err := vaultcrypto.Open(handle.Key(), rec.Nonce, rec.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decrypt session for %q: %w", d, err)
	}

	var cookies model.Cookies
	if err := json.Unmarshal(plaintext, &cookies); err != nil {
		return nil, fmt.Errorf("deserialize session for %q: %w", d, err)
	}

	return &model.Session{
		Domain:    rec.Domain,
		Cookies:   cookies,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

// List returns lifecycle metadata for every stored session. Listing never
// requires a handle: enumeration is a lower-privilege operation than
// disclosure and never touches encrypted payloads.
func (v *Vault) List(ctx context.Context) ([]model.SessionInfo, error) {
	return v.store.ListRecords(ctx)
}
