package application

import (
	"context"
	"fmt"
	"time"

	"github.com/agentauth/agentauth/internal/domain/model"
	"github.com/agentauth/agentauth/internal/vaultcrypto"
)

// SessionService is the session lifecycle layer over the Vault. It adds
// expiry semantics and nothing else: authorization belongs to AccessService,
// encryption to the Vault.
type SessionService struct {
	vault *Vault
	now   func() time.Time
}

// NewSessionService creates a SessionService over the given vault.
func NewSessionService(vault *Vault) *SessionService {
	return &SessionService{vault: vault, now: time.Now}
}

// Store saves a session for the domain, fully replacing any prior one.
// The expiry must be strictly in the future: a session that is already dead
// at creation time is meaningless, and expiresAt equal to now is rejected too.
func (s *SessionService) Store(ctx context.Context, handle *vaultcrypto.Handle, domain string, cookies model.Cookies, expiresAt time.Time) error {
	if !expiresAt.After(s.now()) {
		return fmt.Errorf("%w: %s", model.ErrExpiryNotFuture, expiresAt.UTC().Format(time.RFC3339))
	}
	return s.vault.Put(ctx, handle, domain, cookies, expiresAt)
}

// Fetch returns the decrypted cookie mapping for the domain. Expiry is
// enforced here, at read time: an expired record yields
// model.ErrSessionExpired rather than stale data. Expired records stay on
// disk until overwritten so the stored history remains inspectable; there is
// no background eviction.
func (s *SessionService) Fetch(ctx context.Context, handle *vaultcrypto.Handle, domain string) (model.Cookies, error) {
	session, err := s.vault.Get(ctx, handle, domain)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, fmt.Errorf("%w: %q expired at %s", model.ErrSessionExpired,
			session.Domain, session.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return session.Cookies, nil
}

// List returns metadata for all stored sessions, expired ones included.
// Callers needing only live sessions filter on ExpiresAt themselves.
func (s *SessionService) List(ctx context.Context) ([]model.SessionInfo, error) {
	return s.vault.List(ctx)
}
