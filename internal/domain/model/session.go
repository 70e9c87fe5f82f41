package model

import (
	"strings"
	"time"
)

// Session is the decrypted view of a stored browser session: the cookie
// mapping for a domain plus its lifecycle timestamps.
type Session struct {
	Domain    string
	Cookies   Cookies
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session's expiry is at or before now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// SessionRecord is the encrypted at-rest form of a session. The nonce is
// unique per encryption operation and stored alongside the ciphertext so the
// pair is always written and read as a unit.
type SessionRecord struct {
	Domain     string
	Nonce      []byte
	Ciphertext []byte
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// SessionInfo is the listing view of a stored session: lifecycle metadata
// only, no payload. Enumerating sessions never requires the vault key.
type SessionInfo struct {
	Domain    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NormalizeDomain canonicalizes a domain for use as a session key:
// lowercased with surrounding whitespace and any trailing dot removed.
func NormalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimSuffix(d, ".")
}
