package model

import "errors"

// Sentinel errors for the vault, session, and agent domains. Lower layers
// fail fast with the specific kind; services propagate them unchanged so a
// caller's remediation is never obscured (an expired session is not a missing
// one, and a bad password is not corrupted ciphertext).
var (
	ErrVaultNotInitialized     = errors.New("vault is not initialized")
	ErrVaultAlreadyInitialized = errors.New("vault is already initialized")
	ErrVaultAuthentication     = errors.New("vault authentication failed")
	ErrVaultIntegrity          = errors.New("vault record failed integrity check")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	ErrAgentNotFound      = errors.New("agent not found")
	ErrDuplicateAgentName = errors.New("agent name already registered")
	ErrScopeDenied        = errors.New("domain not permitted by agent scopes")

	ErrInvalidCookies  = errors.New("invalid cookie mapping")
	ErrExpiryNotFuture = errors.New("session expiry must be in the future")
	ErrInvalidAgent    = errors.New("invalid agent definition")
)
