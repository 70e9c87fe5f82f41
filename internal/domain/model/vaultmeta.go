package model

import "time"

// VaultMeta is the singleton metadata row created by vault initialization:
// the KDF salt and the password verifier. It is written once and never
// mutated; its presence is what makes a vault file an initialized vault.
type VaultMeta struct {
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
