// Package vaultcrypto owns every cryptographic primitive the vault uses:
// master-password key derivation, the password verifier, authenticated
// encryption of session payloads, and the unlock handle that holds the
// derived key in memory.
package vaultcrypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/agentauth/agentauth/internal/domain/model"
)

// Argon2id parameters are fixed at design time; they are part of the on-disk
// format, not user-tunable configuration.
const (
	kdfTime    = 3
	kdfMemKiB  = 64 * 1024
	kdfThreads = 4
	keyLen     = 32
	saltLen    = 16
)

// verifierContext domain-separates the verifier hash from any other use of
// the derived key.
const verifierContext = "agentauth/v1/password-verifier"

// Initialize generates a fresh random salt, derives the vault key from the
// password, and computes the verifier that later unlocks check against. The
// key itself is never persisted. Fails only if the entropy source fails.
func Initialize(password string) (salt, verifier, key []byte, err error) {
	salt = make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, nil, nil, fmt.Errorf("generate salt: %w", err)
	}
	key = deriveKey(password, salt)
	return salt, computeVerifier(key), key, nil
}

// Unlock re-derives the key from password and the stored salt, then compares
// the recomputed verifier against the stored one in constant time. On
// mismatch it returns model.ErrVaultAuthentication and no key material.
func Unlock(password string, salt, verifier []byte) ([]byte, error) {
	key := deriveKey(password, salt)
	if subtle.ConstantTimeCompare(computeVerifier(key), verifier) != 1 {
		Zero(key)
		return nil, model.ErrVaultAuthentication
	}
	return key, nil
}

func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, kdfTime, kdfMemKiB, kdfThreads, keyLen)
}

// computeVerifier is a one-way function of the derived key: SHA-256 over a
// fixed context string plus the key. Equality can be checked later without
// ever storing the key.
func computeVerifier(key []byte) []byte {
	h := sha256.New()
	h.Write([]byte(verifierContext))
	h.Write(key)
	return h.Sum(nil)
}
