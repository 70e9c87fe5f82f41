package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentauth/agentauth/internal/domain/model"
)

func TestVaultRepo_MetaBeforeInitialize(t *testing.T) {
	repo := NewVaultRepo(setupVaultDB(t))

	_, err := repo.Meta(context.Background())
	assert.ErrorIs(t, err, model.ErrVaultNotInitialized)
}

func TestVaultRepo_SaveAndGetMeta(t *testing.T) {
	repo := NewVaultRepo(setupVaultDB(t))
	ctx := context.Background()

	meta := &model.VaultMeta{
		Salt:      []byte("0123456789abcdef"),
		Verifier:  []byte("verifier-bytes"),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.SaveMeta(ctx, meta))

	got, err := repo.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, meta.Salt, got.Salt)
	assert.Equal(t, meta.Verifier, got.Verifier)
	assert.WithinDuration(t, meta.CreatedAt, got.CreatedAt, time.Second)
}

func TestVaultRepo_SaveMetaTwice(t *testing.T) {
	repo := NewVaultRepo(setupVaultDB(t))
	ctx := context.Background()

	meta := &model.VaultMeta{Salt: []byte("salt"), Verifier: []byte("v"), CreatedAt: time.Now()}
	require.NoError(t, repo.SaveMeta(ctx, meta))

	err := repo.SaveMeta(ctx, meta)
	assert.ErrorIs(t, err, model.ErrVaultAlreadyInitialized)
}

func TestVaultRepo_PutAndGetRecord(t *testing.T) {
	repo := NewVaultRepo(setupVaultDB(t))
	ctx := context.Background()

	rec := &model.SessionRecord{
		Domain:     "linkedin.com",
		Nonce:      []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		Ciphertext: []byte("encrypted-payload"),
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  time.Now().UTC().Add(24 * time.Hour),
	}
	require.NoError(t, repo.PutRecord(ctx, rec))

	got, err := repo.GetRecord(ctx, "linkedin.com")
	require.NoError(t, err)
	assert.Equal(t, rec.Domain, got.Domain)
	assert.Equal(t, rec.Nonce, got.Nonce)
	assert.Equal(t, rec.Ciphertext, got.Ciphertext)
	assert.WithinDuration(t, rec.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestVaultRepo_GetRecordMissing(t *testing.T) {
	repo := NewVaultRepo(setupVaultDB(t))

	_, err := repo.GetRecord(context.Background(), "nonexistent.com")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestVaultRepo_PutRecordReplaces(t *testing.T) {
	repo := NewVaultRepo(setupVaultDB(t))
	ctx := context.Background()

	first := &model.SessionRecord{
		Domain: "example.com", Nonce: []byte("nonce-one-12"), Ciphertext: []byte("first"),
		CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.PutRecord(ctx, first))

	second := &model.SessionRecord{
		Domain: "example.com", Nonce: []byte("nonce-two-12"), Ciphertext: []byte("second"),
		CreatedAt: time.Now(), ExpiresAt: time.Now().Add(2 * time.Hour),
	}
	require.NoError(t, repo.PutRecord(ctx, second))

	got, err := repo.GetRecord(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got.Ciphertext)
	assert.Equal(t, []byte("nonce-two-12"), got.Nonce)

	infos, err := repo.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 1, "replace must not leave a second row")
}

func TestVaultRepo_ListRecords(t *testing.T) {
	repo := NewVaultRepo(setupVaultDB(t))
	ctx := context.Background()

	for _, domain := range []string{"b.com", "a.com"} {
		require.NoError(t, repo.PutRecord(ctx, &model.SessionRecord{
			Domain: domain, Nonce: []byte("nonce"), Ciphertext: []byte("ct"),
			CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour),
		}))
	}

	infos, err := repo.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a.com", infos[0].Domain)
	assert.Equal(t, "b.com", infos[1].Domain)
}

func TestVaultRepo_ListRecordsEmpty(t *testing.T) {
	repo := NewVaultRepo(setupVaultDB(t))

	infos, err := repo.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, infos)
}
