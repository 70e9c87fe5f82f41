package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentauth/agentauth/internal/domain/model"
	"github.com/agentauth/agentauth/internal/vaultcrypto"
)

func newSessionFixture(t *testing.T) (*SessionService, *vaultcrypto.Handle, *fakeClock) {
	t.Helper()

	vault, _ := newVaultFixture(t)
	ctx := context.Background()
	require.NoError(t, vault.Initialize(ctx, "pw"))

	handle, err := vault.Unlock(ctx, "pw")
	require.NoError(t, err)
	t.Cleanup(handle.Zero)

	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	vault.now = clk.Now

	svc := NewSessionService(vault)
	svc.now = clk.Now
	return svc, handle, clk
}

func TestSessionService_StoreRejectsPastExpiry(t *testing.T) {
	svc, handle, clk := newSessionFixture(t)
	ctx := context.Background()
	cookies := model.Cookies{"sid": "x"}

	err := svc.Store(ctx, handle, "a.com", cookies, clk.Now().Add(-time.Minute))
	assert.ErrorIs(t, err, model.ErrExpiryNotFuture)
}

func TestSessionService_StoreRejectsExpiryEqualToNow(t *testing.T) {
	svc, handle, clk := newSessionFixture(t)
	ctx := context.Background()

	// A session with zero remaining lifetime is meaningless.
	err := svc.Store(ctx, handle, "a.com", model.Cookies{"sid": "x"}, clk.Now())
	assert.ErrorIs(t, err, model.ErrExpiryNotFuture)
}

func TestSessionService_ExpiryBoundary(t *testing.T) {
	svc, handle, clk := newSessionFixture(t)
	ctx := context.Background()
	cookies := model.Cookies{"sid": "x"}

	require.NoError(t, svc.Store(ctx, handle, "a.com", cookies, clk.Now().Add(time.Second)))

	got, err := svc.Fetch(ctx, handle, "a.com")
	require.NoError(t, err, "queried immediately, the session is live")
	assert.Equal(t, cookies, got)

	clk.Advance(time.Second)

	_, err = svc.Fetch(ctx, handle, "a.com")
	assert.ErrorIs(t, err, model.ErrSessionExpired)
	assert.NotErrorIs(t, err, model.ErrSessionNotFound,
		"expired must never be downgraded to not-found")
}

func TestSessionService_ExpiredRecordStaysOnDisk(t *testing.T) {
	svc, handle, clk := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Store(ctx, handle, "a.com", model.Cookies{"sid": "x"}, clk.Now().Add(time.Minute)))
	clk.Advance(time.Hour)

	// Fetch refuses, but listing still shows the record: no background eviction.
	_, err := svc.Fetch(ctx, handle, "a.com")
	require.ErrorIs(t, err, model.ErrSessionExpired)

	infos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "a.com", infos[0].Domain)
}

func TestSessionService_ListIncludesExpired(t *testing.T) {
	svc, handle, clk := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Store(ctx, handle, "live.com", model.Cookies{"sid": "l"}, clk.Now().Add(time.Hour)))
	require.NoError(t, svc.Store(ctx, handle, "dead.com", model.Cookies{"sid": "d"}, clk.Now().Add(time.Minute)))
	clk.Advance(30 * time.Minute)

	infos, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}

func TestSessionService_RoundTrip(t *testing.T) {
	svc, handle, clk := newSessionFixture(t)
	ctx := context.Background()

	cookies := model.Cookies{
		"session_id": "abc123",
		"csrf":       "tok-!@#$%^&*()",
		"empty":      "",
	}
	require.NoError(t, svc.Store(ctx, handle, "Example.COM", cookies, clk.Now().Add(time.Hour)))

	got, err := svc.Fetch(ctx, handle, "example.com")
	require.NoError(t, err)
	assert.Equal(t, cookies, got)
}
