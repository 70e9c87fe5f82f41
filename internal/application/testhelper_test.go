package application

import (
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	sqliteadapter "github.com/agentauth/agentauth/internal/adapter/driven/sqlite"
)

// newVaultFixture opens a real vault database in a temp dir and wires the
// vault service over it. Returning the DB lets tests reach underneath the
// service to corrupt stored ciphertext.
func newVaultFixture(t *testing.T) (*Vault, *sqliteadapter.DB) {
	t.Helper()

	db, err := sqliteadapter.NewDB(filepath.Join(t.TempDir(), "vault.db"))
	if err != nil {
		t.Fatalf("open vault db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := sqliteadapter.RunVaultMigrations(db.Writer); err != nil {
		t.Fatalf("migrate vault db: %v", err)
	}

	return NewVault(sqliteadapter.NewVaultRepo(db)), db
}

func newRegistryFixture(t *testing.T) (*AgentService, *sqliteadapter.AuditRepo) {
	t.Helper()

	db, err := sqliteadapter.NewDB(filepath.Join(t.TempDir(), "agents.db"))
	if err != nil {
		t.Fatalf("open registry db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := sqliteadapter.RunRegistryMigrations(db.Writer); err != nil {
		t.Fatalf("migrate registry db: %v", err)
	}

	return NewAgentService(sqliteadapter.NewAgentRepo(db)), sqliteadapter.NewAuditRepo(db)
}

// fakeClock lets tests advance wall-clock time deterministically.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{t: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
