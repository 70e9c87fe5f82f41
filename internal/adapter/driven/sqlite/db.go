// Package sqlite implements the driven persistence ports on SQLite. Two
// database files exist per installation: the vault database (metadata +
// encrypted session records) and the registry database (agent identities +
// access log). Ciphertext goes in and out of this package unchanged; no key
// material ever reaches it.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// DB provides dual reader/writer database connections with WAL mode enabled.
// The writer connection is limited to a single connection so read-modify-write
// sequences from this process serialize; WAL plus busy_timeout provides the
// cross-process mutual exclusion for multiple agents sharing the same file.
// The reader connection pool allows up to 4 concurrent readers.
type DB struct {
	Writer *sql.DB
	Reader *sql.DB
	path   string
}

// NewDB creates (if necessary) and opens a SQLite database with WAL mode,
// busy timeout, synchronous NORMAL, and foreign keys enabled.
func NewDB(dbPath string) (*DB, error) {
	return open(dbPath, "rwc")
}

// OpenExisting opens a database that must already exist on disk. It never
// creates the file: callers rely on file existence as a meaningful signal
// (an absent vault file means the vault was never initialized).
func OpenExisting(dbPath string) (*DB, error) {
	// mode=rw would still surface a late open error, but checking first
	// keeps the distinction unambiguous across sqlite driver versions.
	if !Exists(dbPath) {
		return nil, fmt.Errorf("open %s: %w", dbPath, os.ErrNotExist)
	}
	return open(dbPath, "rw")
}

// Exists reports whether a database file is present at the given path.
func Exists(dbPath string) bool {
	_, err := os.Stat(dbPath)
	return err == nil
}

func open(dbPath, mode string) (*DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?mode=%s&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		dbPath, mode,
	)

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	if err := writer.Ping(); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("ping writer: %w", err)
	}

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(4)

	if err := reader.Ping(); err != nil {
		_ = reader.Close()
		_ = writer.Close()
		return nil, fmt.Errorf("ping reader: %w", err)
	}

	return &DB{
		Writer: writer,
		Reader: reader,
		path:   dbPath,
	}, nil
}

// Close closes both reader and writer connections. Returns the first error
// encountered.
func (db *DB) Close() error {
	var firstErr error

	if err := db.Reader.Close(); err != nil {
		firstErr = fmt.Errorf("close reader: %w", err)
	}

	if err := db.Writer.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close writer: %w", err)
	}

	return firstErr
}
