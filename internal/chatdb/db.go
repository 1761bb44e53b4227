package chatdb

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a read-only connection to a decrypted SimpleX chat database.
// Encrypted stores require a SQLCipher-linked libsqlite3 build; the
// passphrase is applied via PRAGMA key before any query runs.
type DB struct {
	*sql.DB
}

// DataAccessError wraps a failed chat store operation. It aborts the export;
// callers distinguish it from render failures with errors.As.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("chat store: %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

func dataErr(op string, err error) error {
	return &DataAccessError{Op: op, Err: err}
}

// Open opens the chat database read-only and verifies it is queryable.
func Open(path, passphrase string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, dataErr("open", err)
	}
	if passphrase != "" {
		quoted := strings.ReplaceAll(passphrase, "'", "''")
		if _, err := db.Exec(fmt.Sprintf("PRAGMA key = '%s'", quoted)); err != nil {
			_ = db.Close()
			return nil, dataErr("apply key", err)
		}
	}
	// Probe: fails on a wrong passphrase or a non-database file.
	var n int
	if err := db.QueryRow("SELECT count(*) FROM sqlite_master").Scan(&n); err != nil {
		_ = db.Close()
		return nil, dataErr("verify key", err)
	}
	return &DB{db}, nil
}
