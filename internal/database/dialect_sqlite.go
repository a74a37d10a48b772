package database

import (
	"strings"
)

// SQLiteDialect is the default backend, via modernc.org/sqlite.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite"
}

// Placeholder ignores the position; sqlite placeholders are all "?".
func (d *SQLiteDialect) Placeholder(position int) string {
	return "?"
}

func (d *SQLiteDialect) SupportsLastInsertID() bool {
	return true
}

// ReturningClause is empty; inserts read LastInsertId instead.
func (d *SQLiteDialect) ReturningClause(column string) string {
	return ""
}

// InitStatements enables foreign keys (off by default in sqlite) and
// WAL mode, and sets a busy timeout so concurrent sessions saving at
// once don't immediately fail.
func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

// IsDuplicateKeyError matches on the message text; the modernc driver
// exposes no structured error codes for constraint violations.
func (d *SQLiteDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CaseInsensitiveCollation makes username and character name columns
// compare case-insensitively.
func (d *SQLiteDialect) CaseInsensitiveCollation() string {
	return "COLLATE NOCASE"
}
