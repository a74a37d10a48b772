package database

import (
	"errors"
	"testing"
)

func TestNewDialect(t *testing.T) {
	if _, ok := NewDialect(DialectSQLite).(*SQLiteDialect); !ok {
		t.Error("NewDialect(sqlite) did not return SQLiteDialect")
	}
	if _, ok := NewDialect(DialectPostgres).(*PostgresDialect); !ok {
		t.Error("NewDialect(postgres) did not return PostgresDialect")
	}
	// Unknown types fall back to SQLite.
	if _, ok := NewDialect("oracle").(*SQLiteDialect); !ok {
		t.Error("NewDialect(unknown) should fall back to SQLiteDialect")
	}
}

func TestSQLiteDialect(t *testing.T) {
	d := &SQLiteDialect{}

	if d.DriverName() != "sqlite" {
		t.Errorf("DriverName() = %q", d.DriverName())
	}
	if d.Placeholder(3) != "?" {
		t.Errorf("Placeholder(3) = %q, want ?", d.Placeholder(3))
	}
	if !d.SupportsLastInsertID() {
		t.Error("SQLite should support LastInsertId")
	}
	if d.ReturningClause("id") != "" {
		t.Error("SQLite should not emit RETURNING")
	}
	if !d.IsDuplicateKeyError(errors.New("UNIQUE constraint failed: accounts.username")) {
		t.Error("UNIQUE constraint error not detected")
	}
	if d.IsDuplicateKeyError(nil) {
		t.Error("nil is not a duplicate key error")
	}
}

func TestPostgresDialect(t *testing.T) {
	d := &PostgresDialect{}

	if d.DriverName() != "postgres" {
		t.Errorf("DriverName() = %q", d.DriverName())
	}
	if d.Placeholder(3) != "$3" {
		t.Errorf("Placeholder(3) = %q, want $3", d.Placeholder(3))
	}
	if d.SupportsLastInsertID() {
		t.Error("Postgres should not support LastInsertId")
	}
	if d.ReturningClause("id") != " RETURNING id" {
		t.Errorf("ReturningClause(id) = %q", d.ReturningClause("id"))
	}
	for _, msg := range []string{
		`pq: duplicate key value violates unique constraint "accounts_username_key"`,
		"ERROR: 23505",
	} {
		if !d.IsDuplicateKeyError(errors.New(msg)) {
			t.Errorf("duplicate key error not detected: %s", msg)
		}
	}
	if d.IsDuplicateKeyError(errors.New("connection refused")) {
		t.Error("unrelated error flagged as duplicate key")
	}
}

func TestQueryBuilder(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{
			name:    "sqlite passthrough",
			dialect: &SQLiteDialect{},
			query:   "SELECT * FROM accounts WHERE id = ? AND banned = ?",
			want:    "SELECT * FROM accounts WHERE id = ? AND banned = ?",
		},
		{
			name:    "postgres numbering",
			dialect: &PostgresDialect{},
			query:   "SELECT * FROM accounts WHERE id = ? AND banned = ?",
			want:    "SELECT * FROM accounts WHERE id = $1 AND banned = $2",
		},
		{
			name:    "postgres no placeholders",
			dialect: &PostgresDialect{},
			query:   "SELECT COUNT(*) FROM accounts",
			want:    "SELECT COUNT(*) FROM accounts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := NewQueryBuilder(tt.dialect)
			if got := qb.Build(tt.query); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryBuilderWithReturning(t *testing.T) {
	insert := "INSERT INTO accounts (username) VALUES (?)"

	sqlite := NewQueryBuilder(&SQLiteDialect{})
	if got := sqlite.BuildWithReturning(insert, "id"); got != insert {
		t.Errorf("sqlite BuildWithReturning() = %q", got)
	}

	postgres := NewQueryBuilder(&PostgresDialect{})
	want := "INSERT INTO accounts (username) VALUES ($1) RETURNING id"
	if got := postgres.BuildWithReturning(insert, "id"); got != want {
		t.Errorf("postgres BuildWithReturning() = %q, want %q", got, want)
	}
}
