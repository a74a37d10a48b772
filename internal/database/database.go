// Package database provides persistence for player accounts and
// characters on SQLite or PostgreSQL.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database wraps the SQL connection and provides persistence operations.
type Database struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Database, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig opens a database using the given configuration,
// selecting the dialect from the Driver field.
func OpenWithConfig(cfg Config) (*Database, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	var dsn string
	switch dialect.(type) {
	case *PostgresDialect:
		pg := cfg.Postgres
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			pg.Host, pg.Port, pg.User, pg.Password, pg.Database, pg.SSLMode)
	default:
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.SQLitePath
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, ok := dialect.(*PostgresDialect); ok {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	d := &Database{
		db:      db,
		dialect: dialect,
		qb:      NewQueryBuilder(dialect),
	}

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// migrate creates the schema if it doesn't exist.
func (d *Database) migrate() error {
	// Dialect-specific column types. SQLite gets NOCASE collation for
	// name columns; PostgreSQL uses the citext type instead.
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	nameType := "TEXT " + d.dialect.CaseInsensitiveCollation()
	if _, ok := d.dialect.(*PostgresDialect); ok {
		pk = "BIGSERIAL PRIMARY KEY"
		nameType = "CITEXT"
	}

	migrations := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS accounts (
			id %s,
			username %s UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			last_login TIMESTAMP,
			last_ip TEXT,
			banned INTEGER NOT NULL DEFAULT 0,
			is_admin INTEGER NOT NULL DEFAULT 0
		)`, pk, nameType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS characters (
			id %s,
			account_id INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			name %s UNIQUE NOT NULL,
			surname TEXT NOT NULL DEFAULT '',
			age INTEGER NOT NULL DEFAULT 18,
			apparent_age INTEGER NOT NULL DEFAULT 18,
			height INTEGER NOT NULL DEFAULT 172,
			intro TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			pronoun_they TEXT NOT NULL DEFAULT 'she',
			pronoun_them TEXT NOT NULL DEFAULT 'her',
			pronoun_their TEXT NOT NULL DEFAULT 'her',
			pronoun_theirs TEXT NOT NULL DEFAULT 'hers',
			species TEXT NOT NULL DEFAULT '',
			archetype TEXT NOT NULL DEFAULT '',
			hp INTEGER NOT NULL DEFAULT 20,
			max_hp INTEGER NOT NULL DEFAULT 20,
			en INTEGER NOT NULL DEFAULT 0,
			max_en INTEGER NOT NULL DEFAULT 100,
			sc INTEGER NOT NULL DEFAULT 0,
			max_sc INTEGER NOT NULL DEFAULT 3,
			xp INTEGER NOT NULL DEFAULT 0,
			max_xp INTEGER NOT NULL DEFAULT 1000,
			money INTEGER NOT NULL DEFAULT 0,
			prone INTEGER NOT NULL DEFAULT 0,
			has_breasts INTEGER NOT NULL DEFAULT 1,
			has_genitals INTEGER NOT NULL DEFAULT 1,
			can_carry_child INTEGER NOT NULL DEFAULT 1,
			has_four_arms INTEGER NOT NULL DEFAULT 0,
			exoskeletal_level INTEGER NOT NULL DEFAULT 0,
			fang_desc TEXT NOT NULL DEFAULT 'fangs',
			tail_desc TEXT NOT NULL DEFAULT 'feline',
			bioluminescence_desc TEXT NOT NULL DEFAULT 'white',
			room_id TEXT NOT NULL DEFAULT 'chargen',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			last_played TIMESTAMP
		)`, pk, nameType),

		`CREATE INDEX IF NOT EXISTS idx_characters_account_id ON characters(account_id)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// insert runs an INSERT and returns the new row's ID, using
// LastInsertId or a RETURNING clause depending on the dialect.
func (d *Database) insert(query, idColumn string, args ...any) (int64, error) {
	if d.dialect.SupportsLastInsertID() {
		result, err := d.db.Exec(d.qb.Build(query), args...)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	}

	var id int64
	err := d.db.QueryRow(d.qb.BuildWithReturning(query, idColumn), args...).Scan(&id)
	return id, err
}

// DB returns the underlying sql.DB for advanced operations.
func (d *Database) DB() *sql.DB {
	return d.db
}
