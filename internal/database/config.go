package database

import "time"

// Config selects the backend and its connection settings. cmd/mud
// builds one from flags; tests use DefaultConfig with a temp path.
type Config struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string

	// SQLitePath is the database file path when Driver is sqlite.
	SQLitePath string

	// Postgres applies when Driver is postgres.
	Postgres PostgresConfig
}

// PostgresConfig holds the postgres connection and pool settings.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a sqlite Config for the given file path.
func DefaultConfig(sqlitePath string) Config {
	return Config{
		Driver:     "sqlite",
		SQLitePath: sqlitePath,
	}
}

// DefaultPostgresConfig returns connection defaults with a modest
// pool; a MUD's write load is one row per character save.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}
