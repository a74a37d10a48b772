package database

// Dialect covers the SQL syntax differences between the two supported
// backends. The rest of the package writes queries with ? placeholders
// and lets the dialect and QueryBuilder adapt them.
type Dialect interface {
	// DriverName is the name registered with database/sql:
	// "sqlite" for modernc, "postgres" for lib/pq.
	DriverName() string

	// Placeholder renders the parameter marker for a 1-indexed
	// position: always "?" on sqlite, "$1", "$2", ... on postgres.
	Placeholder(position int) string

	// SupportsLastInsertID reports whether inserts can read the new
	// row ID from sql.Result. Postgres needs RETURNING instead.
	SupportsLastInsertID() bool

	// ReturningClause is the RETURNING suffix for inserts on dialects
	// without LastInsertId, empty otherwise.
	ReturningClause(column string) string

	// InitStatements run once per connection pool at open time:
	// PRAGMAs on sqlite, extension setup on postgres.
	InitStatements() []string

	// IsDuplicateKeyError reports whether err is a unique constraint
	// violation. Account and character name collisions surface as
	// ErrAccountExists / ErrNameTaken through this.
	IsDuplicateKeyError(err error) bool

	// CaseInsensitiveCollation is appended to name column types on
	// dialects that express case-insensitivity as a collation.
	// Postgres returns "" and uses the citext type instead.
	CaseInsensitiveCollation() string
}

// DialectType selects a backend in Config.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect returns the dialect for the given type, defaulting to
// sqlite for anything unrecognized.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
