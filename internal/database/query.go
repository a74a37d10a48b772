package database

import (
	"strings"
)

// QueryBuilder rewrites ?-placeholder queries into the active
// dialect's placeholder style.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder creates a QueryBuilder for the given dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build converts ? placeholders for the active dialect. On sqlite the
// query passes through unchanged; on postgres each ? becomes the next
// numbered marker:
//
//	"SELECT name FROM characters WHERE id = ? AND room_id = ?"
//	becomes
//	"SELECT name FROM characters WHERE id = $1 AND room_id = $2"
func (qb *QueryBuilder) Build(query string) string {
	if _, ok := qb.dialect.(*SQLiteDialect); ok {
		return query
	}

	var result strings.Builder
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result.WriteString(qb.dialect.Placeholder(position))
			position++
		} else {
			result.WriteByte(query[i])
		}
	}
	return result.String()
}

// BuildWithReturning builds the query and appends a RETURNING clause
// when the dialect can't report the inserted ID through sql.Result.
// The insert helper pairs this with QueryRow instead of Exec.
func (qb *QueryBuilder) BuildWithReturning(query string, column string) string {
	converted := qb.Build(query)
	if !qb.dialect.SupportsLastInsertID() {
		converted += qb.dialect.ReturningClause(column)
	}
	return converted
}
