package search

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Dialect captures the few places where PostgreSQL and SQLite disagree.
type Dialect interface {
	// Name returns the sqlx driver name of the dialect.
	Name() string

	// Placeholder returns the bind variable format.
	//   - sq.Dollar:   $1, $2 (PostgreSQL)
	//   - sq.Question: ?      (SQLite)
	Placeholder() sq.PlaceholderFormat

	// ContainsFold matches column case-insensitively against an already
	// escaped LIKE pattern.
	ContainsFold(column, pattern string) sq.Sqlizer
}

// Postgres is the production dialect.
type Postgres struct{}

func (Postgres) Name() string { return "pgx" }

func (Postgres) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

// ContainsFold uses ILIKE. Backslash is the default escape character.
func (Postgres) ContainsFold(column, pattern string) sq.Sqlizer {
	return sq.ILike{column: pattern}
}

// SQLite is used by tests and local tooling.
type SQLite struct{}

func (SQLite) Name() string { return "sqlite3" }

func (SQLite) Placeholder() sq.PlaceholderFormat { return sq.Question }

// ContainsFold relies on LIKE being case-insensitive for ASCII in SQLite.
// SQLite has no default escape character, so it is declared explicitly.
func (SQLite) ContainsFold(column, pattern string) sq.Sqlizer {
	return sq.Expr(column+` LIKE ? ESCAPE '\'`, pattern)
}

// DialectFor resolves a dialect from a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "pgx", "postgres":
		return Postgres{}, nil
	case "sqlite3":
		return SQLite{}, nil
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
}
