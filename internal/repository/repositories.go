// Package repository persists and loads the CMS entities.
//
// Statements are built with squirrel using the placeholder format of the
// configured dialect and executed through sqlx, so the same code runs
// against PostgreSQL in production and SQLite in tests. Missing rows are
// reported as sql.ErrNoRows wrapped with a "table:<name>:" message, which
// sqlerr.HandleError turns into a 404.
package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/deppfellow/go-cms/internal/search"
	"github.com/deppfellow/go-cms/internal/server"
)

// Repositories is the container handed to the service layer.
type Repositories struct {
	Articles      *ArticleRepository
	Tags          *TagRepository
	Categories    *CategoryRepository
	Users         *UserRepository
	Announcements *AnnouncementRepository
}

// NewRepositories wires every repository to the server's database.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.DB, search.Postgres{})
}

// New builds the repositories over db using dialect d.
func New(db *sqlx.DB, d search.Dialect) *Repositories {
	return &Repositories{
		Articles:      NewArticleRepository(db, d),
		Tags:          NewTagRepository(db, d),
		Categories:    NewCategoryRepository(db, d),
		Users:         NewUserRepository(db, d),
		Announcements: NewAnnouncementRepository(db, d),
	}
}

// base carries what every repository needs to build and run statements.
type base struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

func newBase(db *sqlx.DB, d search.Dialect) base {
	return base{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(d.Placeholder()),
	}
}

func notFound(table string) error {
	return errors.Wrap(sql.ErrNoRows, "table:"+table+":")
}

// checkAffected turns an update or delete that touched nothing into a not
// found error for table.
func checkAffected(res sql.Result, table string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return notFound(table)
	}
	return nil
}

// getOne runs b and scans the single row into dest, mapping an empty result
// to a not found error for table.
func getOne(ctx context.Context, q sqlx.QueryerContext, dest any, b sq.Sqlizer, table string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "build query")
	}
	if err := sqlx.GetContext(ctx, q, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(table)
		}
		return errors.Wrapf(err, "select %s", table)
	}
	return nil
}

func selectAll(ctx context.Context, q sqlx.QueryerContext, dest any, b sq.Sqlizer, table string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "build query")
	}
	if err := sqlx.SelectContext(ctx, q, dest, query, args...); err != nil {
		return errors.Wrapf(err, "select %s", table)
	}
	return nil
}

func exec(ctx context.Context, e sqlx.ExecerContext, b sq.Sqlizer, op string) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build query")
	}
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return res, nil
}

// insertID runs an INSERT ... RETURNING <id> and returns the new id.
func insertID(ctx context.Context, q sqlx.QueryerContext, b sq.InsertBuilder, idColumn, table string) (int64, error) {
	query, args, err := b.Suffix("RETURNING " + idColumn).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build query")
	}
	var id int64
	if err := q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, errors.Wrapf(err, "insert %s", table)
	}
	return id, nil
}
