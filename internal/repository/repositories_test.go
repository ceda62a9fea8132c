package repository

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-cms/internal/errs"
	"github.com/deppfellow/go-cms/internal/search"
	"github.com/deppfellow/go-cms/internal/sqlerr"
	"github.com/deppfellow/go-cms/internal/testutil"
)

func newTestRepos(t *testing.T) (*Repositories, *sqlx.DB) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	return New(db, search.SQLite{}), db
}

func count(t *testing.T, db *sqlx.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, query, args...))
	return n
}

func requireNotFound(t *testing.T, err error, message string) {
	t.Helper()
	require.ErrorIs(t, err, sql.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, sqlerr.HandleError(err), &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func TestNotFoundMapsToEntity(t *testing.T) {
	requireNotFound(t, notFound(articlesTable), "Article not found")
	requireNotFound(t, notFound(categoriesTable), "Category not found")
}
