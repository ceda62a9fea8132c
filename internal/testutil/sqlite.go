// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	_ "embed"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

// NewSQLiteDB opens an in-memory SQLite database with the application schema
// and foreign keys enforced.
//
// The pool is capped at a single connection: every new connection to
// ":memory:" would otherwise see its own empty database.
func NewSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	_, err = db.Exec(sqliteSchema)
	require.NoError(t, err, "apply sqlite schema")

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Seed is a small fluent helper for inserting fixture rows.
type Seed struct {
	t  *testing.T
	db *sqlx.DB
}

func NewSeed(t *testing.T, db *sqlx.DB) *Seed {
	return &Seed{t: t, db: db}
}

func (s *Seed) exec(query string, args ...any) {
	s.t.Helper()
	_, err := s.db.Exec(query, args...)
	require.NoError(s.t, err, query)
}

func (s *Seed) User(id int64, name string) *Seed {
	s.exec(`INSERT INTO users (user_id, name) VALUES (?, ?)`, id, name)
	return s
}

func (s *Seed) Category(id int64, name string) *Seed {
	s.exec(`INSERT INTO categories (category_id, name) VALUES (?, ?)`, id, name)
	return s
}

func (s *Seed) Tag(id int64, name string) *Seed {
	s.exec(`INSERT INTO tags (tag_id, tag_name) VALUES (?, ?)`, id, name)
	return s
}

// Article inserts an article with an explicit id and attaches tagIDs.
func (s *Seed) Article(id int64, title, url string, views int, userID, categoryID int64, tagIDs ...int64) *Seed {
	s.exec(
		`INSERT INTO articles (article_id, title, content_url, views, user_id, category_id) VALUES (?, ?, ?, ?, ?, ?)`,
		id, title, url, views, userID, categoryID,
	)
	for _, tagID := range tagIDs {
		s.exec(`INSERT INTO article_tags (article_id, tag_id) VALUES (?, ?)`, id, tagID)
	}
	return s
}
