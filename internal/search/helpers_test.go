package search

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/testutil"
)

// countingQuerier records the queries issued through it.
type countingQuerier struct {
	Querier
	queries []string
}

func (c *countingQuerier) QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error) {
	c.queries = append(c.queries, query)
	return c.Querier.QueryxContext(ctx, query, args...)
}

// seedFixture inserts four articles:
//
//	1 "Alpha Go"      views 50   owner 1  category 1  tags {T1}
//	2 "Beta Rust"     views 150  owner 2  category 1  tags {T2}
//	3 "Gamma go tips" views 200  owner 1  category 2  tags {T1, T2}
//	4 "Delta"         views 120  owner 2  category 2  no tags
func seedFixture(t *testing.T) *sqlx.DB {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	testutil.NewSeed(t, db).
		User(1, "alice").
		User(2, "bob").
		Category(1, "news").
		Category(2, "tutorials").
		Tag(1, "T1").
		Tag(2, "T2").
		Article(1, "Alpha Go", "https://example.com/a", 50, 1, 1, 1).
		Article(2, "Beta Rust", "https://example.com/b", 150, 2, 1, 2).
		Article(3, "Gamma go tips", "https://blog.test/c", 200, 1, 2, 1, 2).
		Article(4, "Delta", "https://blog.test/d", 120, 2, 2)
	return db
}

func articleIDs(articles []model.Article) []int64 {
	out := make([]int64, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}
