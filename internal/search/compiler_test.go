package search

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

var dollarPlaceholder = regexp.MustCompile(`\$(\d+)`)

// placeholderIndexes returns the $N indexes in order of appearance.
func placeholderIndexes(t *testing.T, query string) []int {
	t.Helper()
	var idx []int
	for _, m := range dollarPlaceholder.FindAllStringSubmatch(query, -1) {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		idx = append(idx, n)
	}
	return idx
}

func TestCompile_NoPredicatesMatchesEverything(t *testing.T) {
	c := NewCompiler(Postgres{})

	compiled, err := c.Compile(Predicates{}, Sort{}, Page{})
	require.NoError(t, err)

	assert.NotContains(t, compiled.SQL, "WHERE")
	assert.NotContains(t, compiled.SQL, "article_tags")
	assert.NotContains(t, compiled.SQL, "DISTINCT")
	assert.NotContains(t, compiled.SQL, "ORDER BY")
	assert.Empty(t, compiled.Args)
	assert.Contains(t, compiled.SQL, "LEFT JOIN users u ON u.user_id = a.user_id")
	assert.Contains(t, compiled.SQL, "LEFT JOIN categories c ON c.category_id = a.category_id")
}

func TestCompile_ScalarPredicatesInFixedOrder(t *testing.T) {
	c := NewCompiler(Postgres{})

	compiled, err := c.Compile(Predicates{
		MaxViews:   ptr(200),
		MinViews:   ptr(100),
		CategoryID: ptr(int64(7)),
		OwnerID:    ptr(int64(3)),
		ContentURL: ptr("example.com"),
		Title:      ptr("Go"),
	}, Sort{}, Page{})
	require.NoError(t, err)

	assert.Contains(t, compiled.SQL,
		"WHERE (a.title ILIKE $1 AND a.content_url ILIKE $2 AND a.user_id = $3 AND a.category_id = $4 AND a.views >= $5 AND a.views <= $6)")
	assert.Equal(t, []any{"%Go%", "%example.com%", int64(3), int64(7), 100, 200}, compiled.Args)
}

func TestCompile_TagParametersComeFirst(t *testing.T) {
	c := NewCompiler(Postgres{})

	compiled, err := c.Compile(Predicates{
		Title:    ptr("go"),
		MinViews: ptr(10),
		TagIDs:   []int64{11, 12},
	}, Sort{}, Page{})
	require.NoError(t, err)

	assert.Contains(t, compiled.SQL, "SELECT DISTINCT")
	assert.Contains(t, compiled.SQL,
		"JOIN article_tags at ON at.article_id = a.article_id AND at.tag_id IN ($1,$2)")
	assert.Contains(t, compiled.SQL, "WHERE (a.title ILIKE $3 AND a.views >= $4)")
	assert.Equal(t, []any{int64(11), int64(12), "%go%", 10}, compiled.Args)

	joinAt := strings.Index(compiled.SQL, "article_tags")
	whereAt := strings.Index(compiled.SQL, "WHERE")
	assert.Less(t, joinAt, whereAt)
}

func TestCompile_PlaceholdersMatchArguments(t *testing.T) {
	c := NewCompiler(Postgres{})

	cases := map[string]Predicates{
		"empty":      {},
		"tags only":  {TagIDs: []int64{1}},
		"title only": {Title: ptr("x")},
		"range":      {MinViews: ptr(0), MaxViews: ptr(5)},
		"everything": {
			Title: ptr("a"), ContentURL: ptr("b"), OwnerID: ptr(int64(1)), CategoryID: ptr(int64(2)),
			MinViews: ptr(1), MaxViews: ptr(9), TagIDs: []int64{4, 5, 6},
		},
	}

	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := ValidateSort("views", Desc)
			require.NoError(t, err)

			compiled, err := c.Compile(p, s, Page{Limit: 10, Offset: 20})
			require.NoError(t, err)

			idx := placeholderIndexes(t, compiled.SQL)
			require.Len(t, idx, len(compiled.Args))
			for i, n := range idx {
				assert.Equal(t, i+1, n, "placeholders are numbered in order")
			}
		})
	}
}

func TestCompile_DuplicateTagIDsCollapse(t *testing.T) {
	c := NewCompiler(Postgres{})

	compiled, err := c.Compile(Predicates{TagIDs: []int64{5, 5, 6, 5}}, Sort{}, Page{})
	require.NoError(t, err)

	assert.Equal(t, []any{int64(5), int64(6)}, compiled.Args)
}

func TestCompile_EscapesLikeMetacharacters(t *testing.T) {
	c := NewCompiler(Postgres{})

	compiled, err := c.Compile(Predicates{Title: ptr(`100%_off\`)}, Sort{}, Page{})
	require.NoError(t, err)

	require.Len(t, compiled.Args, 1)
	assert.Equal(t, `%100\%\_off\\%`, compiled.Args[0])
	assert.NotContains(t, compiled.SQL, "100", "caller values never reach the query text")
}

func TestCompile_OrderAndPaging(t *testing.T) {
	c := NewCompiler(Postgres{})
	s, err := ValidateSort("views", Asc)
	require.NoError(t, err)

	compiled, err := c.Compile(Predicates{}, s, Page{Limit: 10, Offset: 30})
	require.NoError(t, err)

	assert.Contains(t, compiled.SQL, "ORDER BY a.views ASC, a.article_id ASC")
	assert.Contains(t, compiled.SQL, "LIMIT 10")
	assert.Contains(t, compiled.SQL, "OFFSET 30")
}

func TestCompile_OffsetRequiresLimit(t *testing.T) {
	c := NewCompiler(Postgres{})

	compiled, err := c.Compile(Predicates{}, Sort{}, Page{Offset: 30})
	require.NoError(t, err)

	assert.NotContains(t, compiled.SQL, "LIMIT")
	assert.NotContains(t, compiled.SQL, "OFFSET")
}

func TestCompile_SQLiteDialect(t *testing.T) {
	c := NewCompiler(SQLite{})

	compiled, err := c.Compile(Predicates{
		Title:  ptr("go"),
		TagIDs: []int64{1},
	}, Sort{}, Page{})
	require.NoError(t, err)

	assert.Contains(t, compiled.SQL, `a.title LIKE ? ESCAPE '\'`)
	assert.Contains(t, compiled.SQL, "at.tag_id IN (?)")
	assert.NotContains(t, compiled.SQL, "$1")
	assert.Equal(t, []any{int64(1), "%go%"}, compiled.Args)
}

func TestCompileByID(t *testing.T) {
	c := NewCompiler(Postgres{})

	compiled, err := c.CompileByID(42)
	require.NoError(t, err)

	assert.Contains(t, compiled.SQL, "WHERE a.article_id = $1")
	assert.Equal(t, []any{int64(42)}, compiled.Args)
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("pgx")
	require.NoError(t, err)
	assert.Equal(t, Postgres{}, d)

	d, err = DialectFor("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, SQLite{}, d)

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}
