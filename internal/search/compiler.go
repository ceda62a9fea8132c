package search

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// articleColumns is the projection of the primary query. Owner and category
// columns come from LEFT JOINs and are NULL when the reference is broken.
var articleColumns = []string{
	"a.article_id",
	"a.title",
	"a.content_url",
	"a.views",
	"a.user_id",
	"a.category_id",
	"a.create_time",
	"a.update_time",
	"u.user_id AS u_user_id",
	"u.name AS u_name",
	"c.category_id AS c_category_id",
	"c.name AS c_name",
}

// likeEscaper neutralises LIKE metacharacters in caller input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Page bounds the result set. Offset is only applied together with a
// positive Limit.
type Page struct {
	Limit  int
	Offset int
}

// Compiled is a statement ready for execution. The number of placeholders in
// SQL always equals len(Args).
type Compiled struct {
	SQL  string
	Args []any
}

// Compiler turns predicate sets into parameterized SELECT statements.
//
// Placeholder numbering is owned by the squirrel builder: the tag join is
// added before the WHERE clause, so its parameters come first in both the
// text and the argument list.
type Compiler struct {
	dialect Dialect
}

func NewCompiler(d Dialect) *Compiler {
	return &Compiler{dialect: d}
}

func (c *Compiler) selectArticles() sq.SelectBuilder {
	return sq.Select(articleColumns...).
		From("articles a").
		LeftJoin("users u ON u.user_id = a.user_id").
		LeftJoin("categories c ON c.category_id = a.category_id").
		PlaceholderFormat(c.dialect.Placeholder())
}

// Where returns the scalar predicates in their fixed order. Each entry binds
// exactly one parameter.
func (c *Compiler) Where(p Predicates) sq.And {
	var where sq.And
	if p.Title != nil {
		where = append(where, c.dialect.ContainsFold("a.title", contains(*p.Title)))
	}
	if p.ContentURL != nil {
		where = append(where, c.dialect.ContainsFold("a.content_url", contains(*p.ContentURL)))
	}
	if p.OwnerID != nil {
		where = append(where, sq.Eq{"a.user_id": *p.OwnerID})
	}
	if p.CategoryID != nil {
		where = append(where, sq.Eq{"a.category_id": *p.CategoryID})
	}
	if p.MinViews != nil {
		where = append(where, sq.GtOrEq{"a.views": *p.MinViews})
	}
	if p.MaxViews != nil {
		where = append(where, sq.LtOrEq{"a.views": *p.MaxViews})
	}
	return where
}

// tagJoin builds the association join carrying the membership test.
func tagJoin(tagIDs []int64) (string, []any, error) {
	in, args, err := sq.Eq{"at.tag_id": tagIDs}.ToSql()
	if err != nil {
		return "", nil, err
	}
	return "article_tags at ON at.article_id = a.article_id AND " + in, args, nil
}

// Compile builds the search statement for p.
//
// Without predicates the statement has no WHERE clause and matches every
// article. A non-empty TagIDs matches articles having any of the tags;
// DISTINCT collapses articles matching through several of them.
func (c *Compiler) Compile(p Predicates, s Sort, page Page) (Compiled, error) {
	b := c.selectArticles()

	if tagIDs := uniqueIDs(p.TagIDs); len(tagIDs) > 0 {
		join, args, err := tagJoin(tagIDs)
		if err != nil {
			return Compiled{}, fmt.Errorf("compile tag join: %w", err)
		}
		b = b.Distinct().Join(join, args...)
	}

	if where := c.Where(p); len(where) > 0 {
		b = b.Where(where)
	}

	if terms := s.orderBy(); len(terms) > 0 {
		b = b.OrderBy(terms...)
	}

	if page.Limit > 0 {
		b = b.Limit(uint64(page.Limit))
		if page.Offset > 0 {
			b = b.Offset(uint64(page.Offset))
		}
	}

	return build(b)
}

// CompileByID builds the single-article lookup sharing the search projection.
func (c *Compiler) CompileByID(id int64) (Compiled, error) {
	return build(c.selectArticles().Where(sq.Eq{"a.article_id": id}))
}

func build(b sq.Sqlizer) (Compiled, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return Compiled{}, fmt.Errorf("compile search query: %w", err)
	}
	return Compiled{SQL: query, Args: args}, nil
}
