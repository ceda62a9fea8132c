package search

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/go-cms/internal/model"
)

// Engine runs article searches against a Querier.
//
// It holds no per-call state. WithQuerier rebinds it to a transaction so a
// write path can read back what it wrote from the same snapshot.
type Engine struct {
	q        Querier
	dialect  Dialect
	compiler *Compiler
}

func NewEngine(q Querier, d Dialect) *Engine {
	return &Engine{
		q:        q,
		dialect:  d,
		compiler: NewCompiler(d),
	}
}

// WithQuerier returns a copy of e bound to q.
func (e *Engine) WithQuerier(q Querier) *Engine {
	return &Engine{
		q:        q,
		dialect:  e.dialect,
		compiler: e.compiler,
	}
}

// Compiler exposes the compiler used by the engine.
func (e *Engine) Compiler() *Compiler {
	return e.compiler
}

// Search returns the articles matching p, ordered by sortColumn and
// sortDirection, each carrying its full tag list.
//
// Sort identifiers are validated before any query is issued. A non-positive
// limit disables paging.
func (e *Engine) Search(
	ctx context.Context,
	p Predicates,
	sortColumn, sortDirection string,
	limit, offset int,
) ([]model.Article, error) {
	s, err := ValidateSort(sortColumn, sortDirection)
	if err != nil {
		return nil, err
	}

	compiled, err := e.compiler.Compile(p, s, Page{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	return e.Execute(ctx, compiled)
}

// Get returns a single article, or nil when it does not exist.
func (e *Engine) Get(ctx context.Context, id int64) (*model.Article, error) {
	compiled, err := e.compiler.CompileByID(id)
	if err != nil {
		return nil, err
	}

	articles, err := e.Execute(ctx, compiled)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, nil
	}
	return &articles[0], nil
}

// Execute runs a compiled article query, then loads the tags of every row
// with one batched query and assembles the result.
func (e *Engine) Execute(ctx context.Context, compiled Compiled) ([]model.Article, error) {
	var rows []Row
	if err := sqlx.SelectContext(ctx, e.q, &rows, compiled.SQL, compiled.Args...); err != nil {
		return nil, &StorageError{Op: "select articles", Err: err}
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}

	tags, err := e.LoadTags(ctx, ids)
	if err != nil {
		return nil, err
	}

	return Assemble(rows, tags), nil
}

type articleTag struct {
	ArticleID int64 `db:"article_id"`
	model.Tag
}

// LoadTags returns the tags of every article in ids, ordered by tag id.
// Articles without tags map to an empty slice.
func (e *Engine) LoadTags(ctx context.Context, ids []int64) (map[int64][]model.Tag, error) {
	grouped, err := LoadMany(ctx, e.q, ids,
		func(keys []int64) sq.Sqlizer {
			return sq.Select("at.article_id", "t.tag_id", "t.tag_name").
				From("article_tags at").
				Join("tags t ON t.tag_id = at.tag_id").
				Where(sq.Eq{"at.article_id": keys}).
				OrderBy("at.article_id", "t.tag_id").
				PlaceholderFormat(e.dialect.Placeholder())
		},
		func(row articleTag) int64 { return row.ArticleID },
	)
	if err != nil {
		return nil, err
	}

	tags := make(map[int64][]model.Tag, len(grouped))
	for id, rows := range grouped {
		list := make([]model.Tag, len(rows))
		for i, r := range rows {
			list[i] = r.Tag
		}
		tags[id] = list
	}
	return tags, nil
}
