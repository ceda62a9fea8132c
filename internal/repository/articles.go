package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/go-cms/internal/database"
	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/search"
)

const articlesTable = "articles"

// ArticleRepository owns articles and their tag associations. Reads go
// through the search engine so every returned article is fully assembled.
type ArticleRepository struct {
	base
	engine *search.Engine
}

func NewArticleRepository(db *sqlx.DB, d search.Dialect) *ArticleRepository {
	return &ArticleRepository{
		base:   newBase(db, d),
		engine: search.NewEngine(db, d),
	}
}

// Search passes through to the search engine. Sort validation errors and
// *search.StorageError are returned unchanged.
func (r *ArticleRepository) Search(
	ctx context.Context,
	p search.Predicates,
	sortColumn, sortDirection string,
	limit, offset int,
) ([]model.Article, error) {
	return r.engine.Search(ctx, p, sortColumn, sortDirection, limit, offset)
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	return getArticle(ctx, r.engine, id)
}

func getArticle(ctx context.Context, engine *search.Engine, id int64) (*model.Article, error) {
	article, err := engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, notFound(articlesTable)
	}
	return article, nil
}

// Create inserts the article and its tag associations and reads the result
// back, all in one transaction. Duplicate tag ids are attached once.
func (r *ArticleRepository) Create(ctx context.Context, in model.NewArticle) (*model.Article, error) {
	var created *model.Article

	err := database.Transact(ctx, r.db, func(tx *sqlx.Tx) error {
		id, err := insertID(ctx, tx,
			r.sb.Insert(articlesTable).
				Columns("title", "content_url", "user_id", "category_id").
				Values(in.Title, in.ContentURL, in.UserID, in.CategoryID),
			"article_id", articlesTable,
		)
		if err != nil {
			return err
		}

		if tagIDs := dedupe(in.TagIDs); len(tagIDs) > 0 {
			insert := r.sb.Insert("article_tags").Columns("article_id", "tag_id")
			for _, tagID := range tagIDs {
				insert = insert.Values(id, tagID)
			}
			if _, err := exec(ctx, tx, insert, "insert article tags"); err != nil {
				return err
			}
		}

		created, err = getArticle(ctx, r.engine.WithQuerier(tx), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes the article and returns it as it was. Association rows are
// deleted first, in the same transaction.
func (r *ArticleRepository) Delete(ctx context.Context, id int64) (*model.Article, error) {
	var deleted *model.Article

	err := database.Transact(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		deleted, err = getArticle(ctx, r.engine.WithQuerier(tx), id)
		if err != nil {
			return err
		}

		if _, err := exec(ctx, tx,
			r.sb.Delete("article_tags").Where(sq.Eq{"article_id": id}),
			"delete article tags",
		); err != nil {
			return err
		}

		res, err := exec(ctx, tx,
			r.sb.Delete(articlesTable).Where(sq.Eq{"article_id": id}),
			"delete article",
		)
		if err != nil {
			return err
		}
		return checkAffected(res, articlesTable)
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// IncrementViews adds one view to the article.
func (r *ArticleRepository) IncrementViews(ctx context.Context, id int64) error {
	res, err := exec(ctx, r.db,
		r.sb.Update(articlesTable).
			Set("views", sq.Expr("views + 1")).
			Where(sq.Eq{"article_id": id}),
		"increment article views",
	)
	if err != nil {
		return err
	}
	return checkAffected(res, articlesTable)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

