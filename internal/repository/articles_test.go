package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/search"
	"github.com/deppfellow/go-cms/internal/testutil"
)

func TestArticleCreateAttachesTags(t *testing.T) {
	repos, db := newTestRepos(t)
	testutil.NewSeed(t, db).
		User(1, "ada").
		Category(1, "golang").
		Tag(1, "go").
		Tag(2, "sql")

	article, err := repos.Articles.Create(context.Background(), model.NewArticle{
		Title:      "Batch loading",
		ContentURL: "https://cms.example.com/batch",
		UserID:     1,
		CategoryID: 1,
		TagIDs:     []int64{2, 1, 2},
	})
	require.NoError(t, err)

	assert.NotZero(t, article.ID)
	assert.Equal(t, "Batch loading", article.Title)
	assert.Zero(t, article.Views)
	assert.Equal(t, []model.Tag{{ID: 1, Name: "go"}, {ID: 2, Name: "sql"}}, article.Tags)
	require.NotNil(t, article.User)
	assert.Equal(t, "ada", article.User.Name)
	require.NotNil(t, article.Category)
	assert.Equal(t, "golang", article.Category.Name)

	assert.Equal(t, 2, count(t, db, `SELECT COUNT(*) FROM article_tags WHERE article_id = ?`, article.ID))
}

func TestArticleCreateWithoutTags(t *testing.T) {
	repos, db := newTestRepos(t)
	testutil.NewSeed(t, db).User(1, "ada").Category(1, "golang")

	article, err := repos.Articles.Create(context.Background(), model.NewArticle{
		Title: "Untagged", ContentURL: "u", UserID: 1, CategoryID: 1,
	})
	require.NoError(t, err)
	assert.NotNil(t, article.Tags)
	assert.Empty(t, article.Tags)
}

func TestArticleCreateRollsBackOnUnknownTag(t *testing.T) {
	repos, db := newTestRepos(t)
	testutil.NewSeed(t, db).User(1, "ada").Category(1, "golang").Tag(1, "go")

	_, err := repos.Articles.Create(context.Background(), model.NewArticle{
		Title: "Broken", ContentURL: "b", UserID: 1, CategoryID: 1, TagIDs: []int64{1, 99},
	})
	require.Error(t, err)

	assert.Zero(t, count(t, db, `SELECT COUNT(*) FROM articles`))
	assert.Zero(t, count(t, db, `SELECT COUNT(*) FROM article_tags`))
}

func TestArticleDeleteRemovesAssociationsFirst(t *testing.T) {
	repos, db := newTestRepos(t)
	testutil.NewSeed(t, db).
		User(1, "ada").
		Category(1, "golang").
		Tag(1, "go").
		Tag(2, "sql").
		Article(1, "Doomed", "d", 10, 1, 1, 1, 2).
		Article(2, "Survivor", "s", 5, 1, 1, 1)

	deleted, err := repos.Articles.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.ID)
	assert.Len(t, deleted.Tags, 2)

	assert.Zero(t, count(t, db, `SELECT COUNT(*) FROM article_tags WHERE article_id = 1`))
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM article_tags WHERE article_id = 2`))
	assert.Equal(t, 2, count(t, db, `SELECT COUNT(*) FROM tags`))

	_, err = repos.Articles.GetByID(context.Background(), 1)
	requireNotFound(t, err, "Article not found")
}

func TestArticleDeleteMissing(t *testing.T) {
	repos, _ := newTestRepos(t)

	_, err := repos.Articles.Delete(context.Background(), 404)
	requireNotFound(t, err, "Article not found")
}

func TestArticleIncrementViews(t *testing.T) {
	repos, db := newTestRepos(t)
	testutil.NewSeed(t, db).User(1, "ada").Category(1, "golang").Article(1, "A", "a", 41, 1, 1)

	require.NoError(t, repos.Articles.IncrementViews(context.Background(), 1))

	article, err := repos.Articles.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 42, article.Views)

	requireNotFound(t, repos.Articles.IncrementViews(context.Background(), 2), "Article not found")
}

func TestArticleSearchPassesSortErrorsThrough(t *testing.T) {
	repos, _ := newTestRepos(t)

	_, err := repos.Articles.Search(context.Background(), search.Predicates{}, "password", search.Asc, 0, 0)
	require.ErrorIs(t, err, search.ErrInvalidSortColumn)
}

func TestArticleSearch(t *testing.T) {
	repos, db := newTestRepos(t)
	testutil.NewSeed(t, db).
		User(1, "ada").
		Category(1, "golang").
		Tag(1, "go").
		Article(1, "Go generics", "g", 10, 1, 1, 1).
		Article(2, "Rust traits", "r", 20, 1, 1)

	title := "GO"
	articles, err := repos.Articles.Search(context.Background(),
		search.Predicates{Title: &title}, "views", search.Desc, 10, 0)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, int64(1), articles[0].ID)
}
