package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-cms/internal/config"
	"github.com/deppfellow/go-cms/internal/errs"
	"github.com/deppfellow/go-cms/internal/metrics"
	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/repository"
	"github.com/deppfellow/go-cms/internal/search"
	dbtest "github.com/deppfellow/go-cms/internal/testutil"
)

type fakeViews struct {
	articles      []int64
	announcements []int64
	err           error
}

func (f *fakeViews) EnqueueArticleView(_ context.Context, id int64) error {
	f.articles = append(f.articles, id)
	return f.err
}

func (f *fakeViews) EnqueueAnnouncementView(_ context.Context, id int64) error {
	f.announcements = append(f.announcements, id)
	return f.err
}

type fixture struct {
	articles      *ArticleService
	announcements *AnnouncementService
	tags          *TagService
	views         *fakeViews
	metrics       *metrics.Search
	seed          *dbtest.Seed
}

func newFixture(t *testing.T, cfg config.SearchConfig) *fixture {
	t.Helper()

	db := dbtest.NewSQLiteDB(t)
	repos := repository.New(db, search.SQLite{})
	logger := zerolog.Nop()
	views := &fakeViews{}
	m := metrics.NewSearch(prometheus.NewRegistry())

	return &fixture{
		articles: NewArticleService(ArticleServiceDeps{
			Repo:    repos.Articles,
			Views:   views,
			Metrics: m,
			Config:  cfg,
			Logger:  &logger,
		}),
		announcements: NewAnnouncementService(repos.Announcements, views, cfg, &logger),
		tags:          NewTagService(repos.Tags),
		views:         views,
		metrics:       m,
		seed:          dbtest.NewSeed(t, db),
	}
}

func defaultSearchConfig() config.SearchConfig {
	return config.SearchConfig{DefaultLimit: 2, MaxLimit: 3}
}

func requireHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, code, httpErr.Code)
}

func seedArticles(f *fixture) {
	f.seed.
		User(1, "ada").
		Category(1, "golang").
		Tag(1, "go").
		Article(1, "First", "a", 5, 1, 1, 1).
		Article(2, "Second", "b", 50, 1, 1).
		Article(3, "Third", "c", 500, 1, 1, 1)
}

func ids(articles []model.Article) []int64 {
	out := make([]int64, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func intPtr(i int) *int { return &i }
