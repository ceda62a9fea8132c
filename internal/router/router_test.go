package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-cms/internal/config"
	"github.com/deppfellow/go-cms/internal/database"
	"github.com/deppfellow/go-cms/internal/errs"
	"github.com/deppfellow/go-cms/internal/handler"
	"github.com/deppfellow/go-cms/internal/metrics"
	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/repository"
	"github.com/deppfellow/go-cms/internal/search"
	"github.com/deppfellow/go-cms/internal/server"
	"github.com/deppfellow/go-cms/internal/service"
	dbtest "github.com/deppfellow/go-cms/internal/testutil"
)

type recordedViews struct {
	articles      []int64
	announcements []int64
}

func (v *recordedViews) EnqueueArticleView(_ context.Context, id int64) error {
	v.articles = append(v.articles, id)
	return nil
}

func (v *recordedViews) EnqueueAnnouncementView(_ context.Context, id int64) error {
	v.announcements = append(v.announcements, id)
	return nil
}

type api struct {
	t     *testing.T
	e     http.Handler
	views *recordedViews
}

func newAPI(t *testing.T) *api {
	t.Helper()

	logger := zerolog.Nop()
	obs := config.DefaultObservabilityConfig()
	obs.HealthChecks.Enabled = false

	cfg := &config.Config{
		Primary:       config.Primary{Env: "test"},
		Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		Search:        config.SearchConfig{DefaultLimit: 10, MaxLimit: 50},
		Observability: obs,
	}
	s := &server.Server{Config: cfg, Logger: &logger, DB: &database.Database{}}

	repos := repository.New(dbtest.NewSQLiteDB(t), search.SQLite{})
	views := &recordedViews{}
	services := &service.Services{
		Articles: service.NewArticleService(service.ArticleServiceDeps{
			Repo:    repos.Articles,
			Views:   views,
			Metrics: metrics.NewSearch(prometheus.NewRegistry()),
			Config:  cfg.Search,
			Logger:  &logger,
		}),
		Tags:          service.NewTagService(repos.Tags),
		Categories:    service.NewCategoryService(repos.Categories),
		Users:         service.NewUserService(repos.Users),
		Announcements: service.NewAnnouncementService(repos.Announcements, views, cfg.Search, &logger),
	}

	return &api{t: t, e: NewRouter(s, handler.NewHandlers(s, services)), views: views}
}

func (a *api) do(method, target, body string) *httptest.ResponseRecorder {
	a.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *api) seed() {
	a.t.Helper()
	for _, call := range []struct{ path, body string }{
		{"/api/v1/users", `{"name":"ada"}`},
		{"/api/v1/categories", `{"name":"engineering"}`},
		{"/api/v1/tags", `{"tag_name":"go"}`},
		{"/api/v1/tags", `{"tag_name":"sql"}`},
		{"/api/v1/articles", `{"title":"Generics in Go","content_url":"https://example.com/generics","user_id":1,"category_id":1,"tags":[1]}`},
		{"/api/v1/articles", `{"title":"Window functions","content_url":"https://example.com/sql","user_id":1,"category_id":1,"tags":[2,2]}`},
	} {
		rec := a.do(http.MethodPost, call.path, call.body)
		require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestArticleLifecycle(t *testing.T) {
	a := newAPI(t)
	a.seed()

	rec := a.do(http.MethodGet, "/api/v1/articles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Article](t, rec), 2)

	rec = a.do(http.MethodGet, "/api/v1/articles/search?tag_ids=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	found := decode[[]model.Article](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, "Window functions", found[0].Title)
	assert.Equal(t, []model.Tag{{ID: 2, Name: "sql"}}, found[0].Tags)
	require.NotNil(t, found[0].User)
	assert.Equal(t, "ada", found[0].User.Name)

	rec = a.do(http.MethodGet, "/api/v1/articles/search?title=GENERICS&order_by=article_id&order_dir=ASC", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Article](t, rec), 1)

	rec = a.do(http.MethodGet, "/api/v1/articles/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{1}, a.views.articles)

	rec = a.do(http.MethodDelete, "/api/v1/articles/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decode[model.Article](t, rec).ID)

	rec = a.do(http.MethodGet, "/api/v1/articles/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ARTICLE_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)
}

func TestSearchErrors(t *testing.T) {
	a := newAPI(t)

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"unknown column", "order_by=password", errs.CodeInvalidSortColumn},
		{"lowercase direction", "order_by=views&order_dir=asc", errs.CodeInvalidSortDirection},
		{"limit too large", "limit=51", errs.CodeInvalidPage},
		{"negative offset", "offset=-1", errs.CodeInvalidPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(http.MethodGet, "/api/v1/articles/search?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decode[errs.HTTPError](t, rec).Code)
		})
	}

	rec := a.do(http.MethodGet, "/api/v1/articles/search?user_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "user_id", decode[errs.HTTPError](t, rec).Errors[0].Field)
}

func TestCreateArticleValidation(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/v1/articles", `{"title":"","content_url":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	fields := map[string]bool{}
	for _, fe := range decode[errs.HTTPError](t, rec).Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["title"])
	assert.True(t, fields["content_url"])
	assert.True(t, fields["user_id"])

	rec = a.do(http.MethodPost, "/api/v1/articles", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTagLookupByName(t *testing.T) {
	a := newAPI(t)
	a.seed()

	rec := a.do(http.MethodGet, "/api/v1/tags?name=sql", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []model.Tag{{ID: 2, Name: "sql"}}, decode[[]model.Tag](t, rec))

	rec = a.do(http.MethodGet, "/api/v1/tags?name=rust", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "TAG_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)

	rec = a.do(http.MethodGet, "/api/v1/tags", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Tag](t, rec), 2)
}

func TestAnnouncements(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/v1/announcements", `{"title":"Launch","content_url":"https://example.com/launch"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.Announcement](t, rec)

	rec = a.do(http.MethodPatch, "/api/v1/announcements/1", `{"title":"Launch day"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Launch day", decode[model.Announcement](t, rec).Title)

	rec = a.do(http.MethodGet, "/api/v1/announcements/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{created.ID}, a.views.announcements)

	rec = a.do(http.MethodGet, "/api/v1/announcements?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Announcement](t, rec), 1)

	rec = a.do(http.MethodDelete, "/api/v1/announcements/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/api/v1/announcements/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ANNOUNCEMENT_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)
}

func TestSystemRoutes(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/api/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestEmptyListRendersArray(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/api/v1/users", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = a.do(http.MethodGet, "/api/v1/articles/search?title=nothing", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
