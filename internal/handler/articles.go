package handler

import (
	"net/url"

	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/search"
	"github.com/deppfellow/go-cms/internal/server"
	"github.com/deppfellow/go-cms/internal/service"
	"github.com/deppfellow/go-cms/internal/validation"
	"github.com/labstack/echo/v4"
)

type ArticleHandler struct {
	Handler
	articles *service.ArticleService
}

func NewArticleHandler(s *server.Server, articles *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{Handler: NewHandler(s), articles: articles}
}

// PageRequest is the limit/offset pair shared by list endpoints.
type PageRequest struct {
	Limit  *int
	Offset *int
}

func (p *PageRequest) bindPage(c echo.Context, b *echo.ValueBinder) {
	q := c.QueryParams()
	p.Limit = optional(q, "limit", b.Int)
	p.Offset = optional(q, "offset", b.Int)
}

type ListArticlesRequest struct {
	PageRequest
	OrderBy  string
	OrderDir string
}

func (r *ListArticlesRequest) Bind(c echo.Context) error {
	b := echo.QueryParamsBinder(c)
	r.bindPage(c, b)
	return b.
		String("order_by", &r.OrderBy).
		String("order_dir", &r.OrderDir).
		BindError()
}

func (r *ListArticlesRequest) Validate() error {
	return nil
}

// SearchArticlesRequest holds the search query string. Absent and empty
// parameters leave their predicate unset.
type SearchArticlesRequest struct {
	PageRequest
	Title      *string
	ContentURL *string
	UserID     *int64  `validate:"omitempty,gt=0"`
	CategoryID *int64  `validate:"omitempty,gt=0"`
	MinViews   *int    `validate:"omitempty,min=0"`
	MaxViews   *int    `validate:"omitempty,min=0"`
	TagIDs     []int64 `validate:"dive,gt=0"`
	OrderBy    string
	OrderDir   string
}

func (r *SearchArticlesRequest) Bind(c echo.Context) error {
	q := c.QueryParams()
	b := echo.QueryParamsBinder(c)

	r.Title = optional(q, "title", b.String)
	r.ContentURL = optional(q, "content_url", b.String)
	r.UserID = optional(q, "user_id", b.Int64)
	r.CategoryID = optional(q, "category_id", b.Int64)
	r.MinViews = optional(q, "min_views", b.Int)
	r.MaxViews = optional(q, "max_views", b.Int)
	r.bindPage(c, b)

	return b.
		Int64s("tag_ids", &r.TagIDs).
		String("order_by", &r.OrderBy).
		String("order_dir", &r.OrderDir).
		BindError()
}

func (r *SearchArticlesRequest) Validate() error {
	return validation.Struct(r)
}

func (r *SearchArticlesRequest) Input() service.SearchInput {
	return service.SearchInput{
		Predicates: search.Predicates{
			Title:      r.Title,
			ContentURL: r.ContentURL,
			OwnerID:    r.UserID,
			CategoryID: r.CategoryID,
			MinViews:   r.MinViews,
			MaxViews:   r.MaxViews,
			TagIDs:     r.TagIDs,
		},
		OrderBy:  r.OrderBy,
		OrderDir: r.OrderDir,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
}

// optional binds a query parameter only when it carries a value.
func optional[T any](q url.Values, name string, bind func(string, *T) *echo.ValueBinder) *T {
	if q.Get(name) == "" {
		return nil
	}
	v := new(T)
	bind(name, v)
	return v
}

type CreateArticleRequest struct {
	Title      string  `json:"title" validate:"required,max=255"`
	ContentURL string  `json:"content_url" validate:"required,url"`
	UserID     int64   `json:"user_id" validate:"required,gt=0"`
	CategoryID int64   `json:"category_id" validate:"required,gt=0"`
	Tags       []int64 `json:"tags" validate:"dive,gt=0"`
}

func (r *CreateArticleRequest) Validate() error {
	return validation.Struct(r)
}

func (h *ArticleHandler) ListArticles(c echo.Context, req *ListArticlesRequest) ([]model.Article, error) {
	return h.articles.List(c.Request().Context(), service.SearchInput{
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
}

func (h *ArticleHandler) SearchArticles(c echo.Context, req *SearchArticlesRequest) ([]model.Article, error) {
	return h.articles.Search(c.Request().Context(), req.Input())
}

func (h *ArticleHandler) GetArticle(c echo.Context, req *IDRequest) (*model.Article, error) {
	return h.articles.GetByID(c.Request().Context(), req.ID)
}

func (h *ArticleHandler) CreateArticle(c echo.Context, req *CreateArticleRequest) (*model.Article, error) {
	return h.articles.Create(c.Request().Context(), model.NewArticle{
		Title:      req.Title,
		ContentURL: req.ContentURL,
		UserID:     req.UserID,
		CategoryID: req.CategoryID,
		TagIDs:     req.Tags,
	})
}

func (h *ArticleHandler) DeleteArticle(c echo.Context, req *IDRequest) (*model.Article, error) {
	return h.articles.Delete(c.Request().Context(), req.ID)
}
