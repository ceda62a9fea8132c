package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/go-cms/internal/config"
	"github.com/deppfellow/go-cms/internal/errs"
	"github.com/deppfellow/go-cms/internal/metrics"
	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/repository"
	"github.com/deppfellow/go-cms/internal/search"
	"github.com/deppfellow/go-cms/internal/sqlerr"
)

// Sort applied when a search names none.
const (
	DefaultSortColumn    = "create_time"
	DefaultSortDirection = search.Desc
)

// SearchInput is a search request after binding. Empty sort fields and nil
// paging fields take defaults.
type SearchInput struct {
	Predicates search.Predicates
	OrderBy    string
	OrderDir   string
	Limit      *int
	Offset     *int
}

type ArticleServiceDeps struct {
	Repo          *repository.ArticleRepository
	Views         ViewEnqueuer
	Metrics       *metrics.Search
	Config        config.SearchConfig
	SlowThreshold time.Duration
	Logger        *zerolog.Logger
}

type ArticleService struct {
	ArticleServiceDeps
}

func NewArticleService(deps ArticleServiceDeps) *ArticleService {
	return &ArticleService{ArticleServiceDeps: deps}
}

// Search runs a filtered search. With search.require_predicate enabled an
// input without any predicate is rejected.
func (s *ArticleService) Search(ctx context.Context, in SearchInput) ([]model.Article, error) {
	if s.Config.RequirePredicate && in.Predicates.IsEmpty() {
		s.Metrics.Observe(metrics.OutcomeEmptyPredicates, 0)
		return nil, errs.NewBadRequestWithCode(errs.CodeEmptyPredicateSet, search.ErrEmptyPredicateSet.Error())
	}
	return s.run(ctx, in)
}

// List returns every article, paged and sorted like Search.
func (s *ArticleService) List(ctx context.Context, in SearchInput) ([]model.Article, error) {
	in.Predicates = search.Predicates{}
	return s.run(ctx, in)
}

func (s *ArticleService) run(ctx context.Context, in SearchInput) ([]model.Article, error) {
	limit, offset, err := s.page(in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}

	column, direction := in.OrderBy, in.OrderDir
	if column == "" {
		column = DefaultSortColumn
	}
	if direction == "" {
		direction = DefaultSortDirection
	}

	start := time.Now()
	articles, err := s.Repo.Search(ctx, in.Predicates, column, direction, limit, offset)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, search.ErrInvalidSortColumn):
		s.Metrics.Observe(metrics.OutcomeInvalidSort, 0)
		return nil, errs.NewBadRequestWithCode(errs.CodeInvalidSortColumn, err.Error())
	case errors.Is(err, search.ErrInvalidSortDirection):
		s.Metrics.Observe(metrics.OutcomeInvalidSort, 0)
		return nil, errs.NewBadRequestWithCode(errs.CodeInvalidSortDirection, err.Error())
	case err != nil:
		s.Metrics.Observe(metrics.OutcomeError, elapsed)
		s.Logger.Error().Err(err).Msg("article search failed")
		return nil, sqlerr.HandleError(err)
	}

	s.Metrics.Observe(metrics.OutcomeOK, elapsed)
	if s.SlowThreshold > 0 && elapsed > s.SlowThreshold {
		s.Logger.Warn().
			Dur("elapsed", elapsed).
			Str("order_by", column).
			Int("results", len(articles)).
			Msg("slow article search")
	}

	return articles, nil
}

func (s *ArticleService) page(limit, offset *int) (int, int, error) {
	l, o := s.Config.DefaultLimit, 0
	if limit != nil {
		l = *limit
	}
	if offset != nil {
		o = *offset
	}

	if l < 1 || l > s.Config.MaxLimit {
		return 0, 0, errs.NewBadRequestWithCode(errs.CodeInvalidPage, "limit must be between 1 and the configured maximum")
	}
	if o < 0 {
		return 0, 0, errs.NewBadRequestWithCode(errs.CodeInvalidPage, "offset must not be negative")
	}
	return l, o, nil
}

// GetByID returns the article and schedules a view increment for it.
func (s *ArticleService) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	article, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	enqueueView(ctx, s.Logger, "article", id, s.Views.EnqueueArticleView)
	return article, nil
}

func (s *ArticleService) Create(ctx context.Context, in model.NewArticle) (*model.Article, error) {
	return result(s.Repo.Create(ctx, in))
}

func (s *ArticleService) Delete(ctx context.Context, id int64) (*model.Article, error) {
	return result(s.Repo.Delete(ctx, id))
}
