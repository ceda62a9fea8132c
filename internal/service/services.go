// Package service contains the business rules.
//
// It sits between the handler and repository layers: it applies defaults
// and policies to validated input, calls the repositories and translates
// their errors into errs.HTTPError.
package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/deppfellow/go-cms/internal/lib/job"
	"github.com/deppfellow/go-cms/internal/metrics"
	"github.com/deppfellow/go-cms/internal/repository"
	"github.com/deppfellow/go-cms/internal/server"
	"github.com/deppfellow/go-cms/internal/sqlerr"
)

// ViewEnqueuer schedules view count increments in the background.
type ViewEnqueuer interface {
	EnqueueArticleView(ctx context.Context, articleID int64) error
	EnqueueAnnouncementView(ctx context.Context, announcementID int64) error
}

type Services struct {
	Articles      *ArticleService
	Tags          *TagService
	Categories    *CategoryService
	Users         *UserService
	Announcements *AnnouncementService
	Job           *job.JobService
}

// NewService wires the services. Search metrics are registered with reg.
func NewService(s *server.Server, repos *repository.Repositories, reg prometheus.Registerer) (*Services, error) {
	searchMetrics := metrics.NewSearch(reg)

	return &Services{
		Articles: NewArticleService(ArticleServiceDeps{
			Repo:          repos.Articles,
			Views:         s.Job,
			Metrics:       searchMetrics,
			Config:        s.Config.Search,
			SlowThreshold: s.Config.Observability.Logging.SlowQueryThreshold,
			Logger:        s.Logger,
		}),
		Tags:          NewTagService(repos.Tags),
		Categories:    NewCategoryService(repos.Categories),
		Users:         NewUserService(repos.Users),
		Announcements: NewAnnouncementService(repos.Announcements, s.Job, s.Config.Search, s.Logger),
		Job:           s.Job,
	}, nil
}

// result translates a repository error into an HTTP error.
func result[T any](v T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, sqlerr.HandleError(err)
	}
	return v, nil
}

func enqueueView(ctx context.Context, logger *zerolog.Logger, entity string, id int64, enqueue func(context.Context, int64) error) {
	if err := enqueue(ctx, id); err != nil {
		// Views are best effort; the read itself already succeeded.
		logger.Warn().Err(err).Str("entity", entity).Int64("id", id).Msg("failed to enqueue view")
	}
}
