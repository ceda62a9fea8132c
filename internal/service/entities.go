package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/go-cms/internal/config"
	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/repository"
)

type TagService struct {
	repo *repository.TagRepository
}

func NewTagService(repo *repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	return result(s.repo.Create(ctx, name))
}

func (s *TagService) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	return result(s.repo.GetByID(ctx, id))
}

func (s *TagService) GetByName(ctx context.Context, name string) (*model.Tag, error) {
	return result(s.repo.GetByName(ctx, name))
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return result(s.repo.List(ctx))
}

func (s *TagService) Delete(ctx context.Context, id int64) (*model.Tag, error) {
	return result(s.repo.Delete(ctx, id))
}

type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	return result(s.repo.Create(ctx, name))
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return result(s.repo.GetByID(ctx, id))
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return result(s.repo.List(ctx))
}

func (s *CategoryService) Delete(ctx context.Context, id int64) (*model.Category, error) {
	return result(s.repo.Delete(ctx, id))
}

type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Create(ctx context.Context, name string) (*model.User, error) {
	return result(s.repo.Create(ctx, name))
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return result(s.repo.GetByID(ctx, id))
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return result(s.repo.List(ctx))
}

func (s *UserService) Delete(ctx context.Context, id int64) (*model.User, error) {
	return result(s.repo.Delete(ctx, id))
}

type AnnouncementService struct {
	repo   *repository.AnnouncementRepository
	views  ViewEnqueuer
	cfg    config.SearchConfig
	logger *zerolog.Logger
}

func NewAnnouncementService(
	repo *repository.AnnouncementRepository,
	views ViewEnqueuer,
	cfg config.SearchConfig,
	logger *zerolog.Logger,
) *AnnouncementService {
	return &AnnouncementService{repo: repo, views: views, cfg: cfg, logger: logger}
}

func (s *AnnouncementService) Create(ctx context.Context, title, contentURL string) (*model.Announcement, error) {
	return result(s.repo.Create(ctx, title, contentURL))
}

// GetByID returns the announcement and schedules a view increment for it.
func (s *AnnouncementService) GetByID(ctx context.Context, id int64) (*model.Announcement, error) {
	a, err := result(s.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}

	enqueueView(ctx, s.logger, "announcement", id, s.views.EnqueueAnnouncementView)
	return a, nil
}

// List pages announcements newest first. A nil or out of range limit falls
// back to the configured bounds.
func (s *AnnouncementService) List(ctx context.Context, limit, offset *int) ([]model.Announcement, error) {
	l, o := s.cfg.DefaultLimit, 0
	if limit != nil && *limit > 0 {
		l = min(*limit, s.cfg.MaxLimit)
	}
	if offset != nil && *offset > 0 {
		o = *offset
	}
	return result(s.repo.List(ctx, l, o))
}

func (s *AnnouncementService) UpdateTitle(ctx context.Context, id int64, title string) (*model.Announcement, error) {
	return result(s.repo.UpdateTitle(ctx, id, title))
}

func (s *AnnouncementService) Delete(ctx context.Context, id int64) (*model.Announcement, error) {
	return result(s.repo.Delete(ctx, id))
}
