package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/search"
)

const announcementsTable = "announcements"

type AnnouncementRepository struct {
	base
}

func NewAnnouncementRepository(db *sqlx.DB, d search.Dialect) *AnnouncementRepository {
	return &AnnouncementRepository{base: newBase(db, d)}
}

func (r *AnnouncementRepository) selectAnnouncements() sq.SelectBuilder {
	return r.sb.
		Select("announcement_id", "title", "content_url", "views", "create_time", "update_time").
		From(announcementsTable)
}

func (r *AnnouncementRepository) Create(ctx context.Context, title, contentURL string) (*model.Announcement, error) {
	id, err := insertID(ctx, r.db,
		r.sb.Insert(announcementsTable).Columns("title", "content_url").Values(title, contentURL),
		"announcement_id", announcementsTable,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*model.Announcement, error) {
	var a model.Announcement
	if err := getOne(ctx, r.db, &a,
		r.selectAnnouncements().Where(sq.Eq{"announcement_id": id}),
		announcementsTable,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns announcements newest first. A non-positive limit returns all.
func (r *AnnouncementRepository) List(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	b := r.selectAnnouncements().OrderBy("create_time DESC", "announcement_id DESC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
		if offset > 0 {
			b = b.Offset(uint64(offset))
		}
	}

	announcements := []model.Announcement{}
	if err := selectAll(ctx, r.db, &announcements, b, announcementsTable); err != nil {
		return nil, err
	}
	return announcements, nil
}

// UpdateTitle renames the announcement and returns its new state.
func (r *AnnouncementRepository) UpdateTitle(ctx context.Context, id int64, title string) (*model.Announcement, error) {
	res, err := exec(ctx, r.db,
		r.sb.Update(announcementsTable).
			Set("title", title).
			Set("update_time", sq.Expr("CURRENT_TIMESTAMP")).
			Where(sq.Eq{"announcement_id": id}),
		"update announcement",
	)
	if err != nil {
		return nil, err
	}
	if err := checkAffected(res, announcementsTable); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) (*model.Announcement, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := exec(ctx, r.db,
		r.sb.Delete(announcementsTable).Where(sq.Eq{"announcement_id": id}),
		"delete announcement",
	)
	if err != nil {
		return nil, err
	}
	if err := checkAffected(res, announcementsTable); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AnnouncementRepository) IncrementViews(ctx context.Context, id int64) error {
	res, err := exec(ctx, r.db,
		r.sb.Update(announcementsTable).
			Set("views", sq.Expr("views + 1")).
			Where(sq.Eq{"announcement_id": id}),
		"increment announcement views",
	)
	if err != nil {
		return err
	}
	return checkAffected(res, announcementsTable)
}
