package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/search"
)

const tagsTable = "tags"

type TagRepository struct {
	base
}

func NewTagRepository(db *sqlx.DB, d search.Dialect) *TagRepository {
	return &TagRepository{base: newBase(db, d)}
}

func (r *TagRepository) selectTags() sq.SelectBuilder {
	return r.sb.Select("tag_id", "tag_name").From(tagsTable)
}

func (r *TagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	id, err := insertID(ctx, r.db,
		r.sb.Insert(tagsTable).Columns("tag_name").Values(name),
		"tag_id", tagsTable,
	)
	if err != nil {
		return nil, err
	}
	return &model.Tag{ID: id, Name: name}, nil
}

func (r *TagRepository) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	var tag model.Tag
	if err := getOne(ctx, r.db, &tag, r.selectTags().Where(sq.Eq{"tag_id": id}), tagsTable); err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByName looks a tag up by its exact, unique name.
func (r *TagRepository) GetByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	if err := getOne(ctx, r.db, &tag, r.selectTags().Where(sq.Eq{"tag_name": name}), tagsTable); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) List(ctx context.Context) ([]model.Tag, error) {
	tags := []model.Tag{}
	if err := selectAll(ctx, r.db, &tags, r.selectTags().OrderBy("tag_id"), tagsTable); err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete removes the tag. Its article associations go with it.
func (r *TagRepository) Delete(ctx context.Context, id int64) (*model.Tag, error) {
	tag, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := exec(ctx, r.db, r.sb.Delete(tagsTable).Where(sq.Eq{"tag_id": id}), "delete tag")
	if err != nil {
		return nil, err
	}
	if err := checkAffected(res, tagsTable); err != nil {
		return nil, err
	}
	return tag, nil
}
