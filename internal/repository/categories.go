package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/search"
)

const categoriesTable = "categories"

type CategoryRepository struct {
	base
}

func NewCategoryRepository(db *sqlx.DB, d search.Dialect) *CategoryRepository {
	return &CategoryRepository{base: newBase(db, d)}
}

func (r *CategoryRepository) selectCategories() sq.SelectBuilder {
	return r.sb.Select("category_id", "name", "create_time", "update_time").From(categoriesTable)
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (*model.Category, error) {
	id, err := insertID(ctx, r.db,
		r.sb.Insert(categoriesTable).Columns("name").Values(name),
		"category_id", categoriesTable,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := getOne(ctx, r.db, &category, r.selectCategories().Where(sq.Eq{"category_id": id}), categoriesTable); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	if err := selectAll(ctx, r.db, &categories, r.selectCategories().OrderBy("category_id"), categoriesTable); err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete removes the category. Articles in it keep existing without one.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) (*model.Category, error) {
	category, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := exec(ctx, r.db, r.sb.Delete(categoriesTable).Where(sq.Eq{"category_id": id}), "delete category")
	if err != nil {
		return nil, err
	}
	if err := checkAffected(res, categoriesTable); err != nil {
		return nil, err
	}
	return category, nil
}
