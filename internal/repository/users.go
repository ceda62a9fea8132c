package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/go-cms/internal/model"
	"github.com/deppfellow/go-cms/internal/search"
)

const usersTable = "users"

type UserRepository struct {
	base
}

func NewUserRepository(db *sqlx.DB, d search.Dialect) *UserRepository {
	return &UserRepository{base: newBase(db, d)}
}

func (r *UserRepository) selectUsers() sq.SelectBuilder {
	return r.sb.Select("user_id", "name").From(usersTable)
}

func (r *UserRepository) Create(ctx context.Context, name string) (*model.User, error) {
	id, err := insertID(ctx, r.db,
		r.sb.Insert(usersTable).Columns("name").Values(name),
		"user_id", usersTable,
	)
	if err != nil {
		return nil, err
	}
	return &model.User{ID: id, Name: name}, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := getOne(ctx, r.db, &user, r.selectUsers().Where(sq.Eq{"user_id": id}), usersTable); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := selectAll(ctx, r.db, &users, r.selectUsers().OrderBy("user_id"), usersTable); err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes the user. Their articles are kept without an owner.
func (r *UserRepository) Delete(ctx context.Context, id int64) (*model.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := exec(ctx, r.db, r.sb.Delete(usersTable).Where(sq.Eq{"user_id": id}), "delete user")
	if err != nil {
		return nil, err
	}
	if err := checkAffected(res, usersTable); err != nil {
		return nil, err
	}
	return user, nil
}
