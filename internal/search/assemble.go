package search

import (
	"database/sql"
	"time"

	"github.com/deppfellow/go-cms/internal/model"
)

// Row is one record of the primary search query.
type Row struct {
	ID         int64         `db:"article_id"`
	Title      string        `db:"title"`
	ContentURL string        `db:"content_url"`
	Views      int           `db:"views"`
	UserID     sql.NullInt64 `db:"user_id"`
	CategoryID sql.NullInt64 `db:"category_id"`
	CreateTime time.Time     `db:"create_time"`
	UpdateTime time.Time     `db:"update_time"`

	OwnerID      sql.NullInt64  `db:"u_user_id"`
	OwnerName    sql.NullString `db:"u_name"`
	CategoryRef  sql.NullInt64  `db:"c_category_id"`
	CategoryName sql.NullString `db:"c_name"`
}

// Assemble merges rows with their tag groups, preserving row order.
func Assemble(rows []Row, tagsByID map[int64][]model.Tag) []model.Article {
	articles := make([]model.Article, 0, len(rows))
	for _, r := range rows {
		a := model.Article{
			ID:         r.ID,
			Title:      r.Title,
			ContentURL: r.ContentURL,
			Views:      r.Views,
			UserID:     nullableID(r.UserID),
			CategoryID: nullableID(r.CategoryID),
			CreateTime: r.CreateTime,
			UpdateTime: r.UpdateTime,
			Tags:       tagsByID[r.ID],
		}
		if a.Tags == nil {
			a.Tags = []model.Tag{}
		}
		if r.OwnerID.Valid {
			a.User = &model.User{ID: r.OwnerID.Int64, Name: r.OwnerName.String}
		}
		if r.CategoryRef.Valid {
			a.Category = &model.Category{ID: r.CategoryRef.Int64, Name: r.CategoryName.String}
		}
		articles = append(articles, a)
	}
	return articles
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
