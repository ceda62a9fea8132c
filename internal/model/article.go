package model

import "time"

// Article is the fully assembled article returned to API clients.
//
// User and Category are populated from left-joined columns and stay nil when
// the referenced row no longer exists. Tags is never nil.
type Article struct {
	ID         int64     `json:"article_id"`
	Title      string    `json:"title"`
	ContentURL string    `json:"content_url"`
	Views      int       `json:"views"`
	UserID     *int64    `json:"user_id"`
	CategoryID *int64    `json:"category_id"`
	CreateTime time.Time `json:"create_time"`
	UpdateTime time.Time `json:"update_time"`

	User     *User     `json:"user,omitempty"`
	Category *Category `json:"category,omitempty"`
	Tags     []Tag     `json:"tags"`
}

// NewArticle is the input of an article creation.
type NewArticle struct {
	Title      string
	ContentURL string
	UserID     int64
	CategoryID int64
	TagIDs     []int64
}
