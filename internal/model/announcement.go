package model

import "time"

// Announcement is a site-wide notice. It shares the view counter semantics of
// Article but has no relations.
type Announcement struct {
	ID         int64     `json:"announcement_id" db:"announcement_id"`
	Title      string    `json:"title" db:"title"`
	ContentURL string    `json:"content_url" db:"content_url"`
	Views      int       `json:"views" db:"views"`
	CreateTime time.Time `json:"create_time" db:"create_time"`
	UpdateTime time.Time `json:"update_time" db:"update_time"`
}
