package model

// Tag is long-lived reference data attached to articles.
type Tag struct {
	ID   int64  `json:"tag_id" db:"tag_id"`
	Name string `json:"tag_name" db:"tag_name"`
}
