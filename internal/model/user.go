package model

// User owns articles.
type User struct {
	ID   int64  `json:"user_id" db:"user_id"`
	Name string `json:"name" db:"name"`
}
