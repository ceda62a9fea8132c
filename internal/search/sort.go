package search

import "fmt"

const (
	Asc  = "ASC"
	Desc = "DESC"
)

// sortColumns maps the public column names accepted from callers to the
// qualified column used in the query.
var sortColumns = map[string]string{
	"article_id":  "a.article_id",
	"title":       "a.title",
	"content_url": "a.content_url",
	"views":       "a.views",
	"user_id":     "a.user_id",
	"category_id": "a.category_id",
	"create_time": "a.create_time",
}

// Sort is a validated ORDER BY. The zero value means "no ordering".
type Sort struct {
	column    string
	direction string
}

// ValidateSort checks the sort column and direction against the allow-list.
// Direction tokens are case-sensitive.
func ValidateSort(column, direction string) (Sort, error) {
	qualified, ok := sortColumns[column]
	if !ok {
		return Sort{}, fmt.Errorf("%w: %q", ErrInvalidSortColumn, column)
	}
	if direction != Asc && direction != Desc {
		return Sort{}, fmt.Errorf("%w: %q", ErrInvalidSortDirection, direction)
	}
	return Sort{column: qualified, direction: direction}, nil
}

// IsZero reports whether s orders nothing.
func (s Sort) IsZero() bool {
	return s.column == ""
}

// orderBy returns the ORDER BY terms. Ties fall back to the primary key so
// limit/offset paging is stable.
func (s Sort) orderBy() []string {
	if s.IsZero() {
		return nil
	}
	terms := []string{s.column + " " + s.direction}
	if s.column != sortColumns["article_id"] {
		terms = append(terms, "a.article_id "+s.direction)
	}
	return terms
}
