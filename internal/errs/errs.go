// Package errs defines the error shapes returned to API clients.
//
// Every failure that reaches the HTTP layer is rendered as an HTTPError so
// clients see one consistent JSON structure.
package errs

import "strings"

// Machine readable codes for failures of the article search.
const (
	CodeInvalidSortColumn    = "INVALID_SORT_COLUMN"
	CodeInvalidSortDirection = "INVALID_SORT_DIRECTION"
	CodeEmptyPredicateSet    = "EMPTY_PREDICATE_SET"
	CodeInvalidPage          = "INVALID_PAGE"
)

// FieldError is a validation failure of a single request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ActionType string

const (
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional hint telling the client what to do next.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the JSON error body sent to clients.
//
// Override marks the Message as safe to show to end users as is.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e carrying message.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	c := *e
	c.Message = message
	return &c
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
