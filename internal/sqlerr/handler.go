package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/go-cms/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TablePrefix marks the table name inside a not found error message, e.g.
// errors.Wrap(sql.ErrNoRows, "table:articles:") becomes "Article not found".
const TablePrefix = "table:"

var (
	uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	titleCaser       = cases.Title(language.English)
)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError normalizes a PostgreSQL error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// subjectTable is the table an error is about. For foreign key violations
// that is the referenced table, read off the constraint name
// (articles_user_id_fkey refers to users).
func subjectTable(sqlErr *Error) string {
	if sqlErr.Code == ForeignKeyViolation {
		if col := foreignKeyColumn(sqlErr.TableName, sqlErr.ConstraintName); col != "" {
			return strings.TrimSuffix(col, "_id")
		}
	}
	return sqlErr.TableName
}

func foreignKeyColumn(table, constraint string) string {
	if table == "" || !strings.HasSuffix(constraint, "_fkey") {
		return ""
	}
	col := strings.TrimSuffix(strings.TrimPrefix(constraint, table+"_"), "_fkey")
	if col == constraint || !strings.HasSuffix(col, "_id") {
		return ""
	}
	return col
}

func singular(s string) string {
	if strings.HasSuffix(s, "ies") && len(s) > 3 {
		return s[:len(s)-3] + "y"
	}
	if strings.HasSuffix(s, "s") && len(s) > 1 {
		return s[:len(s)-1]
	}
	return s
}

// generateErrorCode builds codes such as TAG_ALREADY_EXISTS.
func generateErrorCode(table string, errType Code) string {
	if table == "" {
		table = "record"
	}
	domain := strings.ToUpper(singular(table))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(subjectTable(sqlErr))

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)
	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)
	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)
	case CheckViolation:
		return fmt.Sprintf("The %s value does not meet required conditions", entityName)
	default:
		return "An error occurred while processing your request"
	}
}

func getEntityName(table string) string {
	if table == "" {
		return "record"
	}
	return humanizeText(singular(table))
}

// humanizeText turns "content_url" into "Content Url".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return titleCaser.String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation reads the column out of constraint names
// like unique_tags_name or tags_tag_name_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// HandleError converts a repository error into an *errs.HTTPError.
// Errors that already are HTTP errors pass through unchanged.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		errorCode := generateErrorCode(subjectTable(sqlErr), sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case UniqueViolation:
			if col := extractColumnForUniqueViolation(sqlErr.ConstraintName); col != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(col))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			}}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		msg := err.Error()
		if _, rest, ok := strings.Cut(msg, TablePrefix); ok {
			table, _, _ := strings.Cut(rest, ":")
			code := strings.ToUpper(singular(table)) + "_NOT_FOUND"
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", getEntityName(table)), true, &code)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
