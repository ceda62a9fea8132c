// Package sqlerr translates database driver errors into errs.HTTPError.
//
// PostgreSQL reports failures as SQLSTATE codes; this package groups the
// ones the application reacts to and turns them into client facing
// messages, e.g. a foreign key violation on article_tags becomes a 400
// TAG_NOT_FOUND.
package sqlerr

import (
	"fmt"
	"strings"
)

// Code is a coarse category of database error.
type Code int

const (
	Other Code = iota
	NotNullViolation
	ForeignKeyViolation
	UniqueViolation
	CheckViolation
	InvalidTextRepresentation
	NumericValueOutOfRange
	QueryCanceled
	SerializationFailure
	DeadlockDetected
)

var codeNames = map[Code]string{
	Other:                     "other",
	NotNullViolation:          "not_null_violation",
	ForeignKeyViolation:       "foreign_key_violation",
	UniqueViolation:           "unique_violation",
	CheckViolation:            "check_violation",
	InvalidTextRepresentation: "invalid_text_representation",
	NumericValueOutOfRange:    "numeric_value_out_of_range",
	QueryCanceled:             "query_canceled",
	SerializationFailure:      "serialization_failure",
	DeadlockDetected:          "deadlock_detected",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// MapCode maps a SQLSTATE onto a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidTextRepresentation
	case "22003":
		return NumericValueOutOfRange
	case "57014":
		return QueryCanceled
	case "40001":
		return SerializationFailure
	case "40P01":
		return DeadlockDetected
	default:
		return Other
	}
}

type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
	SeverityWarning
	SeverityNotice
	SeverityDebug
	SeverityInfo
	SeverityLog
)

// MapSeverity maps PostgreSQL's severity field onto a Severity.
func MapSeverity(severity string) Severity {
	switch strings.ToUpper(severity) {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityUnknown
	}
}

// Error is a normalized database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (SQLSTATE %s): %s", e.Code, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
