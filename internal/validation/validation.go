// Package validation binds request data and validates it with
// go-playground/validator, turning failures into field level errors the
// client can act on.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/go-cms/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validatable is implemented by request payloads.
type Validatable interface {
	Validate() error
}

// Binder is implemented by payloads that bind themselves instead of using
// echo's default binder, e.g. to tell absent query parameters from zero
// values.
type Binder interface {
	Bind(c echo.Context) error
}

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	return validate.Struct(v)
}

// CustomValidationError is a rule that struct tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds the request into payload and validates it. Failures
// are returned as 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	var err error
	if b, ok := payload.(Binder); ok {
		err = b.Bind(c)
	} else {
		err = c.Bind(payload)
	}
	if err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func bindError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var bindingErr *echo.BindingError
	if errors.As(err, &bindingErr) {
		fieldErrors := []errs.FieldError{{Field: bindingErr.Field, Error: "has an invalid value"}}
		return errs.NewBadRequestError("Invalid request parameters", true, nil, fieldErrors, nil)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code == http.StatusUnsupportedMediaType {
		return errs.NewBadRequestError("Unsupported content type", true, nil, nil, nil)
	}

	return errs.NewBadRequestError("Malformed request", true, nil, nil, nil)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), nil
	}

	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: toSnake(e.Field()),
			Error: message(e),
		})
	}

	return "Validation failed", fieldErrors
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "url", "http_url":
		return "must be a valid URL"
	case "ltefield":
		return fmt.Sprintf("must not be greater than %s", toSnake(e.Param()))
	case "dive":
		return "some items are invalid"
	default:
		if e.Param() != "" {
			return fmt.Sprintf("failed %s:%s", e.Tag(), e.Param())
		}
		return "failed " + e.Tag()
	}
}

// toSnake turns struct field names such as ContentURL into content_url.
func toSnake(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		upper := r >= 'A' && r <= 'Z'
		if upper {
			if prevLower {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
		prevLower = !upper
	}
	return b.String()
}
