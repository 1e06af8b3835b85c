package typeroute

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate     = validator.New()
	queryDecoder = schema.NewDecoder()
)

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// Schema is a validation schema for a request payload type. Controllers
// declare schemas as package-level variables and register them with
// ValidateUsing; the generator resolves those declarations statically to
// infer per-route request types.
//
//	var StorePostSchema = typeroute.NewSchema[StorePostPayload]()
type Schema[T any] struct{}

// NewSchema returns a schema for payload type T.
func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{}
}

// ValidateUsing decodes the request carried by c into the schema's payload
// type and validates it against the payload's `validate` struct tags.
//
// GET and HEAD requests decode from the query string; other methods decode a
// JSON body. Decode and validation failures are reported as an *Error with
// code invalid_argument and per-field details.
func ValidateUsing[T any](s *Schema[T], c *Context) (T, error) {
	var payload T

	r := c.Request()
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if err := queryDecoder.Decode(&payload, r.URL.Query()); err != nil {
			return payload, NewError(CodeInvalidArgument, "invalid query parameters").
				WithDetail("error", err.Error())
		}
	default:
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			return payload, NewError(CodeInvalidArgument, "invalid request body").
				WithDetail("error", err.Error())
		}
	}

	if err := validate.Struct(&payload); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			// Non-struct payloads have no tags to check.
			return payload, nil
		}
		return payload, validationError(err)
	}
	return payload, nil
}

// validationError converts validator failures to the standard error envelope.
func validationError(err error) *Error {
	e := NewError(CodeInvalidArgument, "validation failed")

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return e.WithDetail("error", err.Error())
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return e.WithDetails(details)
}
