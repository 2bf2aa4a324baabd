package apperror

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Code identifies a failure class that handlers translate into an HTTP status.
type Code string

const (
	CodeMissingField    Code = "MISSING_FIELD"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeUnknownCustomer Code = "UNKNOWN_CUSTOMER"
	CodeUnknownProduct  Code = "UNKNOWN_PRODUCT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeDuplicate       Code = "DUPLICATE"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeRateLimited     Code = "RATE_LIMITED"
	CodeInternal        Code = "INTERNAL_FAULT"
)

// Metadata describes how a code is surfaced to clients.
type Metadata struct {
	HTTPStatus    int
	PublicMessage string
	// ExposeCause reports whether the underlying error text is returned to the client.
	ExposeCause bool
}

var metadataByCode = map[Code]Metadata{
	CodeMissingField:    {HTTPStatus: http.StatusBadRequest, PublicMessage: "required field missing"},
	CodeInvalidFormat:   {HTTPStatus: http.StatusBadRequest, PublicMessage: "invalid format"},
	CodeUnknownCustomer: {HTTPStatus: http.StatusBadRequest, PublicMessage: "customer does not exist"},
	CodeUnknownProduct:  {HTTPStatus: http.StatusBadRequest, PublicMessage: "product does not exist"},
	CodeNotFound:        {HTTPStatus: http.StatusNotFound, PublicMessage: "resource not found"},
	CodeDuplicate:       {HTTPStatus: http.StatusBadRequest, PublicMessage: "resource already exists"},
	CodeUnauthenticated: {HTTPStatus: http.StatusUnauthorized, PublicMessage: "authentication required"},
	CodeForbidden:       {HTTPStatus: http.StatusForbidden, PublicMessage: "access denied"},
	CodeRateLimited:     {HTTPStatus: http.StatusTooManyRequests, PublicMessage: "too many requests"},
	CodeInternal:        {HTTPStatus: http.StatusInternalServerError, PublicMessage: "internal server error", ExposeCause: true},
}

// MetadataFor returns the metadata for code, falling back to CodeInternal.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// Error is the typed error services return to handlers.
type Error struct {
	code    Code
	message string
	details map[string]any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

// Internal wraps an unexpected failure as CodeInternal.
func Internal(err error, message string) *Error {
	return Wrap(CodeInternal, err, message)
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	if e.message == "" {
		return MetadataFor(e.code).PublicMessage
	}
	return e.message
}

func (e *Error) Details() map[string]any {
	if e == nil {
		return nil
	}
	return e.details
}

// WithDetail attaches a key/value pair returned to the client alongside the message.
func (e *Error) WithDetail(key string, value any) *Error {
	if e == nil {
		return nil
	}
	if e.details == nil {
		e.details = map[string]any{}
	}
	e.details[key] = value
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts the first *Error in err's chain.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf returns the code carried by err, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// HasCode reports whether err carries code.
func HasCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
