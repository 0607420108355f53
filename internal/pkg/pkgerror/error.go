package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that the requested resource could not be found.
	ErrNotFound = errors.New("resource not found")
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	TypeServer     Type = iota // Server-side errors (e.g., rendering or encoding issues).
	TypeBusiness               // Business logic errors (e.g., dataset cannot support the plot).
	TypeValidation             // Validation errors (e.g., request parameter failures).
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable, machine-readable identifier for an error kind. The
// plotting pipeline uses it to tell callers exactly which stage rejected
// the request; the router maps it to an HTTP status code.
type Code int

const (
	CodeInternal          Code = iota // Internal or unspecified error.
	CodeInvalidFormat                 // Request body format is invalid.
	CodeInvalidInput                  // Request parameter is missing or invalid.
	CodeNotFound                      // Resource not found.
	CodeMalformedInput                // Uploaded dataset cannot be parsed.
	CodeUnknownColumn                 // Requested column does not exist.
	CodeTypeMismatch                  // Column exists but has the wrong semantic type.
	CodeInsufficientData              // Dataset cannot support the plot (e.g. heatmap needs 2+ numeric columns).
	CodeInvalidValue                  // Column values violate a plot constraint (e.g. negative pie values).
	CodeUnsupportedFormat             // Output format or plot type is not in the supported set.
	CodeRenderFailed                  // Rendering failed for a reason not covered above.
)

func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeMalformedInput:
		return "ERROR_CODE_MALFORMED_INPUT"
	case CodeUnknownColumn:
		return "ERROR_CODE_UNKNOWN_COLUMN"
	case CodeTypeMismatch:
		return "ERROR_CODE_TYPE_MISMATCH"
	case CodeInsufficientData:
		return "ERROR_CODE_INSUFFICIENT_DATA"
	case CodeInvalidValue:
		return "ERROR_CODE_INVALID_VALUE"
	case CodeUnsupportedFormat:
		return "ERROR_CODE_UNSUPPORTED_FORMAT"
	case CodeRenderFailed:
		return "ERROR_CODE_RENDER_FAILED"
	case CodeInternal:
		return "ERROR_CODE_INTERNAL"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a user-facing message,
// a high-level type, and a stable error code.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	if e.errType == TypeValidation {
		return "Validation violation"
	}

	if e.errType == TypeBusiness {
		return "Logical business not meet with requirement"
	}

	if e.errType == TypeServer {
		return "Internal error"
	}

	return "Unknown error"
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.msg,
		e.err,
	)
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat, CodeMalformedInput, CodeUnsupportedFormat:
		return http.StatusBadRequest
	case CodeInvalidInput, CodeUnknownColumn, CodeTypeMismatch, CodeInsufficientData, CodeInvalidValue:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRenderFailed, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error with the provided error.
func NewServer(err error) error {
	return new(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness creates a business-type error with the specified message and code.
func NewBusiness(msg string, code Code) error {
	return new(nil, msg, TypeBusiness, code)
}

// NewInvalidInput creates a validation error for invalid input with a message and underlying error.
func NewInvalidInput(err error) error {
	return new(err, "validation error", TypeValidation, CodeInvalidInput)
}

// NewInvalidFormat creates a validation error for an invalid request body format.
func NewInvalidFormat() error {
	return new(nil, "invalid request body", TypeValidation, CodeInvalidFormat)
}

// NewMalformedInput creates an error for a dataset that cannot be parsed.
func NewMalformedInput(err error) error {
	return new(err, "uploaded data is not valid CSV", TypeValidation, CodeMalformedInput)
}

// NewUnknownColumn creates an error naming the column that does not exist.
func NewUnknownColumn(column string) error {
	return new(nil, fmt.Sprintf("unknown column: %s", column), TypeValidation, CodeUnknownColumn)
}

// NewTypeMismatch creates an error for a column with the wrong semantic type.
func NewTypeMismatch(column, need string) error {
	return new(nil, fmt.Sprintf("column %s must be %s", column, need), TypeValidation, CodeTypeMismatch)
}

// NewInsufficientData creates an error for a dataset that cannot support the plot.
func NewInsufficientData(msg string) error {
	return new(nil, msg, TypeBusiness, CodeInsufficientData)
}

// NewInvalidValue creates an error for column values that violate a plot constraint.
func NewInvalidValue(msg string) error {
	return new(nil, msg, TypeValidation, CodeInvalidValue)
}

// NewUnsupportedFormat creates an error for an output format or plot type
// outside the supported set.
func NewUnsupportedFormat(msg string) error {
	return new(nil, msg, TypeValidation, CodeUnsupportedFormat)
}

// NewRenderFailed creates a server-type error for a rendering step that
// failed, carrying the plot type and the offending column.
func NewRenderFailed(plotType, column string, err error) error {
	msg := fmt.Sprintf("failed to render %s plot", plotType)
	if column != "" {
		msg = fmt.Sprintf("failed to render %s plot: column %s", plotType, column)
	}
	return new(err, msg, TypeServer, CodeRenderFailed)
}
