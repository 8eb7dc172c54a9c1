package errors

import (
	"net/http"

	"toolbox/internal/errors"
)

// Kind classifies an error independently of its concrete message.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindInvalidState Kind = "invalid_state"
	KindRateLimited  Kind = "rate_limited"
	KindValidation   Kind = "validation"
	KindDispatchMiss Kind = "dispatch_miss"
	KindInternal     Kind = "internal"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Error category
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches any BaseError carrying the same business code, so copies made by WithDetails
// still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error category
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// KindOf returns the category of err, or KindInternal when err carries no AppError.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}

// Predefined error types
var (
	// Not found
	ErrServiceNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"SERVICE_NOT_FOUND",
		"Service not found",
		"",
	)

	ErrCategoryNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"Category not found",
		"",
	)

	ErrReviewNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"REVIEW_NOT_FOUND",
		"Review not found",
		"",
	)

	ErrUserNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// Authorization
	ErrForbidden = NewBaseError(
		KindForbidden,
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrAdminRequired = NewBaseError(
		KindForbidden,
		http.StatusForbidden,
		"ADMIN_REQUIRED",
		"Only administrators can modify the catalog",
		"",
	)

	ErrServiceAccessDenied = NewBaseError(
		KindForbidden,
		http.StatusForbidden,
		"SERVICE_ACCESS_DENIED",
		"Your plan does not include this service",
		"",
	)

	ErrTemplateSubmissionDenied = NewBaseError(
		KindForbidden,
		http.StatusForbidden,
		"TEMPLATE_SUBMISSION_DENIED",
		"Only business accounts can submit templates",
		"",
	)

	ErrNotReviewOwner = NewBaseError(
		KindForbidden,
		http.StatusForbidden,
		"NOT_REVIEW_OWNER",
		"You can only change your own reviews",
		"",
	)

	// Lifecycle state
	ErrTemplateNotPending = NewBaseError(
		KindInvalidState,
		http.StatusConflict,
		"TEMPLATE_NOT_PENDING",
		"Only pending templates can be approved or rejected",
		"",
	)

	ErrTemplateStandardEdit = NewBaseError(
		KindInvalidState,
		http.StatusConflict,
		"TEMPLATE_STANDARD_EDIT",
		"Templates can only be changed through approval or rejection",
		"",
	)

	ErrServicePending = NewBaseError(
		KindInvalidState,
		http.StatusConflict,
		"SERVICE_PENDING",
		"This service is awaiting approval",
		"",
	)

	ErrCategoryInUse = NewBaseError(
		KindInvalidState,
		http.StatusConflict,
		"CATEGORY_IN_USE",
		"Category is still referenced by services",
		"",
	)

	// Rate limiting
	ErrTemplateRateLimited = NewBaseError(
		KindRateLimited,
		http.StatusTooManyRequests,
		"TEMPLATE_RATE_LIMITED",
		"Only one template can be submitted per day",
		"",
	)

	ErrToolRateLimited = NewBaseError(
		KindRateLimited,
		http.StatusTooManyRequests,
		"TOOL_RATE_LIMITED",
		"Too many tool invocations, slow down",
		"",
	)

	// Validation
	ErrValidationFailed = NewBaseError(
		KindValidation,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrUnknownCategory = NewBaseError(
		KindValidation,
		http.StatusBadRequest,
		"UNKNOWN_CATEGORY",
		"The selected category does not exist",
		"",
	)

	ErrInvalidAccessTier = NewBaseError(
		KindValidation,
		http.StatusBadRequest,
		"INVALID_ACCESS_TIER",
		"Access tier must be free, partial or premium",
		"",
	)

	ErrCategoryAlreadyExists = NewBaseError(
		KindValidation,
		http.StatusConflict,
		"CATEGORY_ALREADY_EXISTS",
		"A category with this name already exists",
		"",
	)

	// Dispatch
	ErrToolNotRegistered = NewBaseError(
		KindDispatchMiss,
		http.StatusNotFound,
		"TOOL_NOT_REGISTERED",
		"No tool is registered for this service",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns the error category
func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
