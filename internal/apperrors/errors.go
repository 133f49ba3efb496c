package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource is not in a state that allows the operation.
var ErrConflict = errors.New("conflict")

// ErrInternal is returned when the failure is not the caller's fault.
var ErrInternal = errors.New("internal error")

// Ledger posting errors. All of them are terminal for a single post attempt.
var (
	ErrAccountNotFound   = fmt.Errorf("%w: account not found", ErrValidation)
	ErrJournalUnbalanced = fmt.Errorf("%w: journal lines do not balance", ErrValidation)
	ErrPeriodClosed      = fmt.Errorf("%w: fiscal period is closed", ErrValidation)
	ErrPeriodNotFound    = fmt.Errorf("%w: no fiscal period covers the entry date", ErrValidation)
)

// ErrCounterUnavailable is returned by the serialized entry counter when it cannot
// hand out a number; callers may drop to the best-effort counter.
var ErrCounterUnavailable = errors.New("serialized entry counter unavailable")

// ErrDocumentFinalized is returned when a finalized document line is recalculated.
var ErrDocumentFinalized = errors.New("document is finalized")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
