package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Allocation and persistence error taxonomy.
var (
	ErrInvalidLayout          = New("INVALID_LAYOUT", http.StatusBadRequest, "room layout has invalid dimensions")
	ErrCapacityExceeded       = New("CAPACITY_EXCEEDED", http.StatusUnprocessableEntity, "students exceed total seat capacity")
	ErrSideOccupied           = New("SIDE_OCCUPIED", http.StatusConflict, "bench side already assigned")
	ErrNoStudentsForClass     = New("NO_STUDENTS_FOR_CLASS", http.StatusUnprocessableEntity, "no students found for class")
	ErrIncompleteInvigilation = New("INCOMPLETE_INVIGILATION", http.StatusPreconditionFailed, "occupied rooms are missing invigilators")
	ErrValidation             = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrNotFound               = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrDraftNotFound          = New("DRAFT_NOT_FOUND", http.StatusNotFound, "draft not found or expired")
	ErrCacheMiss              = New("CACHE_MISS", http.StatusNotFound, "cache miss")
	ErrInternal               = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
