package errors

import (
	"errors"
	"fmt"
)

// ErrorCode tags an AppError with its kind.
type ErrorCode int

const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrReferentialIntegrity
	ErrUnauthorized
	ErrForbidden
	ErrInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
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

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NotFoundf(format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
	}
}

// ReferentialIntegrity marks a missing join target. Fatal for the whole
// request everywhere except EMR history assembly, where entries are skipped.
func ReferentialIntegrity(message string, err error) *AppError {
	return &AppError{
		Code:    ErrReferentialIntegrity,
		Message: message,
		Err:     err,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: message,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func codeOf(err error) (ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return 0, false
}

func IsNotFound(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrNotFound
}

func IsValidation(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrValidation
}

func IsReferentialIntegrity(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrReferentialIntegrity
}

func IsUnauthorized(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrUnauthorized
}
