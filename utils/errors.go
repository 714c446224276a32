package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an error that knows which HTTP status it maps to.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Detail  string `json:"detail,omitempty"`
	Err     error  `json:"-"`
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

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func ValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(http.StatusNotFound, fmt.Sprintf("Không tìm thấy %s", resource), nil)
}

func ConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, nil)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, nil)
}

// DatabaseError surfaces the driver message to the client as Detail.
func DatabaseError(err error) *AppError {
	e := NewAppError(http.StatusInternalServerError, "Lỗi cơ sở dữ liệu", err)
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// AsAppError returns err as an *AppError, wrapping unknown errors as DatabaseError.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return DatabaseError(err)
}
