package gpodder

import (
	"fmt"
	"net/http"
)

// Error is a protocol-level failure. It carries the HTTP status that ends the
// request and is rendered as {"code": ..., "message": ...}.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func NewError(code int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *Error {
	return NewError(http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return NewError(http.StatusUnauthorized, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return NewError(http.StatusNotFound, format, args...)
}

func MethodNotAllowed(format string, args ...any) *Error {
	return NewError(http.StatusMethodNotAllowed, format, args...)
}

func NotImplemented(format string, args ...any) *Error {
	return NewError(http.StatusNotImplemented, format, args...)
}

func Unavailable(format string, args ...any) *Error {
	return NewError(http.StatusServiceUnavailable, format, args...)
}
