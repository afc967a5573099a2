package util

import "net/http"

// AppError is a typed, catchable failure carrying an HTTP status
// classification, a business code and a user-visible message.
type AppError struct {
	Status  int
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NotFound(msg string) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: CodeNotFound, Message: msg}
}

func Conflict(msg string) *AppError {
	return &AppError{Status: http.StatusConflict, Code: CodeConflict, Message: msg}
}

func BadRequest(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: CodeInvalidParam, Message: msg}
}

func Forbidden(msg string) *AppError {
	return &AppError{Status: http.StatusForbidden, Code: CodeForbidden, Message: msg}
}
