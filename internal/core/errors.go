package core

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrBadRequest  ErrorCode = "ITEMS_BAD_REQUEST"
	ErrInvalidName ErrorCode = "ITEMS_INVALID_NAME"
	ErrNotFound    ErrorCode = "ITEMS_NOT_FOUND"
	ErrUnavailable ErrorCode = "ITEMS_UNAVAILABLE"
	ErrInternal    ErrorCode = "ITEMS_INTERNAL"
)

// ErrItemNotFound is returned by the store when no row matched the id.
var ErrItemNotFound = errors.New("item not found")

// HTTPStatus returns the HTTP status code for this error code.
func (e ErrorCode) HTTPStatus() int {
	switch e {
	case ErrBadRequest, ErrInvalidName:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// Plain-text failure bodies of the HTTP surface.
var (
	ErrInvalidID       = NewAppError(ErrBadRequest, "Invalid ID")
	ErrInvalidItemName = NewAppError(ErrInvalidName, "Invalid name")
	ErrMissingItem     = NewAppError(ErrNotFound, "Item not found")
	ErrNotReady        = NewAppError(ErrUnavailable, "Not Ready")
	ErrInternalServer  = NewAppError(ErrInternal, "Internal Server Error")
)
