package apperror

import (
	"errors"
	"net/http"
)

// Code classifies an error for transport mapping.
type Code string

const (
	CodeValidation   Code = "validation"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeInvalidState Code = "invalid_state"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeUpstream     Code = "upstream"
	CodeInternal     Code = "internal"
)

type AppError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code onto an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeValidation, CodeInvalidState:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newError(code Code, msg string, errs ...error) *AppError {
	e := &AppError{Code: code, Message: msg}
	if len(errs) > 0 {
		e.Err = errs[0]
	}
	return e
}

func Validation(msg string, errs ...error) *AppError {
	return newError(CodeValidation, msg, errs...)
}

func NotFound(msg string, errs ...error) *AppError {
	return newError(CodeNotFound, msg, errs...)
}

func Conflict(msg string, errs ...error) *AppError {
	return newError(CodeConflict, msg, errs...)
}

func InvalidState(msg string, errs ...error) *AppError {
	return newError(CodeInvalidState, msg, errs...)
}

func Unauthorized(msg string, errs ...error) *AppError {
	return newError(CodeUnauthorized, msg, errs...)
}

func Forbidden(msg string, errs ...error) *AppError {
	return newError(CodeForbidden, msg, errs...)
}

func Upstream(msg string, errs ...error) *AppError {
	return newError(CodeUpstream, msg, errs...)
}

func Internal(msg string, errs ...error) *AppError {
	return newError(CodeInternal, msg, errs...)
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == code
}

// StatusOf resolves the HTTP status for any error.
func StatusOf(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.StatusCode()
	}
	return http.StatusInternalServerError
}
