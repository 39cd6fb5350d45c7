package http

import (
	"errors"
	"net/http"
)

// Error carries the status and the message a handler wants the visitor to
// see. The wrapped cause is only logged.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(statusCode int, message string, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

func NewNotFound(message string, err error) *Error {
	return New(http.StatusNotFound, message, err)
}

func NewBadRequest(message string, err error) *Error {
	return New(http.StatusBadRequest, message, err)
}

func NewConflict(message string, err error) *Error {
	return New(http.StatusConflict, message, err)
}

// StatusOf reports the status carried by err, or 500 for anything else.
func StatusOf(err error) int {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to show for err. Errors that carry no
// status are internal and yield fallback.
func PublicMessage(err error, fallback string) string {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	return fallback
}

// IsExpected reports whether err was raised deliberately by a handler.
func IsExpected(err error) bool {
	var httpErr *Error
	return errors.As(err, &httpErr)
}
