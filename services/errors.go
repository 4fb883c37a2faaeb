// file: services/errors.go
package services

import (
	"errors"
	"net/http"
)

// APIError carries the HTTP status a rule violation maps to, so handlers
// translate service failures without string matching.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	return e.Msg
}

func BadRequest(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Msg: msg}
}

func Forbidden(msg string) *APIError {
	return &APIError{Status: http.StatusForbidden, Msg: msg}
}

func NotFound(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Msg: msg}
}

func Conflict(msg string) *APIError {
	return &APIError{Status: http.StatusConflict, Msg: msg}
}

// HTTPStatus maps any error to a response status. Storage-level errors
// never leak as-is.
func HTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
