// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package base

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a query pipeline failure. The transport maps each kind
// to an HTTP status code.
type ErrorKind uint8

const (
	// ErrorInternal is the zero value: backing-store failures, unparsable
	// stored data, anything unexpected.
	ErrorInternal ErrorKind = iota
	// ErrorUnauthorized means the connection settings failed validation.
	ErrorUnauthorized
	// ErrorBadRequest means the request itself is malformed: missing source
	// table setting, or a malformed filter.
	ErrorBadRequest
	// ErrorNotFound means no registered data source matches the request.
	ErrorNotFound
)

// HTTPStatus returns the transport status code for the kind.
func (kind ErrorKind) HTTPStatus() int {
	switch kind {
	case ErrorUnauthorized:
		return http.StatusUnauthorized
	case ErrorBadRequest:
		return http.StatusBadRequest
	case ErrorNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// QueryError is a pipeline failure with a transport-status classification.
// Validation and resolution failures stop the pipeline immediately; there are
// no partial results.
type QueryError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *QueryError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}

func Unauthorized(message string) *QueryError {
	return &QueryError{Kind: ErrorUnauthorized, Message: message}
}

func BadRequest(message string) *QueryError {
	return &QueryError{Kind: ErrorBadRequest, Message: message}
}

func NotFound(message string) *QueryError {
	return &QueryError{Kind: ErrorNotFound, Message: message}
}

func Internal(message string, cause error) *QueryError {
	return &QueryError{Kind: ErrorInternal, Message: message, Cause: cause}
}

// KindOf extracts the error kind from err. Errors that are not QueryErrors
// are internal by definition.
func KindOf(err error) ErrorKind {
	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		return queryErr.Kind
	}
	return ErrorInternal
}
