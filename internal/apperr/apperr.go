// Package apperr defines the error taxonomy shared by the tenant layer, the
// feature services and the HTTP handlers. Services return *Error values with a
// user-facing message; handlers translate the kind into an HTTP status and never
// leak raw storage-driver errors to the client.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP translation
type Kind int

const (
	// Internal is an unexpected failure mapped to a generic 500
	Internal Kind = iota
	// UnknownTenant means the tenant id is not present in the registry
	UnknownTenant
	// ConnectionFailure means a tenant's database connection could not be established
	ConnectionFailure
	// MissingTenant means an authenticated request carries no tenant claim
	MissingTenant
	// UserNotFound is a login/switch-tenant lookup miss
	UserNotFound
	// TenantNotAuthorized means the requested tenant is not in the user's list
	TenantNotAuthorized
	// NoTenantsAssigned means the user has an empty tenant list
	NoTenantsAssigned
	// NotFound is a generic entity lookup miss
	NotFound
	// Conflict is a uniqueness or dependent-records violation
	Conflict
	// Invalid is a malformed or incomplete request
	Invalid
)

// Error carries a kind, a user-facing message and an optional wrapped cause
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New creates an error with a kind and message
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error with a kind and message around a cause
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the kind from an error chain, defaulting to Internal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// HTTPStatus maps an error to the status code the boundary should respond with
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case UnknownTenant, Invalid:
		return http.StatusBadRequest
	case MissingTenant:
		return http.StatusUnauthorized
	case UserNotFound:
		return http.StatusUnauthorized
	case TenantNotAuthorized, NoTenantsAssigned:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message, hiding internals for unexpected errors
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
