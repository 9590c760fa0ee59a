// Package apperr holds the domain error taxonomy. Every error carries a kind,
// the HTTP status it maps to and a fixed message that is safe to show callers.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation   Kind = "ValidationError"
	KindNotFound     Kind = "NotFound"
	KindUnauthorized Kind = "Unauthorized"
	KindConflict     Kind = "Conflict"
	KindRateLimited  Kind = "RateLimited"
	KindInternal     Kind = "Internal"
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, status int, msg string) *Error {
	return &Error{Kind: kind, Status: status, Message: msg}
}

// Validation builds a ValidationError with a caller supplied message.
func Validation(msg string) *Error {
	return New(KindValidation, http.StatusBadRequest, msg)
}

var (
	ErrEmailTaken    = New(KindConflict, http.StatusBadRequest, "The informed email is already registered")
	ErrUsernameTaken = New(KindConflict, http.StatusBadRequest, "The informed username is already registered")
	ErrUnknownEmail  = New(KindNotFound, http.StatusBadRequest, "There is no registered user with this email")
	ErrBadPassword   = New(KindUnauthorized, http.StatusUnauthorized, "Invalid Password")
	ErrUnknownUser   = New(KindNotFound, http.StatusNotFound, "There is no registered user with this ID")
	ErrOngNotFound   = New(KindNotFound, http.StatusNotFound, "There is no Ong with this ID")
	ErrNotOwner      = New(KindUnauthorized, http.StatusUnauthorized, "You don't have permission to do this operation")
	ErrMissingToken  = New(KindUnauthorized, http.StatusUnauthorized, "Missing bearer token")
	ErrInvalidToken  = New(KindUnauthorized, http.StatusUnauthorized, "Invalid token")
	ErrRateLimited   = New(KindRateLimited, http.StatusTooManyRequests, "Too many requests")
	ErrInternal      = New(KindInternal, http.StatusInternalServerError, "Internal server error")
)

// As unwraps err into a domain error. Anything else is reported as ErrInternal
// with ok=false so the boundary knows to log the original.
func As(err error) (e *Error, ok bool) {
	if errors.As(err, &e) {
		return e, true
	}
	return ErrInternal, false
}

// KindOf returns the kind of err, KindInternal for non-domain errors.
func KindOf(err error) Kind {
	e, _ := As(err)
	return e.Kind
}
