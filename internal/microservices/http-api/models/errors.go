package models

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these 1:1 to HTTP status codes.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// DomainError carries a client-facing message and the kind it belongs to.
type DomainError struct {
	kind error
	msg  string
}

func (e *DomainError) Error() string { return e.msg }

func (e *DomainError) Unwrap() error { return e.kind }

func newError(kind error, msg string) *DomainError {
	return &DomainError{kind: kind, msg: msg}
}

// NewError builds a client-facing error of the given kind.
func NewError(kind error, msg string) error {
	return newError(kind, msg)
}

// InvalidInputf builds an ErrInvalidInput with a formatted message.
func InvalidInputf(format string, args ...any) error {
	return newError(ErrInvalidInput, fmt.Sprintf(format, args...))
}

var (
	ErrReviewNotFound     = newError(ErrNotFound, "review not found")
	ErrCommentNotFound    = newError(ErrNotFound, "comment not found")
	ErrComplaintNotFound  = newError(ErrNotFound, "complaint not found")
	ErrUserNotFound       = newError(ErrNotFound, "user not found")
	ErrMissingUserID      = newError(ErrInvalidInput, "missing user id")
	ErrReasonRequired     = newError(ErrInvalidInput, "reason is required")
	ErrInvalidReason      = newError(ErrInvalidInput, "invalid reason")
	ErrEmptyComment       = newError(ErrInvalidInput, "text required")
	ErrInvalidStatus      = newError(ErrInvalidInput, "invalid status")
	ErrAlreadyReported    = newError(ErrConflict, "you already reported this post")
	ErrNotCommentAuthor   = newError(ErrForbidden, "only the author can delete this comment")
	ErrNotReviewAuthor    = newError(ErrForbidden, "only the author can update this post")
	ErrNotComplaintAuthor = newError(ErrForbidden, "you can only view your own complaints")
	ErrAdminOnly          = newError(ErrForbidden, "admin role required")
	ErrSuperAdminOnly     = newError(ErrForbidden, "superadmin role required")
	ErrInvalidRole        = newError(ErrInvalidInput, "invalid role")
	ErrSelfDemotion       = newError(ErrInvalidInput, "cannot demote yourself from superadmin")
	ErrSelfDelete         = newError(ErrInvalidInput, "cannot delete yourself")
	ErrWrongPassword      = newError(ErrInvalidInput, "current password is incorrect")
	ErrNoRefreshToken     = newError(ErrNotFound, "refresh token not found")
)
