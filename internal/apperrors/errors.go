// Package apperrors defines the domain error taxonomy shared by the
// repositories, services and handlers. The five sentinels are expected
// control-flow outcomes; anything else bubbling out of the store is a
// storage failure and surfaces as an opaque 500.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers unknown users, categories, gifts and friend
	// requests, including stale or foreign friend-request ids.
	ErrNotFound = errors.New("not found")
	// ErrSelfRequest is returned when a user friend-requests themselves.
	ErrSelfRequest = errors.New("cannot send a friend request to yourself")
	// ErrAlreadyExists is returned when a pending or accepted request
	// already links the pair, in either direction.
	ErrAlreadyExists = errors.New("friend request already exists")
	// ErrUnauthorized means the caller lacks the membership or
	// relationship the action requires.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict means the gift is already reserved by someone else.
	ErrConflict = errors.New("gift already reserved")
)

// NotFoundf wraps ErrNotFound with a description of what was missing
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Unauthorizedf wraps ErrUnauthorized with the failed predicate
func Unauthorizedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// IsDomain reports whether err belongs to the expected taxonomy, as
// opposed to a storage failure.
func IsDomain(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSelfRequest) ||
		errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrConflict)
}
