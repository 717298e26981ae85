// Package services defines the business logic for prompt capture and
// alternative-prompt generation. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

var (
	// ErrValidation indicates a malformed submission (missing or over-length
	// field). No store access is attempted once validation fails.
	ErrValidation = errors.New("invalid input")

	// ErrPromptNotFound indicates the requested prompt does not exist.
	ErrPromptNotFound = errors.New("prompt not found")

	// ErrCompanyNotFound indicates the requested company does not exist, or
	// has no prompts when listing.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrConflict indicates the idempotency key collided with a concurrent
	// identical submission inside the write transaction. The pre-check saw no
	// row, but another writer committed one first.
	ErrConflict = errors.New("idempotency key conflict")

	// ErrModelUnavailable indicates the model backend is down or refused the
	// request. Only the alternatives path surfaces it; the submit path absorbs
	// model failure into a failed-status record.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrBadModelOutput indicates the model answered but its output did not
	// match the strict JSON contract of the alternatives endpoint.
	ErrBadModelOutput = errors.New("malformed model output")
)
