// Package models defines data structures for the CMS-pro application.
// This file contains the error taxonomy shared by services, repositories,
// and handlers. Every failure surfaced to the API maps to exactly one of
// the root errors below, so handlers can translate errors.Is matches into
// distinct, actionable responses.
package models

import (
	"errors"
	"fmt"
)

// Root errors. Wrap these with fmt.Errorf("%w: ...") to add context;
// never return them bare from new code unless there is nothing to add.
var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation failed")

	// ErrState marks an illegal lifecycle transition, including any
	// attempt to leave the resolved state or to repeat the current state.
	ErrState = errors.New("illegal status transition")

	// ErrNotFound marks a lookup of an unknown record.
	ErrNotFound = errors.New("record not found")

	// ErrNotAuthorized marks an actor lacking permission for a mutation.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrPersistence marks an opaque storage-layer failure, propagated
	// unchanged apart from wrapping.
	ErrPersistence = errors.New("storage failure")
)

// Pre-wrapped errors for the common cases, so call sites and tests can
// compare with errors.Is against both the specific and the root error.
var (
	ErrEmptyTitle         = fmt.Errorf("%w: title is required", ErrValidation)
	ErrEmptyDescription   = fmt.Errorf("%w: description is required", ErrValidation)
	ErrResolutionNote     = fmt.Errorf("%w: resolution note required", ErrValidation)
	ErrComplaintNotFound  = fmt.Errorf("%w: complaint not found", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrComplaintResolved  = fmt.Errorf("%w: complaint is already resolved", ErrState)
	ErrAlreadyAssigned    = fmt.Errorf("%w: complaint is already assigned", ErrState)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = fmt.Errorf("%w: email already registered", ErrValidation)
)
