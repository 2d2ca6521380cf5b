package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// ConflictError means a confirmed event already covers the requested range.
// Recoverable by choosing different dates.
type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// TransientError wraps network/storage failures that are safe to retry.
// A failed availability check must surface as transient, never as "available".
type TransientError struct {
	Op  string
	Err error
}

func (e TransientError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: temporary failure, retry", e.Op)
	}
	return "temporary failure, retry"
}

func (e TransientError) Unwrap() error { return e.Err }

// PartialFailureError marks a half-written booking aggregate. With the single
// transaction write path this must never happen; seeing one means manual
// reconciliation is required.
type PartialFailureError struct {
	Msg string
	Err error
}

func (e PartialFailureError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("partial write: %s", e.Msg)
	}
	return "partial write detected"
}

func (e PartialFailureError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsTransient(err error) bool {
	var target TransientError
	return errors.As(err, &target)
}

func IsPartialFailure(err error) bool {
	var target PartialFailureError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
