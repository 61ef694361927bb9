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
	switch {
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func (e ValidationError) Unwrap() error { return e.Err }

// ConflictError covers uniqueness violations such as a bus already holding a schedule.
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

// InsufficientCapacityError is returned when a booking asks for more seats than remain.
type InsufficientCapacityError struct {
	Requested int
	Available int
}

func (e InsufficientCapacityError) Error() string {
	return fmt.Sprintf("insufficient seats: requested %d, available %d", e.Requested, e.Available)
}

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

func is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

func IsNotFound(err error) bool             { return is[NotFoundError](err) }
func IsValidation(err error) bool           { return is[ValidationError](err) }
func IsConflict(err error) bool             { return is[ConflictError](err) }
func IsInsufficientCapacity(err error) bool { return is[InsufficientCapacityError](err) }
func IsInternal(err error) bool             { return is[InternalError](err) }

// Classified reports whether err already carries one of the domain kinds.
func Classified(err error) bool {
	return IsNotFound(err) || IsValidation(err) || IsConflict(err) || IsInsufficientCapacity(err) || IsInternal(err)
}

// Internal wraps unclassified store errors; classified errors pass through unchanged.
func Internal(err error) error {
	if err == nil || Classified(err) {
		return err
	}
	return InternalError{Err: err}
}
