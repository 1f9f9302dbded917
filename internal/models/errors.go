package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every lookup miss.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is matched by every rejected input value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientData is returned when a comparison needs more data points than are stored.
	ErrInsufficientData = errors.New("insufficient data for comparison")
)

// NotFoundError reports a missing entity. Its message is "<Entity> not found".
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound returns a NotFoundError for entity.
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// InvalidArgumentError carries a user-facing message for a rejected input.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return e.Msg
}

// Is makes errors.Is(err, ErrInvalidArgument) hold.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// InvalidArgument returns an InvalidArgumentError with a formatted message.
func InvalidArgument(format string, args ...any) error {
	return &InvalidArgumentError{Msg: fmt.Sprintf(format, args...)}
}
