package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSchema           = errors.New("registry schema error")
	ErrMissingCommand   = errors.New("commands missing from registry")
	ErrMalformedCommand = errors.New("malformed command")
)

// SchemaError reports a registry document that is structurally unusable.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchema, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// MissingCommandError lists every selected command name that the registry
// does not define, sorted.
type MissingCommandError struct {
	Names []string
}

func (e *MissingCommandError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingCommand, strings.Join(e.Names, ", "))
}

func (e *MissingCommandError) Unwrap() error { return ErrMissingCommand }

// MalformedCommandError is returned when a selected command cannot be turned
// into a signature because its prototype or name is absent.
type MalformedCommandError struct {
	Name   string
	Reason string
}

func (e *MalformedCommandError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %s", ErrMalformedCommand, e.Reason)
	}
	return fmt.Sprintf("%s %s: %s", ErrMalformedCommand, e.Name, e.Reason)
}

func (e *MalformedCommandError) Unwrap() error { return ErrMalformedCommand }
