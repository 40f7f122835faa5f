package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownValidation is returned when a `.should()` assertion keyword
	// has no Playwright counterpart.
	ErrUnknownValidation = errors.New("unknown validation")
	// ErrSyntax is returned when the input does not parse.
	ErrSyntax = errors.New("syntax error")
)

// UnknownValidationError carries the offending assertion keyword.
type UnknownValidationError struct {
	Keyword string
}

func (e *UnknownValidationError) Error() string {
	return fmt.Sprintf("unknown %q validation", e.Keyword)
}

func (e *UnknownValidationError) Unwrap() error {
	return ErrUnknownValidation
}

// SyntaxError points at the first erroneous node of the input.
type SyntaxError struct {
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d", e.Line, e.Column)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
