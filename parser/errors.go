package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrExpectedChar indicates a required literal character was missing
	ErrExpectedChar = errors.New("expected character")

	// ErrExpectedKeyword indicates an identifier ran into the end of input
	ErrExpectedKeyword = errors.New("expected keyword")

	// ErrExpectedFunction indicates `name(` with nothing after it
	ErrExpectedFunction = errors.New("expected function")

	// ErrExpectedNumber indicates a missing or unterminated digit run
	ErrExpectedNumber = errors.New("expected number")

	// ErrUnexpectedInput indicates unconsumed text after a complete parse
	ErrUnexpectedInput = errors.New("unexpected input")

	// ErrUnexpectedCombinator indicates a combinator with no left operand,
	// two adjacent combinators, or a trailing combinator
	ErrUnexpectedCombinator = errors.New("unexpected combinator")

	// ErrUnterminatedString indicates a quoted literal with no closing
	// apostrophe
	ErrUnterminatedString = errors.New("unterminated string")

	// ErrEmptyInput indicates an empty or whitespace-only definition
	ErrEmptyInput = errors.New("empty value definition")

	// ErrMismatchedUnits indicates a range whose bounds carry different
	// units
	ErrMismatchedUnits = errors.New("mismatched units in range")
)

// ExpectedCharError reports an Eat mismatch: which rune was required, which
// was found, and where.
type ExpectedCharError struct {
	Expected, Actual rune
	Pos              int
}

func (e *ExpectedCharError) Error() string {
	if e.Actual == eof {
		return fmt.Sprintf("expected %q at position %d, found end of input", e.Expected, e.Pos)
	}
	return fmt.Sprintf("expected %q at position %d, found %q", e.Expected, e.Pos, e.Actual)
}

func (e *ExpectedCharError) Unwrap() error {
	return ErrExpectedChar
}

// SyntaxError attaches a source position to one of the sentinel errors.
type SyntaxError struct {
	Pos int
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Err, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Warning is a semantic condition the parser can recover from, such as
// mismatched units on a range's bounds. Options decide whether it stays
// advisory or aborts the parse.
type Warning struct {
	Pos    int
	Err    error
	Detail string
}

func (w *Warning) Error() string {
	if w.Detail != "" {
		return fmt.Sprintf("%s at position %d: %s", w.Err, w.Pos, w.Detail)
	}
	return fmt.Sprintf("%s at position %d", w.Err, w.Pos)
}

func (w *Warning) Unwrap() error {
	return w.Err
}
