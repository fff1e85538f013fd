package dbcfile

import (
	"errors"
	"fmt"
)

// Reader errors.
var (
	ErrSyntax = errors.New("dbc syntax error")
	ErrOpen   = errors.New("cannot open dbc file")
)

// SyntaxError locates a parse failure in the input.
type SyntaxError struct {
	File string
	Line int
	Col  int
	Msg  string

	// Err is the underlying model error for unresolved references.
	Err error
}

func (e *SyntaxError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Unwrap matches both ErrSyntax and the underlying model error.
func (e *SyntaxError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSyntax, e.Err}
	}
	return []error{ErrSyntax}
}
