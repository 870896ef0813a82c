package compiler

import "fmt"

// ParseError is a fatal diagnostic raised while recognizing the
// grammar or resolving an identifier (spec.md §7).
type ParseError struct {
	Msg    string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}
