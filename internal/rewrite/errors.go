package rewrite

import (
	"fmt"
	"go/token"
)

// Code classifies a build-time rejection.
type Code string

const (
	CodeAmbiguousDirective Code = "ambiguous-directive"
	CodeBadDirective       Code = "bad-directive"
	CodeNotOutcome         Code = "not-outcome"
	CodeMalformedBlock     Code = "malformed-block"
)

// StructuralError is a transformation-time rejection of a fragment. It is
// reported to the developer and prevents the fragment from being rewritten;
// it is never observed at run time. Recovery means editing the source.
type StructuralError struct {
	Code  Code
	Pos   token.Position
	Msg   string
	Cause error
}

func (e *StructuralError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause, enabling errors.Is chains.
func (e *StructuralError) Unwrap() error { return e.Cause }

func structural(code Code, pos token.Position, cause error, format string, args ...any) *StructuralError {
	return &StructuralError{
		Code:  code,
		Pos:   pos,
		Msg:   fmt.Sprintf(format, args...),
		Cause: cause,
	}
}
