package compiler

import "fmt"

type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrExpectedExpression
	ErrInvalidAssignmentTarget
	ErrTooManyConstants
	ErrTooManyLocals
	ErrTooManyArguments
	ErrReturnInMain
)

// CompileError is the single error kind the compiler returns; it carries
// enough context (Kind, source Line, a human Message) to let a caller
// branch on the kind of failure without parsing the text.
type CompileError struct {
	Kind    ErrorKind
	Line    int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[COMPILER] ERROR: [line %d] %s", e.Line, e.Message)
}

func newError(kind ErrorKind, line int, format string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}
