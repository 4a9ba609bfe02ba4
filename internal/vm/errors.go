package vm

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type ErrorKind int

const (
	ErrOperandMustBeNumber ErrorKind = iota
	ErrOperandsMustBeNumbers
	ErrOperandsNotAddable
	ErrUndefinedVariable
	ErrNotCallable
	ErrArityMismatch
	ErrComparingDifferentTypes
	ErrStackOverflow
)

// StackFrame is one entry of the call stack captured at the moment a
// RuntimeError is raised, innermost first.
type StackFrame struct {
	FunctionName string
	Line         int
}

// RuntimeError carries the failure kind plus the call stack active when it
// was raised, grounded on kristofer-smog's pkg/vm/errors.go trace format.
// SessionID identifies which VM instance raised it, so a host juggling
// several VMs (e.g. a REPL that restarts one per crashed session) can
// correlate a trace on stderr with the session that produced it.
type RuntimeError struct {
	Kind       ErrorKind
	Message    string
	StackTrace []StackFrame
	SessionID  uuid.UUID
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[INTERPRETER] ERROR: [session %s] %s", e.SessionID, e.Message)
	for _, frame := range e.StackTrace {
		name := frame.FunctionName
		if name == "" {
			name = "<script>"
		}
		fmt.Fprintf(&b, "\n  [line %d] in %s", frame.Line, name)
	}
	return b.String()
}

func (vm *VM) runtimeError(kind ErrorKind, format string, args ...interface{}) *RuntimeError {
	msg := fmt.Sprintf(format, args...)
	trace := make([]StackFrame, 0, vm.frameCount)
	for i := vm.frameCount - 1; i >= 0; i-- {
		f := &vm.frames[i]
		line := 0
		if f.ip-1 >= 0 && f.ip-1 < len(f.chunk.Lines) {
			line = f.chunk.Lines[f.ip-1]
		}
		trace = append(trace, StackFrame{FunctionName: f.function.Name, Line: line})
	}
	return &RuntimeError{Kind: kind, Message: msg, StackTrace: trace, SessionID: vm.sessionID}
}
