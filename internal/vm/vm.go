// Package vm implements the stack-based virtual machine that executes the
// bytecode produced by the compiler package. Grounded on estevaofon-noxy's
// internal/vm/vm.go for the dispatch-loop/frame shape, generalized here to this
// language's opcode set, frame-pointer convention, and global/local
// variable model (spec.md §4.F).
package vm

import (
	"fmt"

	"github.com/google/uuid"

	"lox-core/internal/chunk"
	"lox-core/internal/table"
	"lox-core/internal/value"
)

const StackMax = 16384
const FramesMax = 64

// CallFrame is one activation record: the function being executed, its
// owned chunk, the instruction pointer into that chunk, and fp, the base
// index into vm.stack where this call's argument/local window begins.
// Per spec.md §4.F.3, fp points directly at the first argument; the
// callee's own Value sits one slot below, at fp-1.
type CallFrame struct {
	function *value.ObjFunction
	chunk    *chunk.Chunk
	ip       int
	fp       int
}

// VM owns the value stack, the call-frame stack, and the global-variable
// table for one interpretation session. It is reusable across repeated
// Interpret calls (the REPL's one-line-at-a-time model), with globals
// persisting and the value/frame stacks reset on each call.
type VM struct {
	frames     [FramesMax]CallFrame
	frameCount int

	stack    [StackMax]value.Value
	stackTop int

	globals   *table.Table
	sessionID uuid.UUID
}

// New constructs a VM with an empty global table seeded with the native
// functions (spec.md §4.F.4), tagged with a session id used only to
// correlate stack traces across a REPL session in diagnostics.
func New() *VM {
	vm := &VM{globals: table.New(), sessionID: uuid.New()}
	vm.defineNatives()
	return vm
}

// SessionID identifies this VM instance for diagnostic correlation.
func (vm *VM) SessionID() uuid.UUID {
	return vm.sessionID
}

// Interpret resets the value and call-frame stacks and runs fn as the new
// top-level call, leaving globals from any prior Interpret call intact.
func (vm *VM) Interpret(fn *value.ObjFunction) error {
	vm.stackTop = 0
	vm.frameCount = 0

	vm.push(value.NewObject(fn))
	frame := &vm.frames[0]
	frame.function = fn
	frame.chunk = fn.Chunk.(*chunk.Chunk)
	frame.ip = 0
	frame.fp = vm.stackTop
	vm.frameCount = 1

	return vm.run()
}

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

// run is the main dispatch loop: decode one opcode from the active
// frame's chunk, execute it, repeat until a top-level RETURN or an error.
func (vm *VM) run() error {
	frame := &vm.frames[vm.frameCount-1]

	readByte := func() byte {
		b := frame.chunk.Code[frame.ip]
		frame.ip++
		return b
	}
	readConstant := func() value.Value {
		return frame.chunk.Constants[readByte()]
	}
	readJumpTarget := func() int {
		hi := readByte()
		lo := readByte()
		return int(hi)<<8 | int(lo)
	}

	for {
		op := chunk.OpCode(readByte())

		switch op {
		case chunk.OP_CONSTANT:
			vm.push(readConstant())

		case chunk.OP_NIL:
			vm.push(value.Nil())
		case chunk.OP_TRUE:
			vm.push(value.NewBool(true))
		case chunk.OP_FALSE:
			vm.push(value.NewBool(false))

		case chunk.OP_POP:
			vm.pop()

		case chunk.OP_DEFINE_GLOBAL:
			name := readConstant().AsString()
			vm.globals.Set(name, vm.pop())

		case chunk.OP_GET_GLOBAL:
			name := readConstant().AsString()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError(ErrUndefinedVariable, "Undefined variable '%s'.", name)
			}
			vm.push(v)

		case chunk.OP_SET_GLOBAL:
			name := readConstant().AsString()
			if _, ok := vm.globals.Get(name); !ok {
				return vm.runtimeError(ErrUndefinedVariable, "Undefined variable '%s'.", name)
			}
			vm.globals.Set(name, vm.peek(0))

		case chunk.OP_GET_LOCAL:
			slot := readByte()
			vm.push(vm.stack[frame.fp+int(slot)])

		case chunk.OP_SET_LOCAL:
			slot := readByte()
			vm.stack[frame.fp+int(slot)] = vm.peek(0)

		case chunk.OP_EQUAL:
			// Pops right then left, per spec.md §4.F.1's EQUAL note.
			right := vm.pop()
			left := vm.pop()
			eq, err := value.Equals(right, left)
			if err != nil {
				return vm.runtimeError(ErrComparingDifferentTypes, "Cannot compare values of different types.")
			}
			vm.push(value.NewBool(eq))

		case chunk.OP_GREATER:
			right := vm.pop()
			left := vm.pop()
			if !left.IsNumber() || !right.IsNumber() {
				return vm.runtimeError(ErrOperandsMustBeNumbers, "Operands must be numbers.")
			}
			vm.push(value.NewBool(left.Num > right.Num))

		case chunk.OP_LESS:
			right := vm.pop()
			left := vm.pop()
			if !left.IsNumber() || !right.IsNumber() {
				return vm.runtimeError(ErrOperandsMustBeNumbers, "Operands must be numbers.")
			}
			vm.push(value.NewBool(left.Num < right.Num))

		case chunk.OP_ADD:
			right := vm.pop()
			left := vm.pop()
			result, err := value.Add(left, right)
			if err != nil {
				return vm.runtimeError(ErrOperandsNotAddable, "Operands must be two numbers or two strings.")
			}
			vm.push(result)

		case chunk.OP_SUBTRACT:
			right := vm.pop()
			left := vm.pop()
			if !left.IsNumber() || !right.IsNumber() {
				return vm.runtimeError(ErrOperandsMustBeNumbers, "Operands must be numbers.")
			}
			vm.push(value.NewNumber(left.Num - right.Num))

		case chunk.OP_MULTIPLY:
			right := vm.pop()
			left := vm.pop()
			if !left.IsNumber() || !right.IsNumber() {
				return vm.runtimeError(ErrOperandsMustBeNumbers, "Operands must be numbers.")
			}
			vm.push(value.NewNumber(left.Num * right.Num))

		case chunk.OP_DIVIDE:
			right := vm.pop()
			left := vm.pop()
			if !left.IsNumber() || !right.IsNumber() {
				return vm.runtimeError(ErrOperandsMustBeNumbers, "Operands must be numbers.")
			}
			vm.push(value.NewNumber(left.Num / right.Num))

		case chunk.OP_NOT:
			a := vm.pop()
			vm.push(value.NewBool(!value.IsTruthy(a)))

		case chunk.OP_NEGATE:
			a := vm.pop()
			if !a.IsNumber() {
				return vm.runtimeError(ErrOperandMustBeNumber, "Operand must be a number.")
			}
			vm.push(value.NewNumber(-a.Num))

		case chunk.OP_PRINT:
			fmt.Println(vm.pop().String())

		case chunk.OP_JUMP:
			target := readJumpTarget()
			frame.ip = target

		case chunk.OP_JUMP_IF_FALSE:
			target := readJumpTarget()
			if !value.IsTruthy(vm.peek(0)) {
				frame.ip = target
			}

		case chunk.OP_CALL:
			argc := int(readByte())
			if err := vm.callValue(argc); err != nil {
				return err
			}
			frame = &vm.frames[vm.frameCount-1]

		case chunk.OP_RETURN:
			result := vm.pop()
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.stackTop = 0
				return nil
			}
			vm.stackTop = frame.fp - 1
			vm.push(result)
			frame = &vm.frames[vm.frameCount-1]

		default:
			return vm.runtimeError(ErrNotCallable, "Unknown opcode %d.", byte(op))
		}
	}
}

// callValue implements CALL argc (spec.md §4.F.3): dispatches to a native
// or pushes a new CallFrame for a user-defined function.
func (vm *VM) callValue(argc int) error {
	calleeIdx := vm.stackTop - argc - 1
	callee := vm.stack[calleeIdx]

	if !callee.IsCallable() {
		return vm.runtimeError(ErrNotCallable, "Can only call functions and native functions.")
	}

	if callee.IsNative() {
		native := callee.AsNative()
		args := vm.stack[vm.stackTop-argc : vm.stackTop]
		result := native.Fn(argc, args)
		vm.stackTop = calleeIdx
		vm.push(result)
		return nil
	}

	fn := callee.AsFunction()
	if argc != fn.Arity {
		return vm.runtimeError(ErrArityMismatch, "Expected %d arguments but got %d.", fn.Arity, argc)
	}
	if vm.frameCount+1 > FramesMax {
		return vm.runtimeError(ErrStackOverflow, "Stack overflow.")
	}

	frame := &vm.frames[vm.frameCount]
	frame.function = fn
	frame.chunk = fn.Chunk.(*chunk.Chunk)
	frame.ip = 0
	frame.fp = vm.stackTop - argc
	vm.frameCount++
	return nil
}
