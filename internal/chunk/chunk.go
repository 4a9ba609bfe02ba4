// Package chunk implements the compiled-function bytecode container: an
// append-only byte sequence plus its constant pool, and the handful of
// write/patch operations the compiler uses to emit and backpatch code.
package chunk

import (
	"fmt"

	"lox-core/internal/value"
)

type OpCode byte

const (
	OP_CONSTANT OpCode = iota
	OP_NIL
	OP_TRUE
	OP_FALSE
	OP_POP
	OP_DEFINE_GLOBAL
	OP_GET_GLOBAL
	OP_SET_GLOBAL
	OP_GET_LOCAL
	OP_SET_LOCAL
	OP_EQUAL
	OP_GREATER
	OP_LESS
	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_NOT
	OP_NEGATE
	OP_PRINT
	OP_JUMP
	OP_JUMP_IF_FALSE
	OP_CALL
	OP_RETURN
)

var opNames = map[OpCode]string{
	OP_CONSTANT:      "OP_CONSTANT",
	OP_NIL:           "OP_NIL",
	OP_TRUE:          "OP_TRUE",
	OP_FALSE:         "OP_FALSE",
	OP_POP:           "OP_POP",
	OP_DEFINE_GLOBAL: "OP_DEFINE_GLOBAL",
	OP_GET_GLOBAL:    "OP_GET_GLOBAL",
	OP_SET_GLOBAL:    "OP_SET_GLOBAL",
	OP_GET_LOCAL:     "OP_GET_LOCAL",
	OP_SET_LOCAL:     "OP_SET_LOCAL",
	OP_EQUAL:         "OP_EQUAL",
	OP_GREATER:       "OP_GREATER",
	OP_LESS:          "OP_LESS",
	OP_ADD:           "OP_ADD",
	OP_SUBTRACT:      "OP_SUBTRACT",
	OP_MULTIPLY:      "OP_MULTIPLY",
	OP_DIVIDE:        "OP_DIVIDE",
	OP_NOT:           "OP_NOT",
	OP_NEGATE:        "OP_NEGATE",
	OP_PRINT:         "OP_PRINT",
	OP_JUMP:          "OP_JUMP",
	OP_JUMP_IF_FALSE: "OP_JUMP_IF_FALSE",
	OP_CALL:          "OP_CALL",
	OP_RETURN:        "OP_RETURN",
}

func (op OpCode) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("OP_%d", byte(op))
}

// MaxConstants is the largest number of distinct constants a single chunk
// may hold; a constant's index is encoded in one operand byte.
const MaxConstants = 256

// Chunk is a compiled function body: its bytecode and the dense ordered
// pool of constant Values its CONSTANT-family opcodes index into.
type Chunk struct {
	Code      []byte
	Constants []value.Value
	Lines     []int
}

func New() *Chunk {
	return &Chunk{}
}

// Write appends a single opcode (or raw operand) byte, returning its offset.
func (c *Chunk) Write(b byte, line int) int {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
	return len(c.Code) - 1
}

// AddConstant appends v to the constant pool and returns its index, or an
// error if doing so would exceed MaxConstants.
func (c *Chunk) AddConstant(v value.Value) (int, error) {
	if len(c.Constants) >= MaxConstants {
		return 0, fmt.Errorf("too many constants in one chunk")
	}
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1, nil
}

// WriteConstant appends op followed by a one-byte index into a newly
// pushed constant.
func (c *Chunk) WriteConstant(op OpCode, v value.Value, line int) error {
	idx, err := c.AddConstant(v)
	if err != nil {
		return err
	}
	c.Write(byte(op), line)
	c.Write(byte(idx), line)
	return nil
}

// WriteJump appends op and a two-byte 0xFFFF placeholder, returning the
// offset of the placeholder's first byte for a later PatchJumpTo or
// PatchJumpHere call.
func (c *Chunk) WriteJump(op OpCode, line int) int {
	c.Write(byte(op), line)
	c.Write(0xFF, line)
	c.Write(0xFF, line)
	return len(c.Code) - 2
}

// WriteCall appends OP_CALL and its one-byte argument count.
func (c *Chunk) WriteCall(argc int, line int) {
	c.Write(byte(OP_CALL), line)
	c.Write(byte(argc), line)
}

// PatchJumpTo overwrites the two placeholder bytes at offset with the
// big-endian encoding of target, an absolute offset into this chunk's code.
func (c *Chunk) PatchJumpTo(offset, target int) {
	c.Code[offset] = byte((target >> 8) & 0xFF)
	c.Code[offset+1] = byte(target & 0xFF)
}

// PatchJumpHere patches the jump at offset to target the chunk's current
// end (the next instruction to be emitted).
func (c *Chunk) PatchJumpHere(offset int) {
	c.PatchJumpTo(offset, len(c.Code))
}

// ReadJumpTarget decodes the big-endian jump target stored at offset,offset+1.
func (c *Chunk) ReadJumpTarget(offset int) int {
	return int(c.Code[offset])<<8 | int(c.Code[offset+1])
}
