package chunk

import "fmt"

// Disassemble prints a human-readable listing of c to stdout. Purely a
// diagnostic: its exact text is not part of any contract.
func (c *Chunk) Disassemble(name string) {
	fmt.Printf("== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = c.disassembleInstruction(offset)
	}
}

// DisassembleAll recursively disassembles c and every nested function
// chunk reachable through its constant pool.
func (c *Chunk) DisassembleAll(name string) {
	c.Disassemble(name)
	for _, constant := range c.Constants {
		if !constant.IsFunction() {
			continue
		}
		fn := constant.AsFunction()
		if nested, ok := fn.Chunk.(*Chunk); ok {
			fmt.Println()
			nested.DisassembleAll(fn.Name)
		}
	}
}

func (c *Chunk) disassembleInstruction(offset int) int {
	fmt.Printf("%04d ", offset)
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		fmt.Print("   | ")
	} else {
		fmt.Printf("%4d ", c.Lines[offset])
	}

	op := OpCode(c.Code[offset])
	switch op {
	case OP_CONSTANT, OP_DEFINE_GLOBAL, OP_GET_GLOBAL, OP_SET_GLOBAL:
		return c.constantInstruction(op.String(), offset)
	case OP_GET_LOCAL, OP_SET_LOCAL, OP_CALL:
		return c.byteInstruction(op.String(), offset)
	case OP_JUMP, OP_JUMP_IF_FALSE:
		return c.jumpInstruction(op.String(), offset)
	default:
		return c.simpleInstruction(op.String(), offset)
	}
}

func (c *Chunk) simpleInstruction(name string, offset int) int {
	fmt.Println(name)
	return offset + 1
}

func (c *Chunk) constantInstruction(name string, offset int) int {
	idx := c.Code[offset+1]
	fmt.Printf("%-16s %4d '%s'\n", name, idx, c.Constants[idx])
	return offset + 2
}

func (c *Chunk) byteInstruction(name string, offset int) int {
	slot := c.Code[offset+1]
	fmt.Printf("%-16s %4d\n", name, slot)
	return offset + 2
}

func (c *Chunk) jumpInstruction(name string, offset int) int {
	target := c.ReadJumpTarget(offset + 1)
	fmt.Printf("%-16s %4d -> %d\n", name, offset, target)
	return offset + 3
}
