// Package compiler implements the single-pass Pratt parser that compiles
// Lox-subset source directly into bytecode, with no intermediate AST.
// Grounded on estevaofon-noxy's internal/compiler/compiler.go for the
// compile-context/locals/emit-helper shape, and on the Pratt
// parseRule/precedence table technique used throughout the example
// corpus's expression compilers (e.g. the informatter-nilan compiler in
// other_examples), adapted here to drive bytecode emission directly
// instead of building an AST.
package compiler

import (
	"lox-core/internal/chunk"
	"lox-core/internal/lexer"
	"lox-core/internal/token"
	"lox-core/internal/value"
)

const maxLocals = 256

type local struct {
	name  string
	depth int
}

// funcContext is one frame of the compile-context chain: one per
// Lox function currently being compiled, linked toward its enclosing
// context (never cyclic — see spec.md §9).
type funcContext struct {
	enclosing  *funcContext
	function   *value.ObjFunction
	chunk      *chunk.Chunk
	locals     []local
	scopeDepth int
}

// Compiler drives the scanner and the Pratt expression sub-parser,
// emitting bytecode into whichever funcContext is currently active.
type Compiler struct {
	lex *lexer.Lexer

	previous token.Token
	current  token.Token

	ctx *funcContext
}

// Compile compiles the whole of source into the implicit top-level
// "main" function. It returns on the first compile error; there is no
// panic-mode recovery at this core's level (spec.md §7).
func Compile(source string) (*value.ObjFunction, error) {
	c := &Compiler{lex: lexer.New(source)}
	c.ctx = newFuncContext(nil, "main")

	if err := c.advance(); err != nil {
		return nil, err
	}

	for !c.check(token.EOF) {
		if err := c.declaration(); err != nil {
			return nil, err
		}
	}

	c.emitReturn()
	return c.ctx.function, nil
}

func newFuncContext(enclosing *funcContext, name string) *funcContext {
	ch := chunk.New()
	fn := &value.ObjFunction{Name: name, Arity: 0, Chunk: ch}
	ctx := &funcContext{enclosing: enclosing, function: fn, chunk: ch}
	// Local slot 0 is the first parameter (or first block-scoped local for
	// main): the VM's frame pointer points at the first argument, not at
	// the callee itself (spec.md §4.F.3), so no slot is reserved here.
	return ctx
}

// --- token stream -----------------------------------------------------

func (c *Compiler) advance() error {
	c.previous = c.current
	for {
		c.current = c.lex.NextToken()
		if c.current.Type != token.ERROR {
			break
		}
		return newError(ErrUnexpectedToken, c.current.Line, "%s", c.current.Lexeme)
	}
	return nil
}

func (c *Compiler) check(t token.Type) bool {
	return c.current.Type == t
}

func (c *Compiler) match(t token.Type) (bool, error) {
	if !c.check(t) {
		return false, nil
	}
	return true, c.advance()
}

func (c *Compiler) consume(t token.Type, msg string) error {
	if c.current.Type == t {
		return c.advance()
	}
	return newError(ErrUnexpectedToken, c.current.Line, "%s (got %s)", msg, token.Display(c.current.Type))
}

// --- emit helpers -------------------------------------------------------

func (c *Compiler) emitByte(b byte) {
	c.ctx.chunk.Write(b, c.previous.Line)
}

func (c *Compiler) emitOp(op chunk.OpCode) {
	c.emitByte(byte(op))
}

func (c *Compiler) emitOps(a, b chunk.OpCode) {
	c.emitOp(a)
	c.emitOp(b)
}

func (c *Compiler) emitReturn() {
	c.emitOp(chunk.OP_NIL)
	c.emitOp(chunk.OP_RETURN)
}

func (c *Compiler) emitConstant(v value.Value) error {
	if err := c.ctx.chunk.WriteConstant(chunk.OP_CONSTANT, v, c.previous.Line); err != nil {
		return newError(ErrTooManyConstants, c.previous.Line, "Too many constants in one chunk.")
	}
	return nil
}

func (c *Compiler) emitJump(op chunk.OpCode) int {
	return c.ctx.chunk.WriteJump(op, c.previous.Line)
}

func (c *Compiler) patchJump(offset int) {
	c.ctx.chunk.PatchJumpHere(offset)
}

func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(chunk.OP_JUMP)
	c.emitByte(byte((loopStart >> 8) & 0xFF))
	c.emitByte(byte(loopStart & 0xFF))
}

// --- scopes & locals ----------------------------------------------------

func (c *Compiler) beginScope() {
	c.ctx.scopeDepth++
}

func (c *Compiler) endScope() {
	c.ctx.scopeDepth--
	locals := c.ctx.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > c.ctx.scopeDepth {
		c.emitOp(chunk.OP_POP)
		locals = locals[:len(locals)-1]
	}
	c.ctx.locals = locals
}

func (c *Compiler) addLocal(name string) error {
	if len(c.ctx.locals) >= maxLocals {
		return newError(ErrTooManyLocals, c.previous.Line, "Too many local variables in function.")
	}
	c.ctx.locals = append(c.ctx.locals, local{name: name, depth: c.ctx.scopeDepth})
	return nil
}

// resolveLocal searches ctx's locals from newest to oldest for a
// byte-exact name match, per spec.md §4.E.3.
func resolveLocal(ctx *funcContext, name string) int {
	for i := len(ctx.locals) - 1; i >= 0; i-- {
		if ctx.locals[i].name == name {
			return i
		}
	}
	return -1
}

// declareVariable registers name at the current scope: a Local if inside
// a block, left for defineVariable to emit as a global otherwise.
func (c *Compiler) declareVariable(name string) error {
	if c.ctx.scopeDepth == 0 {
		return nil
	}
	return c.addLocal(name)
}

func (c *Compiler) defineVariable(name token.Token) error {
	if c.ctx.scopeDepth > 0 {
		return nil
	}
	return c.emitConstantOp(chunk.OP_DEFINE_GLOBAL, value.NewObject(value.NewString(name.Lexeme)))
}

func (c *Compiler) emitConstantOp(op chunk.OpCode, v value.Value) error {
	if err := c.ctx.chunk.WriteConstant(op, v, c.previous.Line); err != nil {
		return newError(ErrTooManyConstants, c.previous.Line, "Too many constants in one chunk.")
	}
	return nil
}
