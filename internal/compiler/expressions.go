package compiler

import (
	"strconv"
	"strings"

	"lox-core/internal/chunk"
	"lox-core/internal/token"
	"lox-core/internal/value"
)

type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ( )
	precPrimary
)

type parseFn func(c *Compiler, canAssign bool) error

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

// rules is the fixed Pratt dispatch table keyed by token kind (spec.md
// §4.E.2), the same map[tokenKind]{prefix,infix,precedence} shape used
// across the example corpus's Pratt parsers (e.g. other_examples'
// informatter-nilan compiler), here driving bytecode emission directly
// instead of AST construction.
var rules map[token.Type]parseRule

func init() {
	rules = map[token.Type]parseRule{
		token.LPAREN:        {prefix: (*Compiler).grouping, infix: (*Compiler).call, precedence: precCall},
		token.MINUS:         {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: precTerm},
		token.PLUS:          {infix: (*Compiler).binary, precedence: precTerm},
		token.SLASH:         {infix: (*Compiler).binary, precedence: precFactor},
		token.STAR:          {infix: (*Compiler).binary, precedence: precFactor},
		token.BANG:          {prefix: (*Compiler).unary},
		token.BANG_EQUAL:    {infix: (*Compiler).binary, precedence: precEquality},
		token.EQUAL_EQUAL:   {infix: (*Compiler).binary, precedence: precEquality},
		token.GREATER:       {infix: (*Compiler).binary, precedence: precComparison},
		token.GREATER_EQUAL: {infix: (*Compiler).binary, precedence: precComparison},
		token.LESS:          {infix: (*Compiler).binary, precedence: precComparison},
		token.LESS_EQUAL:    {infix: (*Compiler).binary, precedence: precComparison},
		token.IDENTIFIER:    {prefix: (*Compiler).variable},
		token.STRING:        {prefix: (*Compiler).stringLiteral},
		token.NUMBER:        {prefix: (*Compiler).number},
		token.AND:           {infix: (*Compiler).and_, precedence: precAnd},
		token.OR:            {infix: (*Compiler).or_, precedence: precOr},
		token.FALSE:         {prefix: (*Compiler).literal},
		token.TRUE:          {prefix: (*Compiler).literal},
		token.NIL:           {prefix: (*Compiler).literal},
	}
}

func ruleFor(t token.Type) parseRule {
	return rules[t]
}

func (c *Compiler) expression() error {
	return c.parsePrecedence(precAssignment)
}

// parsePrecedence is the Pratt engine: advance, run the prefix rule of
// c.previous, then fold in infix operators whose precedence is at least
// prec. canAssign gates '=' so only low-precedence variable positions
// accept an assignment (spec.md §4.E.2).
func (c *Compiler) parsePrecedence(prec precedence) error {
	if err := c.advance(); err != nil {
		return err
	}
	rule := ruleFor(c.previous.Type)
	if rule.prefix == nil {
		return newError(ErrExpectedExpression, c.previous.Line, "Expected expression.")
	}
	canAssign := prec <= precAssignment
	if err := rule.prefix(c, canAssign); err != nil {
		return err
	}

	for prec <= ruleFor(c.current.Type).precedence {
		if err := c.advance(); err != nil {
			return err
		}
		infix := ruleFor(c.previous.Type).infix
		if err := infix(c, canAssign); err != nil {
			return err
		}
	}

	if canAssign {
		if ok, err := c.match(token.EQUAL); err != nil {
			return err
		} else if ok {
			return newError(ErrInvalidAssignmentTarget, c.previous.Line, "Invalid assignment target.")
		}
	}
	return nil
}

func (c *Compiler) grouping(_ bool) error {
	if err := c.expression(); err != nil {
		return err
	}
	return c.consume(token.RPAREN, "Expect ')' after expression.")
}

func (c *Compiler) unary(_ bool) error {
	opType := c.previous.Type
	if err := c.parsePrecedence(precUnary); err != nil {
		return err
	}
	switch opType {
	case token.BANG:
		c.emitOp(chunk.OP_NOT)
	case token.MINUS:
		c.emitOp(chunk.OP_NEGATE)
	}
	return nil
}

func (c *Compiler) binary(_ bool) error {
	opType := c.previous.Type
	rule := ruleFor(opType)
	if err := c.parsePrecedence(rule.precedence + 1); err != nil {
		return err
	}
	switch opType {
	case token.PLUS:
		c.emitOp(chunk.OP_ADD)
	case token.MINUS:
		c.emitOp(chunk.OP_SUBTRACT)
	case token.STAR:
		c.emitOp(chunk.OP_MULTIPLY)
	case token.SLASH:
		c.emitOp(chunk.OP_DIVIDE)
	case token.BANG_EQUAL:
		c.emitOps(chunk.OP_EQUAL, chunk.OP_NOT)
	case token.EQUAL_EQUAL:
		c.emitOp(chunk.OP_EQUAL)
	case token.GREATER:
		c.emitOp(chunk.OP_GREATER)
	case token.GREATER_EQUAL:
		c.emitOps(chunk.OP_LESS, chunk.OP_NOT)
	case token.LESS:
		c.emitOp(chunk.OP_LESS)
	case token.LESS_EQUAL:
		c.emitOps(chunk.OP_GREATER, chunk.OP_NOT)
	}
	return nil
}

// call compiles a call's argument list and emits CALL argc; "(" is
// already consumed as the infix token.
func (c *Compiler) call(_ bool) error {
	argc := 0
	if !c.check(token.RPAREN) {
		for {
			if err := c.expression(); err != nil {
				return err
			}
			argc++
			if argc > 255 {
				return newError(ErrTooManyArguments, c.previous.Line, "Can't have more than 255 arguments.")
			}
			if ok, err := c.match(token.COMMA); err != nil {
				return err
			} else if !ok {
				break
			}
		}
	}
	if err := c.consume(token.RPAREN, "Expect ')' after arguments."); err != nil {
		return err
	}
	c.ctx.chunk.WriteCall(argc, c.previous.Line)
	return nil
}

func (c *Compiler) literal(_ bool) error {
	switch c.previous.Type {
	case token.FALSE:
		c.emitOp(chunk.OP_FALSE)
	case token.TRUE:
		c.emitOp(chunk.OP_TRUE)
	case token.NIL:
		c.emitOp(chunk.OP_NIL)
	}
	return nil
}

func (c *Compiler) number(_ bool) error {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		return newError(ErrUnexpectedToken, c.previous.Line, "Invalid number literal %q.", c.previous.Lexeme)
	}
	return c.emitConstant(value.NewNumber(n))
}

// stringLiteral strips the surrounding quotes the lexeme carries (no
// escape-sequence expansion, per spec.md §4.D).
func (c *Compiler) stringLiteral(_ bool) error {
	raw := c.previous.Lexeme
	s := strings.TrimSuffix(strings.TrimPrefix(raw, `"`), `"`)
	return c.emitConstant(value.NewObject(value.NewString(s)))
}

func (c *Compiler) variable(canAssign bool) error {
	name := c.previous
	var getOp, setOp chunk.OpCode
	var operand byte

	if idx := resolveLocal(c.ctx, name.Lexeme); idx != -1 {
		getOp, setOp = chunk.OP_GET_LOCAL, chunk.OP_SET_LOCAL
		operand = byte(idx)
	} else {
		cidx, err := c.ctx.chunk.AddConstant(value.NewObject(value.NewString(name.Lexeme)))
		if err != nil {
			return newError(ErrTooManyConstants, name.Line, "Too many constants in one chunk.")
		}
		getOp, setOp = chunk.OP_GET_GLOBAL, chunk.OP_SET_GLOBAL
		operand = byte(cidx)
	}

	if canAssign {
		if ok, err := c.match(token.EQUAL); err != nil {
			return err
		} else if ok {
			if err := c.expression(); err != nil {
				return err
			}
			c.emitOp(setOp)
			c.emitByte(operand)
			return nil
		}
	}
	c.emitOp(getOp)
	c.emitByte(operand)
	return nil
}

// and_ short-circuits: if the LHS (already on the stack) is falsey, jump
// over the RHS, leaving the falsey LHS as the result.
func (c *Compiler) and_(_ bool) error {
	endJump := c.emitJump(chunk.OP_JUMP_IF_FALSE)
	c.emitOp(chunk.OP_POP)
	if err := c.parsePrecedence(precAnd); err != nil {
		return err
	}
	c.patchJump(endJump)
	return nil
}

// or_ short-circuits the other way: if the LHS is truthy, jump straight
// past the RHS.
func (c *Compiler) or_(_ bool) error {
	elseJump := c.emitJump(chunk.OP_JUMP_IF_FALSE)
	endJump := c.emitJump(chunk.OP_JUMP)

	c.patchJump(elseJump)
	c.emitOp(chunk.OP_POP)

	if err := c.parsePrecedence(precOr); err != nil {
		return err
	}
	c.patchJump(endJump)
	return nil
}
