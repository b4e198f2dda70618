package compiler

import (
	"fmt"
	"strconv"

	"max/bytecode"
	"max/token"
)

// precedence levels, lowest to highest. parsePrecedence keeps consuming
// infix operators while the next operator's level is at least the one it
// was called with.
type precedence int

const (
	precNone precedence = iota
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

type parseFunc func(*Compiler, bool)

// parseRule defines how a token behaves in expression position: as a prefix
// (it can start an expression), as an infix (it combines a left operand
// with what follows), and at which precedence its infix form binds.
type parseRule struct {
	prefix     parseFunc
	infix      parseFunc
	precedence precedence
}

// Ordering comparisons deliberately share the Equality level, so equality
// and ordering associate left to right at the same precedence.
var parseRules map[token.TokenType]parseRule

func init() {
	parseRules = map[token.TokenType]parseRule{
		token.Integer:    {prefix: (*Compiler).integer},
		token.Float:      {prefix: (*Compiler).float},
		token.String:     {prefix: (*Compiler).stringLiteral},
		token.True:       {prefix: (*Compiler).literal},
		token.False:      {prefix: (*Compiler).literal},
		token.None:       {prefix: (*Compiler).literal},
		token.Identifier: {prefix: (*Compiler).variable},

		token.LeftParen: {prefix: (*Compiler).grouping, infix: (*Compiler).call, precedence: precCall},

		token.Minus: {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: precTerm},
		token.Plus:  {infix: (*Compiler).binary, precedence: precTerm},
		token.Star:  {infix: (*Compiler).binary, precedence: precFactor},
		token.Slash: {infix: (*Compiler).binary, precedence: precFactor},
		token.Bang:  {prefix: (*Compiler).unary, precedence: precUnary},

		token.EqualEqual:   {infix: (*Compiler).binary, precedence: precEquality},
		token.BangEqual:    {infix: (*Compiler).binary, precedence: precEquality},
		token.Greater:      {infix: (*Compiler).binary, precedence: precEquality},
		token.GreaterEqual: {infix: (*Compiler).binary, precedence: precEquality},
		token.Less:         {infix: (*Compiler).binary, precedence: precEquality},
		token.LessEqual:    {infix: (*Compiler).binary, precedence: precEquality},

		token.And: {infix: (*Compiler).logicAnd, precedence: precAnd},
		token.Or:  {infix: (*Compiler).logicOr, precedence: precOr},
	}
}

func ruleFor(t token.TokenType) parseRule {
	return parseRules[t]
}

// parsePrecedence drives the Pratt loop: apply the prefix rule of the token
// just consumed, then fold infix operators while they bind at least as
// tightly as prec. canAssign is threaded into rules so only
// assignment-position identifiers accept a trailing `=`.
func (c *Compiler) parsePrecedence(prec precedence) {
	p := c.parser
	p.advance()

	canAssign := prec <= precAssignment
	rule := ruleFor(p.previous.Type)
	if rule.prefix == nil {
		if p.previous.Type != token.Newline && p.current.Type == token.Newline {
			p.errorAtPrevious("Expect expression.")
			return
		}
	} else {
		rule.prefix(c, canAssign)
	}

	for prec <= ruleFor(p.current.Type).precedence {
		p.advance()
		infix := ruleFor(p.previous.Type).infix
		if infix == nil {
			break
		}
		infix(c, canAssign)
	}

	if canAssign && p.match(token.Equal) {
		p.errorAtPrevious("Invalid assignment target.")
	}
}

func (c *Compiler) integer(_ bool) {
	value, err := strconv.ParseInt(c.parser.previous.Lexeme, 10, 64)
	if err != nil {
		c.parser.errorAtPrevious("Integer literal is out of range.")
		return
	}
	c.emitConstant(bytecode.IntegerValue(value))
}

func (c *Compiler) float(_ bool) {
	value, err := strconv.ParseFloat(c.parser.previous.Lexeme, 64)
	if err != nil {
		c.parser.errorAtPrevious("Float literal is out of range.")
		return
	}
	c.emitConstant(bytecode.FloatValue(value))
}

func (c *Compiler) stringLiteral(_ bool) {
	c.emitConstant(bytecode.StringValue(c.parser.previous.Lexeme))
}

// literal emits true, false and none through the constant pool like every
// other literal, so assignment type checking can inspect them.
func (c *Compiler) literal(_ bool) {
	switch c.parser.previous.Type {
	case token.True:
		c.emitConstant(bytecode.BoolValue(true))
	case token.False:
		c.emitConstant(bytecode.BoolValue(false))
	case token.None:
		c.emitConstant(bytecode.NoneValue())
	}
}

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.parser.consume(token.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary(_ bool) {
	operator := c.parser.previous.Type
	c.parsePrecedence(precUnary)

	switch operator {
	case token.Minus:
		c.emitWord(bytecode.OpNegate)
	case token.Bang:
		c.emitWord(bytecode.OpNot)
	}
}

func (c *Compiler) binary(_ bool) {
	operator := c.parser.previous.Type
	rule := ruleFor(operator)
	c.parsePrecedence(rule.precedence + 1)

	switch operator {
	case token.Plus:
		c.emitWord(bytecode.OpAdd)
	case token.Minus:
		c.emitWord(bytecode.OpSubtract)
	case token.Star:
		c.emitWord(bytecode.OpMultiply)
	case token.Slash:
		c.emitWord(bytecode.OpDivide)
	case token.EqualEqual:
		c.emitWord(bytecode.OpEqual)
	case token.BangEqual:
		c.emitWord(bytecode.OpNotEqual)
	case token.Greater:
		c.emitWord(bytecode.OpGreater)
	case token.GreaterEqual:
		c.emitWord(bytecode.OpGreaterEqual)
	case token.Less:
		c.emitWord(bytecode.OpLess)
	case token.LessEqual:
		c.emitWord(bytecode.OpLessEqual)
	}
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.parser.previous.Lexeme, canAssign)
}

// namedVariable compiles a variable reference, or an assignment when a `=`
// follows in assignment position. Assignment is an expression: the store
// leaves the value on the stack and the trailing load re-reads the slot.
func (c *Compiler) namedVariable(name string, canAssign bool) {
	slot := c.resolveLocal(name)

	if canAssign && c.parser.match(token.Equal) {
		c.expression()
		c.setVariable(slot)
	}
	c.emitWords(bytecode.OpGet, slot)
}

// logicAnd short-circuits: when the left operand is falsy, skip the right
// operand and leave the left value as the result.
func (c *Compiler) logicAnd(_ bool) {
	endJump := c.emitJump(bytecode.OpJumpIfFalse)

	c.emitWord(bytecode.OpPop)
	c.parsePrecedence(precAnd)

	c.patchJump(endJump)
}

func (c *Compiler) logicOr(_ bool) {
	endJump := c.emitJump(bytecode.OpJumpIfTrue)

	c.emitWord(bytecode.OpPop)
	c.parsePrecedence(precOr)

	c.patchJump(endJump)
}

func (c *Compiler) call(_ bool) {
	argCount := c.argumentList()
	c.emitWords(bytecode.OpCall, bytecode.Number(argCount))
}

// argumentList compiles the arguments of a call and checks them against the
// callee's signature from the header pass: the arity must match exactly,
// and each argument must satisfy the declared parameter type, judged first
// by its leading token and then by the last known value of the named local.
func (c *Compiler) argumentList() int {
	p := c.parser
	var args []token.Token
	info := c.functionInfo(p.previous2.Lexeme)

	if !p.check(token.RightParen) {
		for {
			args = append(args, p.current)
			c.expression()
			if !p.match(token.Comma) {
				break
			}
		}
	}

	if len(args) != len(info.ArgNames) {
		if len(info.ArgNames) == 1 {
			p.errorAtPrevious(fmt.Sprintf("Expected 1 argument but got %d.", len(args)))
		} else {
			p.errorAtPrevious(fmt.Sprintf("Expected %d arguments but got %d.", len(info.ArgNames), len(args)))
		}
	}

	for i, arg := range args {
		if i >= len(info.ArgTypes) {
			break
		}
		want := info.ArgTypes[i]
		if annotationAcceptsToken(want, arg) {
			continue
		}
		if value, ok := c.values[arg.Lexeme]; ok {
			if !bytecode.AnnotationAccepts(want, value) {
				p.errorAtPrevious(fmt.Sprintf(
					"Expected argument of type %s but got argument of type %s.", want, value.TypeOf()))
			}
		} else if arg.Type != token.Identifier {
			// An identifier with no recorded value (a parameter, say) is not
			// checkable at compile time; only provable mismatches report.
			p.errorAtPrevious(fmt.Sprintf(
				"Expected argument of type %s but got argument of type %s.", want, tokenTypeName(arg)))
		}
	}

	p.consume(token.RightParen, "Expect ')' after arguments.")
	return len(args)
}

func (c *Compiler) functionInfo(name string) bytecode.FunctionInfo {
	info, ok := c.functions[name]
	if !ok {
		c.parser.errorAtPrevious2(fmt.Sprintf("Function %s could not be found.", name))
		return bytecode.FunctionInfo{}
	}
	return info
}

// annotationAcceptsToken checks an argument by its leading token alone:
// literals carry their type; anything else defers to the values map.
func annotationAcceptsToken(want token.TokenType, tok token.Token) bool {
	switch want {
	case token.TypeInt:
		return tok.Type == token.Integer
	case token.TypeFloat:
		return tok.Type == token.Float
	case token.TypeString:
		return tok.Type == token.String
	case token.TypeBool:
		return tok.Type == token.True || tok.Type == token.False
	case token.None:
		return true
	}
	return false
}

// tokenTypeName is the type name an argument token shows in diagnostics
// when no recorded value is available for it.
func tokenTypeName(tok token.Token) string {
	switch tok.Type {
	case token.Integer:
		return "int"
	case token.Float:
		return "float"
	case token.String:
		return "string"
	case token.True, token.False:
		return "bool"
	}
	return "none"
}
