package compiler

import (
	"fmt"
	"io"

	"max/scanner"
	"max/token"
)

// Parser maintains a five-token window over the scanner's output:
// previous2, previous, current, next, next2. Two tokens of lookahead
// (current, next) are what lets the compiler tell `name =` (assignment)
// from `name :` or `name {` (function definition) without backtracking;
// previous2 lets call-site diagnostics point at the callee after the
// argument list has been consumed.
//
// One Parser instance is owned by the top-level compiler and shared by
// reference with every nested function compiler, so all of them advance the
// same token stream.
type Parser struct {
	scanner *scanner.Scanner

	previous2 token.Token
	previous  token.Token
	current   token.Token
	next      token.Token
	next2     token.Token

	hadError  bool
	panicMode bool
	errOut    io.Writer
}

func newParser(source string, errOut io.Writer) *Parser {
	p := &Parser{
		scanner: scanner.New(source),
		errOut:  errOut,
	}
	p.clearWindow()
	return p
}

func (p *Parser) clearWindow() {
	empty := token.New(token.Empty, 0)
	p.previous2 = empty
	p.previous = empty
	p.current = empty
	p.next = empty
	p.next2 = empty
}

// reset rewinds the parser to the start of the source. Error state is
// cleared along with the window; the compiler re-parses everything in its
// second pass.
func (p *Parser) reset() {
	p.scanner.Reset()
	p.clearWindow()
	p.hadError = false
	p.panicMode = false
}

// advance shifts the window by one token and refills from the scanner.
// Empty tokens are skipped; Error tokens are reported as diagnostics and
// consumed so the grammar never sees them.
func (p *Parser) advance() {
	p.previous2 = p.previous
	p.previous = p.current
	p.current = p.next
	p.next = p.next2

	for {
		p.next2 = p.scanner.ScanToken()
		for p.current.Type == token.Empty {
			p.current = p.next
			p.next = p.next2
			p.next2 = p.scanner.ScanToken()
		}
		if p.current.Type != token.Error {
			return
		}
		p.errorAt(p.current, p.current.Lexeme)
		p.current = p.next
		p.next = p.next2
	}
}

func (p *Parser) match(t token.TokenType) bool {
	if p.current.Type != t {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) check(t token.TokenType) bool {
	return p.current.Type == t
}

func (p *Parser) consume(t token.TokenType, message string) {
	if p.current.Type == t {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

func (p *Parser) errorAtCurrent(message string)   { p.errorAt(p.current, message) }
func (p *Parser) errorAtPrevious(message string)  { p.errorAt(p.previous, message) }
func (p *Parser) errorAtPrevious2(message string) { p.errorAt(p.previous2, message) }
func (p *Parser) errorAtNext(message string)      { p.errorAt(p.next, message) }

// errorAt reports one diagnostic and enters panic mode; while panicking all
// further reports are suppressed until synchronize clears the flag at the
// next statement boundary.
func (p *Parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true

	switch tok.Type {
	case token.Eof:
		fmt.Fprintf(p.errOut, "[line %d] Error at end: %s\n", tok.Line, message)
	case token.Error:
		fmt.Fprintf(p.errOut, "[line %d] Error: %s\n", tok.Line, message)
	default:
		fmt.Fprintf(p.errOut, "[line %d] Error at '%s': %s\n", tok.Line, tok.Lexeme, message)
	}
}
