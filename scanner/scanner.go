package scanner

import (
	"unicode"

	"max/token"
)

// Scanner turns MAX source text into tokens on demand. It is a pull
// interface: each ScanToken call advances a cursor over the source and
// returns the next token, returning Eof forever once the input is exhausted.
//
// Newlines are significant in MAX (they terminate statements), so a literal
// '\n' is returned as a Newline token rather than skipped as whitespace.
type Scanner struct {
	source  []rune
	start   int
	current int
	line    int
}

func New(source string) *Scanner {
	return &Scanner{
		source: []rune(source),
		line:   1,
	}
}

// Reset rewinds the scanner to the beginning of the source. The compiler
// uses this between its header pass and its emission pass.
func (s *Scanner) Reset() {
	s.start = 0
	s.current = 0
	s.line = 1
}

// ScanToken returns the next token in the source.
func (s *Scanner) ScanToken() token.Token {
	s.skipWhitespace()
	s.start = s.current

	if s.isAtEnd() {
		return s.makeToken(token.Eof)
	}

	c := s.advance()
	if unicode.IsLetter(c) || c == '_' {
		return s.identifier()
	}
	if isDigit(c) {
		return s.number()
	}

	switch c {
	case '(':
		return s.makeToken(token.LeftParen)
	case ')':
		return s.makeToken(token.RightParen)
	case '{':
		return s.makeToken(token.LeftBrace)
	case '}':
		return s.makeToken(token.RightBrace)
	case '[':
		return s.makeToken(token.LeftBracket)
	case ']':
		return s.makeToken(token.RightBracket)
	case ',':
		return s.makeToken(token.Comma)
	case '.':
		return s.makeToken(token.Dot)
	case '-':
		return s.makeToken(token.Minus)
	case '+':
		return s.makeToken(token.Plus)
	case ':':
		return s.makeToken(token.Colon)
	case ';':
		return s.makeToken(token.Semicolon)
	case '/':
		return s.makeToken(token.Slash)
	case '*':
		return s.makeToken(token.Star)
	case '\n':
		// The newline token has an empty lexeme; the line counter only
		// advances after the token is built so it reports the line it ends.
		s.start = s.current
		tok := s.makeToken(token.Newline)
		s.line++
		return tok
	case '!':
		if s.match('=') {
			return s.makeToken(token.BangEqual)
		}
		return s.makeToken(token.Bang)
	case '=':
		if s.match('=') {
			return s.makeToken(token.EqualEqual)
		}
		return s.makeToken(token.Equal)
	case '<':
		if s.match('=') {
			return s.makeToken(token.LessEqual)
		}
		return s.makeToken(token.Less)
	case '>':
		if s.match('=') {
			return s.makeToken(token.GreaterEqual)
		}
		return s.makeToken(token.Greater)
	case '"', '\'':
		return s.string()
	}

	return s.errorToken("Unexpected character.", s.line)
}

// skipWhitespace consumes spaces, tabs and carriage returns, plus both
// comment forms: `--` to end of line and `-*` ... `*-` blocks. Newlines
// inside a block comment bump the line counter; a literal newline outside a
// comment is left for ScanToken to tokenize.
func (s *Scanner) skipWhitespace() {
	for {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.current++
		case '-':
			switch s.peekNext() {
			case '-':
				for s.peek() != '\n' && !s.isAtEnd() {
					s.current++
				}
			case '*':
				s.current += 2
				for !s.isAtEnd() && !(s.peek() == '*' && s.peekNext() == '-') {
					if s.peek() == '\n' {
						s.line++
					}
					s.current++
				}
				s.current += 2
				if s.current > len(s.source) {
					s.current = len(s.source)
				}
			default:
				return
			}
		default:
			return
		}
	}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) advance() rune {
	s.current++
	return s.source[s.current-1]
}

func (s *Scanner) match(expected rune) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() rune {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

// string scans a literal delimited by the quote character that opened it.
// A backslash escapes the closing quote only; any other backslash passes
// through into the lexeme untouched. An unterminated literal produces an
// Error token carrying the line the literal started on.
func (s *Scanner) string() token.Token {
	quote := s.source[s.start]
	s.start++
	startLine := s.line
	for s.peek() != quote && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		if s.peek() == '\\' && s.peekNext() == quote {
			s.current++
		}
		s.current++
	}

	if s.isAtEnd() {
		return s.errorToken("Unterminated string.", startLine)
	}

	tok := s.makeToken(token.String)
	s.current++
	return tok
}

// number scans an Integer, or a Float when a dot with at least one digit
// after it follows the integer part. A trailing dot is not consumed: `1.`
// scans as the integer 1 followed by a Dot token.
func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.current++
	}

	if s.peek() != '.' || !isDigit(s.peekNext()) {
		return s.makeToken(token.Integer)
	}

	s.current++
	for isDigit(s.peek()) {
		s.current++
	}
	return s.makeToken(token.Float)
}

func (s *Scanner) identifier() token.Token {
	for unicode.IsLetter(s.peek()) || isDigit(s.peek()) || s.peek() == '_' {
		s.current++
	}

	lexeme := string(s.source[s.start:s.current])
	if keyword, ok := token.Keywords[lexeme]; ok {
		return s.makeToken(keyword)
	}
	return s.makeToken(token.Identifier)
}

func (s *Scanner) makeToken(t token.TokenType) token.Token {
	return token.Token{
		Type:   t,
		Lexeme: string(s.source[s.start:s.current]),
		Line:   s.line,
	}
}

func (s *Scanner) errorToken(message string, line int) token.Token {
	return token.Token{
		Type:   token.Error,
		Lexeme: message,
		Line:   line,
	}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
