package lexer

import (
	"strings"

	"github.com/arnavsurve/logo/internal/interp/runtime"
	"github.com/arnavsurve/logo/internal/interp/token"
	"github.com/rs/zerolog/log"
)

type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char

	line   int // current line number (1-indexed)
	column int // current column number (1-indexed)

	// last is the type of the previously emitted token; it decides whether
	// a '-' before a digit starts a negative number.
	last token.TokenType
	// spaced is set when whitespace or a comment preceded the current token.
	spaced bool
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize scans the whole input. The result always ends with an EOF token.
// Lexing never fails: anything that is not punctuation becomes a word.
func Tokenize(input string) []token.Token {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		log.Trace().Str("phase", "lex").Msgf("%d:%d %s", tok.Line, tok.Column, tok)
		if tok.Type == token.TokenEOF {
			break
		}
	}
	log.Debug().Str("phase", "lex").Int("tokens", len(tokens)).Msg("tokenized input")
	return tokens
}

// readChar advances the lexer's position and updates the current character.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	l.readPosition++

	// EOF sits one column past the last character.
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() token.Token {
	l.spaced = l.position == 0
	l.skipWhitespace()

	startLine := l.line
	startCol := l.column

	var tok token.Token
	switch l.ch {
	case 0:
		tok = l.newToken(token.TokenEOF, "", "", startLine, startCol)
	case '[':
		tok = l.single(token.TokenLBracket, startLine, startCol)
	case ']':
		tok = l.single(token.TokenRBracket, startLine, startCol)
	case '(':
		tok = l.single(token.TokenLParen, startLine, startCol)
	case ')':
		tok = l.single(token.TokenRParen, startLine, startCol)
	case '"':
		tok = l.readQuoted(startLine, startCol)
	case ':':
		tok = l.readVariable(startLine, startCol)
	case '-':
		if isDigit(l.peekChar()) && l.wordStart() {
			tok = l.readWord(startLine, startCol)
		} else {
			tok = l.single(token.TokenOperator, startLine, startCol)
		}
	case '+', '*', '/':
		tok = l.single(token.TokenOperator, startLine, startCol)
	case '<', '>', '=', '!':
		if l.ch == '!' && l.peekChar() != '=' {
			tok = l.readWord(startLine, startCol)
			break
		}
		ch := l.ch
		literal := string(ch)
		if l.peekChar() == '=' {
			l.readChar()
			literal += "="
		}
		l.readChar()
		tok = l.newToken(token.TokenOperator, literal, literal, startLine, startCol)
	default:
		tok = l.readWord(startLine, startCol)
	}

	l.last = tok.Type
	return tok
}

// wordStart reports whether the current position begins a new word: start of
// input, after whitespace, or right after an opening bracket or an operator.
func (l *Lexer) wordStart() bool {
	if l.spaced {
		return true
	}
	switch l.last {
	case token.TokenLBracket, token.TokenLParen, token.TokenOperator:
		return true
	}
	return false
}

func (l *Lexer) single(t token.TokenType, line, col int) token.Token {
	s := string(l.ch)
	l.readChar()
	return l.newToken(t, s, s, line, col)
}

func (l *Lexer) newToken(t token.TokenType, literal, raw string, line, col int) token.Token {
	return token.Token{Type: t, Literal: literal, Raw: raw, Line: line, Column: col}
}

// skipWhitespace also drops ';' comments to the end of the line.
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.spaced = true
			l.readChar()
		case l.ch == ';':
			l.spaced = true
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// readQuoted reads "word. Quoted words end only at whitespace, brackets or
// parentheses, so "a+b is a single word.
func (l *Lexer) readQuoted(line, col int) token.Token {
	start := l.position
	l.readChar() // consume '"'
	for !isSpace(l.ch) && !isBracket(l.ch) && l.ch != 0 {
		l.readChar()
	}
	raw := l.input[start:l.position]
	return l.newToken(token.TokenString, raw[1:], raw, line, col)
}

func (l *Lexer) readVariable(line, col int) token.Token {
	start := l.position
	l.readChar() // consume ':'
	for !isDelimiter(l.ch) && l.ch != 0 {
		l.readChar()
	}
	raw := l.input[start:l.position]
	return l.newToken(token.TokenVariable, raw[1:], raw, line, col)
}

// readWord reads a bare word and classifies it: number, TO/END, built-in
// command (normalized to its canonical name) or procedure name.
func (l *Lexer) readWord(line, col int) token.Token {
	start := l.position
	l.readChar()
	for !isDelimiter(l.ch) && l.ch != 0 {
		l.readChar()
	}
	raw := l.input[start:l.position]

	switch {
	case token.IsNumber(raw):
		return l.newToken(token.TokenNumber, raw, raw, line, col)
	case strings.EqualFold(raw, "to"):
		return l.newToken(token.TokenTo, "TO", raw, line, col)
	case strings.EqualFold(raw, "end"):
		return l.newToken(token.TokenEnd, "END", raw, line, col)
	}
	if name, ok := runtime.Canonical(raw); ok {
		return l.newToken(token.TokenCommand, name, raw, line, col)
	}
	return l.newToken(token.TokenProcedure, raw, raw, line, col)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isBracket(ch byte) bool {
	return ch == '[' || ch == ']' || ch == '(' || ch == ')'
}

// isDelimiter is the padding rule: brackets and operator glyphs end a word
// even without surrounding whitespace.
func isDelimiter(ch byte) bool {
	if isSpace(ch) || isBracket(ch) || ch == ';' {
		return true
	}
	switch ch {
	case '+', '-', '*', '/', '<', '>', '=':
		return true
	}
	return false
}
