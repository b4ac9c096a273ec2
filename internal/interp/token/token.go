package token

import (
	"fmt"
	"strings"
)

type TokenType string

const (
	// Words
	TokenCommand   TokenType = "COMMAND"   // known built-in, Literal is the canonical name
	TokenProcedure TokenType = "PROCEDURE" // anything else, resolved at run time
	TokenNumber    TokenType = "NUMBER"    // 42, -3.5
	TokenString    TokenType = "STRING"    // "word
	TokenVariable  TokenType = "VARIABLE"  // :name
	TokenOperator  TokenType = "OPERATOR"  // + - * / < > <= >= == !=

	// Structure
	TokenLBracket TokenType = "LBRACKET" // [
	TokenRBracket TokenType = "RBRACKET" // ]
	TokenLParen   TokenType = "LPAREN"   // (
	TokenRParen   TokenType = "RPAREN"   // )

	// Keywords
	TokenTo  TokenType = "TO"
	TokenEnd TokenType = "END"

	// Special
	TokenEOF TokenType = "EOF"
)

type Token struct {
	Type    TokenType
	Literal string // canonical text: command name, word without '"', variable without ':'
	Raw     string // text as written in the source
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s:%s", t.Type, t.Literal)
}

// StartsValue reports whether the token can begin an argument expression
// without being a bare command word.
func (t Token) StartsValue() bool {
	switch t.Type {
	case TokenNumber, TokenString, TokenVariable, TokenLBracket, TokenLParen:
		return true
	case TokenOperator:
		return t.Literal == "-" || t.Literal == "+"
	}
	return false
}

// IsNumber reports whether s is a numeral: -?\d+(\.\d+)? and the .5 shorthand.
func IsNumber(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	intPart, frac, hasDot := strings.Cut(s, ".")
	if hasDot && frac == "" {
		return false
	}
	if intPart == "" && !hasDot {
		return false
	}
	for _, part := range []string{intPart, frac} {
		for i := 0; i < len(part); i++ {
			if part[i] < '0' || part[i] > '9' {
				return false
			}
		}
	}
	return intPart != "" || frac != ""
}
