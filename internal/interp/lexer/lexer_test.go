package lexer

import (
	"testing"

	"github.com/arnavsurve/logo/internal/interp/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tok struct {
	Type    token.TokenType
	Literal string
}

func kinds(tokens []token.Token) []tok {
	out := make([]tok, len(tokens))
	for i, t := range tokens {
		out[i] = tok{t.Type, t.Literal}
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "command and number",
			input: "fd 100",
			want: []tok{
				{token.TokenCommand, "FORWARD"},
				{token.TokenNumber, "100"},
				{token.TokenEOF, ""},
			},
		},
		{
			name:  "padding around brackets",
			input: "repeat 4[fd 10 rt 90]",
			want: []tok{
				{token.TokenCommand, "REPEAT"},
				{token.TokenNumber, "4"},
				{token.TokenLBracket, "["},
				{token.TokenCommand, "FORWARD"},
				{token.TokenNumber, "10"},
				{token.TokenCommand, "RIGHT"},
				{token.TokenNumber, "90"},
				{token.TokenRBracket, "]"},
				{token.TokenEOF, ""},
			},
		},
		{
			name:  "quoted word and variable",
			input: `make "size :Side`,
			want: []tok{
				{token.TokenCommand, "MAKE"},
				{token.TokenString, "size"},
				{token.TokenVariable, "Side"},
				{token.TokenEOF, ""},
			},
		},
		{
			name:  "operators without spaces",
			input: ":x+1<=2",
			want: []tok{
				{token.TokenVariable, "x"},
				{token.TokenOperator, "+"},
				{token.TokenNumber, "1"},
				{token.TokenOperator, "<="},
				{token.TokenNumber, "2"},
				{token.TokenEOF, ""},
			},
		},
		{
			name:  "two-character operators",
			input: "1 == 2 != 3 >= 4 = 5",
			want: []tok{
				{token.TokenNumber, "1"},
				{token.TokenOperator, "=="},
				{token.TokenNumber, "2"},
				{token.TokenOperator, "!="},
				{token.TokenNumber, "3"},
				{token.TokenOperator, ">="},
				{token.TokenNumber, "4"},
				{token.TokenOperator, "="},
				{token.TokenNumber, "5"},
				{token.TokenEOF, ""},
			},
		},
		{
			name:  "negative literal at word start",
			input: "fd -10.5",
			want: []tok{
				{token.TokenCommand, "FORWARD"},
				{token.TokenNumber, "-10.5"},
				{token.TokenEOF, ""},
			},
		},
		{
			name:  "minus between operands",
			input: "5-3 :a - 2",
			want: []tok{
				{token.TokenNumber, "5"},
				{token.TokenOperator, "-"},
				{token.TokenNumber, "3"},
				{token.TokenVariable, "a"},
				{token.TokenOperator, "-"},
				{token.TokenNumber, "2"},
				{token.TokenEOF, ""},
			},
		},
		{
			name:  "negative after open paren",
			input: "(-2)",
			want: []tok{
				{token.TokenLParen, "("},
				{token.TokenNumber, "-2"},
				{token.TokenRParen, ")"},
				{token.TokenEOF, ""},
			},
		},
		{
			name:  "definition keywords and procedure name",
			input: "To Square :n\nend",
			want: []tok{
				{token.TokenTo, "TO"},
				{token.TokenProcedure, "Square"},
				{token.TokenVariable, "n"},
				{token.TokenEnd, "END"},
				{token.TokenEOF, ""},
			},
		},
		{
			name:  "comments are dropped",
			input: "pu ; lift the pen\npd",
			want: []tok{
				{token.TokenCommand, "PENUP"},
				{token.TokenCommand, "PENDOWN"},
				{token.TokenEOF, ""},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  []tok{{token.TokenEOF, ""}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, kinds(Tokenize(tc.input)))
		})
	}
}

func TestTokenPositions(t *testing.T) {
	tokens := Tokenize("fd 10\n  rt 90")
	require.Len(t, tokens, 5)

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Column)
	assert.Equal(t, 1, tokens[1].Line)
	assert.Equal(t, 4, tokens[1].Column)
	assert.Equal(t, 2, tokens[2].Line)
	assert.Equal(t, 3, tokens[2].Column)
	assert.Equal(t, "rt", tokens[2].Raw)
	assert.Equal(t, "RIGHT", tokens[2].Literal)
}

func TestQuotedWordKeepsOperatorGlyphs(t *testing.T) {
	tokens := Tokenize(`print "a+b]`)
	require.Len(t, tokens, 4)
	assert.Equal(t, token.TokenString, tokens[1].Type)
	assert.Equal(t, "a+b", tokens[1].Literal)
	assert.Equal(t, `"a+b`, tokens[1].Raw)
	assert.Equal(t, token.TokenRBracket, tokens[2].Type)
}

func TestUnknownWordsBecomeProcedures(t *testing.T) {
	for _, word := range []string{"spiral", "x1", "5.", "hello!"} {
		tokens := Tokenize(word)
		assert.Equal(t, token.TokenProcedure, tokens[0].Type, word)
		assert.Equal(t, word, tokens[0].Literal, word)
	}
}
