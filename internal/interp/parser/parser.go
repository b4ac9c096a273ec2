package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arnavsurve/logo/internal/interp/lexer"
	"github.com/arnavsurve/logo/internal/interp/runtime"
	"github.com/arnavsurve/logo/internal/interp/token"
	"github.com/rs/zerolog/log"
)

type Parser struct {
	tokens   []token.Token
	pos      int
	errors   []string
	warnings []string

	// arities maps lowercase procedure names to their parameter counts. It is
	// seeded from WithProcedures and from a first pass over TO headers, so a
	// call can precede the definition in the same source.
	arities map[string]int
	// defining is the procedure whose body is being parsed, "" at top level.
	defining string
	blocks   int // nesting depth of [ ] blocks
}

type Option func(*Parser)

// WithProcedures makes procedures defined by earlier submissions known to
// this parse, keyed by name with their parameter counts.
func WithProcedures(arities map[string]int) Option {
	return func(p *Parser) {
		for name, n := range arities {
			p.arities[strings.ToLower(name)] = n
		}
	}
}

func New(tokens []token.Token, opts ...Option) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.TokenEOF {
		tokens = append(tokens, token.Token{Type: token.TokenEOF})
	}
	p := &Parser{
		tokens:   tokens,
		errors:   []string{},
		warnings: []string{},
		arities:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds a Program from text. tokens may be nil, in which case text is
// tokenized first. Parse never fails: problems end up in Program.Diagnostics.
func Parse(text string, tokens []token.Token, opts ...Option) *runtime.Program {
	if tokens == nil {
		tokens = lexer.Tokenize(text)
	}
	return New(tokens, opts...).ParseProgram()
}

// --- Token Handling ---

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) at(t token.TokenType) bool {
	return p.cur().Type == t
}

// --- Error/Warning Handling ---

func (p *Parser) addError(tok token.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	errMsg := fmt.Sprintf("%d:%d: Syntax Error: %s", tok.Line, tok.Column, msg)
	log.Debug().Str("phase", "parse").Msg(errMsg)
	p.errors = append(p.errors, errMsg)
}

func (p *Parser) addSemanticError(tok token.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	errMsg := fmt.Sprintf("%d:%d: Semantic Error: %s", tok.Line, tok.Column, msg)
	log.Debug().Str("phase", "parse").Msg(errMsg)
	p.errors = append(p.errors, errMsg)
}

func (p *Parser) addWarning(tok token.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.warnings = append(p.warnings, fmt.Sprintf("%d:%d: Semantic Warning: %s", tok.Line, tok.Column, msg))
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.TokenEOF:
		return "end of input"
	case token.TokenString:
		return fmt.Sprintf("%q", tok.Raw)
	}
	if tok.Raw != "" {
		return tok.Raw
	}
	return tok.Literal
}

// --- Program ---

func (p *Parser) ParseProgram() *runtime.Program {
	p.collectProcedureHeaders()

	program := &runtime.Program{}
	for !p.at(token.TokenEOF) {
		start := p.pos
		cmd, ok := p.parseStatement()
		if ok {
			program.Commands = append(program.Commands, cmd)
			continue
		}
		// Skip the offending token and resume with the next statement.
		if p.pos == start || !p.startsStatement() {
			p.advance()
		}
	}

	program.Diagnostics = p.errors
	program.Warnings = p.warnings
	log.Debug().Str("phase", "parse").
		Int("commands", len(program.Commands)).
		Int("errors", len(p.errors)).
		Int("warnings", len(p.warnings)).
		Msg("parsed program")
	return program
}

// collectProcedureHeaders is the first pass: it records the arity of every
// TO name :p... header without building anything.
func (p *Parser) collectProcedureHeaders() {
	for i := 0; i < len(p.tokens)-1; i++ {
		if p.tokens[i].Type != token.TokenTo {
			continue
		}
		name := p.tokens[i+1]
		if name.Type != token.TokenProcedure {
			continue
		}
		n := 0
		for j := i + 2; j < len(p.tokens) && p.tokens[j].Type == token.TokenVariable; j++ {
			n++
		}
		p.arities[strings.ToLower(name.Literal)] = n
	}
}

// --- Statements ---

func (p *Parser) parseStatement() (runtime.Command, bool) {
	tok := p.cur()
	switch tok.Type {
	case token.TokenTo:
		return p.parseDefinition()
	case token.TokenEnd:
		p.addError(tok, "END without a matching TO")
		return nil, false
	case token.TokenCommand:
		return p.parseCommand(false)
	case token.TokenProcedure:
		return p.parseCall(false)
	case token.TokenLParen:
		v, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		if v.Kind == runtime.KindCommand {
			return v.Cmd, true
		}
		p.addSemanticError(tok, "you don't say what to do with %s", v.Source())
		return nil, false
	case token.TokenRBracket:
		p.addError(tok, "unexpected ]")
		return nil, false
	case token.TokenRParen:
		p.addError(tok, "unexpected )")
		return nil, false
	}
	p.addSemanticError(tok, "you don't say what to do with %s", describe(tok))
	return nil, false
}

// parseStatements reads commands until one of the stop tokens or EOF. Bad
// statements are reported and skipped; the stop token is never consumed.
func (p *Parser) parseStatements(stop token.TokenType) []runtime.Command {
	var cmds []runtime.Command
	for !p.at(stop) && !p.at(token.TokenEOF) {
		start := p.pos
		cmd, ok := p.parseStatement()
		if ok {
			cmds = append(cmds, cmd)
			continue
		}
		if p.at(stop) || p.at(token.TokenEOF) {
			break
		}
		if p.pos == start || !p.startsStatement() {
			p.advance()
		}
	}
	return cmds
}

// startsStatement reports whether the current token begins a new command.
// Recovery does not skip such tokens.
func (p *Parser) startsStatement() bool {
	switch p.cur().Type {
	case token.TokenCommand, token.TokenProcedure, token.TokenTo:
		return true
	}
	return false
}

// parseDefinition parses TO name :p1 :p2 ... body END.
func (p *Parser) parseDefinition() (runtime.Command, bool) {
	toTok := p.cur()
	if p.defining != "" {
		p.addSemanticError(toTok, "cannot define a procedure inside %s", p.defining)
		return nil, false
	}
	if p.blocks > 0 {
		p.addSemanticError(toTok, "cannot define a procedure inside a block")
		return nil, false
	}
	p.advance()

	nameTok := p.cur()
	switch nameTok.Type {
	case token.TokenProcedure:
	case token.TokenCommand:
		p.addSemanticError(nameTok, "%s is a built-in command and cannot be redefined", nameTok.Literal)
		return nil, false
	default:
		p.addError(nameTok, "TO needs a procedure name, got %s", describe(nameTok))
		return nil, false
	}
	p.advance()

	proc := &runtime.Procedure{Name: nameTok.Literal}
	seen := map[string]bool{}
	for p.at(token.TokenVariable) {
		param := p.cur()
		key := strings.ToLower(param.Literal)
		if seen[key] {
			p.addSemanticError(param, "duplicate input :%s in %s", param.Literal, proc.Name)
		}
		seen[key] = true
		proc.Params = append(proc.Params, param.Literal)
		p.advance()
	}
	p.arities[strings.ToLower(proc.Name)] = len(proc.Params)

	p.defining = proc.Name
	proc.Body = p.parseStatements(token.TokenEnd)
	p.defining = ""

	if !p.at(token.TokenEnd) {
		p.addError(p.cur(), "missing END for procedure %s", proc.Name)
		return nil, false
	}
	p.advance()

	log.Debug().Str("phase", "parse").Msgf("procedure %s with %d inputs", proc.Name, len(proc.Params))
	return &runtime.DefineCommand{Proc: proc, Tok: toTok}, true
}

// parseCommand parses a built-in and its declared argument slots.
func (p *Parser) parseCommand(paren bool) (runtime.Command, bool) {
	tok := p.cur()
	def, ok := runtime.LookupCommand(tok.Literal)
	if !ok {
		p.addSemanticError(tok, "unknown command %s", tok.Literal)
		return nil, false
	}
	p.advance()

	args := make([]runtime.Value, 0, len(def.Args))
	if paren && def.Variadic {
		for !p.at(token.TokenRParen) {
			if p.at(token.TokenEOF) {
				p.addError(tok, "unterminated parenthesis, missing )")
				return nil, false
			}
			arg, ok := p.parseArg(def, len(args), runtime.ArgExpr)
			if !ok {
				return nil, false
			}
			args = append(args, arg)
		}
		if len(args) < def.MinArgs {
			p.addError(tok, "not enough inputs to %s", def.Name)
			return nil, false
		}
	} else {
		for i, shape := range def.Args {
			arg, ok := p.parseArg(def, i, shape)
			if !ok {
				return nil, false
			}
			args = append(args, arg)
		}
	}

	cmd := def.New(args, tok)
	if b, ok := cmd.(*runtime.BuiltinCommand); ok {
		b.Paren = paren && def.Variadic
	}
	return cmd, true
}

func (p *Parser) parseArg(def *runtime.Definition, i int, shape runtime.ArgShape) (runtime.Value, bool) {
	tok := p.cur()
	if shape == runtime.ArgBlock {
		if !p.at(token.TokenLBracket) {
			p.addError(tok, "%s expects a block [ ... ] as input %d, got %s", def.Name, i+1, describe(tok))
			return runtime.None, false
		}
		return p.parseBlock()
	}
	if !p.startsExpression() {
		p.addError(tok, "not enough inputs to %s", def.Name)
		return runtime.None, false
	}
	return p.parseExpression()
}

// parseCall parses a user procedure call. A known procedure takes its
// parameters first and then keeps taking inputs while the next token is a
// literal value; the extras are ignored when the call runs. An unknown one
// takes inputs greedily from the start.
func (p *Parser) parseCall(reporter bool) (runtime.Command, bool) {
	tok := p.cur()
	p.advance()

	call := &runtime.CallCommand{Name: tok.Literal, Tok: tok, Reporter: reporter}
	n, known := p.arities[strings.ToLower(tok.Literal)]
	if !known {
		p.addSemanticError(tok, "I don't know how to %s", tok.Literal)
		for p.cur().StartsValue() {
			arg, ok := p.parseExpression()
			if !ok {
				return nil, false
			}
			call.Args = append(call.Args, arg)
		}
		return call, true
	}

	for i := 0; i < n; i++ {
		if !p.startsExpression() {
			p.addWarning(tok, "%s expects %d inputs, got %d", tok.Literal, n, i)
			break
		}
		arg, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		call.Args = append(call.Args, arg)
	}
	extra := 0
	for len(call.Args) >= n && p.cur().StartsValue() {
		arg, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		call.Args = append(call.Args, arg)
		extra++
	}
	if extra > 0 {
		p.addWarning(tok, "%s ignores %d extra input(s)", tok.Literal, extra)
	}
	return call, true
}

// startsExpression reports whether the current token can begin an input:
// a literal value, a reporter built-in or a procedure call.
func (p *Parser) startsExpression() bool {
	tok := p.cur()
	if tok.StartsValue() {
		return true
	}
	switch tok.Type {
	case token.TokenProcedure:
		return true
	case token.TokenCommand:
		def, ok := runtime.LookupCommand(tok.Literal)
		return ok && def.Reporter
	}
	return false
}

// --- Blocks and lists ---

func (p *Parser) parseBlock() (runtime.Value, bool) {
	open := p.cur()
	p.advance() // consume '['
	p.blocks++
	cmds := p.parseStatements(token.TokenRBracket)
	p.blocks--
	if !p.at(token.TokenRBracket) {
		p.addError(open, "unterminated block, missing ]")
		return runtime.None, false
	}
	p.advance()
	return runtime.Block(cmds), true
}

// parseList reads a list literal. Words keep their source spelling; numbers
// stay numbers.
func (p *Parser) parseList() (runtime.Value, bool) {
	open := p.cur()
	p.advance() // consume '['
	items := []runtime.Value{}
	for !p.at(token.TokenRBracket) {
		tok := p.cur()
		switch tok.Type {
		case token.TokenEOF:
			p.addError(open, "unterminated list, missing ]")
			return runtime.None, false
		case token.TokenLBracket:
			inner, ok := p.parseList()
			if !ok {
				return runtime.None, false
			}
			items = append(items, inner)
			continue
		case token.TokenNumber:
			n, err := strconv.ParseFloat(tok.Literal, 64)
			if err == nil {
				items = append(items, runtime.Number(n))
				break
			}
			items = append(items, runtime.Word(tok.Raw))
		default:
			items = append(items, runtime.Word(tok.Raw))
		}
		p.advance()
	}
	p.advance()
	return runtime.List(items...), true
}

// --- Expressions ---

// parseExpression folds operators strictly left to right: 1 + 2 * 3 is
// (1 + 2) * 3. Operations stay deferred until resolved.
func (p *Parser) parseExpression() (runtime.Value, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return runtime.None, false
	}
	for p.at(token.TokenOperator) {
		op := p.cur()
		p.advance()
		right, ok := p.parseUnary()
		if !ok {
			return runtime.None, false
		}
		left = runtime.Operation(op.Literal, left, right)
	}
	return left, true
}

func (p *Parser) parseUnary() (runtime.Value, bool) {
	tok := p.cur()
	if tok.Type == token.TokenOperator && (tok.Literal == "-" || tok.Literal == "+") {
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return runtime.None, false
		}
		if tok.Literal == "+" {
			return operand, true
		}
		return runtime.Operation("-", runtime.Number(0), operand), true
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (runtime.Value, bool) {
	tok := p.cur()
	switch tok.Type {
	case token.TokenNumber:
		n, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.addError(tok, "could not parse %q as a number", tok.Literal)
			return runtime.None, false
		}
		p.advance()
		return runtime.Number(n), true
	case token.TokenString:
		p.advance()
		return runtime.Word(tok.Literal), true
	case token.TokenVariable:
		p.advance()
		return runtime.VarRef(tok.Literal), true
	case token.TokenLBracket:
		return p.parseList()
	case token.TokenLParen:
		return p.parseGroup()
	case token.TokenCommand:
		cmd, ok := p.parseCommand(false)
		if !ok {
			return runtime.None, false
		}
		return runtime.CmdRef(cmd), true
	case token.TokenProcedure:
		cmd, ok := p.parseCall(true)
		if !ok {
			return runtime.None, false
		}
		return runtime.CmdRef(cmd), true
	}
	p.addError(tok, "unexpected %s in expression", describe(tok))
	return runtime.None, false
}

// parseGroup handles ( expr ) and the parenthesized call forms
// (SUM 1 2 3) and (PRINT "a "b).
func (p *Parser) parseGroup() (runtime.Value, bool) {
	open := p.cur()
	p.advance() // consume '('

	var v runtime.Value
	if p.at(token.TokenCommand) {
		cmd, ok := p.parseCommand(true)
		if !ok {
			return runtime.None, false
		}
		v = runtime.CmdRef(cmd)
		// (XCOR + 1): the command's inputs are done, the rest is arithmetic.
		for p.at(token.TokenOperator) {
			op := p.cur()
			p.advance()
			right, ok := p.parseUnary()
			if !ok {
				return runtime.None, false
			}
			v = runtime.Operation(op.Literal, v, right)
		}
	} else {
		var ok bool
		v, ok = p.parseExpression()
		if !ok {
			return runtime.None, false
		}
	}

	if !p.at(token.TokenRParen) {
		if p.at(token.TokenEOF) {
			p.addError(open, "unterminated parenthesis, missing )")
		} else {
			p.addError(p.cur(), "expected ), got %s", describe(p.cur()))
		}
		return runtime.None, false
	}
	p.advance()
	return v, true
}
