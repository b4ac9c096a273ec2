package parser

import (
	"testing"

	"github.com/arnavsurve/logo/internal/interp/lexer"
	"github.com/arnavsurve/logo/internal/interp/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test Helper Functions ---

// checkParseErrors fails the test if the program has diagnostics.
func checkParseErrors(t *testing.T, prog *runtime.Program) {
	t.Helper()
	if !prog.HasErrors() {
		return
	}
	t.Errorf("Parser has %d errors:", len(prog.Diagnostics))
	for i, msg := range prog.Diagnostics {
		t.Errorf("   Error %d: %q", i+1, msg)
	}
	t.FailNow()
}

func parse(src string, opts ...Option) *runtime.Program {
	return Parse(src, lexer.Tokenize(src), opts...)
}

func builtin(t *testing.T, cmd runtime.Command, name string) *runtime.BuiltinCommand {
	t.Helper()
	b, ok := cmd.(*runtime.BuiltinCommand)
	require.True(t, ok, "expected *runtime.BuiltinCommand, got %T", cmd)
	require.Equal(t, name, b.Def.Name)
	return b
}

// --- Commands ---

func TestCommandWithBlock(t *testing.T) {
	prog := parse("repeat 4 [fd 100 rt 90]")
	checkParseErrors(t, prog)
	require.Len(t, prog.Commands, 1)

	rep := builtin(t, prog.Commands[0], "REPEAT")
	require.Len(t, rep.Args, 2)
	assert.Equal(t, runtime.Number(4), rep.Args[0])
	require.Equal(t, runtime.KindBlock, rep.Args[1].Kind)
	require.Len(t, rep.Args[1].Block, 2)
	builtin(t, rep.Args[1].Block[0], "FORWARD")
	builtin(t, rep.Args[1].Block[1], "RIGHT")

	assert.Equal(t, "REPEAT 4 [FORWARD 100 RIGHT 90]\n", prog.String())
}

func TestExpressionsFoldLeftToRight(t *testing.T) {
	prog := parse("print 1 + 2 * 3")
	checkParseErrors(t, prog)

	pr := builtin(t, prog.Commands[0], "PRINT")
	op := pr.Args[0]
	require.Equal(t, runtime.KindOperation, op.Kind)
	assert.Equal(t, "*", op.Str)
	require.Equal(t, runtime.KindOperation, op.Left.Kind)
	assert.Equal(t, "+", op.Left.Str)
	assert.Equal(t, "(1 + 2) * 3", op.Source())
}

func TestUnaryMinus(t *testing.T) {
	prog := parse("fd - :x")
	checkParseErrors(t, prog)

	fd := builtin(t, prog.Commands[0], "FORWARD")
	op := fd.Args[0]
	require.Equal(t, runtime.KindOperation, op.Kind)
	assert.Equal(t, runtime.Number(0), *op.Left)
	assert.Equal(t, runtime.VarRef("x"), *op.Right)
}

func TestReporterInValuePosition(t *testing.T) {
	prog := parse("setxy xcor + 10 sum 1 2")
	checkParseErrors(t, prog)

	set := builtin(t, prog.Commands[0], "SETXY")
	require.Len(t, set.Args, 2)
	assert.Equal(t, runtime.KindOperation, set.Args[0].Kind)
	require.Equal(t, runtime.KindCommand, set.Args[1].Kind)
	builtin(t, set.Args[1].Cmd, "SUM")
}

func TestVariadicParens(t *testing.T) {
	prog := parse(`(print 1 2 "three) print (sum 1 2 3 4)`)
	checkParseErrors(t, prog)
	require.Len(t, prog.Commands, 2)

	pr := builtin(t, prog.Commands[0], "PRINT")
	assert.Len(t, pr.Args, 3)
	assert.True(t, pr.Paren)

	sum := builtin(t, builtin(t, prog.Commands[1], "PRINT").Args[0].Cmd, "SUM")
	assert.Len(t, sum.Args, 4)
	assert.Equal(t, "PRINT (SUM 1 2 3 4)", prog.Commands[1].String())
}

func TestListLiteralKeepsWords(t *testing.T) {
	prog := parse(`show [fd 10 [a "b] :c]`)
	checkParseErrors(t, prog)

	show := builtin(t, prog.Commands[0], "SHOW")
	list := show.Args[0]
	require.Equal(t, runtime.KindList, list.Kind)
	assert.Equal(t, "[fd 10 [a \"b] :c]", list.Show())
	assert.Equal(t, runtime.Number(10), list.Items[1])
}

// --- Procedures ---

func TestProcedureDefinition(t *testing.T) {
	prog := parse("to square :size\n  repeat 4 [fd :size rt 90]\nend\nsquare 50")
	checkParseErrors(t, prog)
	require.Len(t, prog.Commands, 2)

	def, ok := prog.Commands[0].(*runtime.DefineCommand)
	require.True(t, ok)
	assert.Equal(t, "square", def.Proc.Name)
	assert.Equal(t, []string{"size"}, def.Proc.Params)
	require.Len(t, def.Proc.Body, 1)

	call, ok := prog.Commands[1].(*runtime.CallCommand)
	require.True(t, ok)
	assert.Equal(t, []runtime.Value{runtime.Number(50)}, call.Args)
	assert.False(t, call.Reporter)
	assert.Equal(t, map[string]int{"square": 1}, prog.Procedures())
}

func TestKnownArityTakesExtraInputs(t *testing.T) {
	prog := parse("to sq :x\n  output :x * :x\nend\nprint sq 3 4\nsq 1 \"a [b] fd 5")
	checkParseErrors(t, prog)
	require.Len(t, prog.Commands, 4)

	pr := builtin(t, prog.Commands[1], "PRINT")
	call, ok := pr.Args[0].Cmd.(*runtime.CallCommand)
	require.True(t, ok)
	assert.True(t, call.Reporter)
	assert.Len(t, call.Args, 2)

	stmt, ok := prog.Commands[2].(*runtime.CallCommand)
	require.True(t, ok)
	assert.Len(t, stmt.Args, 3, "inputs are taken until the next command")
	builtin(t, prog.Commands[3], "FORWARD")

	require.Len(t, prog.Warnings, 2)
	assert.Contains(t, prog.Warnings[0], "4:7: Semantic Warning: sq ignores 1 extra input(s)")
	assert.Contains(t, prog.Warnings[1], "sq ignores 2 extra input(s)")
}

func TestCallBeforeDefinition(t *testing.T) {
	prog := parse("tri 30\nto tri :side\n  repeat 3 [fd :side rt 120]\nend")
	checkParseErrors(t, prog)
	call, ok := prog.Commands[0].(*runtime.CallCommand)
	require.True(t, ok)
	assert.Len(t, call.Args, 1)
}

func TestWithProceduresFromEarlierSubmission(t *testing.T) {
	prog := parse("poly 5 72", WithProcedures(map[string]int{"POLY": 2}))
	checkParseErrors(t, prog)
	call := prog.Commands[0].(*runtime.CallCommand)
	assert.Len(t, call.Args, 2)
}

func TestMissingArgumentsWarn(t *testing.T) {
	prog := parse("to box :w :h\n  fd :h\nend\nbox 10")
	checkParseErrors(t, prog)
	require.Len(t, prog.Warnings, 1)
	assert.Contains(t, prog.Warnings[0], "Semantic Warning: box expects 2 inputs, got 1")
}

// --- Diagnostics ---

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown procedure", "spiral 10", "1:1: Semantic Error: I don't know how to spiral"},
		{"missing input", "fd", "1:3: Syntax Error: not enough inputs to FORWARD"},
		{"block expected", "repeat 4 fd 10", "1:10: Syntax Error: REPEAT expects a block [ ... ] as input 2, got fd"},
		{"unterminated block", "repeat 4 [fd 10", "1:10: Syntax Error: unterminated block, missing ]"},
		{"missing end", "to foo\nfd 10", "2:6: Syntax Error: missing END for procedure foo"},
		{"redefine builtin", "to forward :n\nend", "1:4: Semantic Error: FORWARD is a built-in command and cannot be redefined"},
		{"stray end", "end", "1:1: Syntax Error: END without a matching TO"},
		{"bare value", "42", "1:1: Semantic Error: you don't say what to do with 42"},
		{"unterminated paren", "print (1 + 2", "1:7: Syntax Error: unterminated parenthesis, missing )"},
		{"nested definition", "to a\nto b\nend\nend", "2:1: Semantic Error: cannot define a procedure inside a"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prog := parse(tc.input)
			require.True(t, prog.HasErrors(), "expected diagnostics for %q", tc.input)
			assert.Equal(t, tc.want, prog.Diagnostics[0])
		})
	}
}

func TestRecoveryCollectsEveryError(t *testing.T) {
	prog := parse("fd 10\nrt\nfd ]\npu\nbogus\npd")
	require.Len(t, prog.Diagnostics, 3, "diagnostics: %v", prog.Diagnostics)
	assert.Contains(t, prog.Diagnostics[0], "not enough inputs to RIGHT")
	assert.Contains(t, prog.Diagnostics[1], "not enough inputs to FORWARD")
	assert.Contains(t, prog.Diagnostics[2], "I don't know how to bogus")

	// Statements around the errors are kept.
	var names []string
	for _, c := range prog.Commands {
		names = append(names, c.String())
	}
	assert.Equal(t, []string{"FORWARD 10", "PENUP", "bogus", "PENDOWN"}, names)
}

func TestErrorInsideBlockKeepsBlock(t *testing.T) {
	prog := parse("repeat 2 [fd] pu")
	require.Len(t, prog.Diagnostics, 1)
	require.Len(t, prog.Commands, 2)
	rep := builtin(t, prog.Commands[0], "REPEAT")
	assert.Empty(t, rep.Args[1].Block)
	builtin(t, prog.Commands[1], "PENUP")
}

func TestEmptyProgram(t *testing.T) {
	prog := Parse("", nil)
	require.NotNil(t, prog)
	assert.Empty(t, prog.Commands)
	assert.False(t, prog.HasErrors())
}
