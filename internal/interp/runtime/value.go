package runtime

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/arnavsurve/logo/internal/interp/token"
)

// Kind is the tag of the Value union.
type Kind uint8

const (
	KindNone Kind = iota // no value; the zero Value
	KindNumber
	KindString
	KindBoolean
	KindList
	KindBlock

	// Thunks, only meaningful inside a Context (see Resolve).
	KindVariable
	KindOperation
	KindCommand

	KindProcedure
)

var kindNames = [...]string{
	KindNone:      "nothing",
	KindNumber:    "number",
	KindString:    "word",
	KindBoolean:   "boolean",
	KindList:      "list",
	KindBlock:     "block",
	KindVariable:  "variable",
	KindOperation: "operation",
	KindCommand:   "command",
	KindProcedure: "procedure",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a tagged union. Which fields are set depends on Kind:
//
//	Number     Num
//	String     Str
//	Boolean    Bool
//	List       Items
//	Block      Block
//	Variable   Str (name)
//	Operation  Str (operator glyph), Left, Right
//	Command    Cmd
//	Procedure  Proc
type Value struct {
	Kind  Kind
	Num   float64
	Str   string
	Bool  bool
	Items []Value
	Block []Command
	Left  *Value
	Right *Value
	Cmd   Command
	Proc  *Procedure
}

// Procedure is a user definition installed by TO ... END.
type Procedure struct {
	Name   string
	Params []string
	Body   []Command
}

var None = Value{}

func Number(f float64) Value     { return Value{Kind: KindNumber, Num: f} }
func Word(s string) Value        { return Value{Kind: KindString, Str: s} }
func Bool(b bool) Value          { return Value{Kind: KindBoolean, Bool: b} }
func List(items ...Value) Value  { return Value{Kind: KindList, Items: items} }
func Block(cmds []Command) Value { return Value{Kind: KindBlock, Block: cmds} }
func VarRef(name string) Value   { return Value{Kind: KindVariable, Str: name} }
func CmdRef(c Command) Value     { return Value{Kind: KindCommand, Cmd: c} }
func ProcValue(p *Procedure) Value {
	return Value{Kind: KindProcedure, Proc: p}
}

func Operation(op string, left, right Value) Value {
	return Value{Kind: KindOperation, Str: op, Left: &left, Right: &right}
}

func (v Value) IsNone() bool { return v.Kind == KindNone }

// IsThunk reports whether v must go through Resolve before use.
func (v Value) IsThunk() bool {
	return v.Kind == KindVariable || v.Kind == KindOperation || v.Kind == KindCommand
}

// FormatNumber prints integers without a fractional part and rounds away
// binary noise to ten decimals (0.1+0.2 prints as 0.3).
func FormatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', 10, 64)
	s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// String is the PRINT form: lists keep inner brackets but not the outer pair.
func (v Value) String() string {
	if v.Kind == KindList {
		return joinItems(v.Items)
	}
	return v.Show()
}

// Show is the SHOW form: lists are bracketed.
func (v Value) Show() string {
	switch v.Kind {
	case KindNumber:
		return FormatNumber(v.Num)
	case KindString:
		return v.Str
	case KindBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindList:
		return "[" + joinItems(v.Items) + "]"
	case KindProcedure:
		return "procedure " + v.Proc.Name
	case KindNone:
		return ""
	default:
		return v.Source()
	}
}

func joinItems(items []Value) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.Show()
	}
	return strings.Join(parts, " ")
}

// Source renders v as Logo source text. It is what command descriptions use
// for their arguments.
func (v Value) Source() string {
	switch v.Kind {
	case KindNumber:
		return FormatNumber(v.Num)
	case KindString:
		return `"` + v.Str
	case KindBoolean:
		if v.Bool {
			return `"true`
		}
		return `"false`
	case KindList:
		return "[" + joinItems(v.Items) + "]"
	case KindBlock:
		return "[" + describeCommands(v.Block) + "]"
	case KindVariable:
		return ":" + v.Str
	case KindOperation:
		var out bytes.Buffer
		out.WriteString(operandSource(*v.Left))
		out.WriteString(" " + v.Str + " ")
		out.WriteString(operandSource(*v.Right))
		return out.String()
	case KindCommand:
		return v.Cmd.String()
	case KindProcedure:
		return v.Proc.Name
	}
	return ""
}

// operandSource parenthesizes operands that would not reparse as a single
// operand: nested operations, negative numbers and calls that take inputs.
func operandSource(v Value) string {
	if v.Kind == KindOperation {
		return "(" + v.Source() + ")"
	}
	if v.Kind == KindCommand {
		s := v.Cmd.String()
		if strings.HasPrefix(s, "(") || !strings.Contains(s, " ") {
			return s
		}
		return "(" + s + ")"
	}
	if v.Kind == KindNumber && v.Num < 0 {
		return "(" + v.Source() + ")"
	}
	return v.Source()
}

func describeCommands(cmds []Command) string {
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Equal is EQUALP: numbers compare numerically (numeric words included),
// words case-insensitively, lists element-wise.
func Equal(a, b Value) bool {
	if an, ok := numeric(a); ok {
		if bn, ok := numeric(b); ok {
			return an == bn
		}
	}
	switch {
	case a.Kind == KindList && b.Kind == KindList:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case a.Kind == KindList || b.Kind == KindList:
		return false
	case a.Kind == KindBoolean && b.Kind == KindBoolean:
		return a.Bool == b.Bool
	}
	return strings.EqualFold(a.Show(), b.Show())
}

// numeric returns the number carried by v, accepting words such as "12.5.
func numeric(v Value) (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindString:
		if !token.IsNumber(v.Str) {
			return 0, false
		}
		f, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
