// Package codegen formats the Hack/Jack-style stack VM instructions the
// compiler emits. It has no knowledge of Ijk grammar; it only knows how
// to spell each instruction (spec.md §4.6).
package codegen

import (
	"fmt"
	"io"

	"github.com/sflorezs1/IJack-nand2tetris/symbols"
)

// segments maps a Symbol's storage Kind to the VM memory segment a
// push/pop against it targets.
var segments = map[symbols.Kind]string{
	symbols.KindStatic: "static",
	symbols.KindField:  "this",
	symbols.KindArg:    "argument",
	symbols.KindVar:    "local",
}

// Writer formats VM instructions onto an underlying io.Writer.
type Writer struct {
	out io.Writer
}

// New wraps out as a VM instruction Writer.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteIf emits the not/if-goto pair spec.md §4.5 uses for both `if`
// and `while` guards: the label is taken when the condition is false.
func (w *Writer) WriteIf(label string) {
	fmt.Fprint(w.out, "not\n")
	fmt.Fprintf(w.out, "if-goto %s\n", label)
}

func (w *Writer) WriteGoto(label string) {
	fmt.Fprintf(w.out, "goto %s\n", label)
}

func (w *Writer) WriteLabel(label string) {
	fmt.Fprintf(w.out, "label %s\n", label)
}

// WriteFunction emits a function declaration. nVars is the subroutine's
// local-variable count.
func (w *Writer) WriteFunction(className, name string, nVars int) {
	fmt.Fprintf(w.out, "function %s.%s %d\n", className, name, nVars)
}

func (w *Writer) WriteReturn() {
	fmt.Fprint(w.out, "return\n")
}

func (w *Writer) WriteCall(className, name string, nArgs int) {
	fmt.Fprintf(w.out, "call %s.%s %d\n", className, name, nArgs)
}

func (w *Writer) WritePop(segment string, offset int) {
	fmt.Fprintf(w.out, "pop %s %d\n", segment, offset)
}

func (w *Writer) WritePush(segment string, offset int) {
	fmt.Fprintf(w.out, "push %s %d\n", segment, offset)
}

// WritePopSymbol pops into sym's segment and offset.
func (w *Writer) WritePopSymbol(sym symbols.Symbol) {
	w.WritePop(segments[sym.Kind], sym.ID)
}

// WritePushSymbol pushes from sym's segment and offset.
func (w *Writer) WritePushSymbol(sym symbols.Symbol) {
	w.WritePush(segments[sym.Kind], sym.ID)
}

// Write emits a raw instruction line exactly as the caller spells it:
// the operand-free arithmetic/logical opcodes (add, sub, neg, eq, gt,
// lt, and, or, not) and the full "call Math.multiply 2" /
// "call Math.divide 2" lines for the * and / operators.
func (w *Writer) Write(action string) {
	fmt.Fprintf(w.out, "%s\n", action)
}

// WriteInt pushes an integer literal.
func (w *Writer) WriteInt(n int) {
	w.WritePush("constant", n)
}

// WriteString emits the String.new/appendChar sequence for a string
// literal. lit is the token literal INCLUDING its surrounding quotes,
// stripped here at the point of use (spec.md §4.6).
func (w *Writer) WriteString(lit string) {
	s := lit
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	w.WriteInt(len(s))
	w.WriteCall("String", "new", 1)
	for _, c := range []byte(s) {
		w.WriteInt(int(c))
		w.WriteCall("String", "appendChar", 2)
	}
}
