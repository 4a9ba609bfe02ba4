package vm

import (
	"bytes"
	"io"
	"os"
	"testing"

	"lox-core/internal/compiler"
)

// captureStdout redirects os.Stdout for the duration of fn and returns what
// was written to it, since OP_PRINT writes straight to stdout (spec.md
// §4.F.1).
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func run(t *testing.T, source string) string {
	t.Helper()
	fn, err := compiler.Compile(source)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	machine := New()
	var runErr error
	out := captureStdout(t, func() {
		runErr = machine.Interpret(fn)
	})
	if runErr != nil {
		t.Fatalf("interpret error: %v", runErr)
	}
	return out
}

func TestEndToEndArithmeticPrecedence(t *testing.T) {
	if got, want := run(t, "print 1 + 2 * 3;"), "7\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEndToEndStringConcat(t *testing.T) {
	src := `var a = "hi"; var b = " there"; print a + b;`
	if got, want := run(t, src), "hi there\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEndToEndWhileLoop(t *testing.T) {
	src := "var x = 0; while (x < 3) { print x; x = x + 1; }"
	if got, want := run(t, src), "0\n1\n2\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEndToEndAndShortCircuit(t *testing.T) {
	src := `if (true and false) print "t"; else print "f";`
	if got, want := run(t, src), "f\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEndToEndFunctionCall(t *testing.T) {
	src := "fun sq(n){ return n*n; } print sq(5);"
	if got, want := run(t, src), "25\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEndToEndRecursion(t *testing.T) {
	src := "fun fact(n){ if (n<=1) return 1; return n*fact(n-1);} print fact(5);"
	if got, want := run(t, src), "120\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRuntimeErrorUndefinedVariable(t *testing.T) {
	fn, err := compiler.Compile("x = 1;")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	machine := New()
	err = machine.Interpret(fn)
	re, ok := err.(*RuntimeError)
	if !ok || re.Kind != ErrUndefinedVariable {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
}

func TestRuntimeErrorOperandsNotAddable(t *testing.T) {
	fn, err := compiler.Compile(`print 1 + "x";`)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	machine := New()
	err = machine.Interpret(fn)
	re, ok := err.(*RuntimeError)
	if !ok || re.Kind != ErrOperandsNotAddable {
		t.Fatalf("expected ErrOperandsNotAddable, got %v", err)
	}
}

func TestRuntimeErrorStackOverflow(t *testing.T) {
	src := "fun recurse(n) { return recurse(n+1); } print recurse(0);"
	fn, err := compiler.Compile(src)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	machine := New()
	err = machine.Interpret(fn)
	re, ok := err.(*RuntimeError)
	if !ok || re.Kind != ErrStackOverflow {
		t.Fatalf("expected ErrStackOverflow, got %v", err)
	}
}

func TestGlobalsPersistAcrossInterpretCalls(t *testing.T) {
	machine := New()
	fn1, err := compiler.Compile("var x = 1;")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if err := machine.Interpret(fn1); err != nil {
		t.Fatalf("interpret error: %v", err)
	}

	fn2, err := compiler.Compile("print x;")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	out := captureStdout(t, func() {
		if err := machine.Interpret(fn2); err != nil {
			t.Fatalf("interpret error: %v", err)
		}
	})
	if out != "1\n" {
		t.Fatalf("got %q, want %q", out, "1\n")
	}
}

func TestNativeClock(t *testing.T) {
	fn, err := compiler.Compile("print clock();")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	machine := New()
	out := captureStdout(t, func() {
		if err := machine.Interpret(fn); err != nil {
			t.Fatalf("interpret error: %v", err)
		}
	})
	if out == "" {
		t.Fatalf("expected clock() to print a number")
	}
}
