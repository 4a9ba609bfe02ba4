package compiler

import "testing"

func TestCompileSimpleExpression(t *testing.T) {
	fn, err := Compile("print 1 + 2 * 3;")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if fn.Name != "main" {
		t.Fatalf("top-level function name = %q, want main", fn.Name)
	}
}

func TestCompileErrorExpectedExpression(t *testing.T) {
	if _, err := Compile("var x = ;"); err == nil {
		t.Fatalf("expected a compile error for a missing expression")
	} else if ce, ok := err.(*CompileError); !ok {
		t.Fatalf("error type = %T, want *CompileError", err)
	} else if ce.Kind != ErrExpectedExpression {
		t.Fatalf("error kind = %v, want ErrExpectedExpression", ce.Kind)
	}
}

func TestCompileErrorReturnInMain(t *testing.T) {
	_, err := Compile("return 1;")
	ce, ok := err.(*CompileError)
	if !ok || ce.Kind != ErrReturnInMain {
		t.Fatalf("expected ErrReturnInMain, got %v", err)
	}
}

func TestCompileErrorInvalidAssignmentTarget(t *testing.T) {
	_, err := Compile("1 + 2 = 3;")
	ce, ok := err.(*CompileError)
	if !ok || ce.Kind != ErrInvalidAssignmentTarget {
		t.Fatalf("expected ErrInvalidAssignmentTarget, got %v", err)
	}
}

func TestCompileTooManyConstants(t *testing.T) {
	src := "fun f(){\n"
	for i := 0; i < 257; i++ {
		src += "print " + itoa(i) + ";\n"
	}
	src += "}\n"

	_, err := Compile(src)
	ce, ok := err.(*CompileError)
	if !ok || ce.Kind != ErrTooManyConstants {
		t.Fatalf("expected ErrTooManyConstants for 257 distinct constants, got %v", err)
	}
}

func TestCompileFunctionDeclaration(t *testing.T) {
	_, err := Compile("fun sq(n){ return n*n; } print sq(5);")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
}

func TestCompileWhileAndIf(t *testing.T) {
	src := "var x = 0; while (x < 3) { if (x == 1) print x; x = x + 1; }"
	if _, err := Compile(src); err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
