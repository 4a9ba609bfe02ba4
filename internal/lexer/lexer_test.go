package lexer

import (
	"testing"

	"lox-core/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var x = 5;
fun add(a, b) {
  return a + b;
}
if (x <= 10) {
  print "hi" + " there";
} else {
  print nil;
}
// a comment
10 == 10
10 != 9
!true and false or true
`

	tests := []struct {
		expectedType   token.Type
		expectedLexeme string
	}{
		{token.VAR, "var"},
		{token.IDENTIFIER, "x"},
		{token.EQUAL, "="},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.FUN, "fun"},
		{token.IDENTIFIER, "add"},
		{token.LPAREN, "("},
		{token.IDENTIFIER, "a"},
		{token.COMMA, ","},
		{token.IDENTIFIER, "b"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.IDENTIFIER, "a"},
		{token.PLUS, "+"},
		{token.IDENTIFIER, "b"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.IF, "if"},
		{token.LPAREN, "("},
		{token.IDENTIFIER, "x"},
		{token.LESS_EQUAL, "<="},
		{token.NUMBER, "10"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.PRINT, "print"},
		{token.STRING, `"hi"`},
		{token.PLUS, "+"},
		{token.STRING, `" there"`},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.ELSE, "else"},
		{token.LBRACE, "{"},
		{token.PRINT, "print"},
		{token.NIL, "nil"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.NUMBER, "10"},
		{token.EQUAL_EQUAL, "=="},
		{token.NUMBER, "10"},
		{token.NUMBER, "10"},
		{token.BANG_EQUAL, "!="},
		{token.NUMBER, "9"},
		{token.BANG, "!"},
		{token.TRUE, "true"},
		{token.AND, "and"},
		{token.FALSE, "false"},
		{token.OR, "or"},
		{token.TRUE, "true"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - wrong type. expected=%s, got=%s (lexeme %q)", i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - wrong lexeme. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"no closing quote`)
	tok := l.NextToken()
	if tok.Type != token.ERROR {
		t.Fatalf("expected ERROR token, got %s", tok.Type)
	}
}

func TestLineTracking(t *testing.T) {
	l := New("var a = 1;\nvar b = 2;")
	for i := 0; i < 5; i++ {
		tok := l.NextToken()
		if tok.Line != 1 {
			t.Fatalf("token %d: expected line 1, got %d (%s)", i, tok.Line, tok.Lexeme)
		}
	}
	var last token.Token
	for {
		last = l.NextToken()
		if last.Type == token.EOF {
			break
		}
	}
	if last.Type != token.EOF {
		t.Fatalf("expected EOF at end")
	}
}
