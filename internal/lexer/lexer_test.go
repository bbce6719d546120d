package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `def int run() {
		cint $x = 2147483647;
		$x = $x + 1;
		return 0;
	}`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{DEF, "def"},
		{INT_TYPE, "int"},
		{IDENT, "run"},
		{LPAREN, "("},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{CINT_TYPE, "cint"},
		{VARID, "$x"},
		{ASSIGN, "="},
		{INT, "2147483647"},
		{SEMICOLON, ";"},
		{VARID, "$x"},
		{ASSIGN, "="},
		{VARID, "$x"},
		{PLUS, "+"},
		{INT, "1"},
		{SEMICOLON, ";"},
		{RETURN, "return"},
		{INT, "0"},
		{SEMICOLON, ";"},
		{RBRACE, "}"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d]: type wrong. expected=%s, got=%s (literal=%q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d]: literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywordsAndTypes(t *testing.T) {
	input := "if else while return print def extern true false int cint float bool void ref noalias"
	expected := []TokenType{
		IF, ELSE, WHILE, RETURN, PRINT, DEF, EXTERN, TRUE, FALSE,
		INT_TYPE, CINT_TYPE, FLOAT_TYPE, BOOL_TYPE, VOID_TYPE, REF, NOALIAS, EOF,
	}
	l := New(input)
	for i, want := range expected {
		got := l.NextToken().Type
		if got != want {
			t.Fatalf("tok[%d]: expected %s, got %s", i, want, got)
		}
	}
}

func TestCompoundOperators(t *testing.T) {
	input := "== && || = < > ! + - * /"
	expected := []TokenType{EQ, AND, OR, ASSIGN, LT, GT, NOT, PLUS, MINUS, ASTERISK, SLASH, EOF}
	l := New(input)
	for i, want := range expected {
		got := l.NextToken().Type
		if got != want {
			t.Fatalf("tok[%d]: expected %s, got %s", i, want, got)
		}
	}
}

func TestFloatVsIntLiteral(t *testing.T) {
	l := New("42 3.5 0.0 7")
	tok := l.NextToken()
	if tok.Type != INT || tok.Literal != "42" {
		t.Fatalf("expected INT 42, got %v", tok)
	}
	tok = l.NextToken()
	if tok.Type != FLOAT || tok.Literal != "3.5" {
		t.Fatalf("expected FLOAT 3.5, got %v", tok)
	}
	tok = l.NextToken()
	if tok.Type != FLOAT || tok.Literal != "0.0" {
		t.Fatalf("expected FLOAT 0.0, got %v", tok)
	}
	tok = l.NextToken()
	if tok.Type != INT || tok.Literal != "7" {
		t.Fatalf("expected INT 7, got %v", tok)
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`print "hello world";`)
	l.NextToken() // print
	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "hello world" {
		t.Fatalf("expected STRING hello world, got %v", tok)
	}
}

func TestLineComment(t *testing.T) {
	l := New("1 # this is a comment\n2")
	first := l.NextToken()
	second := l.NextToken()
	if first.Literal != "1" || second.Literal != "2" {
		t.Fatalf("comment not skipped: got %v, %v", first, second)
	}
}

func TestIllegalCharacterIsResilient(t *testing.T) {
	l := New("1 @ 2")
	first := l.NextToken()
	illegal := l.NextToken()
	second := l.NextToken()

	if first.Literal != "1" || second.Literal != "2" {
		t.Fatalf("lexing did not continue past illegal char: %v %v %v", first, illegal, second)
	}
	if illegal.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL token, got %v", illegal)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lex error, got %d", len(l.Errors()))
	}
}

func TestVarIDRetainsSigil(t *testing.T) {
	l := New("$counter")
	tok := l.NextToken()
	if tok.Type != VARID || tok.Literal != "$counter" {
		t.Fatalf("expected VARID $counter, got %v", tok)
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("a\nbb")
	first := l.NextToken()
	if first.Pos.Line != 1 || first.Pos.Column != 1 {
		t.Fatalf("expected 1:1, got %s", first.Pos)
	}
	second := l.NextToken()
	if second.Pos.Line != 2 || second.Pos.Column != 1 {
		t.Fatalf("expected 2:1, got %s", second.Pos)
	}
}
