package lexer

import (
	"testing"

	"github.com/sflorezs1/IJack-nand2tetris/token"
)

func nextOrFatal(t *testing.T, l *Lexer) token.Token {
	t.Helper()
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected lexer error: %v", err)
	}
	return tok
}

func TestKeywords(t *testing.T) {
	input := "class method init fun field static var num char bool void true false none self let do if else while return\n"
	expected := []token.Type{
		token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD,
		token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD,
		token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD,
		token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD,
		token.KEYWORD,
		token.NEWLINE, token.EOF,
	}
	l := New(input)
	for i, exp := range expected {
		tok := nextOrFatal(t, l)
		if tok.Type != exp {
			t.Fatalf("token[%d]: expected %s, got %s (%q)", i, exp, tok.Type, tok.Literal)
		}
	}
}

func TestIdentifierAndInteger(t *testing.T) {
	input := "count 42"
	l := New(input)

	tok := nextOrFatal(t, l)
	if tok.Type != token.IDENTIFIER || tok.Literal != "count" {
		t.Fatalf("expected IDENTIFIER(count), got %s(%q)", tok.Type, tok.Literal)
	}

	tok = nextOrFatal(t, l)
	if tok.Type != token.INTEGER_CONSTANT || tok.IntValue != 42 {
		t.Fatalf("expected INTEGER_CONSTANT(42), got %s(%d)", tok.Type, tok.IntValue)
	}
}

func TestArrowAndColon(t *testing.T) {
	input := "init new(num n) -> Vector:"
	expected := []token.Type{
		token.KEYWORD, token.IDENTIFIER, token.SYMBOL, token.KEYWORD,
		token.IDENTIFIER, token.SYMBOL, token.ARROW, token.IDENTIFIER, token.COLON,
	}
	l := New(input)
	for i, exp := range expected {
		tok := nextOrFatal(t, l)
		if tok.Type != exp {
			t.Fatalf("token[%d]: expected %s, got %s (%q)", i, exp, tok.Type, tok.Literal)
		}
	}
}

func TestStringLiteralKeepsQuotes(t *testing.T) {
	input := `"hello"`
	l := New(input)
	tok := nextOrFatal(t, l)
	if tok.Type != token.STRING_CONSTANT || tok.Literal != `"hello"` {
		t.Fatalf("expected STRING_CONSTANT(%q), got %s(%q)", `"hello"`, tok.Type, tok.Literal)
	}
}

func TestSingleLevelIndent(t *testing.T) {
	input := "class Foo:\n    field num x\n"
	expected := []token.Type{
		token.KEYWORD, token.IDENTIFIER, token.COLON, token.NEWLINE,
		token.INDENT,
		token.KEYWORD, token.KEYWORD, token.IDENTIFIER, token.NEWLINE,
		token.DEDENT, token.EOF,
	}
	l := New(input)
	for i, exp := range expected {
		tok := nextOrFatal(t, l)
		if tok.Type != exp {
			t.Fatalf("token[%d]: expected %s, got %s (%q)", i, exp, tok.Type, tok.Literal)
		}
	}
}

func TestNestedIndentAndDedent(t *testing.T) {
	input := "a:\n    b:\n        c\nd\n"
	expected := []token.Type{
		token.IDENTIFIER, token.COLON, token.NEWLINE,
		token.INDENT, token.IDENTIFIER, token.COLON, token.NEWLINE,
		token.INDENT, token.IDENTIFIER, token.NEWLINE,
		token.DEDENT, token.DEDENT,
		token.IDENTIFIER, token.NEWLINE,
		token.EOF,
	}
	l := New(input)
	for i, exp := range expected {
		tok := nextOrFatal(t, l)
		if tok.Type != exp {
			t.Fatalf("token[%d]: expected %s, got %s (%q)", i, exp, tok.Type, tok.Literal)
		}
	}
}

func TestBlankLineSkipping(t *testing.T) {
	input := "a:\n    b\n\n    c\n"
	expected := []token.Type{
		token.IDENTIFIER, token.COLON, token.NEWLINE,
		token.INDENT, token.IDENTIFIER, token.NEWLINE,
		token.IDENTIFIER, token.NEWLINE,
		token.DEDENT, token.EOF,
	}
	l := New(input)
	for i, exp := range expected {
		tok := nextOrFatal(t, l)
		if tok.Type != exp {
			t.Fatalf("token[%d]: expected %s, got %s (%q)", i, exp, tok.Type, tok.Literal)
		}
	}
}

func TestBracketLineJoining(t *testing.T) {
	input := "do foo(1,\n2)\n"
	expected := []token.Type{
		token.KEYWORD, token.IDENTIFIER, token.SYMBOL,
		token.INTEGER_CONSTANT, token.SYMBOL, token.INTEGER_CONSTANT, token.SYMBOL,
		token.NEWLINE, token.EOF,
	}
	l := New(input)
	for i, exp := range expected {
		tok := nextOrFatal(t, l)
		if tok.Type != exp {
			t.Fatalf("token[%d]: expected %s, got %s (%q)", i, exp, tok.Type, tok.Literal)
		}
	}
}

func TestCommentIsDiscarded(t *testing.T) {
	input := "x # trailing comment\ny\n"
	l := New(input)

	tok := nextOrFatal(t, l)
	if tok.Type != token.IDENTIFIER || tok.Literal != "x" {
		t.Fatalf("expected IDENTIFIER(x), got %s(%q)", tok.Type, tok.Literal)
	}
	tok = nextOrFatal(t, l)
	if tok.Type != token.NEWLINE {
		t.Fatalf("expected NEWLINE, got %s", tok.Type)
	}
	tok = nextOrFatal(t, l)
	if tok.Type != token.IDENTIFIER || tok.Literal != "y" {
		t.Fatalf("expected IDENTIFIER(y), got %s(%q)", tok.Type, tok.Literal)
	}
}

func TestInconsistentIndentationIsAnError(t *testing.T) {
	input := "a:\n    b\n  c\n"
	l := New(input)
	for {
		tok, err := l.NextToken()
		if err != nil {
			if _, ok := err.(*IndentError); !ok {
				t.Fatalf("expected *IndentError, got %T: %v", err, err)
			}
			return
		}
		if tok.Type == token.EOF {
			t.Fatal("expected an IndentError before EOF")
		}
	}
}

func TestIllegalCharacterIsSkippedAndRecorded(t *testing.T) {
	input := "a @ b\n"
	l := New(input)
	var types []token.Type
	for {
		tok := nextOrFatal(t, l)
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected exactly one lexical error, got %d", len(l.Errors()))
	}
	want := []token.Type{token.IDENTIFIER, token.IDENTIFIER, token.NEWLINE, token.EOF}
	if len(types) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(types), types)
	}
	for i, exp := range want {
		if types[i] != exp {
			t.Fatalf("token[%d]: expected %s, got %s", i, exp, types[i])
		}
	}
}
