package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestParseSplitsAndClassifies(t *testing.T) {
	src := "CREATE TABLE users (id UUID PRIMARY KEY);\n" +
		"CREATE COMPONENT user_card AS '<div>{name}</div>';\n"

	stmts, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}

	if stmts[0].Kind != StandardDDL {
		t.Errorf("statement 0: kind = %s, want standard", stmts[0].Kind)
	}
	if stmts[0].RawText != "CREATE TABLE users (id UUID PRIMARY KEY)" {
		t.Errorf("statement 0: raw text = %q", stmts[0].RawText)
	}
	if stmts[0].Pos.Line != 1 || stmts[0].Pos.Column != 1 {
		t.Errorf("statement 0: pos = %v", stmts[0].Pos)
	}

	if stmts[1].Kind != ComponentDecl {
		t.Fatalf("statement 1: kind = %s, want component", stmts[1].Kind)
	}
	if stmts[1].Name != "user_card" {
		t.Errorf("component name = %q", stmts[1].Name)
	}
	if stmts[1].Template != "<div>{name}</div>" {
		t.Errorf("template = %q", stmts[1].Template)
	}
	if stmts[1].Pos.Line != 2 {
		t.Errorf("statement 1: line = %d, want 2", stmts[1].Pos.Line)
	}
}

func TestParseSemicolonInsideTemplate(t *testing.T) {
	stmts, err := Parse("CREATE COMPONENT c AS '<span>&nbsp;</span>; {x};';")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	if stmts[0].Template != "<span>&nbsp;</span>; {x};" {
		t.Errorf("template = %q", stmts[0].Template)
	}
}

func TestParseUnescapesDoubledQuotes(t *testing.T) {
	stmts, err := Parse("CREATE COMPONENT c AS 'it''s {name}';")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := stmts[0].Template, "it's {name}"; got != want {
		t.Errorf("template = %q, want %q", got, want)
	}
}

func TestParseComponentForClause(t *testing.T) {
	stmts, err := Parse("CREATE COMPONENT user_card FOR users AS '{name}';")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if stmts[0].ForTable != "users" {
		t.Errorf("for table = %q, want users", stmts[0].ForTable)
	}
}

func TestParseKeywordsCaseInsensitive(t *testing.T) {
	stmts, err := Parse("create component C for T as 'x';")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if stmts[0].Kind != ComponentDecl || stmts[0].Name != "C" || stmts[0].ForTable != "T" {
		t.Errorf("unexpected statement: %+v", stmts[0])
	}
}

func TestParsePreservesTemplateBytes(t *testing.T) {
	template := "<div class=\"card\">\n\t{avatar_url}\n\t{name}\n</div>"
	stmts, err := Parse("CREATE COMPONENT c AS '" + EscapeLiteral(template) + "';")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if stmts[0].Template != template {
		t.Errorf("template not byte-exact:\ngot  %q\nwant %q", stmts[0].Template, template)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unknown statement", "DROP TABLE users;", "unrecognized statement"},
		{"unknown create", "CREATE INDEX idx ON users (id);", "expected TABLE or COMPONENT"},
		{"missing as", "CREATE COMPONENT c '<div/>';", "missing AS clause"},
		{"missing name", "CREATE COMPONENT AS 'x';", "missing AS clause"},
		{"missing literal", "CREATE COMPONENT c AS;", "expected quoted template literal"},
		{"unterminated literal", "CREATE COMPONENT c AS 'oops;", "unterminated string literal"},
		{"trailing input", "CREATE COMPONENT c AS 'x' extra;", "unexpected input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("error %T is not a SyntaxError", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestParseUnterminatedLiteralPosition(t *testing.T) {
	_, err := Parse("CREATE TABLE t (id INT);\nCREATE COMPONENT c AS 'oops")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("got %v, want SyntaxError", err)
	}
	if syntaxErr.Pos.Line != 2 {
		t.Errorf("error line = %d, want 2", syntaxErr.Pos.Line)
	}
	if syntaxErr.Pos.Column != 23 {
		t.Errorf("error column = %d, want 23", syntaxErr.Pos.Column)
	}
}

func TestColumnCountsRunes(t *testing.T) {
	_, err := Parse("CREATE COMPONENT c AS 'héllo' x;")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("got %v, want SyntaxError", err)
	}
	// 'é' is two bytes but one column
	if syntaxErr.Pos.Column != 31 {
		t.Errorf("error column = %d, want 31", syntaxErr.Pos.Column)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain", "it's", "''", "a'b'c", "{name}"} {
		if got := UnescapeLiteral(EscapeLiteral(s)); got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
	}
}

func TestParseEmptySource(t *testing.T) {
	for _, src := range []string{"", "   \n\t", ";;;"} {
		stmts, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		if len(stmts) != 0 {
			t.Errorf("Parse(%q) = %d statements, want 0", src, len(stmts))
		}
	}
}
