package parser

import "fmt"

// Kind tags a top-level statement.
type Kind int

const (
	// StandardDDL is a plain CREATE TABLE statement, handed to the SQL
	// parser unchanged.
	StandardDDL Kind = iota
	// ComponentDecl is the extended CREATE COMPONENT statement.
	ComponentDecl
)

func (k Kind) String() string {
	if k == ComponentDecl {
		return "component"
	}
	return "standard"
}

// Pos locates a statement or error in the source text. Line and Column are
// 1-based, Column counts runes, Offset is a 0-based byte offset.
type Pos struct {
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Statement is one semicolon-terminated top-level statement. RawText keeps
// the statement text without the terminating semicolon, so StandardDDL
// statements can be replayed against a real database verbatim.
type Statement struct {
	Kind    Kind
	RawText string
	Pos     Pos

	// Set when Kind == ComponentDecl.
	Name     string
	ForTable string // explicit FOR binding, empty when absent
	Template string // template literal with '' unescaped
}

// SyntaxError is fatal: the whole source parse is abandoned and no partial
// result is returned.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
}

func syntaxErrorf(pos Pos, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
