package parser

import "strings"

// Parse splits source into semicolon-terminated statements and classifies
// each one. Semicolons inside single-quoted string literals do not terminate
// a statement, so a component template may freely contain them. Parse is
// pure; a SyntaxError abandons the whole source.
func Parse(source string) ([]Statement, error) {
	var stmts []Statement
	s := &scanner{src: source, line: 1, column: 1}
	for {
		s.skipSpace()
		if s.eof() {
			return stmts, nil
		}
		start := s.pos()
		raw, err := s.scanStatement()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}
		stmt, err := classify(raw, start)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, *stmt)
	}
}

// UnescapeLiteral turns the body of a single-quoted SQL string literal into
// its value, collapsing doubled quotes.
func UnescapeLiteral(s string) string {
	return strings.ReplaceAll(s, "''", "'")
}

// EscapeLiteral is the inverse of UnescapeLiteral.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

type scanner struct {
	src     string
	offset  int
	offset0 int // source offset of src[0], set for statement sub-scanners
	line    int
	column  int
}

func (s *scanner) eof() bool { return s.offset >= len(s.src) }

func (s *scanner) pos() Pos {
	return Pos{Line: s.line, Column: s.column, Offset: s.offset0 + s.offset}
}

func (s *scanner) next() byte {
	c := s.src[s.offset]
	s.offset++
	switch {
	case c == '\n':
		s.line++
		s.column = 1
	case c&0xC0 == 0x80:
		// UTF-8 continuation byte, still the same column
	default:
		s.column++
	}
	return c
}

func (s *scanner) skipSpace() {
	for !s.eof() && isSpace(s.src[s.offset]) {
		s.next()
	}
}

// scanStatement consumes up to and including the next statement-terminating
// semicolon (or end of input) and returns the text before it.
func (s *scanner) scanStatement() (string, error) {
	start := s.offset
	for !s.eof() {
		p := s.pos()
		switch s.next() {
		case ';':
			return s.src[start : s.offset-1], nil
		case '\'':
			if err := s.scanLiteral(p); err != nil {
				return "", err
			}
		}
	}
	return s.src[start:], nil
}

// scanLiteral consumes a single-quoted literal whose opening quote has
// already been consumed. A doubled quote stays inside the literal.
func (s *scanner) scanLiteral(open Pos) error {
	for !s.eof() {
		if s.next() != '\'' {
			continue
		}
		if !s.eof() && s.src[s.offset] == '\'' {
			s.next()
			continue
		}
		return nil
	}
	return syntaxErrorf(open, "unterminated string literal")
}

func (s *scanner) scanIdent() string {
	if s.eof() || !isIdentStart(s.src[s.offset]) {
		return ""
	}
	start := s.offset
	for !s.eof() && isIdentPart(s.src[s.offset]) {
		s.next()
	}
	return s.src[start:s.offset]
}

func classify(raw string, start Pos) (*Statement, error) {
	s := &scanner{src: raw, offset0: start.Offset, line: start.Line, column: start.Column}
	s.skipSpace()
	if first := s.scanIdent(); !strings.EqualFold(first, "CREATE") {
		return nil, syntaxErrorf(start, "unrecognized statement: expected CREATE TABLE or CREATE COMPONENT")
	}
	s.skipSpace()
	kwPos := s.pos()
	switch kw := s.scanIdent(); {
	case strings.EqualFold(kw, "TABLE"):
		return &Statement{Kind: StandardDDL, RawText: raw, Pos: start}, nil
	case strings.EqualFold(kw, "COMPONENT"):
		return parseComponent(s, raw, start)
	default:
		return nil, syntaxErrorf(kwPos, "unrecognized statement: expected TABLE or COMPONENT after CREATE")
	}
}

// parseComponent parses the tail of
//
//	CREATE COMPONENT <name> [FOR <table>] AS '<template>'
//
// with CREATE COMPONENT already consumed.
func parseComponent(s *scanner, raw string, start Pos) (*Statement, error) {
	stmt := &Statement{Kind: ComponentDecl, RawText: raw, Pos: start}

	s.skipSpace()
	namePos := s.pos()
	if stmt.Name = s.scanIdent(); stmt.Name == "" {
		return nil, syntaxErrorf(namePos, "expected component name after CREATE COMPONENT")
	}

	s.skipSpace()
	kwPos := s.pos()
	kw := s.scanIdent()
	if strings.EqualFold(kw, "FOR") {
		s.skipSpace()
		tablePos := s.pos()
		if stmt.ForTable = s.scanIdent(); stmt.ForTable == "" {
			return nil, syntaxErrorf(tablePos, "expected table name after FOR")
		}
		s.skipSpace()
		kwPos = s.pos()
		kw = s.scanIdent()
	}
	if !strings.EqualFold(kw, "AS") {
		return nil, syntaxErrorf(kwPos, "missing AS clause in CREATE COMPONENT")
	}

	s.skipSpace()
	litPos := s.pos()
	if s.eof() || s.src[s.offset] != '\'' {
		return nil, syntaxErrorf(litPos, "expected quoted template literal after AS")
	}
	s.next()
	bodyStart := s.offset
	if err := s.scanLiteral(litPos); err != nil {
		return nil, err
	}
	stmt.Template = UnescapeLiteral(s.src[bodyStart : s.offset-1])

	s.skipSpace()
	if !s.eof() {
		return nil, syntaxErrorf(s.pos(), "unexpected input after template literal")
	}
	return stmt, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
