package model

import (
	"github.com/auxten/postgresql-parser/pkg/sql/types"
)

// TypeFamily is the coarse classification of a column type that the
// component layer cares about. Exact SQL type grammar stays with the
// underlying parser.
type TypeFamily int

const (
	TypeOther TypeFamily = iota
	TypeString
	TypeNumeric
	TypeTimestamp
	TypeIdentifier
)

func (f TypeFamily) String() string {
	switch f {
	case TypeString:
		return "string"
	case TypeNumeric:
		return "numeric"
	case TypeTimestamp:
		return "timestamp"
	case TypeIdentifier:
		return "identifier"
	default:
		return "other"
	}
}

// FamilyOf maps a parsed SQL type onto a TypeFamily.
func FamilyOf(t *types.T) TypeFamily {
	switch t.Family() {
	case types.StringFamily:
		return TypeString
	case types.IntFamily, types.FloatFamily, types.DecimalFamily:
		return TypeNumeric
	case types.DateFamily, types.TimestampFamily, types.TimestampTZFamily,
		types.TimeFamily, types.TimeTZFamily:
		return TypeTimestamp
	case types.UuidFamily:
		return TypeIdentifier
	default:
		return TypeOther
	}
}

type Column struct {
	Name       string
	Type       *types.T
	Family     TypeFamily
	NotNull    bool
	HasDefault bool
}

type ForeignKeyRef struct {
	Table     *Table
	TableName string
	Columns   []string
}

type ForeignKey struct {
	Columns []string
	Ref     *ForeignKeyRef
}

// Table is one parsed CREATE TABLE. Columns keep declaration order;
// name uniqueness is enforced by the catalog at registration time.
type Table struct {
	Name        string
	Columns     []*Column
	PrimaryKey  []string
	ForeignKeys []*ForeignKey
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// PlaceholderRef is one {identifier} occurrence in a component template.
// Column is set when the identifier matched a column of the bound table;
// a nil Column means the placeholder is dangling.
type PlaceholderRef struct {
	Identifier string
	Column     *Column
}

func (p *PlaceholderRef) Resolved() bool { return p.Column != nil }

// Span is one segment of a component template, in template order. A
// renderer substitutes PlaceholderSpans and emits LiteralSpans verbatim.
type Span interface {
	span()
}

type LiteralSpan struct {
	Text string
}

type PlaceholderSpan struct {
	Ref *PlaceholderRef
}

func (LiteralSpan) span()     {}
func (PlaceholderSpan) span() {}

// Component is a resolved CREATE COMPONENT declaration. Table is nil for an
// unbound component (no table declared before it, or an explicit FOR naming
// an unknown table); every placeholder of an unbound component is dangling.
type Component struct {
	Name         string
	RawTemplate  string
	Table        *Table
	Placeholders []*PlaceholderRef
	Spans        []Span
}
