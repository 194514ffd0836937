package resolver

import (
	"fmt"

	"schemaui/catalog"
	"schemaui/model"
	"schemaui/parser"
)

// Diagnostic is an advisory finding collected during resolution. Templates
// are free-form markup, so an identifier that matches no column may be a
// layout variable rather than a mistake; diagnostics report, never fail.
type Diagnostic struct {
	Pos parser.Pos
	Msg string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Msg)
}

// BindingPolicy picks the table a component's placeholders resolve against
// when the declaration carries no explicit FOR clause.
type BindingPolicy interface {
	BindTable(decl parser.Statement, cat *catalog.Catalog) *model.Table
}

// NearestPreceding binds to the most recently declared table before the
// component in source order. This is the default policy.
type NearestPreceding struct{}

func (NearestPreceding) BindTable(_ parser.Statement, cat *catalog.Catalog) *model.Table {
	return cat.Latest()
}

// Fixed binds every component to one named table.
type Fixed struct {
	Table string
}

func (f Fixed) BindTable(_ parser.Statement, cat *catalog.Catalog) *model.Table {
	t, err := cat.Table(f.Table)
	if err != nil {
		return nil
	}
	return t
}

type Resolver struct {
	policy BindingPolicy
}

// New returns a resolver using the given policy; nil means NearestPreceding.
func New(policy BindingPolicy) *Resolver {
	if policy == nil {
		policy = NearestPreceding{}
	}
	return &Resolver{policy: policy}
}

// Resolve turns a ComponentDecl statement into a Component: it binds a
// table, scans the template into spans and matches each placeholder against
// the bound table's columns. Unmatched placeholders stay dangling and are
// reported as warnings.
func (r *Resolver) Resolve(decl parser.Statement, cat *catalog.Catalog) (*model.Component, []Diagnostic) {
	var warnings []Diagnostic

	var table *model.Table
	if decl.ForTable != "" {
		table, _ = cat.Table(decl.ForTable)
		if table == nil {
			warnings = append(warnings, Diagnostic{decl.Pos, fmt.Sprintf(
				"component %s: unknown table %s, component left unbound", decl.Name, decl.ForTable)})
		}
	} else {
		table = r.policy.BindTable(decl, cat)
		if table == nil {
			warnings = append(warnings, Diagnostic{decl.Pos, fmt.Sprintf(
				"component %s: no table to bind, component left unbound", decl.Name)})
		}
	}

	comp := &model.Component{
		Name:        decl.Name,
		RawTemplate: decl.Template,
		Table:       table,
		Spans:       Scan(decl.Template),
	}
	for _, span := range comp.Spans {
		ps, ok := span.(model.PlaceholderSpan)
		if !ok {
			continue
		}
		comp.Placeholders = append(comp.Placeholders, ps.Ref)
		if table == nil {
			continue
		}
		if col := table.Column(ps.Ref.Identifier); col != nil {
			ps.Ref.Column = col
		} else {
			warnings = append(warnings, Diagnostic{decl.Pos, fmt.Sprintf(
				"component %s: dangling placeholder {%s}, no such column in table %s",
				decl.Name, ps.Ref.Identifier, table.Name)})
		}
	}

	return comp, warnings
}

// Scan splits a template into literal and placeholder spans. A placeholder
// is '{' + identifier + '}' where the identifier starts with a letter or
// underscore; anything else, including empty braces, stays literal text.
func Scan(template string) []model.Span {
	var spans []model.Span
	lit := 0
	for i := 0; i < len(template); {
		if template[i] != '{' {
			i++
			continue
		}
		j := i + 1
		for j < len(template) && isIdentPart(template[j]) {
			j++
		}
		if j == i+1 || !isIdentStart(template[i+1]) || j == len(template) || template[j] != '}' {
			i++
			continue
		}
		if lit < i {
			spans = append(spans, model.LiteralSpan{Text: template[lit:i]})
		}
		spans = append(spans, model.PlaceholderSpan{
			Ref: &model.PlaceholderRef{Identifier: template[i+1 : j]},
		})
		i = j + 1
		lit = i
	}
	if lit < len(template) {
		spans = append(spans, model.LiteralSpan{Text: template[lit:]})
	}
	return spans
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
