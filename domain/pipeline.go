package domain

import (
	"fmt"

	"schemaui/catalog"
	"schemaui/parser"
	"schemaui/registry"
	"schemaui/resolver"
)

// Result is a completed parse: the populated catalog and registry plus the
// advisory warnings collected along the way. Statements keeps the source
// statements in order so standard DDL can be replayed elsewhere.
type Result struct {
	Statements []parser.Statement
	Catalog    *catalog.Catalog
	Registry   *registry.Registry
	Warnings   []resolver.Diagnostic
}

// Process runs the full pipeline over one source text using the default
// nearest-preceding-table binding. Each call gets a fresh catalog/registry
// pair; on any fatal error the result is nil, never partial.
func Process(source string) (*Result, error) {
	return ProcessWith(source, nil)
}

// ProcessWith is Process with an explicit binding policy for components
// without a FOR clause; nil means resolver.NearestPreceding.
func ProcessWith(source string, policy resolver.BindingPolicy) (*Result, error) {
	stmts, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Statements: stmts,
		Catalog:    catalog.New(),
		Registry:   registry.New(),
	}
	r := resolver.New(policy)
	for _, stmt := range stmts {
		switch stmt.Kind {
		case parser.StandardDDL:
			if err := res.Catalog.AddStatement(stmt); err != nil {
				return nil, err
			}
		case parser.ComponentDecl:
			comp, warnings := r.Resolve(stmt, res.Catalog)
			res.Warnings = append(res.Warnings, warnings...)
			if err := res.Registry.Register(comp); err != nil {
				return nil, fmt.Errorf("%s: %w", stmt.Pos, err)
			}
		}
	}
	return res, nil
}
