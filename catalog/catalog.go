package catalog

import (
	"errors"
	"fmt"

	pgparser "github.com/auxten/postgresql-parser/pkg/sql/parser"
	"github.com/auxten/postgresql-parser/pkg/sql/sem/tree"
	"github.com/auxten/postgresql-parser/pkg/walk"

	"schemaui/model"
	"schemaui/parser"
)

var (
	ErrTableNotFound  = errors.New("table not found")
	ErrColumnNotFound = errors.New("column not found")
)

type DuplicateTableError struct {
	Pos  parser.Pos
	Name string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("%s: table %s already declared", e.Pos, e.Name)
}

type DuplicateColumnError struct {
	Pos    parser.Pos
	Table  string
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("%s: column %s already declared in table %s", e.Pos, e.Column, e.Table)
}

// Catalog holds the tables parsed from standard DDL statements, in
// declaration order. One catalog belongs to one parse; independent sources
// get independent catalogs.
type Catalog struct {
	tables map[string]*model.Table
	order  []*model.Table
}

func New() *Catalog {
	return &Catalog{tables: map[string]*model.Table{}}
}

// AddStatement parses one standard CREATE TABLE statement and registers the
// table it declares. A statement the SQL parser rejects becomes a
// SyntaxError carrying the statement position.
func (c *Catalog) AddStatement(stmt parser.Statement) error {
	stmts, err := pgparser.Parse(stmt.RawText)
	if err != nil {
		return &parser.SyntaxError{Pos: stmt.Pos, Msg: err.Error()}
	}

	var fatal error
	w := &walk.AstWalker{Fn: func(ctx interface{}, node interface{}) (stop bool) {
		n, ok := node.(*tree.CreateTable)
		if !ok || fatal != nil {
			return fatal != nil
		}
		fatal = c.addTable(n, stmt.Pos)
		return fatal != nil
	}}
	if _, err := w.Walk(stmts, nil); err != nil {
		return &parser.SyntaxError{Pos: stmt.Pos, Msg: err.Error()}
	}
	return fatal
}

func (c *Catalog) addTable(n *tree.CreateTable, pos parser.Pos) error {
	name := n.Table.Table()
	if _, ok := c.tables[name]; ok {
		return &DuplicateTableError{Pos: pos, Name: name}
	}

	table := &model.Table{Name: name}

	n.HoistConstraints()
	for _, def := range n.Defs {
		switch d := def.(type) {
		case *tree.ColumnTableDef:
			if table.Column(string(d.Name)) != nil {
				return &DuplicateColumnError{Pos: pos, Table: name, Column: string(d.Name)}
			}
			table.Columns = append(table.Columns, &model.Column{
				Name:       string(d.Name),
				Type:       d.Type,
				Family:     model.FamilyOf(d.Type),
				NotNull:    d.Nullable.Nullability == tree.NotNull,
				HasDefault: d.DefaultExpr.Expr != nil,
			})
			// column-level PRIMARY KEY is not hoisted into a table-level
			// constraint def
			if d.PrimaryKey.IsPrimaryKey {
				table.PrimaryKey = append(table.PrimaryKey, string(d.Name))
			}
		case *tree.UniqueConstraintTableDef:
			if d.PrimaryKey {
				table.PrimaryKey = make([]string, 0, len(d.Columns))
				for _, column := range d.Columns {
					table.PrimaryKey = append(table.PrimaryKey, column.Column.String())
				}
			}
		case *tree.ForeignKeyConstraintTableDef:
			ref := &model.ForeignKeyRef{
				Table:     c.tables[d.Table.Table()],
				TableName: d.Table.Table(),
				Columns:   d.ToCols.ToStrings(),
			}
			// shorthand REFERENCES without a column list targets the
			// referenced table's primary key
			if len(ref.Columns) == 0 && ref.Table != nil {
				ref.Columns = ref.Table.PrimaryKey
			}
			table.ForeignKeys = append(table.ForeignKeys, &model.ForeignKey{
				Columns: d.FromCols.ToStrings(),
				Ref:     ref,
			})
		}
	}

	c.tables[name] = table
	c.order = append(c.order, table)

	// backfill forward references now that the table exists
	for _, t := range c.order {
		for _, fk := range t.ForeignKeys {
			if fk.Ref.Table == nil && fk.Ref.TableName == name {
				fk.Ref.Table = table
				if len(fk.Ref.Columns) == 0 {
					fk.Ref.Columns = table.PrimaryKey
				}
			}
		}
	}
	return nil
}

// Table returns the named table, or ErrTableNotFound.
func (c *Catalog) Table(name string) (*model.Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return t, nil
}

// LookupColumn returns the named column of the named table, or a not-found
// error the caller is free to ignore.
func (c *Catalog) LookupColumn(table, column string) (*model.Column, error) {
	t, err := c.Table(table)
	if err != nil {
		return nil, err
	}
	col := t.Column(column)
	if col == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrColumnNotFound, table, column)
	}
	return col, nil
}

// Tables returns all tables in declaration order.
func (c *Catalog) Tables() []*model.Table {
	return c.order
}

// Latest returns the most recently declared table, or nil for an empty
// catalog.
func (c *Catalog) Latest() *model.Table {
	if len(c.order) == 0 {
		return nil
	}
	return c.order[len(c.order)-1]
}
