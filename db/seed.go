package db

import (
	"context"
	"fmt"
	"math/rand"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"

	"schemaui/catalog"
	"schemaui/model"
)

const maxTriesCount = 10

// TablesOrder returns the catalog's tables ordered so every foreign-key
// target precedes the tables referencing it. A reference cycle is an error
// naming the tables on the cycle.
func TablesOrder(cat *catalog.Catalog) ([]*model.Table, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := map[*model.Table]int{}
	order := make([]*model.Table, 0, len(cat.Tables()))
	var path []*model.Table

	var visit func(t *model.Table) error
	visit = func(t *model.Table) error {
		switch state[t] {
		case done:
			return nil
		case visiting:
			text := ""
			for _, p := range path {
				text += fmt.Sprintf("%s -> ", p.Name)
			}
			return fmt.Errorf("cycle detected in foreign key constraints: %s%s", text, t.Name)
		}
		state[t] = visiting
		path = append(path, t)
		for _, fk := range t.ForeignKeys {
			if fk.Ref.Table == nil {
				continue
			}
			if err := visit(fk.Ref.Table); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[t] = done
		order = append(order, t)
		return nil
	}

	for _, t := range cat.Tables() {
		if err := visit(t); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Seed inserts rowsPerTable generated rows into every catalog table, in
// foreign-key order, so each foreign key can point at an already-seeded row.
func Seed(ctx context.Context, pool *pgxpool.Pool, cat *catalog.Catalog, rowsPerTable int) error {
	order, err := TablesOrder(cat)
	if err != nil {
		return err
	}

	seeded := map[*model.Table]map[string][]interface{}{}
	for _, table := range order {
		if err := seedTable(ctx, pool, table, rowsPerTable, seeded); err != nil {
			return err
		}
	}
	return nil
}

func seedTable(ctx context.Context, pool *pgxpool.Pool, table *model.Table, count int, seeded map[*model.Table]map[string][]interface{}) error {
	columns := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		columns = append(columns, c.Name)
	}
	stmt := sq.Insert(table.Name).Columns(columns...)

	prev := make([]map[string]interface{}, 0, count)
	for i := 0; i < count; i++ {
		generated := false
		for try := 0; try < maxTriesCount; try++ {
			row := make(map[string]interface{}, len(table.Columns))
			for _, fk := range table.ForeignKeys {
				if len(fk.Columns) == 0 || len(fk.Ref.Columns) != len(fk.Columns) {
					return fmt.Errorf("table %s: cannot determine target columns of foreign key to %s",
						table.Name, fk.Ref.TableName)
				}
				ref := seeded[fk.Ref.Table]
				values := ref[fk.Ref.Columns[0]]
				if len(values) == 0 {
					return fmt.Errorf("table %s has no seeded rows", fk.Ref.TableName)
				}
				rowN := rand.Intn(len(values))
				for i, column := range fk.Columns {
					row[column] = ref[fk.Ref.Columns[i]][rowN]
				}
			}
			for _, c := range table.Columns {
				if _, ok := row[c.Name]; !ok {
					row[c.Name] = c.SampleValue()
				}
			}

			if !uniqueAgainst(prev, table.PrimaryKey, row) {
				continue
			}

			values := make([]interface{}, 0, len(columns))
			for _, column := range columns {
				values = append(values, row[column])
			}
			stmt = stmt.Values(values...)
			prev = append(prev, row)
			generated = true
			break
		}
		if !generated {
			return fmt.Errorf("unable to generate unique row for table %s", table.Name)
		}
	}

	sql, args, err := stmt.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("unable to begin transaction: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		if errR := tx.Rollback(ctx); errR != nil {
			return fmt.Errorf("unable to rollback transaction: %w", errR)
		}
		return fmt.Errorf("unable to execute query: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("unable to commit transaction: %w", err)
	}

	seeded[table] = map[string][]interface{}{}
	for _, row := range prev {
		for column, value := range row {
			seeded[table][column] = append(seeded[table][column], value)
		}
	}
	return nil
}

// uniqueAgainst reports whether row differs from every previous row on the
// key columns. An empty key accepts everything.
func uniqueAgainst(prev []map[string]interface{}, key []string, row map[string]interface{}) bool {
	if len(key) == 0 {
		return true
	}
	for _, old := range prev {
		same := true
		for _, column := range key {
			if old[column] != row[column] {
				same = false
				break
			}
		}
		if same {
			return false
		}
	}
	return true
}
