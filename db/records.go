package db

import (
	"context"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"schemaui/domain"
	"schemaui/parser"
)

// ApplySchema executes the standard statements of a parsed source against
// the database, in source order. Component declarations are not sent: the
// extended statement means nothing to a real server.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool, res *domain.Result) error {
	for _, stmt := range res.Statements {
		if stmt.Kind != parser.StandardDDL {
			continue
		}
		if _, err := pool.Exec(ctx, stmt.RawText); err != nil {
			return fmt.Errorf("unable to execute statement at %s: %w", stmt.Pos, err)
		}
	}
	return nil
}

// GetRecord fetches one row by id, keyed by column name.
func GetRecord(ctx context.Context, pool *pgxpool.Pool, table, id string) (map[string]interface{}, error) {
	sql, args, err := sq.Select("*").From(table).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := collect(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("record %s not found in table %s", id, table)
	}
	return records[0], nil
}

// GetRecords fetches rows from a table; limit <= 0 means all rows.
func GetRecords(ctx context.Context, pool *pgxpool.Pool, table string, limit int) ([]map[string]interface{}, error) {
	stmt := sq.Select("*").From(table)
	if limit > 0 {
		stmt = stmt.Limit(uint64(limit))
	}
	sql, args, err := stmt.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

// InsertRecord inserts one row and returns its generated id. Columns are
// ordered by name so the statement is deterministic.
func InsertRecord(ctx context.Context, pool *pgxpool.Pool, table string, data map[string]interface{}) (string, error) {
	columns := make([]string, 0, len(data))
	for column := range data {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	values := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		values = append(values, data[column])
	}

	sql, args, err := sq.Insert(table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", err
	}

	var id string
	if err := pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("unable to insert into %s: %w", table, err)
	}
	return id, nil
}

func collect(rows pgx.Rows) ([]map[string]interface{}, error) {
	var records []map[string]interface{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		record := make(map[string]interface{}, len(values))
		for i, fd := range rows.FieldDescriptions() {
			record[string(fd.Name)] = values[i]
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
