package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// listTablesSQL returns base tables and views only; other relation kinds
// (materialized views, sequences, indexes) are excluded.
const listTablesSQL = `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = $1
	  AND table_type IN ('BASE TABLE', 'VIEW')
	ORDER BY table_name
`

// fetchCatalogSQL joins column metadata with table- and column-level
// comments. pg_statio_all_tables resolves the relation's oid from
// (schemaname, relname); pg_description rows with objsubid = 0 carry the
// table comment and objsubid = ordinal_position the column comment.
// $2 is the "all tables" flag: when true the $3 name array is ignored.
// The ORDER BY is load-bearing: consumers present columns in declaration
// order without re-sorting.
const fetchCatalogSQL = `
	SELECT
		c.table_schema,
		c.table_name,
		td.description AS table_description,
		c.column_name,
		c.data_type,
		c.is_nullable,
		cd.description AS column_description
	FROM information_schema.columns c
	LEFT JOIN pg_catalog.pg_statio_all_tables st
	  ON c.table_schema = st.schemaname AND c.table_name = st.relname
	LEFT JOIN pg_catalog.pg_description td
	  ON td.objoid = st.relid AND td.objsubid = 0
	LEFT JOIN pg_catalog.pg_description cd
	  ON cd.objoid = st.relid AND cd.objsubid = c.ordinal_position
	WHERE c.table_schema = $1
	  AND ($2 OR c.table_name = ANY($3))
	ORDER BY c.table_name, c.ordinal_position
`

// ListTables returns the table and view names in schema, sorted by name.
func (s *Store) ListTables(ctx context.Context, schema string) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	rows, err := s.db.QueryContext(ctx, listTablesSQL, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables in schema %s: %w", schema, err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table names: %w", err)
	}

	s.logger.Debug("listed tables", slog.String("schema", schema), slog.Int("count", len(tables)))
	return tables, nil
}

// FetchCatalog returns one Row per column across the selected tables.
// An empty tables slice selects every table and view in the schema.
func (s *Store) FetchCatalog(ctx context.Context, schema string, tables []string) ([]Row, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	allTables := len(tables) == 0
	if tables == nil {
		tables = []string{}
	}

	rows, err := s.db.QueryContext(ctx, fetchCatalogSQL, schema, allTables, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog for schema %s: %w", schema, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Row
	for rows.Next() {
		var r Row
		var tableDesc, colDesc sql.NullString
		var nullable string
		if err := rows.Scan(&r.Schema, &r.Table, &tableDesc, &r.Column, &r.DataType, &nullable, &colDesc); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		// Unset comments come back NULL; normalize here so nothing
		// downstream handles absent values.
		r.TableDescription = tableDesc.String
		r.ColumnDescription = colDesc.String
		r.Nullable = nullable == "YES"
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog rows: %w", err)
	}

	s.logger.Debug("fetched catalog",
		slog.String("schema", schema),
		slog.Bool("all_tables", allTables),
		slog.Int("rows", len(out)))
	return out, nil
}

// Ensure Store implements the Catalog interface.
var _ Catalog = (*Store)(nil)
