// Package catalog implements read-only access to the PostgreSQL system
// catalog: listing tables and views in a schema, fetching column metadata
// joined with table- and column-level comments, TTL caching of both queries,
// and the pure filtering/summarizing helpers the presentation layers share.
package catalog

import "context"

// Row is one (table, column) pair of the flattened catalog result set.
// Description fields are never null: a comment that was never set is
// normalized to the empty string at the scan boundary, so filtering and
// rendering never deal with absent markers. Rows are immutable after
// creation; FilterRows returns a new slice instead of mutating.
type Row struct {
	Schema            string `json:"schema"`
	Table             string `json:"table"`
	TableDescription  string `json:"table_description"`
	Column            string `json:"column"`
	DataType          string `json:"data_type"`
	Nullable          bool   `json:"nullable"`
	ColumnDescription string `json:"column_description"`
}

// Catalog is the read-only query surface. Both the direct Store and the
// caching decorator implement it.
//
// FetchCatalog treats an empty tables slice as the "All" sentinel: every
// table and view in the schema is included. Rows come back ordered by table
// name, then by column ordinal position (declaration order); callers rely
// on that ordering and must not re-sort.
type Catalog interface {
	// ListTables returns the table and view names in schema, sorted
	// lexicographically. An empty slice is a valid result.
	ListTables(ctx context.Context, schema string) ([]string, error)

	// FetchCatalog returns one Row per column across the selected tables.
	FetchCatalog(ctx context.Context, schema string, tables []string) ([]Row, error)
}
