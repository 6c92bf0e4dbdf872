package catalog

import "strings"

// NoDescriptionPlaceholder is shown for a table that has no comment set.
const NoDescriptionPlaceholder = "(No table description found)"

// AllTablesHint is shown instead of a description when no single table is
// selected. Descriptions of multiple tables are never concatenated or
// picked arbitrarily; the user narrows the selection instead.
const AllTablesHint = "Select a single table to view its description."

// NoResultsMessage is the informational message for an empty filtered set.
const NoResultsMessage = "No results match the current filters."

// FilterRows returns the rows where query (lowercased, whitespace-trimmed)
// is a case-insensitive substring of the table name, column name, table
// description, or column description. An empty or whitespace-only query
// returns the input unchanged. The input is never mutated; matches are
// collected into a new slice.
func FilterRows(rows []Row, query string) []Row {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Table), q) ||
			strings.Contains(strings.ToLower(r.Column), q) ||
			strings.Contains(strings.ToLower(r.TableDescription), q) ||
			strings.Contains(strings.ToLower(r.ColumnDescription), q) {
			out = append(out, r)
		}
	}
	return out
}

// Summary reports the derived counts for a (possibly filtered) row set.
type Summary struct {
	Schema  string `json:"schema"`
	Tables  int    `json:"tables"`
	Columns int    `json:"columns"`
}

// Summarize computes the schema name, the number of distinct tables present
// in rows, and the total row count. All values are derived, never stored.
func Summarize(schema string, rows []Row) Summary {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		seen[r.Table] = struct{}{}
	}
	return Summary{Schema: schema, Tables: len(seen), Columns: len(rows)}
}

// DescribeTable returns the description for table: the first non-empty
// value found among its rows, or NoDescriptionPlaceholder when the table
// has no comment.
func DescribeTable(rows []Row, table string) string {
	for _, r := range rows {
		if r.Table == table && r.TableDescription != "" {
			return r.TableDescription
		}
	}
	return NoDescriptionPlaceholder
}
