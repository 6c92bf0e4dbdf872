package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pgscope/pgscope/internal/catalog"
)

// catalogColumns is the column order for every tabular format.
var catalogColumns = []string{"Table", "Column", "Type", "Nullable", "Description"}

func rowValues(r catalog.Row) []string {
	nullable := "NO"
	if r.Nullable {
		nullable = "YES"
	}
	return []string{r.Table, r.Column, r.DataType, nullable, r.ColumnDescription}
}

func renderRowsTable(w io.Writer, rows []catalog.Row) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(catalogColumns))
	for i, col := range catalogColumns {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, r := range rows {
		values := rowValues(r)
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = v
		}
		t.AppendRow(row)
	}

	t.Render()
}

func renderRowsMarkdown(w io.Writer, rows []catalog.Row) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(catalogColumns, " | "))
	seps := make([]string, len(catalogColumns))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(rowValues(r), " | "))
	}
}

func renderRowsCSV(w io.Writer, rows []catalog.Row) {
	_, _ = fmt.Fprintln(w, strings.Join(catalogColumns, ","))
	for _, r := range rows {
		values := rowValues(r)
		for i, v := range values {
			values[i] = escapeCSV(v)
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
