package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pgscope/pgscope/internal/catalog"
)

type schemasResponse struct {
	Schemas []string `json:"schemas"`
}

type tablesResponse struct {
	Schema string   `json:"schema"`
	Tables []string `json:"tables"`
}

type catalogResponse struct {
	Summary     catalog.Summary `json:"summary"`
	Description string          `json:"description,omitempty"`
	Message     string          `json:"message,omitempty"`
	Rows        []catalog.Row   `json:"rows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSchemas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, schemasResponse{Schemas: s.schemas})
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	schema := chi.URLParam(r, "schema")
	if !s.knownSchema(schema) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown schema: " + schema})
		return
	}

	tables, err := s.catalog.ListTables(r.Context(), schema)
	if err != nil {
		s.logger.Error("failed to list tables", "schema", schema, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	if tables == nil {
		tables = []string{}
	}
	writeJSON(w, http.StatusOK, tablesResponse{Schema: schema, Tables: tables})
}

// handleCatalog serves the column catalog for a schema. Query parameters:
// schema (required), tables (comma-separated, empty means all), and q
// (case-insensitive substring filter).
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	schema := r.URL.Query().Get("schema")
	if schema == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing required parameter: schema"})
		return
	}
	if !s.knownSchema(schema) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown schema: " + schema})
		return
	}

	tables := parseTablesParam(r.URL.Query().Get("tables"))

	rows, err := s.catalog.FetchCatalog(r.Context(), schema, tables)
	if err != nil {
		s.logger.Error("failed to fetch catalog", "schema", schema, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	filtered := catalog.FilterRows(rows, r.URL.Query().Get("q"))

	resp := catalogResponse{
		Summary: catalog.Summarize(schema, filtered),
		Rows:    filtered,
	}
	if resp.Rows == nil {
		resp.Rows = []catalog.Row{}
	}
	switch {
	case len(filtered) == 0:
		resp.Message = catalog.NoResultsMessage
	case len(tables) == 1:
		resp.Description = catalog.DescribeTable(filtered, tables[0])
	default:
		resp.Message = catalog.AllTablesHint
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseTablesParam splits a comma-separated table list. Empty values and the
// literal "All" both mean every table in the schema.
func parseTablesParam(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return nil
	}
	var tables []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tables = append(tables, t)
		}
	}
	return tables
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
