package browse

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pgscope/pgscope/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	tables []string
	rows   []catalog.Row
	err    error

	gotTables []string
}

func (s *stubCatalog) ListTables(_ context.Context, _ string) ([]string, error) {
	return s.tables, s.err
}

func (s *stubCatalog) FetchCatalog(_ context.Context, _ string, tables []string) ([]catalog.Row, error) {
	s.gotTables = tables
	return s.rows, s.err
}

func usersRows() []catalog.Row {
	return []catalog.Row{
		{Schema: "org", Table: "users", TableDescription: "User accounts", Column: "id", DataType: "integer"},
		{Schema: "org", Table: "users", TableDescription: "User accounts", Column: "email", DataType: "text", ColumnDescription: "primary contact"},
	}
}

func newTestModel(stub *stubCatalog) model {
	return newModel(Config{
		Catalog: stub,
		Schemas: []string{"org", "src", "stg"},
	})
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// advance applies a message and keeps running returned commands until the
// model settles, so async loads resolve synchronously in tests.
func advance(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	for msg != nil {
		var cmd tea.Cmd
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(model)
		require.True(t, ok)
		if cmd == nil {
			return m
		}
		msg = cmd()
	}
	return m
}

func TestInitLoadsTablesAndCatalog(t *testing.T) {
	stub := &stubCatalog{tables: []string{"users"}, rows: usersRows()}
	m := newTestModel(stub)

	m = advance(t, m, m.Init()())

	assert.False(t, m.loading)
	assert.Equal(t, []string{"users"}, m.tables)
	assert.Nil(t, stub.gotTables, "initial load should request every table")
	assert.Len(t, m.filtered, 2)
	assert.Equal(t, catalog.Summary{Schema: "org", Tables: 1, Columns: 2}, m.summary)
}

func TestSelectedTables(t *testing.T) {
	m := newTestModel(&stubCatalog{})
	m.tables = []string{"orders", "users"}

	m.tableIdx = 0
	assert.Nil(t, m.selectedTables())
	assert.Equal(t, "All", m.tableLabel())

	m.tableIdx = 2
	assert.Equal(t, []string{"users"}, m.selectedTables())
	assert.Equal(t, "users", m.tableLabel())
}

func TestTableSelectionTriggersReload(t *testing.T) {
	stub := &stubCatalog{tables: []string{"users"}, rows: usersRows()}
	m := newTestModel(stub)
	m = advance(t, m, m.Init()())

	m = advance(t, m, keyMsg("right"))

	assert.Equal(t, 1, m.tableIdx)
	assert.Equal(t, []string{"users"}, stub.gotTables)
}

func TestSchemaCycle(t *testing.T) {
	stub := &stubCatalog{tables: []string{"users"}, rows: usersRows()}
	m := newTestModel(stub)
	m = advance(t, m, m.Init()())

	m = advance(t, m, keyMsg("s"))
	assert.Equal(t, 1, m.schemaIdx)
	assert.Equal(t, "src", m.summary.Schema)

	m = advance(t, m, keyMsg("S"))
	assert.Equal(t, 0, m.schemaIdx)
}

func TestFilterNarrowsRows(t *testing.T) {
	stub := &stubCatalog{tables: []string{"users"}, rows: usersRows()}
	m := newTestModel(stub)
	m = advance(t, m, m.Init()())

	m = advance(t, m, keyMsg("/"))
	require.True(t, m.filter.Focused())

	for _, r := range "contact" {
		m = advance(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	require.Len(t, m.filtered, 1)
	assert.Equal(t, "email", m.filtered[0].Column)
	assert.Equal(t, catalog.Summary{Schema: "org", Tables: 1, Columns: 1}, m.summary)
}

func TestFilterEscClearsAndBlurs(t *testing.T) {
	stub := &stubCatalog{tables: []string{"users"}, rows: usersRows()}
	m := newTestModel(stub)
	m = advance(t, m, m.Init()())

	m = advance(t, m, keyMsg("/"))
	m = advance(t, m, keyMsg("x"))
	require.Empty(t, m.filtered)

	m = advance(t, m, keyMsg("esc"))

	assert.False(t, m.filter.Focused())
	assert.Empty(t, m.filter.Value())
	assert.Len(t, m.filtered, 2)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(&stubCatalog{})

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestLoadErrorIsSurfaced(t *testing.T) {
	stub := &stubCatalog{err: errors.New("connection refused")}
	m := newTestModel(stub)

	m = advance(t, m, m.Init()())

	require.Error(t, m.err)
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "connection refused")
}
