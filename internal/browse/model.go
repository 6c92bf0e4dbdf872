package browse

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pgscope/pgscope/internal/catalog"
)

// allTablesLabel is the first entry of the table selector.
const allTablesLabel = "All"

type tablesLoadedMsg struct {
	schema string
	tables []string
}

type catalogLoadedMsg struct {
	schema string
	tables []string
	rows   []catalog.Row
}

type errMsg struct {
	err error
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	selectStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type model struct {
	cat     catalog.Catalog
	schemas []string
	logger  *slog.Logger

	schemaIdx int
	tables    []string
	tableIdx  int

	filter textinput.Model
	grid   table.Model

	rows     []catalog.Row
	filtered []catalog.Row
	summary  catalog.Summary

	loading bool
	err     error
	width   int
	height  int
}

func newModel(cfg Config) model {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ti := textinput.New()
	ti.Placeholder = "filter tables, columns, descriptions"
	ti.Prompt = "/ "
	ti.CharLimit = 128

	columns := []table.Column{
		{Title: "Column", Width: 30},
		{Title: "Type", Width: 20},
		{Title: "Nullable", Width: 8},
		{Title: "Description", Width: 50},
	}
	grid := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	grid.SetStyles(styles)

	return model{
		cat:     cfg.Catalog,
		schemas: cfg.Schemas,
		logger:  logger,
		filter:  ti,
		grid:    grid,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return m.loadTables(m.schemas[m.schemaIdx])
}

func (m model) loadTables(schema string) tea.Cmd {
	cat := m.cat
	return func() tea.Msg {
		tables, err := cat.ListTables(context.Background(), schema)
		if err != nil {
			return errMsg{err: err}
		}
		return tablesLoadedMsg{schema: schema, tables: tables}
	}
}

func (m model) loadCatalog(schema string, tables []string) tea.Cmd {
	cat := m.cat
	return func() tea.Msg {
		rows, err := cat.FetchCatalog(context.Background(), schema, tables)
		if err != nil {
			return errMsg{err: err}
		}
		return catalogLoadedMsg{schema: schema, tables: tables, rows: rows}
	}
}

// selectedTables maps the selector position to a query argument: the All
// entry becomes an empty slice, anything else a single table name.
func (m model) selectedTables() []string {
	if m.tableIdx == 0 || m.tableIdx > len(m.tables) {
		return nil
	}
	return []string{m.tables[m.tableIdx-1]}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - 9
		if h < 5 {
			h = 5
		}
		m.grid.SetHeight(h)
		return m, nil

	case tablesLoadedMsg:
		m.tables = msg.tables
		m.tableIdx = 0
		m.loading = true
		m.err = nil
		return m, m.loadCatalog(msg.schema, nil)

	case catalogLoadedMsg:
		m.rows = msg.rows
		m.loading = false
		m.err = nil
		m.applyFilter()
		return m, nil

	case errMsg:
		m.err = msg.err
		m.loading = false
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.filter.Focused() {
		switch msg.String() {
		case "esc":
			m.filter.Blur()
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		case "enter":
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "/":
		return m, m.filter.Focus()
	case "s":
		m.schemaIdx = (m.schemaIdx + 1) % len(m.schemas)
		m.loading = true
		return m, m.loadTables(m.schemas[m.schemaIdx])
	case "S":
		m.schemaIdx = (m.schemaIdx - 1 + len(m.schemas)) % len(m.schemas)
		m.loading = true
		return m, m.loadTables(m.schemas[m.schemaIdx])
	case "left", "h":
		if m.tableIdx > 0 {
			m.tableIdx--
			m.loading = true
			return m, m.loadCatalog(m.schemas[m.schemaIdx], m.selectedTables())
		}
		return m, nil
	case "right", "l":
		if m.tableIdx < len(m.tables) {
			m.tableIdx++
			m.loading = true
			return m, m.loadCatalog(m.schemas[m.schemaIdx], m.selectedTables())
		}
		return m, nil
	case "r":
		m.loading = true
		return m, m.loadCatalog(m.schemas[m.schemaIdx], m.selectedTables())
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

// applyFilter recomputes the visible rows from the loaded catalog and the
// current filter text.
func (m *model) applyFilter() {
	m.filtered = catalog.FilterRows(m.rows, m.filter.Value())
	m.summary = catalog.Summarize(m.schemas[m.schemaIdx], m.filtered)

	gridRows := make([]table.Row, 0, len(m.filtered))
	for _, row := range m.filtered {
		nullable := "NO"
		if row.Nullable {
			nullable = "YES"
		}
		gridRows = append(gridRows, table.Row{row.Column, row.DataType, nullable, row.ColumnDescription})
	}
	m.grid.SetRows(gridRows)
	m.grid.GotoTop()
}

func (m model) tableLabel() string {
	if m.tableIdx == 0 || m.tableIdx > len(m.tables) {
		return allTablesLabel
	}
	return m.tables[m.tableIdx-1]
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("pgscope"))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Schema: "))
	b.WriteString(selectStyle.Render(m.schemas[m.schemaIdx]))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Table: "))
	b.WriteString(selectStyle.Render(m.tableLabel()))
	b.WriteString("\n")

	b.WriteString(m.filter.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.loading:
		b.WriteString(mutedStyle.Render("loading..."))
		b.WriteString("\n")
	case len(m.filtered) == 0:
		b.WriteString(mutedStyle.Render(catalog.NoResultsMessage))
		b.WriteString("\n")
	default:
		b.WriteString(summaryStyle.Render(m.summaryLine()))
		b.WriteString("\n")
		b.WriteString(m.grid.View())
		b.WriteString("\n")
		b.WriteString(m.descriptionLine())
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render("[s] schema  [←/→] table  [/] filter  [r] reload  [q] quit"))
	return b.String()
}

func (m model) summaryLine() string {
	return labelStyle.Render("Schema: ") + m.summary.Schema +
		"  " + labelStyle.Render("Tables: ") + strconv.Itoa(m.summary.Tables) +
		"  " + labelStyle.Render("Columns: ") + strconv.Itoa(m.summary.Columns)
}

func (m model) descriptionLine() string {
	if m.tableIdx == 0 {
		return mutedStyle.Render(catalog.AllTablesHint)
	}
	return labelStyle.Render("Description: ") + catalog.DescribeTable(m.filtered, m.tableLabel())
}
