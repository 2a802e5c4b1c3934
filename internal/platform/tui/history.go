package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fallscene/internal/registry"
	"github.com/vovakirdan/fallscene/internal/storage"
)

// History layout constants
const (
	maxRenders    = 100 // Max renders to load
	tableMinWidth = 50  // Minimum table width
)

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextComp key.Binding
	PrevComp key.Binding
	Verify   key.Binding
	Delete   key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextComp, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextComp, k.PrevComp},
		{k.Verify, k.Delete, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextComp: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next composition"),
		),
		PrevComp: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev composition"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing saved renders.
type HistoryModel struct {
	filters  []string // Composition IDs, "" meaning all
	cursor   int      // Currently selected filter
	store    *storage.Store
	renders  []storage.RenderEntry
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	status   string
	quitting bool
}

// NewHistoryModel creates a new history browser.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	filters := []string{""}
	for _, c := range registry.List() {
		filters = append(filters, c.ID)
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		filters: filters,
		store:   store,
		keys:    DefaultHistoryKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.loadRenders()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Composition", Width: 14},
		{Title: "Seed", Width: 8},
		{Title: "Items", Width: 6},
		{Title: "Frames", Width: 7},
		{Title: "Fingerprint", Width: 12},
		{Title: "Date", Width: 12},
	}

	// Spread extra width into the fingerprint column
	tableWidth := max(m.width-4, tableMinWidth)
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := tableWidth - used; extra > 0 {
		columns[5].Width += min(extra, 52)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// filter returns the composition currently shown, "" for all.
func (m HistoryModel) filter() string {
	if len(m.filters) == 0 {
		return ""
	}
	return m.filters[m.cursor]
}

// loadRenders loads renders for the current filter.
func (m *HistoryModel) loadRenders() {
	m.renders = nil
	if m.store != nil {
		renders, err := m.store.RecentRenders(m.filter(), maxRenders)
		if err != nil {
			m.status = "load failed: " + err.Error()
		} else {
			m.renders = renders
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current renders.
func (m *HistoryModel) updateTableRows() {
	fpWidth := 12
	if cols := m.table.Columns(); len(cols) > 5 {
		fpWidth = cols[5].Width
	}

	rows := make([]table.Row, len(m.renders))
	for i, r := range m.renders {
		rows[i] = table.Row{
			shorten(r.ID, 8),
			r.Composition,
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%d", r.SpawnCount),
			fmt.Sprintf("%d", r.TotalFrames),
			shorten(r.Fingerprint, fpWidth),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// selected returns the highlighted render, if any.
func (m HistoryModel) selected() (storage.RenderEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.renders) {
		return storage.RenderEntry{}, false
	}
	return m.renders[i], true
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextComp):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.status = ""
			m.loadRenders()
			return m, nil

		case key.Matches(msg, m.keys.PrevComp):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.filters) - 1
			}
			m.status = ""
			m.loadRenders()
			return m, nil

		case key.Matches(msg, m.keys.Verify):
			m.status = m.verifySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.status = m.deleteSelected()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// verifySelected regenerates the highlighted render's plan and reports the result.
func (m HistoryModel) verifySelected() string {
	e, ok := m.selected()
	if !ok || m.store == nil {
		return ""
	}
	v, err := m.store.Verify(e.ID)
	if err != nil {
		return "verify failed: " + err.Error()
	}
	if !v.OK() {
		return fmt.Sprintf("%s MISMATCH: stored %s, regenerated %s",
			shorten(e.ID, 8), shorten(v.Stored, 12), shorten(v.Regenerated, 12))
	}
	return fmt.Sprintf("%s verified: %d records bit-identical", shorten(e.ID, 8), e.SpawnCount)
}

// deleteSelected removes the highlighted render.
func (m *HistoryModel) deleteSelected() string {
	e, ok := m.selected()
	if !ok || m.store == nil {
		return ""
	}
	if err := m.store.DeleteRender(e.ID); err != nil {
		return "delete failed: " + err.Error()
	}
	m.loadRenders()
	return "deleted " + shorten(e.ID, 8)
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RENDER HISTORY - all compositions"
	if f := m.filter(); f != "" {
		title = "RENDER HISTORY - " + f
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.status))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.renders) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No renders recorded yet.\nRun `fallscene plan --save` to record one.")
	}

	return m.table.View()
}

// Renders returns the entries currently listed.
func (m HistoryModel) Renders() []storage.RenderEntry {
	return m.renders
}

// Status returns the last action's status message.
func (m HistoryModel) Status() string {
	return m.status
}

// centerText pads text to center it within width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, width, height int) error {
	model := NewHistoryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
