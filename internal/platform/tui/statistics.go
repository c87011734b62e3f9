package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/fast-bird/internal/games/fastbird"
	"github.com/vovakirdan/fast-bird/internal/storage"
)

// Statistics layout constants
const (
	maxResults   = 200 // Max results to load
	dateLayout   = "02.01.2006"
	allLevelsTab = 0
)

// StatisticsKeyMap defines the key bindings for the statistics screen.
type StatisticsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Clear   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatisticsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatisticsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultStatisticsKeyMap returns default key bindings.
func DefaultStatisticsKeyMap() StatisticsKeyMap {
	return StatisticsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x x", "clear history"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatisticsModel shows the match history with its aggregates. Tabs filter
// by level; tab 0 covers every level.
type StatisticsModel struct {
	store        *storage.Store
	results      []storage.Result
	overall      storage.Stats
	byLevel      map[int]storage.Stats
	tab          int
	table        table.Model
	help         help.Model
	keys         StatisticsKeyMap
	width        int
	height       int
	now          func() time.Time
	confirmClear bool
	err          error
	quitting     bool
	goingBack    bool
}

// NewStatisticsModel creates a new statistics model.
func NewStatisticsModel(store *storage.Store, width, height int) StatisticsModel {
	h := help.New()
	h.ShowAll = false

	m := StatisticsModel{
		store:  store,
		keys:   DefaultStatisticsKeyMap(),
		help:   h,
		width:  width,
		height: height,
		now:    time.Now,
	}

	m.table = m.createTable()
	m.reload()

	return m
}

// createTable creates a new table sized to the window.
func (m *StatisticsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Level", Width: 8},
		{Title: "Score", Width: 7},
		{Title: "Result", Width: 6},
		{Title: "When", Width: 16},
	}

	columns = columns[:m.columnCount()]

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)), // Leave room for header, aggregates and help
	)

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

// reload reads the history and aggregates from the store.
func (m *StatisticsModel) reload() {
	m.results = nil
	m.overall = storage.Stats{}
	m.byLevel = nil
	m.err = nil

	if m.store != nil {
		if m.results, m.err = m.store.Results(maxResults); m.err == nil {
			if m.overall, m.err = m.store.Stats(); m.err == nil {
				m.byLevel, m.err = m.store.StatsByLevel()
			}
		}
	}
	m.updateTableRows()
}

// levelFilter returns the level shown by the current tab, or 0 for all.
func (m StatisticsModel) levelFilter() int {
	if m.tab == allLevelsTab {
		return 0
	}
	return fastbird.Levels[m.tab-1].ID
}

// visible returns the results matching the current tab.
func (m StatisticsModel) visible() []storage.Result {
	level := m.levelFilter()
	if level == 0 {
		return m.results
	}
	out := make([]storage.Result, 0, len(m.results))
	for _, r := range m.results {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

// current returns the aggregates for the current tab.
func (m StatisticsModel) current() storage.Stats {
	level := m.levelFilter()
	if level == 0 {
		return m.overall
	}
	return m.byLevel[level]
}

// columnCount drops the relative date column on narrow terminals.
func (m StatisticsModel) columnCount() int {
	if m.width > 0 && m.width < 60 {
		return 4
	}
	return 5
}

// updateTableRows updates the table with the visible results.
func (m *StatisticsModel) updateTableRows() {
	visible := m.visible()
	rows := make([]table.Row, len(visible))
	for i, r := range visible {
		outcome := "Lose"
		if r.Won {
			outcome = "Win"
		}
		row := table.Row{
			r.CreatedAt.Format(dateLayout),
			fastbird.LevelName(r.Level),
			strconv.Itoa(r.Score),
			outcome,
			humanize.RelTime(r.CreatedAt, m.now(), "ago", "from now"),
		}
		rows[i] = row[:m.columnCount()]
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the statistics model.
func (m StatisticsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the statistics screen.
func (m StatisticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Any key other than a second x cancels a pending clear
		if !key.Matches(msg, m.keys.Clear) {
			m.confirmClear = false
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % (fastbird.LevelCount() + 1)
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab--
			if m.tab < 0 {
				m.tab = fastbird.LevelCount()
			}
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if !m.confirmClear {
				m.confirmClear = true
				return m, nil
			}
			m.confirmClear = false
			if m.store != nil {
				if err := m.store.ClearResults(); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
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

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the statistics screen.
func (m StatisticsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(centerText(titleStyle.Render("STATISTICS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderSummary(), m.width))
	b.WriteString("\n")

	content := m.table.View()
	if len(m.visible()) == 0 {
		content = dimStyle.Italic(true).Padding(2, 4).
			Render("No matches recorded yet.\nPlay a game to fill this list!")
	}
	b.WriteString(centerText(panelStyle.Render(content), m.width))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.confirmClear:
		b.WriteString(errorStyle.Render("Press x again to delete every result"))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m StatisticsModel) renderTabs() string {
	names := make([]string, 0, fastbird.LevelCount()+1)
	names = append(names, "All")
	for _, l := range fastbird.Levels {
		names = append(names, l.Name)
	}

	tabs := make([]string, len(names))
	for i, name := range names {
		if i == m.tab {
			tabs[i] = selectedStyle.Padding(0, 1).Render(name)
		} else {
			tabs[i] = dimStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(tabs, " ")
}

func (m StatisticsModel) renderSummary() string {
	st := m.current()
	last := "never"
	if !st.LastPlayed.IsZero() {
		last = humanize.RelTime(st.LastPlayed, m.now(), "ago", "from now")
	}
	return fmt.Sprintf("Games: %d   Win rate: %d%%   Best: %d   Average: %d   Last played: %s",
		st.GamesCount, st.WinRate, st.HighScore, st.AverageScore, last)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatisticsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatisticsModel) IsQuitting() bool {
	return m.quitting
}

// RunStatistics runs the statistics screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunStatistics(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewStatisticsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StatisticsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
