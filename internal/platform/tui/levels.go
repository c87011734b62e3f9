package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fast-bird/internal/core"
	"github.com/vovakirdan/fast-bird/internal/games/fastbird"
)

// LevelSelectModel lets users choose the difficulty of the next match.
type LevelSelectModel struct {
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  int
	quitting  bool
	back      bool
}

// NewLevelSelectModel creates a level picker with the cursor on level.
func NewLevelSelectModel(width, height, level int) LevelSelectModel {
	cursor := 0
	for i, l := range fastbird.Levels {
		if l.ID == level {
			cursor = i
		}
	}
	return LevelSelectModel{
		cursor:    cursor,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < fastbird.LevelCount()-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selected = fastbird.Levels[m.cursor].ID
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	for i, l := range fastbird.Levels {
		line := fmt.Sprintf("  %d. %-6s  %s  +%d per dodge  %ds  ",
			l.ID, l.Name, fastbird.Hearts(l.Config.Lives, l.Config.Lives),
			l.Config.ScorePerDodge, int(l.Config.Duration.Seconds()))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Enter: Play  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen level ID, or 0 while still choosing.
func (m LevelSelectModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level picker. It returns 0 when the user backed
// out or quit.
func RunLevelSelector(cfg core.RuntimeConfig) (int, error) {
	model := NewLevelSelectModel(cfg.ScreenW, cfg.ScreenH, 1)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return 0, nil
	}

	return m.Selected(), nil
}
