package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fast-bird/internal/core"
	"github.com/vovakirdan/fast-bird/internal/settings"
	"github.com/vovakirdan/fast-bird/internal/storage"
)

// MenuChoice is an entry of the home menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceStatistics
	ChoiceSettings
	ChoiceQuit
)

// String returns the menu label.
func (c MenuChoice) String() string {
	switch c {
	case ChoicePlay:
		return "Play"
	case ChoiceStatistics:
		return "Statistics"
	case ChoiceSettings:
		return "Settings"
	case ChoiceQuit:
		return "Quit"
	default:
		return ""
	}
}

var menuItems = []MenuChoice{ChoicePlay, ChoiceStatistics, ChoiceSettings, ChoiceQuit}

const privacyNotice = `Fast Bird keeps your match results and
preferences in a local database. Nothing
leaves this machine.`

// MenuModel is the home screen. On first launch it asks for the privacy
// policy to be accepted before showing the menu.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	store     *storage.Store
	settings  *settings.Manager
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	highScore int
	gate      bool
	err       error
	selected  MenuChoice
	quitting  bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, mgr *settings.Manager, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		settings:  mgr,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		gate:      !mgr.Get().PrivacyAccepted,
	}
	if store != nil {
		//nolint:errcheck // Best-effort; a missing high score just shows 0
		m.highScore, _ = store.HighScore()
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.gate {
			return m.handleGateKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleGateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionSelect:
		if err := m.settings.AcceptPrivacy(); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.gate = false
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		choice := menuItems[m.cursor]
		if choice == ChoiceQuit {
			m.quitting = true
		} else {
			m.selected = choice
		}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  F A S T   B I R D  "), m.width))
	b.WriteString("\n\n")

	if m.gate {
		b.WriteString(m.viewGate())
		return b.String()
	}

	b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("Best score: %d", m.highScore)), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		label := "  " + item.String() + "  "
		if i == m.cursor {
			label = selectedStyle.Render(label)
		}
		b.WriteString(centerText(label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewGate() string {
	var b strings.Builder
	b.WriteString(centerText("Privacy", m.width))
	b.WriteString("\n\n")
	for _, line := range strings.Split(privacyNotice, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(centerText(errorStyle.Render(m.err.Error()), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(dimStyle.Render("Enter: Accept  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen entry, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
	Quit   bool
}

// RunMenu runs the home menu and returns the selection.
func RunMenu(store *storage.Store, mgr *settings.Manager, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, mgr, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Choice: m.Selected(),
		Config: m.Config(),
	}
	if m.IsQuitting() || result.Choice == ChoiceNone {
		result.Quit = true
	}
	return result, nil
}
