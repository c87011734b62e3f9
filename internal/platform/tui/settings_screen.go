package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fast-bird/internal/core"
	"github.com/vovakirdan/fast-bird/internal/settings"
)

// settingsKeyMap defines the key bindings for the settings screen.
type settingsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k settingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Back, k.Quit}
}

func (k settingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultSettingsKeys = settingsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k", "w"),
		key.WithHelp("up", "move"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "s"),
		key.WithHelp("down", "move"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "toggle"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "b"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// settingRow is one toggle on the settings screen.
type settingRow struct {
	label string
	get   func(settings.Settings) bool
	set   func(*settings.Manager, bool) error
}

var settingRows = []settingRow{
	{
		label: "Sound",
		get:   func(s settings.Settings) bool { return s.SoundEnabled },
		set:   (*settings.Manager).SetSound,
	},
	{
		label: "Vibration",
		get:   func(s settings.Settings) bool { return s.VibrationEnabled },
		set:   (*settings.Manager).SetVibration,
	},
}

// SettingsModel edits the persisted preferences.
type SettingsModel struct {
	settings *settings.Manager
	cursor   int
	width    int
	height   int
	keys     settingsKeyMap
	help     help.Model
	err      error
	back     bool
	quitting bool
}

// NewSettingsModel creates a settings screen backed by mgr.
func NewSettingsModel(mgr *settings.Manager, width, height int) SettingsModel {
	if mgr == nil {
		mgr = settings.NewManager(nil)
	}
	return SettingsModel{
		settings: mgr,
		width:    width,
		height:   height,
		keys:     defaultSettingsKeys,
		help:     help.New(),
	}
}

// Init initializes the model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(settingRows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			row := settingRows[m.cursor]
			m.err = row.set(m.settings, !row.get(m.settings.Get()))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.quitting {
		return ""
	}

	current := m.settings.Get()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SETTINGS"), m.width))
	b.WriteString("\n\n")

	for i, row := range settingRows {
		line := "  " + padRight(row.label, 10) + onOff(row.get(current)) + "  "
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	privacy := "Privacy policy: not accepted"
	if current.PrivacyAccepted {
		privacy = "Privacy policy: accepted"
	}
	b.WriteString(centerText(dimStyle.Render(privacy), m.width))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(centerText(errorStyle.Render("Error: "+m.err.Error()), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "[on] "
	}
	return "[off]"
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// WantsBack returns true if user pressed back.
func (m SettingsModel) WantsBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}

// Err returns the last failed save, if any.
func (m SettingsModel) Err() error {
	return m.err
}

// RunSettings runs the settings screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunSettings(mgr *settings.Manager, cfg core.RuntimeConfig) (goBack bool, err error) {
	p := tea.NewProgram(
		NewSettingsModel(mgr, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(SettingsModel)
	if !ok {
		return false, nil
	}
	return m.WantsBack(), nil
}
