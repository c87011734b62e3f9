package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fast-bird/internal/core"
	"github.com/vovakirdan/fast-bird/internal/settings"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenLevels
	screenGame
	screenStatistics
	screenSettings
)

// SessionModel runs the whole app in one program: menu, level select,
// game, statistics, and settings. Children signal completion with tea.Quit;
// the session swallows those and switches screens instead.
type SessionModel struct {
	svc      Services
	config   core.RuntimeConfig
	seed     int64
	level    int
	screen   sessionScreen
	menu     MenuModel
	levels   LevelSelectModel
	game     *GameModel
	stats    StatisticsModel
	settings SettingsModel
	quitting bool
}

// NewSessionModel creates a session that starts on the home menu.
func NewSessionModel(svc Services, cfg core.RuntimeConfig) SessionModel {
	if svc.Settings == nil {
		svc.Settings = settings.NewManager(nil)
	}
	m := SessionModel{
		svc:    svc,
		config: cfg,
		seed:   cfg.Seed,
		level:  1,
	}
	m.menu = NewMenuModel(svc.Store, svc.Settings, cfg)
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenLevels:
		return m.updateLevels(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenStatistics:
		return m.updateStatistics(msg)
	case screenSettings:
		return m.updateSettings(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	if m.menu.IsQuitting() {
		return m.quit()
	}

	switch m.menu.Selected() {
	case ChoicePlay:
		m.levels = NewLevelSelectModel(m.config.ScreenW, m.config.ScreenH, m.level)
		m.screen = screenLevels
		return m, nil
	case ChoiceStatistics:
		m.stats = NewStatisticsModel(m.svc.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenStatistics
		return m, nil
	case ChoiceSettings:
		m.settings = NewSettingsModel(m.svc.Settings, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenSettings
		return m, nil
	}

	return m, cmd
}

func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.levels.Update(msg)
	if lm, ok := next.(LevelSelectModel); ok {
		m.levels = lm
	}

	switch {
	case m.levels.IsQuitting():
		return m.quit()
	case m.levels.WantsBack():
		return m.toMenu()
	case m.levels.Selected() > 0:
		m.level = m.levels.Selected()
		cfg := m.config
		cfg.Seed = m.seed
		gm := NewGameModel(m.svc.NewGame(m.level), m.svc.Store, cfg)
		m.game = &gm
		m.screen = screenGame
		m.svc.logger().Debug("match started", "level", m.level)
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	switch {
	case m.game.IsQuitting():
		return m.quit()
	case m.game.BackToMenu():
		m.game = nil
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) updateStatistics(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.stats.Update(msg)
	if sm, ok := next.(StatisticsModel); ok {
		m.stats = sm
	}

	switch {
	case m.stats.IsQuitting():
		return m.quit()
	case m.stats.IsGoingBack():
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.settings.Update(msg)
	if sm, ok := next.(SettingsModel); ok {
		m.settings = sm
	}

	switch {
	case m.settings.IsQuitting():
		return m.quit()
	case m.settings.WantsBack():
		return m.toMenu()
	}

	return m, cmd
}

// toMenu rebuilds the menu so the best score is fresh.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.svc.Store, m.svc.Settings, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	if m.game != nil {
		m.game.game.Close()
	}
	m.quitting = true
	return m, tea.Quit
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenLevels:
		return m.levels.View()
	case screenGame:
		return m.game.View()
	case screenStatistics:
		return m.stats.View()
	case screenSettings:
		return m.settings.View()
	default:
		return m.menu.View()
	}
}

// IsQuitting returns true once the session is over.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// RunSession runs a full session in the local terminal.
func RunSession(svc Services, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(svc, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
