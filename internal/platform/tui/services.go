package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fast-bird/internal/config"
	"github.com/vovakirdan/fast-bird/internal/games/fastbird"
	"github.com/vovakirdan/fast-bird/internal/settings"
	"github.com/vovakirdan/fast-bird/internal/storage"
)

// Services are the collaborators shared by every screen of a session.
// Store may be nil when the database could not be opened; screens then
// run without persistence.
type Services struct {
	Store    *storage.Store
	Settings *settings.Manager
	Logger   *log.Logger

	// Tuning returns the tuning for the next match. The SSH server points
	// it at the config watcher so edits apply to new matches.
	Tuning func() config.FastBirdConfig

	// Bell receives the terminal bell used as the hit cue.
	Bell io.Writer
}

// OpenServices opens the database, settings, and tuning shared by a session.
// A database that cannot be opened is logged and the session runs without
// persistence. With watch set, edits to configPath apply to new matches.
// The returned func releases everything that was opened.
func OpenServices(dbPath, configPath string, watch bool, logger *log.Logger) (Services, func()) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	svc := Services{Logger: logger}
	var closers []func() error

	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Warn("could not open database, results will not be saved", "path", dbPath, "error", err)
		svc.Settings = settings.NewManager(nil)
	} else {
		svc.Store = store
		svc.Settings = settings.NewManager(store)
		closers = append(closers, store.Close)
	}
	if err := svc.Settings.Load(); err != nil {
		logger.Warn("using default settings", "error", err)
	}

	if watch && configPath != "" {
		w, werr := config.Watch(configPath, logger, nil)
		if werr == nil {
			svc.Tuning = w.Current
			closers = append(closers, w.Close)
		} else {
			logger.Warn("config watch disabled", "path", configPath, "error", werr)
		}
	}
	if svc.Tuning == nil {
		tuning, lerr := config.LoadFastBird(configPath)
		if lerr != nil {
			logger.Warn("using default tuning", "error", lerr)
		}
		svc.Tuning = func() config.FastBirdConfig { return tuning }
	}

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Debug("close failed", "error", err)
			}
		}
	}
	return svc, closeAll
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

func (s Services) settings() *settings.Manager {
	if s.Settings == nil {
		return settings.NewManager(nil)
	}
	return s.Settings
}

// NewGame builds a match for the level wired to the session's tuning,
// settings, and hit cue.
func (s Services) NewGame(level int) *fastbird.Game {
	opts := []fastbird.Option{
		fastbird.WithSettings(s.settings()),
		fastbird.WithLogger(s.logger()),
	}
	if s.Tuning != nil {
		opts = append(opts, fastbird.WithTuning(s.Tuning()))
	}
	if s.Bell != nil {
		opts = append(opts, fastbird.WithFeedback(Bell{W: s.Bell}))
	}
	return fastbird.NewGame(level, opts...)
}

// Bell rings the terminal bell as haptic feedback.
type Bell struct {
	W io.Writer
}

// Haptic writes the BEL control character.
func (b Bell) Haptic() {
	//nolint:errcheck // Best-effort cue
	b.W.Write([]byte{'\a'})
}
