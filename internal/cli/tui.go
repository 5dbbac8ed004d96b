package cli

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/texteffects/scramble/internal/app"
	"github.com/texteffects/scramble/internal/config"
	"github.com/texteffects/scramble/internal/keymap"
	"github.com/texteffects/scramble/internal/logging"
	"github.com/texteffects/scramble/internal/reveal"
	"github.com/texteffects/scramble/internal/ui/common"
)

func runTUI(cfg *config.Config, rcfg reveal.Config, opts options) error {
	// Logging goes to files; the TUI owns the terminal.
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create %s: %v\n", cfg.Paths.Home, err)
	}
	if err := logging.Initialize(cfg.Paths.LogsRoot, logging.LevelDebug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()
	logging.Info("Starting scramble")

	a, err := app.New(rcfg, keymap.New(cfg.KeyMap), app.Options{
		Theme:     common.ThemeID(opts.theme),
		WatchPath: opts.watch,
	})
	if err != nil {
		return err
	}
	defer a.Shutdown()

	p := tea.NewProgram(a, tea.WithFilter(mouseEventFilter))
	if err := a.SetMsgSender(p.Send); err != nil {
		return err
	}

	if _, err := p.Run(); err != nil {
		logging.Error("App exited with error: %v", err)
		if path := logging.LogPath(); path != "" {
			fmt.Fprintf(os.Stderr, "Details in %s\n", path)
		}
		return err
	}

	logging.Info("scramble shutdown complete")
	return nil
}

var (
	lastMouseMotionEvent   time.Time
	lastMouseX, lastMouseY int
)

// mouseEventFilter throttles mouse motion so a busy pointer does not starve
// animation frames.
func mouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	if motion, ok := msg.(tea.MouseMotionMsg); ok {
		if motion.X != lastMouseX || motion.Y != lastMouseY {
			lastMouseX = motion.X
			lastMouseY = motion.Y
			lastMouseMotionEvent = time.Now()
			return msg
		}
		now := time.Now()
		if now.Sub(lastMouseMotionEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseMotionEvent = now
	}
	return msg
}
