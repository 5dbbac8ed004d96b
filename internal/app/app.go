// Package app is the top-level bubbletea model. It owns the effect pane,
// routes input, and bridges the file watcher into the message loop.
package app

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/texteffects/scramble/internal/keymap"
	"github.com/texteffects/scramble/internal/logging"
	"github.com/texteffects/scramble/internal/messages"
	"github.com/texteffects/scramble/internal/perf"
	"github.com/texteffects/scramble/internal/reveal"
	"github.com/texteffects/scramble/internal/ui/common"
	"github.com/texteffects/scramble/internal/ui/scramble"
	"github.com/texteffects/scramble/internal/watch"
)

// Options configures the application.
type Options struct {
	Theme     common.ThemeID
	WatchPath string // optional file to reload text from
}

// App is the root model.
type App struct {
	effect *scramble.Model
	keymap keymap.KeyMap
	zone   *zone.Manager

	watchPath string
	watcher   *watch.TextWatcher
	send      func(tea.Msg)

	width    int
	height   int
	ready    bool
	quitting bool
	err      error
}

// New builds the application model.
func New(cfg reveal.Config, km keymap.KeyMap, opts Options) (*App, error) {
	effect, err := scramble.New(cfg, km)
	if err != nil {
		return nil, err
	}

	z := zone.New()
	effect.SetZone(z)
	if opts.Theme != "" {
		effect.SetTheme(opts.Theme)
	}

	return &App{
		effect:    effect,
		keymap:    km,
		zone:      z,
		watchPath: opts.WatchPath,
	}, nil
}

// SetMsgSender wires the program's Send function and starts the file watcher
// if one was requested. Must be called after tea.NewProgram.
func (a *App) SetMsgSender(send func(tea.Msg)) error {
	a.send = send
	if a.watchPath == "" {
		return nil
	}

	w, err := watch.NewTextWatcher(a.watchPath,
		func(text string) { send(messages.TextChanged{Text: text}) },
		func(err error) { send(messages.WatchFailed{Err: err}) },
	)
	if err != nil {
		return fmt.Errorf("watch %s: %w", a.watchPath, err)
	}
	a.watcher = w
	return nil
}

// Shutdown releases background resources.
func (a *App) Shutdown() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logging.WithError(err, "close text watcher")
		}
	}
	perf.Flush("shutdown")
}

// Init starts the effect's frame loop.
func (a *App) Init() tea.Cmd {
	return a.effect.Init()
}

// Update routes messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = msg.Width > 0 && msg.Height > 0
		a.effect.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.FocusMsg:
		a.effect.Focus()
		return a, nil

	case tea.BlurMsg:
		a.effect.Blur()
		return a, nil

	case tea.KeyPressMsg:
		if a.err != nil {
			// Any key dismisses the error overlay.
			a.err = nil
			return a, nil
		}
		if key.Matches(msg, a.keymap.Quit) {
			a.quitting = true
			return a, tea.Quit
		}

	case messages.TextChanged:
		// New source text clears any stale watcher error.
		a.err = nil
		var cmd tea.Cmd
		a.effect, cmd = a.effect.Update(msg)
		return a, common.SafeBatch(cmd, common.SafeCmd(func() tea.Msg {
			logging.Info("source text changed (%d bytes)", len(msg.Text))
			return nil
		}))

	case messages.RevealCompleted:
		logging.Debug("reveal settled")
		return a, nil

	case messages.WatchFailed:
		logging.WithError(msg.Err, "text watcher")
		a.err = msg.Err
		return a, nil

	case messages.Error:
		if !msg.Logged {
			logging.WithError(msg.Err, msg.Context)
		}
		a.err = msg.Err
		return a, nil
	}

	var cmd tea.Cmd
	a.effect, cmd = a.effect.Update(msg)
	return a, cmd
}
