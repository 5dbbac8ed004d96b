// Package scramble is the bubbletea component that animates a text reveal.
// It owns one engine run at a time and drives it from frame ticks; focus and
// pause act as the visibility gate, so hidden time never advances the reveal.
package scramble

import (
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/texteffects/scramble/internal/keymap"
	"github.com/texteffects/scramble/internal/logging"
	"github.com/texteffects/scramble/internal/messages"
	"github.com/texteffects/scramble/internal/perf"
	"github.com/texteffects/scramble/internal/reveal"
	"github.com/texteffects/scramble/internal/ui/common"
)

// frameMsg carries the timestamp of one animation frame.
type frameMsg struct {
	at time.Time
}

// frameInterval is how often the display refreshes. Scramble re-rolls are
// throttled separately by the engine's tick interval.
const frameInterval = 33 * time.Millisecond

// Model is the bubbletea model for the reveal effect pane.
type Model struct {
	cfg       reveal.Config
	run       *reveal.Run
	display   string
	completed bool

	focused  bool
	paused   bool
	hiddenAt time.Time

	width  int
	height int

	editing bool
	input   textinput.Model

	theme  common.ThemeID
	styles common.Styles
	keymap keymap.KeyMap
	zone   *zone.Manager
}

// New creates the effect model and synchronously pre-renders the scrambled
// text so the first paint never shows the final string.
func New(cfg reveal.Config, km keymap.KeyMap) (*Model, error) {
	run, err := reveal.NewRun(cfg)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = "new text"

	return &Model{
		cfg:     cfg,
		run:     run,
		display: run.Prerender(),
		focused: true,
		input:   ti,
		theme:   common.ThemeDark,
		styles:  common.DefaultStyles(),
		keymap:  km,
	}, nil
}

// SetZone sets the shared zone manager for click targets.
func (m *Model) SetZone(z *zone.Manager) { m.zone = z }

// SetTheme switches the color theme.
func (m *Model) SetTheme(id common.ThemeID) {
	m.theme = id
	m.styles = common.StylesFor(id)
}

// Theme returns the active theme.
func (m *Model) Theme() common.ThemeID { return m.theme }

// SetSize sets the pane size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focus resumes the animation.
func (m *Model) Focus() { m.focused = true }

// Blur pauses the animation; the reveal clock stops with it.
func (m *Model) Blur() { m.focused = false }

// Visible reports whether frames may advance the animation.
func (m *Model) Visible() bool {
	return m.focused && !m.paused && m.width > 0
}

// Display returns the currently shown text.
func (m *Model) Display() string { return m.display }

// Completed reports whether a once-mode run has settled.
func (m *Model) Completed() bool { return m.completed }

// Text returns the reveal target text.
func (m *Model) Text() string { return m.cfg.Text }

// Init starts the frame loop.
func (m *Model) Init() tea.Cmd {
	return m.tickFrame()
}

func (m *Model) tickFrame() tea.Cmd {
	return common.SafeTick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

// Update handles messages for the effect pane.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		return m, m.onFrame(msg.at)

	case messages.TextChanged:
		return m, m.Rebind(msg.Text)

	case tea.KeyPressMsg:
		if m.editing {
			return m, m.updateEditing(msg)
		}
		switch {
		case key.Matches(msg, m.keymap.Restart):
			return m, m.Restart()
		case key.Matches(msg, m.keymap.Reverse):
			return m, m.ToggleDirection()
		case key.Matches(msg, m.keymap.Pause):
			m.TogglePause()
			return m, nil
		case key.Matches(msg, m.keymap.Copy):
			if err := common.CopyText(m.display); err != nil {
				logging.WithError(err, "copy display text")
			}
			return m, nil
		case key.Matches(msg, m.keymap.Edit):
			m.editing = true
			m.input.SetValue(m.cfg.Text)
			m.input.Focus()
			return m, nil
		case key.Matches(msg, m.keymap.NextTheme):
			m.SetTheme(common.NextTheme(m.theme))
			return m, nil
		}

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			m.TogglePause()
		}
		return m, nil
	}

	return m, nil
}

// onFrame advances the run by one frame. While hidden the display holds and
// the hidden span is rebased away on resume.
func (m *Model) onFrame(at time.Time) tea.Cmd {
	defer perf.Time("frame")()

	if m.completed {
		return nil
	}
	if !m.Visible() {
		if m.hiddenAt.IsZero() {
			m.hiddenAt = at
		}
		return m.tickFrame()
	}
	if !m.hiddenAt.IsZero() {
		m.run.Rebase(at.Sub(m.hiddenAt))
		m.hiddenAt = time.Time{}
	}

	display, cont := m.run.Frame(at)
	m.display = display
	if !cont {
		m.completed = true
		return common.SafeCmd(func() tea.Msg {
			return messages.RevealCompleted{}
		})
	}
	return m.tickFrame()
}

func (m *Model) updateEditing(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		text := m.input.Value()
		m.editing = false
		m.input.Blur()
		if text == "" || text == m.cfg.Text {
			return nil
		}
		return m.Rebind(text)
	case "esc":
		m.editing = false
		m.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// Restart abandons the current run and starts the same config from scratch.
func (m *Model) Restart() tea.Cmd {
	return m.rebind(m.cfg)
}

// ToggleDirection flips the spatial reveal direction and restarts.
func (m *Model) ToggleDirection() tea.Cmd {
	cfg := m.cfg
	if cfg.Direction == reveal.LeftToRight {
		cfg.Direction = reveal.RightToLeft
	} else {
		cfg.Direction = reveal.LeftToRight
	}
	return m.rebind(cfg)
}

// TogglePause freezes or resumes the animation.
func (m *Model) TogglePause() {
	m.paused = !m.paused
}

// Rebind replaces the target text and restarts. This is how watched-file
// changes and edits re-enter the component: the old run is dropped before
// the new one produces a frame, so two loops never race on the display.
func (m *Model) Rebind(text string) tea.Cmd {
	cfg := m.cfg
	cfg.Text = text
	return m.rebind(cfg)
}

func (m *Model) rebind(cfg reveal.Config) tea.Cmd {
	run, err := reveal.NewRun(cfg)
	if err != nil {
		logging.WithError(err, "rebind reveal run")
		return common.SafeCmd(func() tea.Msg {
			return messages.Error{Err: err, Context: "rebind", Logged: true}
		})
	}

	wasActive := !m.completed
	m.cfg = cfg
	m.run = run
	m.display = run.Prerender()
	m.completed = false
	m.hiddenAt = time.Time{}

	// A settled run has no pending frame; restart the loop. An active run
	// already has one queued, and a second loop would double the frame rate.
	if wasActive {
		return nil
	}
	return m.tickFrame()
}
