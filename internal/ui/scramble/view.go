package scramble

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/texteffects/scramble/internal/keymap"
	"github.com/texteffects/scramble/internal/reveal"
)

// helpOrder fixes the help bar layout.
var helpOrder = []keymap.Action{
	keymap.ActionRestart,
	keymap.ActionReverse,
	keymap.ActionPause,
	keymap.ActionCopy,
	keymap.ActionEdit,
	keymap.ActionNextTheme,
	keymap.ActionQuit,
}

// View renders the effect pane: the display line centered in the pane, with
// a status line and help bar underneath.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	display := m.renderDisplay()
	status := m.renderStatus()
	help := m.renderHelp()

	var body string
	if m.editing {
		body = display + "\n\n" + m.input.View()
	} else {
		body = display
	}

	bodyLines := strings.Count(body, "\n") + 1
	footerLines := 2
	topPad := (m.height - bodyLines - footerLines) / 2
	if topPad < 0 {
		topPad = 0
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", topPad))
	b.WriteString(body)

	bottomPad := m.height - topPad - bodyLines - footerLines
	if bottomPad < 0 {
		bottomPad = 0
	}
	b.WriteString(strings.Repeat("\n", bottomPad+1))
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(help)
	return b.String()
}

func (m *Model) renderDisplay() string {
	style := m.styles.Scrambling
	if m.completed {
		style = m.styles.Display
	}
	line := m.centerLine(style.Render(m.display), m.display)
	if m.zone != nil {
		line = m.zone.Mark("scramble/display", line)
	}
	return line
}

func (m *Model) renderStatus() string {
	mode := m.cfg.Mode.String()
	dir := "ltr"
	if m.cfg.Direction == reveal.RightToLeft {
		dir = "rtl"
	}
	if !m.run.Forward() {
		dir += " (reversing)"
	}

	parts := []string{mode, dir}
	if n := m.run.Iterations(); n > 0 {
		parts = append(parts, fmt.Sprintf("cycle %d", n))
	}
	switch {
	case m.paused:
		parts = append(parts, "paused")
	case m.completed:
		parts = append(parts, "done")
		if k := keymap.PrimaryKey(m.keymap.Restart); k != "" {
			parts = append(parts, k+" to replay")
		}
	}

	status := m.styles.Status.Render(strings.Join(parts, " · "))
	return m.centerLine(status, strings.Join(parts, " · "))
}

func (m *Model) renderHelp() string {
	var plain, styled []string
	for _, action := range helpOrder {
		h := m.keymap.Binding(action).Help()
		plain = append(plain, h.Key+" "+h.Desc)
		styled = append(styled, m.styles.HelpKey.Render(h.Key)+" "+m.styles.HelpDesc.Render(h.Desc))
	}

	sep := "  "
	return m.centerLine(strings.Join(styled, sep), strings.Join(plain, sep))
}

// centerLine pads a styled line using the width of its plain text, since
// ANSI sequences would throw off the measurement.
func (m *Model) centerLine(styled, plain string) string {
	pad := (m.width - runewidth.StringWidth(plain)) / 2
	if pad <= 0 {
		return styled
	}
	return strings.Repeat(" ", pad) + styled
}
