package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/texteffects/scramble/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionRestart   Action = "restart"
	ActionReverse   Action = "reverse"
	ActionPause     Action = "pause"
	ActionCopy      Action = "copy"
	ActionEdit      Action = "edit"
	ActionNextTheme Action = "next_theme"
	ActionQuit      Action = "quit"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings for the application.
type KeyMap struct {
	Restart   key.Binding
	Reverse   key.Binding
	Pause     key.Binding
	Copy      key.Binding
	Edit      key.Binding
	NextTheme key.Binding
	Quit      key.Binding
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	return KeyMap{
		Restart: bindingFromDef(cfg, bindingDef{
			action: ActionRestart,
			keys:   []string{"r"},
			desc:   "restart",
		}),
		Reverse: bindingFromDef(cfg, bindingDef{
			action: ActionReverse,
			keys:   []string{"d"},
			desc:   "flip direction",
		}),
		Pause: bindingFromDef(cfg, bindingDef{
			action: ActionPause,
			keys:   []string{" ", "p"},
			desc:   "pause",
		}),
		Copy: bindingFromDef(cfg, bindingDef{
			action: ActionCopy,
			keys:   []string{"y"},
			desc:   "copy text",
		}),
		Edit: bindingFromDef(cfg, bindingDef{
			action: ActionEdit,
			keys:   []string{"e"},
			desc:   "edit text",
		}),
		NextTheme: bindingFromDef(cfg, bindingDef{
			action: ActionNextTheme,
			keys:   []string{"t"},
			desc:   "theme",
		}),
		Quit: bindingFromDef(cfg, bindingDef{
			action: ActionQuit,
			keys:   []string{"q", "ctrl+c"},
			desc:   "quit",
		}),
	}
}

// Binding resolves an action to its binding.
func (km KeyMap) Binding(action Action) key.Binding {
	switch action {
	case ActionRestart:
		return km.Restart
	case ActionReverse:
		return km.Reverse
	case ActionPause:
		return km.Pause
	case ActionCopy:
		return km.Copy
	case ActionEdit:
		return km.Edit
	case ActionNextTheme:
		return km.NextTheme
	case ActionQuit:
		return km.Quit
	default:
		return key.Binding{}
	}
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
