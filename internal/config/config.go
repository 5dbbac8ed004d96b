package config

import (
	"encoding/json"
	"os"
	"strings"
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// AnimationConfig holds the default reveal settings. CLI flags override these
// per invocation.
type AnimationConfig struct {
	Alphabet        string `json:"alphabet,omitempty"`
	DurationMs      int    `json:"duration_ms,omitempty"`
	TickMs          int    `json:"tick_ms,omitempty"`
	DelayMs         int    `json:"delay_ms,omitempty"`
	Mode            string `json:"mode,omitempty"`
	Policy          string `json:"policy,omitempty"`
	Direction       string `json:"direction,omitempty"`
	Easing          string `json:"easing,omitempty"`
	MatchCase       bool   `json:"match_case,omitempty"`
	PreserveUnknown bool   `json:"preserve_unknown,omitempty"`
}

// Config holds the application configuration
type Config struct {
	Paths     *Paths
	Animation AnimationConfig
	Theme     string
	KeyMap    KeyMapConfig
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	return &Config{
		Paths: paths,
		Animation: AnimationConfig{
			Alphabet:        "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789",
			DurationMs:      1200,
			TickMs:          40,
			DelayMs:         0,
			Mode:            "once",
			Policy:          "progress-length",
			Direction:       "ltr",
			Easing:          "linear",
			PreserveUnknown: true,
		},
		Theme:  "dark",
		KeyMap: KeyMapConfig{},
	}, nil
}

// Load loads config overrides from ~/.scramble/config.json if present.
func Load() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.Paths.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var user struct {
		Animation *AnimationConfig `json:"animation,omitempty"`
		Theme     string           `json:"theme,omitempty"`
		KeyMap    KeyMapConfig     `json:"keymap,omitempty"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}

	if user.Animation != nil {
		merged := cfg.Animation
		if user.Animation.Alphabet != "" {
			merged.Alphabet = user.Animation.Alphabet
		}
		if user.Animation.DurationMs > 0 {
			merged.DurationMs = user.Animation.DurationMs
		}
		if user.Animation.TickMs > 0 {
			merged.TickMs = user.Animation.TickMs
		}
		if user.Animation.DelayMs > 0 {
			merged.DelayMs = user.Animation.DelayMs
		}
		if user.Animation.Mode != "" {
			merged.Mode = user.Animation.Mode
		}
		if user.Animation.Policy != "" {
			merged.Policy = user.Animation.Policy
		}
		if user.Animation.Direction != "" {
			merged.Direction = user.Animation.Direction
		}
		if user.Animation.Easing != "" {
			merged.Easing = user.Animation.Easing
		}
		// Bool fields take the section's value verbatim: providing an
		// animation section opts into its flags.
		merged.MatchCase = user.Animation.MatchCase
		merged.PreserveUnknown = user.Animation.PreserveUnknown
		cfg.Animation = merged
	}
	if user.Theme != "" {
		cfg.Theme = user.Theme
	}
	if len(user.KeyMap.Bindings) > 0 {
		cfg.KeyMap = user.KeyMap
	}

	return cfg, nil
}
