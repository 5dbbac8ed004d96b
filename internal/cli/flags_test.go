package cli

import (
	"testing"
	"time"

	"github.com/texteffects/scramble/internal/config"
	"github.com/texteffects/scramble/internal/reveal"
)

func testOptions(t *testing.T) options {
	t.Helper()
	cfg, err := config.DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}
	return defaultOptions(cfg)
}

func TestBuildRevealConfigDefaults(t *testing.T) {
	cfg, err := buildRevealConfig(testOptions(t), "hello")
	if err != nil {
		t.Fatalf("buildRevealConfig failed: %v", err)
	}
	if cfg.Text != "hello" {
		t.Errorf("Text = %q", cfg.Text)
	}
	if cfg.Duration != 1200*time.Millisecond {
		t.Errorf("Duration = %v, want 1.2s", cfg.Duration)
	}
	if cfg.Mode != reveal.ModeOnce {
		t.Errorf("Mode = %v, want once", cfg.Mode)
	}
	if cfg.Policy != reveal.PolicyProgressLength {
		t.Errorf("Policy = %v, want progress-length", cfg.Policy)
	}
	if cfg.Direction != reveal.LeftToRight {
		t.Errorf("Direction = %v, want ltr", cfg.Direction)
	}
	if !cfg.PreserveUnknown {
		t.Error("PreserveUnknown not carried from defaults")
	}
	if cfg.Rand != nil {
		t.Error("unseeded invocation set a fixed Rand")
	}
}

func TestBuildRevealConfigEmptyAlphabetFallsBack(t *testing.T) {
	opts := testOptions(t)
	opts.alphabet = ""
	cfg, err := buildRevealConfig(opts, "hello")
	if err != nil {
		t.Fatalf("buildRevealConfig failed: %v", err)
	}
	if string(cfg.Alphabet) != reveal.DefaultAlphabet {
		t.Error("empty alphabet did not fall back to the default")
	}
}

func TestBuildRevealConfigSeed(t *testing.T) {
	opts := testOptions(t)
	opts.seed = 42
	cfg, err := buildRevealConfig(opts, "hello")
	if err != nil {
		t.Fatalf("buildRevealConfig failed: %v", err)
	}
	if cfg.Rand == nil {
		t.Fatal("seeded invocation left Rand nil")
	}
}

func TestBuildRevealConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*options)
	}{
		{"mode", func(o *options) { o.mode = "bounce" }},
		{"policy", func(o *options) { o.policy = "psychic" }},
		{"direction", func(o *options) { o.direction = "down" }},
		{"easing", func(o *options) { o.easing = "ease-sideways" }},
		{"duration", func(o *options) { o.duration = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t)
			tt.mutate(&opts)
			if _, err := buildRevealConfig(opts, "hello"); err == nil {
				t.Errorf("bad %s accepted", tt.name)
			}
		})
	}
}
