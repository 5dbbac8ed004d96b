package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/texteffects/scramble/internal/config"
	"github.com/texteffects/scramble/internal/reveal"
)

// options holds the flag values for one invocation. Defaults come from the
// user config, so flags only override what the user asks for.
type options struct {
	duration  time.Duration
	tick      time.Duration
	delay     time.Duration
	mode      string
	policy    string
	direction string
	easing    string
	alphabet  string
	matchCase bool
	preserve  bool
	seed      int64

	watch string
	plain bool
	theme string
}

func defaultOptions(cfg *config.Config) options {
	anim := cfg.Animation
	return options{
		duration:  time.Duration(anim.DurationMs) * time.Millisecond,
		tick:      time.Duration(anim.TickMs) * time.Millisecond,
		delay:     time.Duration(anim.DelayMs) * time.Millisecond,
		mode:      anim.Mode,
		policy:    anim.Policy,
		direction: anim.Direction,
		easing:    anim.Easing,
		alphabet:  anim.Alphabet,
		matchCase: anim.MatchCase,
		preserve:  anim.PreserveUnknown,
		theme:     cfg.Theme,
	}
}

func registerFlags(cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	f.DurationVar(&opts.duration, "duration", opts.duration, "how long one reveal cycle takes")
	f.DurationVar(&opts.tick, "tick", opts.tick, "how often unrevealed glyphs re-scramble")
	f.DurationVar(&opts.delay, "delay", opts.delay, "scrambled hold before the reveal starts")
	f.StringVar(&opts.mode, "mode", opts.mode, "iteration mode: once, loop, reverse, alternate")
	f.StringVar(&opts.policy, "policy", opts.policy, "reveal policy: progress-length, threshold-by-index")
	f.StringVar(&opts.direction, "direction", opts.direction, "reveal direction: ltr, rtl")
	f.StringVar(&opts.easing, "easing", opts.easing, "easing: linear, ease-in, ease-out, ease-in-out, ease-out-cubic")
	f.StringVar(&opts.alphabet, "alphabet", opts.alphabet, "glyphs used for scrambled positions")
	f.BoolVar(&opts.matchCase, "match-case", opts.matchCase, "scrambled glyphs mirror the case of the original")
	f.BoolVar(&opts.preserve, "preserve-unknown", opts.preserve, "show characters outside the alphabet as-is")
	f.Int64Var(&opts.seed, "seed", 0, "seed the scramble randomness (0 means random)")

	f.StringVar(&opts.watch, "watch", "", "re-animate whenever this file changes")
	f.BoolVar(&opts.plain, "plain", false, "animate in place on the current line instead of the full-screen UI")
	f.StringVar(&opts.theme, "theme", opts.theme, "color theme: dark, light, matrix")
}

// buildRevealConfig translates flag values into an engine config.
func buildRevealConfig(opts options, text string) (reveal.Config, error) {
	mode, err := reveal.ParseMode(opts.mode)
	if err != nil {
		return reveal.Config{}, err
	}
	policy, err := reveal.ParsePolicy(opts.policy)
	if err != nil {
		return reveal.Config{}, err
	}
	direction, err := reveal.ParseDirection(opts.direction)
	if err != nil {
		return reveal.Config{}, err
	}
	easing, ok := reveal.EasingByName(opts.easing)
	if !ok {
		return reveal.Config{}, fmt.Errorf("unknown easing %q", opts.easing)
	}

	var rng *rand.Rand
	if opts.seed != 0 {
		rng = rand.New(rand.NewSource(opts.seed))
	}

	alphabet := opts.alphabet
	if alphabet == "" {
		alphabet = reveal.DefaultAlphabet
	}

	cfg := reveal.Config{
		Text:            text,
		Alphabet:        []rune(alphabet),
		Duration:        opts.duration,
		Tick:            opts.tick,
		Delay:           opts.delay,
		Direction:       direction,
		Mode:            mode,
		Policy:          policy,
		Easing:          easing,
		PreserveUnknown: opts.preserve,
		MatchCase:       opts.matchCase,
		Rand:            rng,
	}
	if err := cfg.Validate(); err != nil {
		return reveal.Config{}, err
	}
	return cfg, nil
}
