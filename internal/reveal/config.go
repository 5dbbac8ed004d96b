package reveal

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Direction controls which end of the text reveals first.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "ltr"
	case RightToLeft:
		return "rtl"
	default:
		return "unknown"
	}
}

// ParseDirection parses a direction name as used in config files and flags.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "ltr", "left-to-right":
		return LeftToRight, nil
	case "rtl", "right-to-left":
		return RightToLeft, nil
	default:
		return LeftToRight, fmt.Errorf("unknown direction %q", s)
	}
}

// Mode controls what happens when a pass over the text completes.
type Mode int

const (
	// ModeOnce reveals the text a single time and stops.
	ModeOnce Mode = iota
	// ModeLoop restarts the same pass from the beginning indefinitely.
	ModeLoop
	// ModeReverse plays forward, then backward, and keeps going.
	ModeReverse
	// ModeAlternate behaves like ModeReverse but counts completed passes.
	ModeAlternate
)

func (m Mode) String() string {
	switch m {
	case ModeOnce:
		return "once"
	case ModeLoop:
		return "loop"
	case ModeReverse:
		return "reverse"
	case ModeAlternate:
		return "alternate"
	default:
		return "unknown"
	}
}

// ParseMode parses an iteration mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "once":
		return ModeOnce, nil
	case "loop":
		return ModeLoop, nil
	case "reverse":
		return ModeReverse, nil
	case "alternate":
		return ModeAlternate, nil
	default:
		return ModeOnce, fmt.Errorf("unknown mode %q", s)
	}
}

// Policy selects how elapsed time maps to the set of revealed characters.
// The policy is resolved once at validation and never changes mid-run.
type Policy int

const (
	// PolicyProgressLength reveals ceil(len*easedProgress) characters as a
	// prefix (or suffix for RightToLeft). Easing shapes the reveal.
	PolicyProgressLength Policy = iota
	// PolicyThresholdByIndex gives every position its own reveal time at
	// (orderIndex/len)*Duration, independent of easing.
	PolicyThresholdByIndex
)

func (p Policy) String() string {
	switch p {
	case PolicyProgressLength:
		return "progress-length"
	case PolicyThresholdByIndex:
		return "threshold-by-index"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a reveal policy name.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "progress-length", "progress":
		return PolicyProgressLength, nil
	case "threshold-by-index", "threshold":
		return PolicyThresholdByIndex, nil
	default:
		return PolicyProgressLength, fmt.Errorf("unknown policy %q", s)
	}
}

// ErrEmptyAlphabet is returned when a config has no scramble alphabet and no
// custom glyph source to fall back on.
var ErrEmptyAlphabet = errors.New("reveal: empty alphabet and no RandomChar")

// DefaultAlphabet is used when a config leaves Alphabet empty at the CLI
// layer. The engine itself never assumes a default.
const DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Config describes one animation run. It is immutable once a Run is created
// from it; changing the text or settings means starting a new run.
type Config struct {
	// Text is the target string being revealed.
	Text string

	// Alphabet holds the glyphs eligible for scrambling. Must be non-empty
	// unless RandomChar is set.
	Alphabet []rune

	// Duration is the length of one full reveal pass. A zero duration
	// completes on the first animated frame.
	Duration time.Duration

	// Tick throttles how often scrambled glyphs are re-rolled. Frames may
	// arrive faster; unrevealed glyphs hold steady between ticks. Zero
	// re-rolls every frame.
	Tick time.Duration

	// Delay holds the fully-scrambled text before the reveal clock starts.
	Delay time.Duration

	Direction Direction
	Mode      Mode
	Policy    Policy

	// Easing reshapes progress in [0,1]. Nil means identity. Only
	// PolicyProgressLength consults it.
	Easing Easing

	// PreserveUnknown shows characters that are not in Alphabet (spaces,
	// punctuation) verbatim instead of scrambling them.
	PreserveUnknown bool

	// MatchCase makes a scrambled glyph mirror the case of the character it
	// stands in for. Ignored when RandomChar is set.
	MatchCase bool

	// RandomChar overrides alphabet-based glyph picks. Its output is used
	// unmodified.
	RandomChar func(index int, orig rune) rune

	// Rand is the randomness source for glyph picks. Nil gets a time-seeded
	// source. Tests inject a fixed seed here.
	Rand *rand.Rand
}

// Validate reports configuration errors before any scheduling begins.
func (c Config) Validate() error {
	if len(c.Alphabet) == 0 && c.RandomChar == nil {
		return ErrEmptyAlphabet
	}
	if c.Duration < 0 {
		return fmt.Errorf("reveal: negative duration %v", c.Duration)
	}
	if c.Tick < 0 {
		return fmt.Errorf("reveal: negative tick %v", c.Tick)
	}
	if c.Delay < 0 {
		return fmt.Errorf("reveal: negative delay %v", c.Delay)
	}
	switch c.Direction {
	case LeftToRight, RightToLeft:
	default:
		return fmt.Errorf("reveal: invalid direction %d", c.Direction)
	}
	switch c.Mode {
	case ModeOnce, ModeLoop, ModeReverse, ModeAlternate:
	default:
		return fmt.Errorf("reveal: invalid mode %d", c.Mode)
	}
	switch c.Policy {
	case PolicyProgressLength, PolicyThresholdByIndex:
	default:
		return fmt.Errorf("reveal: invalid policy %d", c.Policy)
	}
	return nil
}
