package reveal

import (
	"math"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

type phase int

const (
	phasePending phase = iota
	phaseDelaying
	phaseAnimating
	phaseSettling
)

// Run holds the mutable state of one animation. A Run is owned by exactly one
// driver and is not safe for concurrent use; the driver serializes frames.
type Run struct {
	cfg  Config
	text []rune

	// inAlpha[i] reports whether text[i] is eligible for scrambling.
	inAlpha []bool

	phase       phase
	dir         int // +1 forward, -1 backward; flips under reverse/alternate
	iterations  int
	delayStart  time.Time
	start       time.Time // reveal clock baseline, rebased after delay/pauses
	lastRefresh time.Time

	// cache holds the current scramble glyph per position. Its length equals
	// len(text) for the whole life of the run.
	cache []rune

	rng *rand.Rand
}

// NewRun validates cfg and prepares the state for the first frame. The
// scramble cache is fully populated so Prerender can display immediately.
func NewRun(cfg Config) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	text := []rune(cfg.Text)
	alpha := make(map[rune]bool, len(cfg.Alphabet))
	for _, r := range cfg.Alphabet {
		alpha[r] = true
	}

	r := &Run{
		cfg:     cfg,
		text:    text,
		inAlpha: make([]bool, len(text)),
		phase:   phasePending,
		dir:     1,
		cache:   make([]rune, len(text)),
		rng:     rng,
	}
	for i, orig := range text {
		r.inAlpha[i] = alpha[orig]
		r.cache[i] = r.pickGlyph(i)
	}
	return r, nil
}

// Done reports whether the run has settled and will produce no more frames.
func (r *Run) Done() bool { return r.phase == phaseSettling }

// Iterations returns how many passes an alternate-mode run has completed.
func (r *Run) Iterations() int { return r.iterations }

// Forward reports the current temporal direction of the run.
func (r *Run) Forward() bool { return r.dir > 0 }

// Prerender returns the fully-scrambled initial display without starting the
// reveal clock. The driver writes it synchronously before the first frame so
// the target never flashes the final text.
func (r *Run) Prerender() string {
	return r.render(nil)
}

// Rebase shifts the run's clocks forward after a pause so hidden time does
// not count against the reveal. A no-op before the first frame.
func (r *Run) Rebase(pause time.Duration) {
	if r.phase == phasePending || r.phase == phaseSettling || pause <= 0 {
		return
	}
	r.start = r.start.Add(pause)
	r.delayStart = r.delayStart.Add(pause)
	r.lastRefresh = r.lastRefresh.Add(pause)
}

// Frame advances the run to now and returns the display string plus whether
// another frame should be scheduled. Timestamps must be non-decreasing.
func (r *Run) Frame(now time.Time) (string, bool) {
	if r.phase == phaseSettling {
		return string(r.text), false
	}
	if len(r.text) == 0 {
		r.phase = phaseSettling
		return "", false
	}

	if r.phase == phasePending {
		r.delayStart = now
		r.start = now
		r.lastRefresh = now
		r.phase = phaseDelaying
	}

	if r.phase == phaseDelaying {
		if now.Sub(r.delayStart) < r.cfg.Delay {
			// Hold the scrambled text; the reveal clock does not advance
			// during the delay.
			r.maybeRefresh(now, nil)
			return r.render(nil), true
		}
		r.phase = phaseAnimating
		r.start = now
	}

	elapsed := now.Sub(r.start)
	raw := 1.0
	if r.cfg.Duration > 0 {
		raw = clamp01(float64(elapsed) / float64(r.cfg.Duration))
	}

	revealed := r.revealedSet(raw, elapsed)
	r.maybeRefresh(now, revealed)
	terminal := elapsed >= r.cfg.Duration

	if terminal {
		switch r.cfg.Mode {
		case ModeOnce:
			r.phase = phaseSettling
			return string(r.text), false
		case ModeLoop:
			r.start = now
		case ModeReverse:
			r.dir = -r.dir
			r.start = now
		case ModeAlternate:
			r.dir = -r.dir
			r.iterations++
			r.start = now
		}
	}

	return r.render(revealed), true
}

// revealedSet computes which positions show their final character, per the
// configured policy and spatial/temporal direction.
func (r *Run) revealedSet(raw float64, elapsed time.Duration) []bool {
	n := len(r.text)
	revealed := make([]bool, n)

	switch r.cfg.Policy {
	case PolicyThresholdByIndex:
		// Each position owns a reveal time; easing does not apply.
		eff := elapsed
		if r.dir < 0 {
			eff = r.cfg.Duration - elapsed
		}
		for i := range revealed {
			order := r.orderIndex(i, n)
			threshold := time.Duration(float64(order) / float64(n) * float64(r.cfg.Duration))
			revealed[i] = eff >= threshold
		}
	default:
		progress := raw
		if r.dir < 0 {
			progress = 1 - raw
		}
		eased := progress
		if r.cfg.Easing != nil {
			eased = clamp01(r.cfg.Easing(progress))
		}
		count := int(math.Ceil(float64(n) * eased))
		for i := range revealed {
			revealed[i] = r.orderIndex(i, n) < count
		}
	}
	return revealed
}

// orderIndex maps a text position to its place in the reveal order.
func (r *Run) orderIndex(i, n int) int {
	if r.cfg.Direction == RightToLeft {
		return n - 1 - i
	}
	return i
}

// maybeRefresh re-rolls scramble glyphs for unrevealed positions, at most
// once per Tick. A nil revealed set re-rolls every eligible position.
func (r *Run) maybeRefresh(now time.Time, revealed []bool) {
	if now.Sub(r.lastRefresh) < r.cfg.Tick {
		return
	}
	r.lastRefresh = now
	for i := range r.cache {
		if revealed != nil && revealed[i] {
			continue
		}
		r.cache[i] = r.pickGlyph(i)
	}
}

// render builds the display string. A nil revealed set means nothing is
// revealed yet.
func (r *Run) render(revealed []bool) string {
	var b strings.Builder
	b.Grow(len(r.text))
	for i, orig := range r.text {
		switch {
		case revealed != nil && revealed[i]:
			b.WriteRune(orig)
		case r.cfg.PreserveUnknown && !r.inAlpha[i]:
			b.WriteRune(orig)
		default:
			b.WriteRune(r.displayGlyph(i, orig))
		}
	}
	return b.String()
}

// displayGlyph returns the cached scramble glyph for position i, case-matched
// to the original character when MatchCase is on and a fixed alphabet is in
// use. RandomChar output is never modified.
func (r *Run) displayGlyph(i int, orig rune) rune {
	g := r.cache[i]
	if r.cfg.MatchCase && r.cfg.RandomChar == nil {
		if unicode.IsUpper(orig) {
			return unicode.ToUpper(g)
		}
		if unicode.IsLower(orig) {
			return unicode.ToLower(g)
		}
	}
	return g
}

func (r *Run) pickGlyph(i int) rune {
	if r.cfg.RandomChar != nil {
		return r.cfg.RandomChar(i, r.text[i])
	}
	return r.cfg.Alphabet[r.rng.Intn(len(r.cfg.Alphabet))]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
