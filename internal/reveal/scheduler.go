package reveal

import (
	"time"

	"github.com/texteffects/scramble/internal/safego"
)

// TimerScheduler delivers frame callbacks on a fixed interval using one-shot
// timers, so at most one callback is ever armed per run.
type TimerScheduler struct {
	interval time.Duration
}

// NewTimerScheduler returns a scheduler firing every interval.
func NewTimerScheduler(interval time.Duration) *TimerScheduler {
	return &TimerScheduler{interval: interval}
}

// Schedule arms a one-shot timer for fn and returns its stop function.
func (s *TimerScheduler) Schedule(fn func(now time.Time)) (cancel func()) {
	t := time.AfterFunc(s.interval, func() {
		safego.Run("reveal-frame", func() {
			fn(time.Now())
		})
	})
	return func() { t.Stop() }
}
