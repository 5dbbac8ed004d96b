package perf

// EnableForTest turns sample collection on without the environment variable
// and disables interval flushing so tests control when summaries happen.
// The returned function restores the previous state.
func EnableForTest() func() {
	prevEnabled := enabled
	prevInterval := logInterval
	enabled = true
	logInterval = 0

	return func() {
		statsMu.Lock()
		statsMap = map[string]*stat{}
		statsMu.Unlock()
		enabled = prevEnabled
		logInterval = prevInterval
	}
}
