package prefilter

// Tracker wraps a Prefilter with effectiveness tracking.
//
// The search loop calls Find to jump to the next candidate and ConfirmMatch
// when the candidate window produced a match. Once confirms fall below the
// configured share of candidates the tracker retires the prefilter: Find
// returns -1 and IsActive reports false, and the caller keeps scanning
// without jumping. A retired tracker stays retired until Reset.
type Tracker struct {
	inner Prefilter

	candidates uint64
	confirms   uint64

	checkInterval  uint64
	minEfficiency  float64
	warmupPeriod   uint64
	lastCheckpoint uint64

	active bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness, in candidates.
	CheckInterval uint64

	// MinEfficiency is the minimum acceptable ratio of confirms to
	// candidates.
	MinEfficiency float64

	// WarmupPeriod is the number of candidates before the first check.
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a tracker with the default configuration.
// It returns nil if inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a tracker with a custom configuration.
// It returns nil if inner is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{
		inner:         inner,
		checkInterval: config.CheckInterval,
		minEfficiency: config.MinEfficiency,
		warmupPeriod:  config.WarmupPeriod,
		active:        true,
	}
}

// Find returns the next candidate position, or -1 if there is none or the
// tracker is retired.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return -1
	}
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.checkEffectiveness()
	}
	return pos
}

// ConfirmMatch records that the last candidate led to a match.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive reports whether the prefilter is still in use.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Reset clears statistics and re-enables the prefilter.
func (t *Tracker) Reset() {
	t.candidates = 0
	t.confirms = 0
	t.lastCheckpoint = 0
	t.active = true
}

func (t *Tracker) checkEffectiveness() {
	if t.candidates < t.warmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.checkInterval {
		return
	}
	t.lastCheckpoint = t.candidates

	if float64(t.confirms)/float64(t.candidates) < t.minEfficiency {
		t.active = false
	}
}
