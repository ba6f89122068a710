package tracking

import (
	"sync"
	"time"
)

// DefaultStillThreshold is how long the pointer has to stay put before the
// spot becomes eligible for saving.
const DefaultStillThreshold = time.Second

// Tracker watches pointer samples and remembers the last spot where the
// pointer rested for at least the threshold. A spot is committed only when the
// pointer moves away from it again.
type Tracker struct {
	mu        sync.Mutex
	threshold time.Duration

	lastPosition   *Position
	arrivedAt      time.Time // When the pointer reached lastPosition
	still          bool      // A stillness run is in progress
	stillSince     time.Time
	stillPosition  Position
	positionLocked bool
	savedPosition  *Position
}

func NewTracker(threshold time.Duration) *Tracker {
	if threshold <= 0 {
		threshold = DefaultStillThreshold
	}
	return &Tracker{threshold: threshold}
}

// OnPointerMoved feeds one sample into the state machine and reports whether
// it committed a new saved position.
//
// A run is timed from the sample that arrived at the spot, not from the first
// repeat of it. A dwell therefore qualifies up to one sample interval earlier
// than it would if timing started at the second same-position sample.
func (t *Tracker) OnPointerMoved(ev PointerEvent) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := ev.Position
	if t.lastPosition == nil {
		t.lastPosition = &current
		t.arrivedAt = ev.Timestamp
		return false
	}

	committed := false
	if current != *t.lastPosition {
		if t.still && !t.positionLocked {
			// A negative elapsed time (clock went backwards) never qualifies.
			if ev.Timestamp.Sub(t.stillSince) >= t.threshold {
				saved := t.stillPosition
				t.savedPosition = &saved
				t.positionLocked = true
				committed = true
			}
		}
		t.still = false
		t.stillSince = time.Time{}
		t.positionLocked = false
		t.arrivedAt = ev.Timestamp
	} else if !t.still {
		// The run is timed from the sample that first reported this spot,
		// so a dwell covers the whole time the pointer sat here.
		t.still = true
		t.stillSince = t.arrivedAt
		t.stillPosition = current
	}

	t.lastPosition = &current
	return committed
}

// SavedPosition returns the last committed position, if any.
func (t *Tracker) SavedPosition() (Position, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.savedPosition == nil {
		return Position{}, false
	}
	return *t.savedPosition, true
}

// SetThreshold changes the dwell time used for the next commit decision.
// Non-positive values are ignored.
func (t *Tracker) SetThreshold(d time.Duration) {
	if d <= 0 {
		return
	}
	t.mu.Lock()
	t.threshold = d
	t.mu.Unlock()
}

func (t *Tracker) Threshold() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.threshold
}
