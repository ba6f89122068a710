package hotkey

import (
	"sort"
	"sync"
)

// Matcher keeps the set of held keys and fires once each time its chord goes
// from incomplete to complete on a key press.
type Matcher struct {
	mu        sync.Mutex
	chord     Chord
	held      map[Key]struct{}
	satisfied bool
}

func NewMatcher(chord Chord) *Matcher {
	return &Matcher{
		chord: chord,
		held:  make(map[Key]struct{}),
	}
}

// OnKeyEvent applies one key transition and reports whether it completed the
// chord. Holding the chord, auto-repeat, or pressing extra keys while the
// chord is held never fires again; a chord key has to be released first.
func (m *Matcher) OnKeyEvent(ev KeyEvent) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !ev.Pressed {
		delete(m.held, ev.Key)
		m.satisfied = m.chord.SatisfiedBy(m.held)
		return false
	}

	m.held[ev.Key] = struct{}{}
	was := m.satisfied
	m.satisfied = m.chord.SatisfiedBy(m.held)
	return m.satisfied && !was
}

// Held returns the currently held keys in ascending order.
func (m *Matcher) Held() []Key {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]Key, 0, len(m.held))
	for k := range m.held {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Reset forgets every held key. Used when the key hook goes away, since any
// release delivered in the meantime is lost.
func (m *Matcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.held = make(map[Key]struct{})
	m.satisfied = false
}

func (m *Matcher) Chord() Chord {
	return m.chord
}
