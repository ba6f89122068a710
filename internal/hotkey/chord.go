// Package hotkey tracks which keys are held down and decides when a fixed key
// chord has just been completed.
package hotkey

import (
	"sort"
	"strings"

	hook "github.com/robotn/gohook"
)

// Key identifies a physical key by its libuiohook virtual keycode, which is
// what gohook reports in Event.Keycode.
type Key uint16

// KeyEvent is a single key transition.
type KeyEvent struct {
	Key     Key
	Pressed bool
}

var (
	KeyAltLeft = Key(hook.Keycode["alt"])
	KeyZ       = Key(hook.Keycode["z"])
)

// RestoreChord is the Alt+Z combination that moves the pointer back to the
// saved position.
var RestoreChord = NewChord(KeyAltLeft, KeyZ)

// Chord is an immutable set of keys that must all be held at once.
type Chord struct {
	keys []Key // sorted, no duplicates
}

func NewChord(keys ...Key) Chord {
	set := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	sorted := make([]Key, 0, len(set))
	for k := range set {
		sorted = append(sorted, k)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return Chord{keys: sorted}
}

// Keys returns a copy of the chord's keys in ascending order.
func (c Chord) Keys() []Key {
	out := make([]Key, len(c.keys))
	copy(out, c.keys)
	return out
}

func (c Chord) Len() int { return len(c.keys) }

func (c Chord) Contains(k Key) bool {
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i] >= k })
	return i < len(c.keys) && c.keys[i] == k
}

// SatisfiedBy reports whether every key of a non-empty chord is in held.
func (c Chord) SatisfiedBy(held map[Key]struct{}) bool {
	if len(c.keys) == 0 {
		return false
	}
	for _, k := range c.keys {
		if _, ok := held[k]; !ok {
			return false
		}
	}
	return true
}

func (c Chord) String() string {
	names := make([]string, 0, len(c.keys))
	for _, k := range c.keys {
		names = append(names, k.String())
	}
	return strings.Join(names, "+")
}
