package hotkey

import (
	"strconv"
	"sync"

	hook "github.com/robotn/gohook"
)

var (
	keyNamesOnce sync.Once
	keyNames     map[Key]string
)

// String returns gohook's name for the key, or its numeric code when the key
// has no name.
func (k Key) String() string {
	keyNamesOnce.Do(func() {
		keyNames = make(map[Key]string, len(hook.Keycode))
		for name, code := range hook.Keycode {
			// Several aliases can share a code; keep the shortest, then the
			// alphabetically first, so the name is stable between runs.
			key := Key(code)
			if prev, ok := keyNames[key]; ok && (len(prev) < len(name) || (len(prev) == len(name) && prev < name)) {
				continue
			}
			keyNames[key] = name
		}
	})
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "key" + strconv.Itoa(int(k))
}
