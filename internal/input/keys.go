package input

import (
	"context"
	"fmt"
	"sync"
	"time"

	hook "github.com/robotn/gohook"

	"github.com/vedantwpatil/Akemito/internal/hotkey"
)

const keyBuffer = 64

// DefaultReadyTimeout bounds how long Keys waits for the native hook to report
// that it is installed.
const DefaultReadyTimeout = 2 * time.Second

// KeyHook turns gohook's global event stream into key press/release events.
type KeyHook struct {
	start        func() chan hook.Event
	end          func()
	readyTimeout time.Duration

	closeOnce sync.Once
}

func NewKeyHook() *KeyHook {
	return &KeyHook{
		start:        func() chan hook.Event { return hook.Start() },
		end:          hook.End,
		readyTimeout: DefaultReadyTimeout,
	}
}

// Keys starts the hook and waits until it is installed. A hook that never
// comes up (no XRecord, no Accessibility permission) yields
// ErrHookUnavailable. The returned channel closes once ctx is done, Close is
// called, or the hook stops on its own.
func (h *KeyHook) Keys(ctx context.Context) (<-chan hotkey.KeyEvent, error) {
	evChan := h.start()
	if evChan == nil {
		return nil, ErrHookUnavailable
	}
	if err := h.awaitEnabled(ctx, evChan); err != nil {
		return nil, err
	}

	out := make(chan hotkey.KeyEvent, keyBuffer)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				h.Close()
				return
			case ev, ok := <-evChan:
				if !ok {
					return
				}
				kev, ok := keyEvent(ev)
				if !ok {
					continue
				}
				select {
				case out <- kev:
				case <-ctx.Done():
					h.Close()
					return
				}
			}
		}
	}()
	return out, nil
}

// gohook hands out its channel before the native hook runs; libuiohook sends
// HookEnabled once it is actually listening.
func (h *KeyHook) awaitEnabled(ctx context.Context, evChan <-chan hook.Event) error {
	timeout := h.readyTimeout
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			h.Close()
			return ctx.Err()
		case <-timer.C:
			h.Close()
			return fmt.Errorf("%w: hook not enabled within %s", ErrHookUnavailable, timeout)
		case ev, ok := <-evChan:
			if !ok {
				h.Close()
				return fmt.Errorf("%w: hook stopped before it was enabled", ErrHookUnavailable)
			}
			if ev.Kind == hook.HookEnabled {
				return nil
			}
		}
	}
}

// Close stops the hook. Safe to call more than once.
func (h *KeyHook) Close() error {
	h.closeOnce.Do(h.end)
	return nil
}

// libuiohook reports a physical press as KeyHold (repeated while held), the
// release as KeyUp, and the character it produced as KeyDown. Only the first
// two are key transitions.
func keyEvent(ev hook.Event) (hotkey.KeyEvent, bool) {
	switch ev.Kind {
	case hook.KeyHold:
		return hotkey.KeyEvent{Key: hotkey.Key(ev.Keycode), Pressed: true}, true
	case hook.KeyUp:
		return hotkey.KeyEvent{Key: hotkey.Key(ev.Keycode), Pressed: false}, true
	default:
		return hotkey.KeyEvent{}, false
	}
}
