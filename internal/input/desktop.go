package input

import (
	"context"
	"fmt"
	"sync"

	"github.com/vedantwpatil/Akemito/internal/hotkey"
	"github.com/vedantwpatil/Akemito/internal/tracking"
)

// Desktop is the live event source: pointer samples from a PointerSampler and
// key transitions from a KeyHook.
type Desktop struct {
	keys    *KeyHook
	sampler *PointerSampler

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewDesktop(keys *KeyHook, sampler *PointerSampler) *Desktop {
	return &Desktop{keys: keys, sampler: sampler}
}

// Events starts both producers. They stop when ctx is done or Close is called.
func (d *Desktop) Events(ctx context.Context) (<-chan tracking.PointerEvent, <-chan hotkey.KeyEvent, error) {
	ctx, cancel := context.WithCancel(ctx)

	keys, err := d.keys.Keys(ctx)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("starting key hook: %w", err)
	}

	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()

	return d.sampler.Pointer(ctx), keys, nil
}

// Close stops sampling and unhooks the keyboard. Safe to call more than once.
func (d *Desktop) Close() error {
	d.mu.Lock()
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	return d.keys.Close()
}
