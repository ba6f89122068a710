package input

import (
	"context"
	"errors"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/vedantwpatil/Akemito/internal/tracking"
)

// Locator reports the current pointer location.
type Locator func() (x, y int)

// SamplerOptions controls pointer sampling.
type SamplerOptions struct {
	Interval time.Duration
	Locate   Locator
	Clock    func() time.Time
}

// PointerSampler polls the pointer location at a fixed rate and reports every
// sample, moved or not. Motion hooks only fire on movement, and the tracker
// needs the unchanged samples to see the pointer resting.
type PointerSampler struct {
	interval time.Duration
	locate   Locator
	clock    func() time.Time
}

func NewPointerSampler(opts SamplerOptions) (*PointerSampler, error) {
	if opts.Interval <= 0 {
		return nil, errors.New("sample interval must be positive")
	}
	locate := opts.Locate
	if locate == nil {
		locate = robotgo.Location
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &PointerSampler{
		interval: opts.Interval,
		locate:   locate,
		clock:    clock,
	}, nil
}

// Pointer emits one sample immediately and then one per interval until ctx is
// done, at which point the channel is closed.
func (s *PointerSampler) Pointer(ctx context.Context) <-chan tracking.PointerEvent {
	out := make(chan tracking.PointerEvent, 1)
	go func() {
		defer close(out)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			if !s.emit(ctx, out) {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return out
}

func (s *PointerSampler) emit(ctx context.Context, out chan<- tracking.PointerEvent) bool {
	x, y := s.locate()
	ev := tracking.PointerEvent{
		Position:  tracking.Position{X: x, Y: y},
		Timestamp: s.clock(),
	}
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
