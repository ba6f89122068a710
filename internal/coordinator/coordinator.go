// Package coordinator feeds desktop events into the position tracker and the
// hotkey matcher, and moves the pointer back when the restore chord fires.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/vedantwpatil/Akemito/internal/hotkey"
	"github.com/vedantwpatil/Akemito/internal/tracking"
)

// Source delivers pointer and key events. Each channel is ordered on its own;
// there is no ordering between the two.
type Source interface {
	Events(ctx context.Context) (<-chan tracking.PointerEvent, <-chan hotkey.KeyEvent, error)
	Close() error
}

// Actuator moves the system pointer.
type Actuator interface {
	MoveTo(pos tracking.Position) error
}

type Options struct {
	Tracker  *tracking.Tracker
	Matcher  *hotkey.Matcher
	Source   Source
	Actuator Actuator
	Logger   logrus.FieldLogger
}

type Coordinator struct {
	tracker  *tracking.Tracker
	matcher  *hotkey.Matcher
	source   Source
	actuator Actuator
	log      logrus.FieldLogger

	running  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
}

func New(opts Options) (*Coordinator, error) {
	switch {
	case opts.Tracker == nil:
		return nil, errors.New("coordinator: tracker is required")
	case opts.Matcher == nil:
		return nil, errors.New("coordinator: matcher is required")
	case opts.Source == nil:
		return nil, errors.New("coordinator: event source is required")
	case opts.Actuator == nil:
		return nil, errors.New("coordinator: actuator is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Coordinator{
		tracker:  opts.Tracker,
		matcher:  opts.Matcher,
		source:   opts.Source,
		actuator: opts.Actuator,
		log:      logger,
		stop:     make(chan struct{}),
	}, nil
}

// Start subscribes to the source and dispatches events on the calling
// goroutine until ctx is cancelled, Stop is called, or the source runs dry.
// A subscription failure is returned as is; a clean shutdown returns nil.
func (c *Coordinator) Start(ctx context.Context) error {
	select {
	case <-c.stop:
		return errors.New("coordinator: already stopped")
	default:
	}
	if !c.running.CompareAndSwap(false, true) {
		return errors.New("coordinator: already running")
	}
	defer c.Stop()

	pointer, keys, err := c.source.Events(ctx)
	if err != nil {
		return fmt.Errorf("subscribing to input events: %w", err)
	}

	for pointer != nil || keys != nil {
		select {
		case <-ctx.Done():
			return nil
		case <-c.stop:
			return nil
		case ev, ok := <-pointer:
			if !ok {
				pointer = nil
				continue
			}
			c.dispatch("pointer", func() { c.HandlePointer(ev) })
		case ev, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			c.dispatch("key", func() { c.HandleKey(ev) })
		}
	}
	return nil
}

// Stop ends dispatch and releases the source. Safe to call more than once and
// from any goroutine.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		c.running.Store(false)
		close(c.stop)
		if err := c.source.Close(); err != nil {
			c.log.WithError(err).Warn("Closing input source")
		}
		c.matcher.Reset()
	})
}

func (c *Coordinator) Running() bool {
	return c.running.Load()
}

// HandlePointer passes one pointer sample to the tracker.
func (c *Coordinator) HandlePointer(ev tracking.PointerEvent) {
	if c.tracker.OnPointerMoved(ev) {
		if pos, ok := c.tracker.SavedPosition(); ok {
			c.log.WithFields(logrus.Fields{"x": pos.X, "y": pos.Y}).Infof("Position saved: %s", pos)
		}
	}
}

// HandleKey passes one key transition to the matcher and restores on a fire.
func (c *Coordinator) HandleKey(ev hotkey.KeyEvent) {
	if c.matcher.OnKeyEvent(ev) {
		// Restore already logs its own failures.
		_ = c.Restore()
	}
}

// Restore moves the pointer to the saved position. Having nothing saved is
// reported but is not an error; an actuator failure is logged and returned.
func (c *Coordinator) Restore() error {
	pos, ok := c.tracker.SavedPosition()
	if !ok {
		c.log.Info("No position saved yet")
		return nil
	}

	entry := c.log.WithFields(logrus.Fields{"x": pos.X, "y": pos.Y})
	entry.Infof("Restoring cursor to: %s", pos)
	if err := c.actuator.MoveTo(pos); err != nil {
		entry.WithError(err).Error("Restoring cursor failed")
		return fmt.Errorf("moving pointer to %s: %w", pos, err)
	}
	return nil
}

// dispatch runs one event handler; a panic is logged and the event dropped so
// a single bad event cannot take the loop down.
func (c *Coordinator) dispatch(kind string, handle func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithField("event", kind).Errorf("Dropped event after panic: %v", r)
		}
	}()
	handle()
}
