package input

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"

	"github.com/vedantwpatil/Akemito/internal/tracking"
)

// RobotActuator moves the system pointer with robotgo.
type RobotActuator struct {
	bounds func() image.Rectangle
	move   func(x, y int)
}

func NewRobotActuator() *RobotActuator {
	return &RobotActuator{
		bounds: VirtualDesktop,
		move:   func(x, y int) { robotgo.Move(x, y) },
	}
}

// MoveTo jumps the pointer to pos. Targets outside the desktop are refused
// with ErrOutOfBounds. If no display bounds can be read the move is attempted
// anyway.
func (a *RobotActuator) MoveTo(pos tracking.Position) error {
	desktop := a.bounds()
	if !desktop.Empty() && !image.Pt(pos.X, pos.Y).In(desktop) {
		return fmt.Errorf("%w: %s not in %v", ErrOutOfBounds, pos, desktop)
	}
	a.move(pos.X, pos.Y)
	return nil
}

// VirtualDesktop is the smallest rectangle covering every active display.
func VirtualDesktop() image.Rectangle {
	var r image.Rectangle
	for i := 0; i < screenshot.NumActiveDisplays(); i++ {
		r = r.Union(screenshot.GetDisplayBounds(i))
	}
	return r
}
