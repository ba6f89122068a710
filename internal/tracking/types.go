package tracking

import (
	"fmt"
	"time"
)

// Position is an absolute pointer location in screen coordinates.
type Position struct {
	X int
	Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// PointerEvent is a single pointer sample delivered by the input source.
type PointerEvent struct {
	Position  Position
	Timestamp time.Time // Carries the monotonic reading when taken from time.Now
}
