package input

import "errors"

var (
	// ErrNoDisplay means no graphical session is reachable.
	ErrNoDisplay = errors.New("no graphical display available")
	// ErrWayland means only a Wayland session is present; global hooks need X11.
	ErrWayland = errors.New("wayland session without X11 display: global input hooks are not supported")
	// ErrUnsupportedOS means neither gohook nor robotgo support this platform.
	ErrUnsupportedOS = errors.New("unsupported operating system")
	// ErrHookUnavailable means the global key hook could not be started.
	ErrHookUnavailable = errors.New("global key hook unavailable")
	// ErrOutOfBounds means a move target lies outside every active display.
	ErrOutOfBounds = errors.New("position outside the desktop")
)
