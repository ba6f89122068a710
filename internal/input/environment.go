package input

import (
	"fmt"
	"os"
	"runtime"

	"github.com/kbinani/screenshot"
)

const (
	SessionX11     = "x11"
	SessionWayland = "wayland"
	SessionNative  = "native"
	SessionNone    = "none"
)

// Environment summarises whether this machine can run the cursor saver.
type Environment struct {
	OS       string
	Session  string
	Display  string
	Displays int
	Warnings []string

	err error
}

// Err is nil when hooks and pointer control should work.
func (e Environment) Err() error {
	return e.err
}

func (e Environment) Supported() bool {
	return e.err == nil
}

// DetectEnvironment inspects the running session.
func DetectEnvironment() Environment {
	return detectEnvironment(runtime.GOOS, os.Getenv, screenshot.NumActiveDisplays)
}

func detectEnvironment(goos string, getenv func(string) string, displays func() int) Environment {
	env := Environment{OS: goos, Session: SessionNone}

	switch goos {
	case "windows":
		env.Session = SessionNative
	case "darwin":
		env.Session = SessionNative
		env.Warnings = append(env.Warnings, "the terminal needs Accessibility permission for the global hotkey")
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		env.Display = getenv("DISPLAY")
		wayland := getenv("WAYLAND_DISPLAY") != "" || getenv("XDG_SESSION_TYPE") == SessionWayland
		switch {
		case env.Display == "" && wayland:
			env.Session = SessionWayland
			env.err = ErrWayland
			return env
		case env.Display == "":
			env.err = ErrNoDisplay
			return env
		case wayland:
			env.Session = SessionWayland
			env.Warnings = append(env.Warnings, "running under XWayland: keys typed into native Wayland windows are not seen")
		default:
			env.Session = SessionX11
		}
	default:
		env.err = fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
		return env
	}

	env.Displays = displays()
	if env.Displays == 0 {
		env.err = ErrNoDisplay
	}
	return env
}
