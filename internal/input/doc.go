// Package input connects the cursor saver to the desktop: a global key hook
// (gohook), a pointer sampler and actuator (robotgo), and an environment check
// that tells whether the current session can support either.
package input
