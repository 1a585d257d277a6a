// Package thread pins graphics work to the main OS thread.
// GL contexts and most windowing systems only accept calls from the
// thread that created them.
// See: https://github.com/golang/go/wiki/LockOSThread
package thread

import (
	"sync/atomic"

	"github.com/faiface/mainthread"
)

var running atomic.Bool

// Main runs fn while the main OS thread serves Call.
// It must be called from main() and returns when fn returns.
func Main(fn func()) {
	running.Store(true)
	defer running.Store(false)
	mainthread.Run(fn)
}

// Call executes f on the main thread and waits for it.
// Outside of Main, f runs on the calling goroutine.
func Call(f func()) {
	if !running.Load() {
		f()
		return
	}
	mainthread.Call(f)
}

// CallErr is Call for functions returning an error.
func CallErr(f func() error) error {
	if !running.Load() {
		return f()
	}
	return mainthread.CallErr(f)
}
