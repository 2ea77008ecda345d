package engine

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu      sync.Mutex
	crashCleanup func()
)

// SetCrashCleanup registers the function that restores the display before a crash report
func SetCrashCleanup(fn func()) {
	crashMu.Lock()
	crashCleanup = fn
	crashMu.Unlock()
}

// HandleCrash restores the display, prints the panic with its stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	cleanup := crashCleanup
	crashMu.Unlock()
	if cleanup != nil {
		cleanup()
	}

	// \r\n keeps the trace readable if the terminal is still in raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so a crash never leaves the terminal raw
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
