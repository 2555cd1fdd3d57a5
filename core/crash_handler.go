package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	cleanupMu sync.Mutex
	cleanups  []func()
)

// OnCrash registers a cleanup run before the crash report, e.g. restoring a terminal
// taken over by the preview sink. Returns a function that unregisters it.
func OnCrash(fn func()) (remove func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanups = append(cleanups, fn)
	idx := len(cleanups) - 1
	return func() {
		cleanupMu.Lock()
		defer cleanupMu.Unlock()
		if idx < len(cleanups) {
			cleanups[idx] = nil
		}
	}
}

func runCleanups() {
	cleanupMu.Lock()
	fns := make([]func(), len(cleanups))
	copy(fns, cleanups)
	cleanupMu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		if fns[i] != nil {
			fns[i]()
		}
	}
}

// ReportCrash runs registered cleanups and writes the crash report to w
func ReportCrash(w io.Writer, r any) {
	if r == nil {
		return
	}
	runCleanups()

	if v, ok := AsViolation(r); ok {
		fmt.Fprintf(w, "\nCONTRACT VIOLATION: %v\n", v)
	} else {
		fmt.Fprintf(w, "\nCRASH DETECTED: %v\n", r)
	}
	fmt.Fprintf(w, "Stack Trace:\n%s\n", debug.Stack())
}

// HandleCrash is the unified panic handler: cleanup, report to stderr, exit 1
func HandleCrash(r any) {
	if r == nil {
		return
	}
	// Force flush stdout so the timeline is not interleaved with the report
	os.Stdout.Sync()
	ReportCrash(os.Stderr, r)
	os.Stderr.Sync()
	os.Exit(1)
}
