package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every reported error. SetHandler replaces it.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler installs h as the process-wide handler. Nil restores a
// non-verbose LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	DefaultHandler = h
	handlerMu.Unlock()
}

func current() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// stamp fills a zero timestamp with the current time.
func stamp(ts *time.Time) {
	if ts.IsZero() {
		*ts = time.Now()
	}
}

// Report sends a bridge or control error to the handler.
func Report(err *DriftError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := current(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic sends a recovered panic to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := current(); h != nil {
		h.HandlePanic(err)
	}
}

// ReportProperty sends a rejected property write to the handler.
func ReportProperty(err *PropertyError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := current(); h != nil {
		h.HandlePropertyError(err)
	}
}

// Recover reports a panic in the calling goroutine and stops it from
// unwinding further. It must be deferred directly:
//
//	defer errors.Recover("control.Dispatch")
func Recover(op string) {
	r := recover()
	if r == nil {
		return
	}
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
	})
}

// CaptureStack formats the caller's stack, one "function\n\tfile:line"
// entry per frame.
func CaptureStack() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			return sb.String()
		}
	}
}
