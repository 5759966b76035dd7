package platform

import "sync/atomic"

// DispatchFunc schedules callback on the goroutine that owns the controls.
type DispatchFunc func(callback func())

var dispatcher atomic.Pointer[DispatchFunc]

// RegisterDispatch sets how renderer events reach the goroutine that owns
// the controls. Events arrive on bridge goroutines and are handed to fn
// before any control is touched. Nil unregisters.
func RegisterDispatch(fn func(callback func())) {
	if fn == nil {
		dispatcher.Store(nil)
		return
	}
	d := DispatchFunc(fn)
	dispatcher.Store(&d)
}

// Dispatch schedules callback through the registered function. It reports
// false when nothing is registered or callback is nil.
func Dispatch(callback func()) bool {
	d := dispatcher.Load()
	if d == nil || callback == nil {
		return false
	}
	(*d)(callback)
	return true
}

// dispatchOrRun schedules callback, or runs it inline when no dispatch
// function is registered.
func dispatchOrRun(callback func()) {
	if !Dispatch(callback) && callback != nil {
		callback()
	}
}
