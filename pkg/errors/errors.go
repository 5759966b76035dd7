// Package errors provides structured error handling for animated border
// controls and the renderer bridge.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPropertyValue is matched by every [PropertyError] via errors.Is.
var ErrInvalidPropertyValue = errors.New("invalid property value")

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindProperty indicates a rejected or mistyped control property.
	KindProperty
	// KindPlatform indicates a renderer channel or bridge error.
	KindPlatform
	// KindParsing indicates an inbound event parsing failure.
	KindParsing
	// KindConfig indicates a configuration loading error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindPlatform:
		return "platform"
	case KindParsing:
		return "parsing"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// DriftError represents a structured error raised by a control or the bridge.
type DriftError struct {
	// Op is the operation that failed (e.g., "platform.Session.Update").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Channel is the renderer channel name, if applicable.
	Channel string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *DriftError) Error() string {
	if e.Channel != "" {
		return fmt.Sprintf("%s [%s] channel=%s: %v", e.Op, e.Kind, e.Channel, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *DriftError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "control.Base.Dispatch").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to parse event data.
type ParseError struct {
	// Channel is the renderer channel that received the event.
	Channel string
	// DataType is the expected type name.
	DataType string
	// Got is the actual data received.
	Got any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from channel %s: got %T", e.DataType, e.Channel, e.Got)
}

// PropertyError reports a property value rejected at mutation time.
//
// Controls are permissive by default and forward whatever they are given.
// PropertyError is only produced for type mismatches on the generic store
// and by controls running in strict mode.
type PropertyError struct {
	// Control is the control type name (e.g., "flet_animated_border").
	Control string
	// Property is the wire attribute name.
	Property string
	// Value is the rejected value.
	Value any
	// Reason describes why the value was rejected.
	Reason string
	// Err is an optional underlying parse error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *PropertyError) Error() string {
	msg := fmt.Sprintf("invalid value %v for %s.%s", e.Value, e.Control, e.Property)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PropertyError) Unwrap() error {
	return e.Err
}

// Is reports whether target is [ErrInvalidPropertyValue].
func (e *PropertyError) Is(target error) bool {
	return target == ErrInvalidPropertyValue
}

// ErrorHandler receives errors reported by controls and the bridge.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *DriftError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandlePropertyError is called when a property write is rejected.
	HandlePropertyError(err *PropertyError)
}
