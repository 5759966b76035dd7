package platform

import "errors"

// Errors returned by channel calls.
var (
	// ErrChannelNotFound is returned for a call on a channel nobody registered.
	ErrChannelNotFound = errors.New("platform: channel not found")

	// ErrMethodNotFound is returned when the receiver has no such method.
	ErrMethodNotFound = errors.New("platform: method not implemented")

	// ErrInvalidArguments is returned for a payload that cannot be decoded
	// or does not have the expected shape.
	ErrInvalidArguments = errors.New("platform: invalid arguments")

	// ErrPlatformUnavailable is returned when no renderer bridge is installed.
	ErrPlatformUnavailable = errors.New("platform: no renderer bridge")

	// ErrCanceled wraps context cancellation of a call.
	ErrCanceled = errors.New("platform: call canceled")
)

// Errors returned by sessions and bridges.
var (
	// ErrClosed is returned when operating on a closed session or bridge.
	ErrClosed = errors.New("platform: channel closed")

	// ErrNotConnected is returned when the renderer is not connected.
	ErrNotConnected = errors.New("platform: not connected")

	// ErrNotMounted is returned for a control ID the session does not hold.
	ErrNotMounted = errors.New("platform: control not mounted")

	// ErrAlreadyMounted is returned when a root control is mounted twice.
	ErrAlreadyMounted = errors.New("platform: control already mounted")
)

// ChannelError is an error reported by the other side of a channel. Code is
// a short machine-readable tag such as "channel_not_found".
type ChannelError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func (e *ChannelError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// NewChannelError returns a ChannelError.
func NewChannelError(code, message string) *ChannelError {
	return &ChannelError{Code: code, Message: message}
}
