package platform

import (
	"context"
	"sync"
)

// noopBridge is a NativeBridge that accepts all calls without side effects.
type noopBridge struct{}

func (noopBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	return DefaultCodec.Encode(nil)
}
func (noopBridge) StartEventStream(string) error { return nil }
func (noopBridge) StopEventStream(string) error  { return nil }

// SetupTestBridge installs a no-op bridge and a synchronous dispatch
// function for testing. The cleanup function should be testing.T.Cleanup or
// equivalent; it registers a teardown that calls ResetForTest.
//
//	platform.SetupTestBridge(t.Cleanup)
func SetupTestBridge(cleanup func(func())) {
	SetNativeBridge(noopBridge{})
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(ResetForTest)
}

// RecordedCall is a method call captured by a RecordingBridge.
type RecordedCall struct {
	Channel string
	Method  string
	Args    []byte
}

// RecordingBridge is a NativeBridge that records every call. Err, when set,
// is returned from InvokeMethod instead of recording the call.
type RecordingBridge struct {
	mu      sync.Mutex
	calls   []RecordedCall
	streams map[string]bool
	gate    chan struct{}
	Err     error
}

// SetupRecordingBridge installs a RecordingBridge and a synchronous dispatch
// function, registering ResetForTest with cleanup.
func SetupRecordingBridge(cleanup func(func())) *RecordingBridge {
	b := &RecordingBridge{streams: make(map[string]bool)}
	SetNativeBridge(b)
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(ResetForTest)
	return b
}

func (b *RecordingBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	return b.InvokeMethodContext(context.Background(), channel, method, args)
}

func (b *RecordingBridge) InvokeMethodContext(ctx context.Context, channel, method string, args []byte) ([]byte, error) {
	b.mu.Lock()
	gate := b.gate
	b.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.calls = append(b.calls, RecordedCall{Channel: channel, Method: method, Args: append([]byte(nil), args...)})
	return DefaultCodec.Encode(nil)
}

// Block holds every later call until Unblock, like a renderer that has not
// answered yet.
func (b *RecordingBridge) Block() {
	b.mu.Lock()
	if b.gate == nil {
		b.gate = make(chan struct{})
	}
	b.mu.Unlock()
}

// Unblock releases calls held by Block.
func (b *RecordingBridge) Unblock() {
	b.mu.Lock()
	if b.gate != nil {
		close(b.gate)
		b.gate = nil
	}
	b.mu.Unlock()
}

func (b *RecordingBridge) StartEventStream(channel string) error {
	b.mu.Lock()
	b.streams[channel] = true
	b.mu.Unlock()
	return nil
}

func (b *RecordingBridge) StopEventStream(channel string) error {
	b.mu.Lock()
	b.streams[channel] = false
	b.mu.Unlock()
	return nil
}

// Calls returns the recorded calls and clears the record.
func (b *RecordingBridge) Calls() []RecordedCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	calls := b.calls
	b.calls = nil
	return calls
}

// Streaming reports whether the event stream for channel is running.
func (b *RecordingBridge) Streaming(channel string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.streams[channel]
}
