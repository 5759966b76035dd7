package platform

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-drift/animatedborder/pkg/errors"
)

// channelRegistry manages all registered platform channels.
type channelRegistry struct {
	methodChannels map[string]*MethodChannel
	eventChannels  map[string]*EventChannel
	mu             sync.RWMutex
}

var registry = &channelRegistry{
	methodChannels: make(map[string]*MethodChannel),
	eventChannels:  make(map[string]*EventChannel),
}

func (r *channelRegistry) registerMethod(name string, ch *MethodChannel) {
	r.mu.Lock()
	r.methodChannels[name] = ch
	r.mu.Unlock()
}

func (r *channelRegistry) registerEvent(name string, ch *EventChannel) {
	r.mu.Lock()
	r.eventChannels[name] = ch
	r.mu.Unlock()
}

func (r *channelRegistry) getMethodChannel(name string) *MethodChannel {
	r.mu.RLock()
	ch := r.methodChannels[name]
	r.mu.RUnlock()
	return ch
}

func (r *channelRegistry) getEventChannel(name string) *EventChannel {
	r.mu.RLock()
	ch := r.eventChannels[name]
	r.mu.RUnlock()
	return ch
}

func (r *channelRegistry) events() []*EventChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	channels := make([]*EventChannel, 0, len(r.eventChannels))
	for _, ch := range r.eventChannels {
		channels = append(channels, ch)
	}
	return channels
}

// NativeBridge is the transport to the renderer.
type NativeBridge interface {
	// InvokeMethod calls a method on the renderer.
	InvokeMethod(channel, method string, args []byte) ([]byte, error)

	// StartEventStream tells the renderer to start sending events for a channel.
	StartEventStream(channel string) error

	// StopEventStream tells the renderer to stop sending events for a channel.
	StopEventStream(channel string) error
}

// ContextBridge is implemented by bridges whose method calls can be canceled.
type ContextBridge interface {
	InvokeMethodContext(ctx context.Context, channel, method string, args []byte) ([]byte, error)
}

var (
	bridgeMu     sync.RWMutex
	nativeBridge NativeBridge
)

func currentBridge() NativeBridge {
	bridgeMu.RLock()
	defer bridgeMu.RUnlock()
	return nativeBridge
}

func bridgeInstalled() bool {
	return currentBridge() != nil
}

// SetNativeBridge installs the renderer transport. A nil bridge detaches the
// current one.
//
// Installing a bridge starts the event streams of channels that acquired
// subscriptions while no bridge was available. Startup errors are delivered
// to the subscribers' error handlers.
func SetNativeBridge(bridge NativeBridge) {
	bridgeMu.Lock()
	nativeBridge = bridge
	bridgeMu.Unlock()

	for _, ch := range registry.events() {
		ch.mu.Lock()
		if bridge == nil {
			ch.started = false
			ch.mu.Unlock()
			continue
		}
		shouldStart := len(ch.subscriptions) > 0 && !ch.started
		if shouldStart {
			ch.started = true
		}
		ch.mu.Unlock()

		if shouldStart {
			if err := startEventStream(ch.name); err != nil {
				ch.mu.Lock()
				ch.started = false
				ch.mu.Unlock()
				ch.dispatchError(err)
			}
		}
	}
}

// invokeNative calls a method on the renderer.
func invokeNative(ctx context.Context, channel, method string, args any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	bridge := currentBridge()
	if bridge == nil {
		return nil, ErrPlatformUnavailable
	}

	argsData, err := DefaultCodec.Encode(args)
	if err != nil {
		return nil, err
	}

	var resultData []byte
	if cb, ok := bridge.(ContextBridge); ok {
		resultData, err = cb.InvokeMethodContext(ctx, channel, method, argsData)
	} else {
		resultData, err = bridge.InvokeMethod(channel, method, argsData)
	}
	if err != nil {
		return nil, err
	}

	return DefaultCodec.Decode(resultData)
}

// startEventStream asks the renderer to start sending events.
func startEventStream(channel string) error {
	return eventStream("platform.startEventStream", channel, NativeBridge.StartEventStream)
}

// stopEventStream asks the renderer to stop sending events.
func stopEventStream(channel string) error {
	return eventStream("platform.stopEventStream", channel, NativeBridge.StopEventStream)
}

func eventStream(op, channel string, call func(NativeBridge, string) error) error {
	bridge := currentBridge()
	err := ErrPlatformUnavailable
	if bridge != nil {
		err = call(bridge, channel)
	}
	if err != nil {
		errors.Report(&errors.DriftError{
			Op:      op,
			Kind:    errors.KindPlatform,
			Channel: channel,
			Err:     err,
		})
	}
	return err
}

// HandleMethodCall is called by the bridge when the renderer invokes a Go method.
func HandleMethodCall(channel, method string, argsData []byte) ([]byte, error) {
	ch := registry.getMethodChannel(channel)
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	args, err := DefaultCodec.Decode(argsData)
	if err != nil {
		return nil, err
	}

	result, err := ch.handleCall(method, args)
	if err != nil {
		return nil, err
	}

	return DefaultCodec.Encode(result)
}

// ErrChannelNotRegistered is returned when an event is received for an unregistered channel.
var ErrChannelNotRegistered = fmt.Errorf("event channel not registered")

func eventChannel(op, channel string) (*EventChannel, error) {
	ch := registry.getEventChannel(channel)
	if ch == nil {
		err := fmt.Errorf("%w: %s", ErrChannelNotRegistered, channel)
		errors.Report(&errors.DriftError{
			Op:      op,
			Kind:    errors.KindPlatform,
			Channel: channel,
			Err:     err,
		})
		return nil, err
	}
	return ch, nil
}

// HandleEvent is called by the bridge when the renderer sends an event.
func HandleEvent(channel string, eventData []byte) error {
	ch, err := eventChannel("platform.HandleEvent", channel)
	if err != nil {
		return err
	}

	data, err := DefaultCodec.Decode(eventData)
	if err != nil {
		ch.dispatchError(err)
		return err
	}

	ch.dispatchEvent(data)
	return nil
}

// HandleEventError is called by the bridge when an event stream errors.
func HandleEventError(channel string, code, message string) error {
	ch, err := eventChannel("platform.HandleEventError", channel)
	if err != nil {
		return err
	}
	ch.dispatchError(NewChannelError(code, message))
	return nil
}

// HandleEventDone is called by the bridge when an event stream ends.
func HandleEventDone(channel string) error {
	ch, err := eventChannel("platform.HandleEventDone", channel)
	if err != nil {
		return err
	}
	ch.dispatchDone()
	return nil
}

// ResetForTest resets all global platform state for test isolation: the
// bridge, the dispatch function, every channel registration, and the
// subscriptions they held. This should only be called from tests.
func ResetForTest() {
	bridgeMu.Lock()
	nativeBridge = nil
	bridgeMu.Unlock()

	for _, ch := range registry.events() {
		ch.mu.Lock()
		ch.subscriptions = nil
		ch.started = false
		ch.mu.Unlock()
	}
	registry.mu.Lock()
	registry.methodChannels = make(map[string]*MethodChannel)
	registry.eventChannels = make(map[string]*EventChannel)
	registry.mu.Unlock()

	dispatcher.Store(nil)
}
