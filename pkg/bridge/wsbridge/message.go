// Package wsbridge carries platform channel traffic over a websocket, so a
// renderer running in another process (or a browser) can display controls.
//
// Every frame is a JSON [Message]. Method calls travel in both directions
// and are matched to their results by ID; event frames flow from the
// renderer to Go only.
package wsbridge

import (
	"encoding/json"

	"github.com/go-drift/animatedborder/pkg/platform"
)

// Kind identifies the purpose of a Message.
type Kind string

const (
	// KindInvoke calls a method on the peer. The peer answers with KindResult
	// carrying the same ID.
	KindInvoke Kind = "invoke"
	// KindResult answers a KindInvoke.
	KindResult Kind = "result"
	// KindStartStream asks the renderer to start an event stream.
	KindStartStream Kind = "start_stream"
	// KindStopStream asks the renderer to stop an event stream.
	KindStopStream Kind = "stop_stream"
	// KindEvent delivers one event on a stream.
	KindEvent Kind = "event"
	// KindEventError reports a stream failure.
	KindEventError Kind = "event_error"
	// KindEventDone reports the end of a stream.
	KindEventDone Kind = "event_done"
)

// Message is one websocket frame.
type Message struct {
	Kind    Kind                   `json:"kind"`
	ID      int64                  `json:"id,omitempty"`
	Channel string                 `json:"channel,omitempty"`
	Method  string                 `json:"method,omitempty"`
	Payload json.RawMessage        `json:"payload,omitempty"`
	Error   *platform.ChannelError `json:"error,omitempty"`
}
