// Package platform connects the control tree to a renderer process.
//
// Messages travel over named channels. Go invokes renderer methods through a
// [MethodChannel], and the renderer reports events back through method calls
// ([HandleMethodCall]) or event streams ([HandleEvent]). The transport is a
// [NativeBridge] installed with [SetNativeBridge]; see the wsbridge package
// for a websocket implementation.
package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Codec converts channel payloads to and from wire bytes.
type Codec interface {
	Encode(value any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// JSONCodec is the renderer wire format. Objects decode to map[string]any,
// arrays to []any and numbers to float64.
type JSONCodec struct{}

// Encode marshals value. A nil value encodes as null.
func (JSONCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Decode unmarshals data. Empty input and null decode to nil; malformed
// input wraps [ErrInvalidArguments].
func (JSONCodec) Decode(data []byte) (any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	return v, nil
}

// DefaultCodec encodes every channel payload.
var DefaultCodec Codec = JSONCodec{}

// object returns v as a JSON object, or nil.
func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// field returns the string at key, or "" when it is missing or not a string.
func field(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
