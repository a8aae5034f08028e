// Package protocol defines the wire events sent by the touchpad web client
// and the decode boundary that turns raw frames into typed events.
package protocol

import (
	"fmt"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventType is the value of the "type" discriminator field on every frame.
type EventType string

const (
	// TypeMouseMove carries one touch sample: positional deltas, speed
	// components and viewport geometry.
	TypeMouseMove EventType = "MouseMove"

	// TypeMouseClick is a tap mapped to a mouse button.
	TypeMouseClick EventType = "MouseClick"

	// TypeKeyPress carries a single typed character.
	TypeKeyPress EventType = "KeyPress"
)

// MouseButton names the button of a MouseClick frame.
type MouseButton string

const (
	ButtonLeft  MouseButton = "Left"
	ButtonRight MouseButton = "Right"
)

// ClientEvent is the closed set of events a session can deliver to the
// gesture pipeline. Exactly MoveEvent, ClickEvent and KeyEvent implement it.
type ClientEvent interface {
	clientEvent()
}

// MoveEvent is one touch-move sample. DX/DY are raw positional deltas since
// the previous sample, SX/SY the instantaneous speed components. Touches
// distinguishes a one-finger move from a two-finger scroll. The viewport
// fields are only consulted for edge damping.
type MoveEvent struct {
	DX      float64 `json:"dx"`
	DY      float64 `json:"dy"`
	SX      float64 `json:"sx"`
	SY      float64 `json:"sy"`
	Touches int     `json:"touches"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// ClickEvent is a discrete button click.
type ClickEvent struct {
	Button MouseButton `json:"button"`
}

// KeyEvent is a single typed Unicode scalar.
type KeyEvent struct {
	Key rune
}

func (MoveEvent) clientEvent()  {}
func (ClickEvent) clientEvent() {}
func (KeyEvent) clientEvent()   {}

// Decode parses one inbound frame. Frames with an unknown type, a malformed
// body or an invalid field are rejected; the caller drops them and keeps the
// connection open.
func Decode(data []byte) (ClientEvent, error) {
	var head struct {
		Type EventType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("protocol: malformed frame: %w", err)
	}

	switch head.Type {
	case TypeMouseMove:
		var ev MoveEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("protocol: malformed %s: %w", head.Type, err)
		}
		return ev, nil

	case TypeMouseClick:
		var ev ClickEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("protocol: malformed %s: %w", head.Type, err)
		}
		if ev.Button != ButtonLeft && ev.Button != ButtonRight {
			return nil, fmt.Errorf("protocol: unknown mouse button %q", ev.Button)
		}
		return ev, nil

	case TypeKeyPress:
		var raw struct {
			Key string `json:"key"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("protocol: malformed %s: %w", head.Type, err)
		}
		if utf8.RuneCountInString(raw.Key) != 1 {
			return nil, fmt.Errorf("protocol: key payload %q is not a single character", raw.Key)
		}
		r, _ := utf8.DecodeRuneInString(raw.Key)
		return KeyEvent{Key: r}, nil

	default:
		return nil, fmt.Errorf("protocol: unknown event type %q", head.Type)
	}
}

// Encode renders an event in the same shape the web client sends. Used by the
// probe client and tests; the server itself never writes application frames.
func Encode(ev ClientEvent) ([]byte, error) {
	switch ev := ev.(type) {
	case MoveEvent:
		return json.Marshal(struct {
			Type EventType `json:"type"`
			MoveEvent
		}{TypeMouseMove, ev})
	case ClickEvent:
		return json.Marshal(struct {
			Type EventType `json:"type"`
			ClickEvent
		}{TypeMouseClick, ev})
	case KeyEvent:
		return json.Marshal(struct {
			Type EventType `json:"type"`
			Key  string    `json:"key"`
		}{TypeKeyPress, string(ev.Key)})
	default:
		return nil, fmt.Errorf("protocol: unknown event %T", ev)
	}
}
